package actions

import (
	"context"
	"sync"

	"feedback-backend/internal/classify"
)

// AggregateAll aggregates every subject's records concurrently with a
// bounded number of workers. Aggregation is pure per subject, so no ordering
// guarantee is needed between subjects.
func (a *Aggregator) AggregateAll(ctx context.Context, bySubject map[string][]classify.FeedbackRecord, workers int) (map[string][]ActionItem, error) {
	if workers <= 0 {
		workers = 4
	}
	if len(bySubject) == 0 {
		return map[string][]ActionItem{}, nil
	}

	type job struct {
		subjectID string
		records   []classify.FeedbackRecord
	}
	type result struct {
		subjectID string
		items     []ActionItem
	}

	jobs := make(chan job)
	results := make(chan result, len(bySubject))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}
				results <- result{subjectID: j.subjectID, items: a.Aggregate(j.subjectID, j.records)}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for subjectID, records := range bySubject {
			select {
			case <-ctx.Done():
				return
			case jobs <- job{subjectID: subjectID, records: records}:
			}
		}
	}()

	wg.Wait()
	close(results)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make(map[string][]ActionItem, len(bySubject))
	for r := range results {
		out[r.subjectID] = r.items
	}
	return out, nil
}
