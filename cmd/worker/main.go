package main

// Periodically rescores every stored recommendation against the current
// weight configuration:
//   go run ./cmd/worker

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"feedback-backend/internal/bootstrap"
	"feedback-backend/internal/shared/config"
	"feedback-backend/internal/shared/metrics"
	"feedback-backend/internal/shared/telemetry"
)

const recomputeTimeout = 5 * time.Minute

func main() {
	cfg := config.Load()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap build: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := cron.New()
	_, err = scheduler.AddFunc(cfg.RecomputeSchedule, func() {
		runCtx, cancel := context.WithTimeout(ctx, recomputeTimeout)
		defer cancel()
		recomputePass(runCtx, app)
	})
	if err != nil {
		log.Fatalf("invalid RECOMPUTE_SCHEDULE %q: %v", cfg.RecomputeSchedule, err)
	}

	scheduler.Start()
	log.Printf("worker started schedule=%q workers=%d", cfg.RecomputeSchedule, cfg.RecomputeWorkers)

	<-ctx.Done()

	stopCtx := scheduler.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(30 * time.Second):
		log.Printf("timed out waiting for running jobs")
	}
	log.Printf("worker stopped")
}

func recomputePass(ctx context.Context, app *bootstrap.App) {
	start := time.Now()

	current, err := app.WeightsService.Current(ctx)
	if err != nil {
		metrics.IncRecomputeFailed()
		telemetry.Error("recompute.weights_load_failed", map[string]any{"error": err.Error()})
		return
	}

	courses, err := app.RecommendationService.RecomputeAll(ctx, current)
	if err != nil {
		metrics.IncRecomputeFailed()
		telemetry.Error("recompute.failed", map[string]any{"error": err.Error()})
		return
	}

	rollups, err := app.FeedbackService.ActionsForAllCourses(ctx, app.Config.RecomputeWorkers)
	if err != nil {
		metrics.IncRecomputeFailed()
		telemetry.Error("recompute.rollup_failed", map[string]any{"error": err.Error()})
		return
	}

	metrics.IncRecomputeCompleted()
	telemetry.Info("recompute.complete", map[string]any{
		"courses":     courses,
		"rollups":     len(rollups),
		"duration_ms": float64(time.Since(start).Microseconds()) / 1000.0,
	})
}
