package weights

import (
	"context"
	"sync"
)

// MemoryRepo stores the weight configuration in memory and is safe for
// concurrent use.
type MemoryRepo struct {
	mu     sync.RWMutex
	cfg    Config
	loaded bool
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

// Get returns the stored configuration.
func (r *MemoryRepo) Get(ctx context.Context) (Config, error) {
	if err := ctx.Err(); err != nil {
		return Config{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.loaded {
		return Config{}, ErrNotConfigured
	}
	return r.cfg, nil
}

// Put replaces the stored configuration.
func (r *MemoryRepo) Put(ctx context.Context, cfg Config) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cfg = cfg
	r.loaded = true
	return nil
}
