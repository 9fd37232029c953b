package patient

import (
	"context"
	"sync"
)

// MemoryRepository keeps the collection in process. Load and Save copy, so
// callers never share state with the store.
type MemoryRepository struct {
	mu   sync.RWMutex
	data *Collection
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{data: NewCollection()}
}

func (r *MemoryRepository) Load(_ context.Context) (*Collection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.data.Clone(), nil
}

func (r *MemoryRepository) Save(_ context.Context, c *Collection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = c.Clone()
	return nil
}
