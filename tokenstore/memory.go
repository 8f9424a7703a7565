package tokenstore

import (
	"context"
	"sync"
)

// Memory is the default in-process store. The zero value is ready to use.
type Memory struct {
	mu   sync.RWMutex
	pair Pair
}

// NewMemory returns an empty in-process store.
func NewMemory() *Memory {
	return &Memory{}
}

// Load implements [Store].
func (m *Memory) Load(ctx context.Context) (Pair, error) {
	if err := ctx.Err(); err != nil {
		return Pair{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pair, nil
}

// Save implements [Store].
func (m *Memory) Save(ctx context.Context, pair Pair) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	m.pair = pair
	m.mu.Unlock()
	return nil
}

// Clear implements [Store].
func (m *Memory) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	m.pair = Pair{}
	m.mu.Unlock()
	return nil
}
