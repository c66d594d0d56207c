package repository

import (
	"context"
	"slices"
	"sync"
)

// InMemoryUnitOfWork gives in-memory stores transaction semantics: Start
// snapshots every enlisted store and Rollback puts the snapshots back.
type InMemoryUnitOfWork struct {
	mu       sync.Mutex
	active   bool
	stores   []Snapshotter
	restores []func()
}

func NewInMemoryUnitOfWork(stores ...Snapshotter) *InMemoryUnitOfWork {
	return &InMemoryUnitOfWork{stores: stores}
}

// Enlist adds store to the unit of work. A store enlisted while active is
// snapshotted immediately.
func (u *InMemoryUnitOfWork) Enlist(store Snapshotter) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if slices.Contains(u.stores, store) {
		return
	}

	u.stores = append(u.stores, store)

	if u.active {
		u.restores = append(u.restores, store.Snapshot())
	}
}

func (u *InMemoryUnitOfWork) Start(_ context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.active {
		return invalidState("start", "active")
	}

	u.restores = make([]func(), 0, len(u.stores))
	for _, store := range u.stores {
		u.restores = append(u.restores, store.Snapshot())
	}
	u.active = true

	return nil
}

func (u *InMemoryUnitOfWork) Commit(_ context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if !u.active {
		return invalidState("commit", "idle")
	}

	u.restores = nil
	u.active = false

	return nil
}

func (u *InMemoryUnitOfWork) Rollback(_ context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if !u.active {
		return invalidState("rollback", "idle")
	}

	for _, restore := range slices.Backward(u.restores) {
		restore()
	}

	u.restores = nil
	u.active = false

	return nil
}

func (u *InMemoryUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return runUnitOfWork(ctx, "memory", u, fn)
}

func (u *InMemoryUnitOfWork) InTransaction() bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	return u.active
}
