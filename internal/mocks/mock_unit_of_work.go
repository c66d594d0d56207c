package mocks

import (
	"context"

	"github.com/metinatakli/catalog-admin/internal/domain"
)

// MockUnitOfWork runs Do's function directly and counts the outcomes.
type MockUnitOfWork struct {
	domain.UnitOfWork
	Commits   int
	Rollbacks int
}

func (m *MockUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		m.Rollbacks++
		return err
	}

	m.Commits++

	return nil
}
