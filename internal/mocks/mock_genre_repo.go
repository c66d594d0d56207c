package mocks

import (
	"context"

	"github.com/metinatakli/catalog-admin/internal/domain"
)

type MockGenreRepo struct {
	domain.GenreRepository
	InsertFunc   func(ctx context.Context, genre *domain.Genre) error
	UpdateFunc   func(ctx context.Context, genre *domain.Genre) error
	DeleteFunc   func(ctx context.Context, id domain.GenreID) error
	FindByIDFunc func(ctx context.Context, id domain.GenreID) (*domain.Genre, error)
	SearchFunc   func(ctx context.Context, params domain.SearchParams[domain.GenreFilter]) (domain.SearchResult[*domain.Genre], error)

	// BoundTo records the units of work the repository was bound to.
	BoundTo []domain.UnitOfWork
}

func (m *MockGenreRepo) WithUnitOfWork(uow domain.UnitOfWork) domain.GenreRepository {
	m.BoundTo = append(m.BoundTo, uow)
	return m
}

func (m *MockGenreRepo) Insert(ctx context.Context, genre *domain.Genre) error {
	return m.InsertFunc(ctx, genre)
}

func (m *MockGenreRepo) Update(ctx context.Context, genre *domain.Genre) error {
	return m.UpdateFunc(ctx, genre)
}

func (m *MockGenreRepo) Delete(ctx context.Context, id domain.GenreID) error {
	return m.DeleteFunc(ctx, id)
}

func (m *MockGenreRepo) FindByID(ctx context.Context, id domain.GenreID) (*domain.Genre, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *MockGenreRepo) Search(ctx context.Context, params domain.SearchParams[domain.GenreFilter]) (domain.SearchResult[*domain.Genre], error) {
	return m.SearchFunc(ctx, params)
}
