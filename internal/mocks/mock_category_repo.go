package mocks

import (
	"context"

	"github.com/metinatakli/catalog-admin/internal/domain"
)

type MockCategoryRepo struct {
	domain.CategoryRepository
	InsertFunc     func(ctx context.Context, category *domain.Category) error
	UpdateFunc     func(ctx context.Context, category *domain.Category) error
	DeleteFunc     func(ctx context.Context, id domain.CategoryID) error
	FindByIDFunc   func(ctx context.Context, id domain.CategoryID) (*domain.Category, error)
	FindByIDsFunc  func(ctx context.Context, ids []domain.CategoryID) ([]*domain.Category, error)
	ExistsByIDFunc func(ctx context.Context, ids []domain.CategoryID) (domain.ExistsResult[domain.CategoryID], error)
	SearchFunc     func(ctx context.Context, params domain.SearchParams[domain.CategoryFilter]) (domain.SearchResult[*domain.Category], error)
}

func (m *MockCategoryRepo) Insert(ctx context.Context, category *domain.Category) error {
	return m.InsertFunc(ctx, category)
}

func (m *MockCategoryRepo) Update(ctx context.Context, category *domain.Category) error {
	return m.UpdateFunc(ctx, category)
}

func (m *MockCategoryRepo) Delete(ctx context.Context, id domain.CategoryID) error {
	return m.DeleteFunc(ctx, id)
}

func (m *MockCategoryRepo) FindByID(ctx context.Context, id domain.CategoryID) (*domain.Category, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *MockCategoryRepo) FindByIDs(ctx context.Context, ids []domain.CategoryID) ([]*domain.Category, error) {
	return m.FindByIDsFunc(ctx, ids)
}

func (m *MockCategoryRepo) ExistsByID(ctx context.Context, ids []domain.CategoryID) (domain.ExistsResult[domain.CategoryID], error) {
	return m.ExistsByIDFunc(ctx, ids)
}

func (m *MockCategoryRepo) Search(ctx context.Context, params domain.SearchParams[domain.CategoryFilter]) (domain.SearchResult[*domain.Category], error) {
	return m.SearchFunc(ctx, params)
}
