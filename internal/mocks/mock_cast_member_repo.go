package mocks

import (
	"context"

	"github.com/metinatakli/catalog-admin/internal/domain"
)

type MockCastMemberRepo struct {
	domain.CastMemberRepository
	InsertFunc   func(ctx context.Context, member *domain.CastMember) error
	UpdateFunc   func(ctx context.Context, member *domain.CastMember) error
	FindByIDFunc func(ctx context.Context, id domain.CastMemberID) (*domain.CastMember, error)
	SearchFunc   func(ctx context.Context, params domain.SearchParams[domain.CastMemberFilter]) (domain.SearchResult[*domain.CastMember], error)
}

func (m *MockCastMemberRepo) Insert(ctx context.Context, member *domain.CastMember) error {
	return m.InsertFunc(ctx, member)
}

func (m *MockCastMemberRepo) Update(ctx context.Context, member *domain.CastMember) error {
	return m.UpdateFunc(ctx, member)
}

func (m *MockCastMemberRepo) FindByID(ctx context.Context, id domain.CastMemberID) (*domain.CastMember, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *MockCastMemberRepo) Search(ctx context.Context, params domain.SearchParams[domain.CastMemberFilter]) (domain.SearchResult[*domain.CastMember], error) {
	return m.SearchFunc(ctx, params)
}
