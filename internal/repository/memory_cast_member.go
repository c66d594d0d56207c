package repository

import (
	"time"

	"github.com/metinatakli/catalog-admin/internal/domain"
)

// InMemoryCastMemberRepository stores cast members in memory. Its writes roll
// back only when it is enlisted with NewInMemoryUnitOfWork or
// InMemoryUnitOfWork.Enlist.
type InMemoryCastMemberRepository struct {
	*memoryStore[*domain.CastMember, domain.CastMemberID, domain.CastMemberFilter]
}

func NewInMemoryCastMemberRepository() *InMemoryCastMemberRepository {
	return &InMemoryCastMemberRepository{
		memoryStore: newMemoryStore[*domain.CastMember, domain.CastMemberID](memorySchema[*domain.CastMember, domain.CastMemberFilter]{
			entityName: domain.CastMemberEntityName,
			key:        func(m *domain.CastMember) string { return m.ID.String() },
			clone: func(m *domain.CastMember) *domain.CastMember {
				return domain.NewCastMember(domain.CastMemberProps{
					ID:        m.ID,
					Name:      m.Name,
					Type:      m.Type,
					CreatedAt: m.CreatedAt,
				})
			},
			createdAt: func(m *domain.CastMember) time.Time { return m.CreatedAt },
			matches: func(f domain.CastMemberFilter, m *domain.CastMember) bool {
				return f.Matches(m)
			},
			sorters: map[string]func(a, b *domain.CastMember) int{
				"name":       func(a, b *domain.CastMember) int { return compareStrings(a.Name, b.Name) },
				"created_at": func(a, b *domain.CastMember) int { return compareTimes(a.CreatedAt, b.CreatedAt) },
			},
			sortable: []string{"name", "created_at"},
		}),
	}
}
