package repository

import (
	"slices"
	"time"

	"github.com/metinatakli/catalog-admin/internal/domain"
)

// InMemoryGenreRepository stores genres in memory. WithUnitOfWork enlists it
// in an InMemoryUnitOfWork.
type InMemoryGenreRepository struct {
	*memoryStore[*domain.Genre, domain.GenreID, domain.GenreFilter]
}

func NewInMemoryGenreRepository() *InMemoryGenreRepository {
	return &InMemoryGenreRepository{
		memoryStore: newMemoryStore[*domain.Genre, domain.GenreID](memorySchema[*domain.Genre, domain.GenreFilter]{
			entityName: domain.GenreEntityName,
			key:        func(g *domain.Genre) string { return g.ID.String() },
			clone: func(g *domain.Genre) *domain.Genre {
				return domain.NewGenre(domain.GenreProps{
					ID:          g.ID,
					Name:        g.Name,
					CategoryIDs: g.CategoryIDList(),
					IsActive:    &g.IsActive,
					CreatedAt:   g.CreatedAt,
				})
			},
			createdAt: func(g *domain.Genre) time.Time { return g.CreatedAt },
			matches: func(f domain.GenreFilter, g *domain.Genre) bool {
				return f.Matches(g)
			},
			sorters: map[string]func(a, b *domain.Genre) int{
				"name":       func(a, b *domain.Genre) int { return compareStrings(a.Name, b.Name) },
				"created_at": func(a, b *domain.Genre) int { return compareTimes(a.CreatedAt, b.CreatedAt) },
			},
			sortable: []string{"name", "created_at"},
		}),
	}
}

// WithUnitOfWork enlists the store in uow when it is an in-memory unit of work,
// so a rollback restores the genres. Other units of work are ignored.
func (r *InMemoryGenreRepository) WithUnitOfWork(uow domain.UnitOfWork) domain.GenreRepository {
	if u, ok := uow.(*InMemoryUnitOfWork); ok {
		u.Enlist(r)
	}

	return r
}

func (r *InMemoryGenreRepository) referencesCategory(id domain.CategoryID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.ContainsFunc(r.items, func(g *domain.Genre) bool {
		return g.HasCategoryID(id)
	})
}
