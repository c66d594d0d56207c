package app

import (
	"time"

	"github.com/metinatakli/catalog-admin/internal/domain"
)

type CategoryOutput struct {
	ID          string
	Name        string
	Description *string
	IsActive    bool
	CreatedAt   time.Time
}

func toCategoryOutput(c *domain.Category) CategoryOutput {
	return CategoryOutput{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
	}
}

type CastMemberOutput struct {
	ID        string
	Name      string
	Type      int
	CreatedAt time.Time
}

func toCastMemberOutput(m *domain.CastMember) CastMemberOutput {
	return CastMemberOutput{
		ID:        m.ID.String(),
		Name:      m.Name,
		Type:      m.Type.Int(),
		CreatedAt: m.CreatedAt,
	}
}

type GenreCategoryOutput struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

type GenreOutput struct {
	ID           string
	Name         string
	Categories   []GenreCategoryOutput
	CategoriesID []string
	IsActive     bool
	CreatedAt    time.Time
}

// toGenreOutput lists the genre's categories found in categories, ordered by
// name. Ids without a loaded category still appear in CategoriesID.
func toGenreOutput(g *domain.Genre, categories map[string]*domain.Category) GenreOutput {
	out := GenreOutput{
		ID:           g.ID.String(),
		Name:         g.Name,
		Categories:   []GenreCategoryOutput{},
		CategoriesID: []string{},
		IsActive:     g.IsActive,
		CreatedAt:    g.CreatedAt,
	}

	for _, id := range g.CategoryIDList() {
		out.CategoriesID = append(out.CategoriesID, id.String())

		c, ok := categories[id.String()]
		if !ok {
			continue
		}

		out.Categories = append(out.Categories, GenreCategoryOutput{
			ID:        c.ID.String(),
			Name:      c.Name,
			CreatedAt: c.CreatedAt,
		})
	}

	sortGenreCategories(out.Categories)

	return out
}

type PaginationOutput[T any] struct {
	Items       []T
	Total       int
	CurrentPage int
	LastPage    int
	PerPage     int
}

func toPaginationOutput[E, T any](result domain.SearchResult[E], fn func(E) T) PaginationOutput[T] {
	mapped := domain.MapSearchResult(result, fn)

	return PaginationOutput[T]{
		Items:       mapped.Items,
		Total:       mapped.Total,
		CurrentPage: mapped.CurrentPage,
		LastPage:    mapped.LastPage,
		PerPage:     mapped.PerPage,
	}
}
