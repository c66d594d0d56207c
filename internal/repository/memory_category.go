package repository

import (
	"context"
	"time"

	"github.com/metinatakli/catalog-admin/internal/domain"
)

// InMemoryCategoryRepository stores categories in memory. It is not bound to
// a unit of work on its own; enlist it with NewInMemoryUnitOfWork or
// InMemoryUnitOfWork.Enlist for its writes to roll back.
type InMemoryCategoryRepository struct {
	*memoryStore[*domain.Category, domain.CategoryID, domain.CategoryFilter]

	genres *InMemoryGenreRepository
}

func NewInMemoryCategoryRepository() *InMemoryCategoryRepository {
	return &InMemoryCategoryRepository{
		memoryStore: newMemoryStore[*domain.Category, domain.CategoryID](memorySchema[*domain.Category, domain.CategoryFilter]{
			entityName: domain.CategoryEntityName,
			key:        func(c *domain.Category) string { return c.ID.String() },
			clone:      cloneCategory,
			createdAt:  func(c *domain.Category) time.Time { return c.CreatedAt },
			matches: func(f domain.CategoryFilter, c *domain.Category) bool {
				return f.Matches(c)
			},
			sorters: map[string]func(a, b *domain.Category) int{
				"name":       func(a, b *domain.Category) int { return compareStrings(a.Name, b.Name) },
				"created_at": func(a, b *domain.Category) int { return compareTimes(a.CreatedAt, b.CreatedAt) },
			},
			sortable: []string{"name", "created_at"},
		}),
	}
}

// RestrictDeletesBy makes Delete refuse categories that a genre in genres
// still references, as the foreign key does in postgres.
func (r *InMemoryCategoryRepository) RestrictDeletesBy(genres *InMemoryGenreRepository) {
	r.genres = genres
}

func (r *InMemoryCategoryRepository) Delete(ctx context.Context, id domain.CategoryID) error {
	if r.genres != nil && r.genres.referencesCategory(id) {
		found, err := r.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if found != nil {
			return domain.NewInUseError(domain.CategoryEntityName, id.String(), domain.GenreEntityName)
		}
	}

	return r.memoryStore.Delete(ctx, id)
}

func (r *InMemoryCategoryRepository) FindByIDs(ctx context.Context, ids []domain.CategoryID) ([]*domain.Category, error) {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id.String()] = struct{}{}
	}

	all, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	categories := make([]*domain.Category, 0, len(ids))
	for _, c := range all {
		if _, ok := wanted[c.ID.String()]; ok {
			categories = append(categories, c)
		}
	}

	return categories, nil
}

func (r *InMemoryCategoryRepository) ExistsByID(ctx context.Context, ids []domain.CategoryID) (domain.ExistsResult[domain.CategoryID], error) {
	found, err := r.FindByIDs(ctx, ids)
	if err != nil {
		return domain.ExistsResult[domain.CategoryID]{}, err
	}

	return splitExisting(ids, found, func(c *domain.Category) string { return c.ID.String() }), nil
}

func cloneCategory(c *domain.Category) *domain.Category {
	var description *string
	if c.Description != nil {
		d := *c.Description
		description = &d
	}

	return domain.NewCategory(domain.CategoryProps{
		ID:          c.ID,
		Name:        c.Name,
		Description: description,
		IsActive:    &c.IsActive,
		CreatedAt:   c.CreatedAt,
	})
}

// splitExisting partitions ids by whether found holds a record for them,
// keeping the order of ids.
func splitExisting[E any](ids []domain.CategoryID, found []E, key func(E) string) domain.ExistsResult[domain.CategoryID] {
	present := make(map[string]struct{}, len(found))
	for _, e := range found {
		present[key(e)] = struct{}{}
	}

	result := domain.ExistsResult[domain.CategoryID]{
		Exists:    []domain.CategoryID{},
		NotExists: []domain.CategoryID{},
	}

	for _, id := range ids {
		if _, ok := present[id.String()]; ok {
			result.Exists = append(result.Exists, id)
			continue
		}
		result.NotExists = append(result.NotExists, id)
	}

	return result
}
