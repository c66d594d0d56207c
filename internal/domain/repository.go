package domain

import "context"

// Repository is the persistence surface shared by every aggregate.
// FindByID returns a nil aggregate and a nil error when nothing matches;
// Update and Delete return a *NotFoundError instead.
type Repository[E any, ID any] interface {
	Insert(ctx context.Context, entity E) error
	BulkInsert(ctx context.Context, entities []E) error
	Update(ctx context.Context, entity E) error
	Delete(ctx context.Context, id ID) error
	FindByID(ctx context.Context, id ID) (E, error)
	FindAll(ctx context.Context) ([]E, error)
}

// SearchableRepository filters, sorts and paginates, in that order. Sorting on
// a field outside SortableFields falls back to created_at descending.
type SearchableRepository[E any, ID any, F any] interface {
	Repository[E, ID]
	SortableFields() []string
	Search(ctx context.Context, params SearchParams[F]) (SearchResult[E], error)
}

type ExistsResult[ID any] struct {
	Exists    []ID
	NotExists []ID
}

// UnitOfWork is a transaction boundary: idle -> active -> committed or rolled
// back -> idle. Start while active, or Commit/Rollback while idle, return an
// error wrapping ErrInvalidUnitOfWorkState. A UnitOfWork must not be shared
// between concurrent flows.
type UnitOfWork interface {
	Start(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	// Do runs fn between Start and Commit, rolling back and returning fn's
	// error when it fails.
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
