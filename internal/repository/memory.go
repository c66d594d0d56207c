package repository

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/metinatakli/catalog-admin/internal/domain"
)

// Snapshotter is a store whose contents can be captured and put back, which is
// all an InMemoryUnitOfWork needs from it.
type Snapshotter interface {
	Snapshot() (restore func())
}

// memorySchema describes how a memoryStore reads its aggregates.
type memorySchema[E any, F any] struct {
	entityName string
	key        func(E) string
	clone      func(E) E
	createdAt  func(E) time.Time
	matches    func(F, E) bool
	sorters    map[string]func(a, b E) int
	sortable   []string
}

// memoryStore keeps aggregates in insertion order. Stored values are clones,
// so callers never share state with the store.
type memoryStore[E any, ID fmt.Stringer, F any] struct {
	mu     sync.RWMutex
	items  []E
	schema memorySchema[E, F]
}

func newMemoryStore[E any, ID fmt.Stringer, F any](schema memorySchema[E, F]) *memoryStore[E, ID, F] {
	return &memoryStore[E, ID, F]{
		items:  []E{},
		schema: schema,
	}
}

func (s *memoryStore[E, ID, F]) Insert(_ context.Context, entity E) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := s.schema.key(entity)
	if s.indexOf(key) >= 0 {
		return fmt.Errorf("%s %s: %w", s.schema.entityName, key, domain.ErrAlreadyExists)
	}

	s.items = append(s.items, s.schema.clone(entity))

	return nil
}

func (s *memoryStore[E, ID, F]) BulkInsert(_ context.Context, entities []E) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(entities))
	for _, entity := range entities {
		key := s.schema.key(entity)

		_, dup := seen[key]
		if dup || s.indexOf(key) >= 0 {
			return fmt.Errorf("%s %s: %w", s.schema.entityName, key, domain.ErrAlreadyExists)
		}
		seen[key] = struct{}{}
	}

	for _, entity := range entities {
		s.items = append(s.items, s.schema.clone(entity))
	}

	return nil
}

func (s *memoryStore[E, ID, F]) Update(_ context.Context, entity E) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := s.schema.key(entity)

	i := s.indexOf(key)
	if i < 0 {
		return domain.NewNotFoundError(s.schema.entityName, key)
	}

	s.items[i] = s.schema.clone(entity)

	return nil
}

func (s *memoryStore[E, ID, F]) Delete(_ context.Context, id ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id.String())
	if i < 0 {
		return domain.NewNotFoundError(s.schema.entityName, id.String())
	}

	s.items = slices.Delete(s.items, i, i+1)

	return nil
}

// FindByID returns the zero aggregate and a nil error when id is unknown.
func (s *memoryStore[E, ID, F]) FindByID(_ context.Context, id ID) (E, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var zero E

	i := s.indexOf(id.String())
	if i < 0 {
		return zero, nil
	}

	return s.schema.clone(s.items[i]), nil
}

func (s *memoryStore[E, ID, F]) FindAll(_ context.Context) ([]E, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cloneAll(s.items), nil
}

func (s *memoryStore[E, ID, F]) SortableFields() []string {
	return slices.Clone(s.schema.sortable)
}

func (s *memoryStore[E, ID, F]) Search(_ context.Context, params domain.SearchParams[F]) (domain.SearchResult[E], error) {
	params = params.Normalize()

	s.mu.RLock()
	items := slices.Clone(s.items)
	s.mu.RUnlock()

	items = s.applyFilter(items, params.Filter)
	s.applySort(items, params.SortField(), params.Direction())

	total := len(items)
	page := s.cloneAll(paginate(items, params.Offset(), params.Limit()))

	return domain.NewSearchResult(page, total, params.Page, params.PerPage), nil
}

func (s *memoryStore[E, ID, F]) Snapshot() func() {
	s.mu.RLock()
	saved := slices.Clone(s.items)
	s.mu.RUnlock()

	return func() {
		s.mu.Lock()
		s.items = saved
		s.mu.Unlock()
	}
}

// Items exposes the stored values in insertion order, for tests.
func (s *memoryStore[E, ID, F]) Items() []E {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cloneAll(s.items)
}

func (s *memoryStore[E, ID, F]) applyFilter(items []E, filter *F) []E {
	if filter == nil {
		return items
	}

	return slices.DeleteFunc(items, func(e E) bool {
		return !s.schema.matches(*filter, e)
	})
}

// applySort orders items in place. Unknown fields fall back to newest first;
// equal keys keep their insertion order.
func (s *memoryStore[E, ID, F]) applySort(items []E, field string, dir domain.SortDirection) {
	compare, ok := s.schema.sorters[field]
	if !ok || !slices.Contains(s.schema.sortable, field) {
		slices.SortStableFunc(items, func(a, b E) int {
			return s.schema.createdAt(b).Compare(s.schema.createdAt(a))
		})
		return
	}

	if dir == domain.SortDesc {
		slices.SortStableFunc(items, func(a, b E) int {
			return compare(b, a)
		})
		return
	}

	slices.SortStableFunc(items, compare)
}

func (s *memoryStore[E, ID, F]) indexOf(key string) int {
	return slices.IndexFunc(s.items, func(e E) bool {
		return s.schema.key(e) == key
	})
}

func (s *memoryStore[E, ID, F]) cloneAll(items []E) []E {
	out := make([]E, len(items))
	for i, item := range items {
		out[i] = s.schema.clone(item)
	}

	return out
}

func paginate[E any](items []E, offset, limit int) []E {
	if offset < 0 || offset >= len(items) {
		return []E{}
	}

	end := len(items)
	if limit >= 0 && limit < end-offset {
		end = offset + limit
	}

	return items[offset:end]
}

func compareStrings(a, b string) int {
	return cmp.Compare(a, b)
}

func compareTimes(a, b time.Time) int {
	return a.Compare(b)
}
