package domain

import (
	"slices"
	"strings"
	"time"
)

const GenreEntityName = "Genre"

// Genre owns its category membership, keyed by category id string.
type Genre struct {
	AggregateRoot
	ID          GenreID
	Name        string
	CategoryIDs map[string]CategoryID
	IsActive    bool
	CreatedAt   time.Time
}

type GenreProps struct {
	ID          GenreID
	Name        string
	CategoryIDs []CategoryID
	IsActive    *bool
	CreatedAt   time.Time
}

type GenreCreateCommand struct {
	Name        string
	CategoryIDs []CategoryID
	IsActive    *bool
}

type genreRules struct {
	Name string `json:"name" validate:"required,max=255"`
}

func NewGenre(props GenreProps) *Genre {
	g := &Genre{
		ID:          props.ID,
		Name:        props.Name,
		CategoryIDs: make(map[string]CategoryID, len(props.CategoryIDs)),
		IsActive:    true,
		CreatedAt:   props.CreatedAt,
	}

	for _, id := range props.CategoryIDs {
		g.CategoryIDs[id.String()] = id
	}

	if g.ID.IsZero() {
		g.ID = NewGenreID()
	}
	if props.IsActive != nil {
		g.IsActive = *props.IsActive
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now()
	}

	return g
}

func CreateGenre(cmd GenreCreateCommand) *Genre {
	g := NewGenre(GenreProps{
		Name:        cmd.Name,
		CategoryIDs: cmd.CategoryIDs,
		IsActive:    cmd.IsActive,
	})
	g.Validate()

	return g
}

func (g *Genre) ChangeName(name string) {
	g.Name = name
	g.Validate()
}

func (g *Genre) AddCategoryID(id CategoryID) {
	g.CategoryIDs[id.String()] = id
}

func (g *Genre) RemoveCategoryID(id CategoryID) {
	delete(g.CategoryIDs, id.String())
}

// SyncCategoryIDs replaces the whole membership set.
func (g *Genre) SyncCategoryIDs(ids []CategoryID) {
	g.CategoryIDs = make(map[string]CategoryID, len(ids))
	for _, id := range ids {
		g.CategoryIDs[id.String()] = id
	}
}

// CategoryIDList returns the membership ordered by id string.
func (g *Genre) CategoryIDList() []CategoryID {
	ids := make([]CategoryID, 0, len(g.CategoryIDs))
	for _, id := range g.CategoryIDs {
		ids = append(ids, id)
	}

	slices.SortFunc(ids, func(a, b CategoryID) int {
		return strings.Compare(a.String(), b.String())
	})

	return ids
}

func (g *Genre) HasCategoryID(id CategoryID) bool {
	_, ok := g.CategoryIDs[id.String()]
	return ok
}

func (g *Genre) Activate() {
	g.IsActive = true
}

func (g *Genre) Deactivate() {
	g.IsActive = false
}

func (g *Genre) Validate() bool {
	return validateRules(g.Notification(), genreRules{Name: g.Name}, "name")
}

func (g *Genre) Equals(other *Genre) bool {
	return other != nil && g.ID.Equals(other.ID)
}

// GenreFilter matches genres whose name contains Name and that own at least
// one of CategoryIDs. Both keys must hold when both are set.
type GenreFilter struct {
	Name        string
	CategoryIDs []CategoryID
}

func (f GenreFilter) IsEmpty() bool {
	return f.Name == "" && len(f.CategoryIDs) == 0
}

func (f GenreFilter) Matches(g *Genre) bool {
	if f.Name != "" && !containsFold(g.Name, f.Name) {
		return false
	}

	if len(f.CategoryIDs) > 0 && !slices.ContainsFunc(f.CategoryIDs, g.HasCategoryID) {
		return false
	}

	return true
}

func NewGenreSearchParams(in SearchInput[GenreFilter]) SearchParams[GenreFilter] {
	return NewSearchParams(in)
}

type GenreRepository interface {
	SearchableRepository[*Genre, GenreID, GenreFilter]
	// WithUnitOfWork returns a repository whose writes enlist in uow.
	WithUnitOfWork(uow UnitOfWork) GenreRepository
}
