package domain

import (
	"context"
	"strings"
	"time"
)

const CategoryEntityName = "Category"

type Category struct {
	AggregateRoot
	ID          CategoryID
	Name        string
	Description *string
	IsActive    bool
	CreatedAt   time.Time
}

// CategoryProps restores a category as-is. Zero ID and CreatedAt are filled in;
// a nil IsActive means active.
type CategoryProps struct {
	ID          CategoryID
	Name        string
	Description *string
	IsActive    *bool
	CreatedAt   time.Time
}

type CategoryCreateCommand struct {
	Name        string
	Description *string
	IsActive    *bool
}

type categoryRules struct {
	Name string `json:"name" validate:"required,max=255"`
}

func NewCategory(props CategoryProps) *Category {
	c := &Category{
		ID:          props.ID,
		Name:        props.Name,
		Description: props.Description,
		IsActive:    true,
		CreatedAt:   props.CreatedAt,
	}

	if c.ID.IsZero() {
		c.ID = NewCategoryID()
	}
	if props.IsActive != nil {
		c.IsActive = *props.IsActive
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}

	return c
}

// CreateCategory builds a new category and validates it.
func CreateCategory(cmd CategoryCreateCommand) *Category {
	c := NewCategory(CategoryProps{
		Name:        cmd.Name,
		Description: cmd.Description,
		IsActive:    cmd.IsActive,
	})
	c.Validate()

	return c
}

func (c *Category) ChangeName(name string) {
	c.Name = name
	c.Validate()
}

func (c *Category) ChangeDescription(description *string) {
	c.Description = description
}

func (c *Category) Activate() {
	c.IsActive = true
}

func (c *Category) Deactivate() {
	c.IsActive = false
}

func (c *Category) Validate() bool {
	return validateRules(c.Notification(), categoryRules{Name: c.Name}, "name")
}

func (c *Category) Equals(other *Category) bool {
	return other != nil && c.ID.Equals(other.ID)
}

type CategoryFilter struct {
	Name string
}

func (f CategoryFilter) IsEmpty() bool {
	return f.Name == ""
}

// Matches reports whether c's name contains the filter name, ignoring case.
func (f CategoryFilter) Matches(c *Category) bool {
	return containsFold(c.Name, f.Name)
}

func NewCategorySearchParams(in SearchInput[CategoryFilter]) SearchParams[CategoryFilter] {
	return NewSearchParams(in)
}

type CategoryRepository interface {
	SearchableRepository[*Category, CategoryID, CategoryFilter]
	FindByIDs(ctx context.Context, ids []CategoryID) ([]*Category, error)
	ExistsByID(ctx context.Context, ids []CategoryID) (ExistsResult[CategoryID], error)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
