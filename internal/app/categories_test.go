package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/metinatakli/catalog-admin/internal/domain"
	"github.com/metinatakli/catalog-admin/internal/mocks"
)

func TestCreateCategory(t *testing.T) {
	errDB := errors.New("connection reset")

	tests := []struct {
		name       string
		input      CreateCategoryInput
		insertFunc func(context.Context, *domain.Category) error
		want       CategoryOutput
		wantErrs   []any
		wantErr    error
	}{
		{
			name:  "creates an active category by default",
			input: CreateCategoryInput{Name: "Movie", Description: ptr("films")},
			insertFunc: func(ctx context.Context, c *domain.Category) error {
				return nil
			},
			want: CategoryOutput{Name: "Movie", Description: ptr("films"), IsActive: true},
		},
		{
			name:  "keeps an explicit inactive flag",
			input: CreateCategoryInput{Name: "Movie", IsActive: ptr(false)},
			insertFunc: func(ctx context.Context, c *domain.Category) error {
				return nil
			},
			want: CategoryOutput{Name: "Movie", IsActive: false},
		},
		{
			name:     "rejects a blank name",
			input:    CreateCategoryInput{Name: "   "},
			wantErrs: []any{fieldErrors("name", "name should not be empty")},
		},
		{
			name:     "rejects a name over 255 characters",
			input:    CreateCategoryInput{Name: strings.Repeat("a", 256)},
			wantErrs: []any{fieldErrors("name", "name must be shorter than or equal to 255 characters")},
		},
		{
			name:  "returns repository errors",
			input: CreateCategoryInput{Name: "Movie"},
			insertFunc: func(ctx context.Context, c *domain.Category) error {
				return errDB
			},
			wantErr: errDB,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inserted := 0
			repo := &mocks.MockCategoryRepo{
				InsertFunc: func(ctx context.Context, c *domain.Category) error {
					inserted++
					return tt.insertFunc(ctx, c)
				},
			}
			app := newTestApplication(withCategoryRepo(repo))

			got, err := app.CreateCategory(context.Background(), tt.input)

			if tt.wantErrs != nil {
				checkValidationErrors(t, err, tt.wantErrs)
				if inserted != 0 {
					t.Errorf("Insert called %d times for an invalid category", inserted)
				}
				return
			}

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("got error %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if _, err := domain.ParseCategoryID(got.ID); err != nil {
				t.Errorf("output id %q is not a valid identifier", got.ID)
			}

			opts := cmpopts.IgnoreFields(CategoryOutput{}, "ID", "CreatedAt")
			if diff := cmp.Diff(tt.want, got, opts); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUpdateCategory(t *testing.T) {
	stored := domain.NewCategory(domain.CategoryProps{Name: "Movie", Description: ptr("films")})

	tests := []struct {
		name     string
		input    UpdateCategoryInput
		found    *domain.Category
		want     CategoryOutput
		wantErrs []any
		wantErr  error
	}{
		{
			name:    "malformed id",
			input:   UpdateCategoryInput{ID: "not-a-uuid", Name: ptr("Series")},
			wantErr: domain.ErrMalformedIdentifier,
		},
		{
			name:    "missing category",
			input:   UpdateCategoryInput{ID: stored.ID.String(), Name: ptr("Series")},
			wantErr: domain.ErrRecordNotFound,
		},
		{
			name:     "blank name",
			input:    UpdateCategoryInput{ID: stored.ID.String(), Name: ptr("")},
			found:    stored,
			wantErrs: []any{fieldErrors("name", "name should not be empty")},
		},
		{
			name:     "whitespace name",
			input:    UpdateCategoryInput{ID: stored.ID.String(), Name: ptr("  ")},
			found:    stored,
			wantErrs: []any{fieldErrors("name", "name should not be empty")},
		},
		{
			name:  "changes only the given fields",
			input: UpdateCategoryInput{ID: stored.ID.String(), Name: ptr("Series"), IsActive: ptr(false)},
			found: stored,
			want: CategoryOutput{
				ID:          stored.ID.String(),
				Name:        "Series",
				Description: ptr("films"),
				IsActive:    false,
				CreatedAt:   stored.CreatedAt,
			},
		},
		{
			name:  "clears the description",
			input: UpdateCategoryInput{ID: stored.ID.String(), ClearDescription: true},
			found: stored,
			want: CategoryOutput{
				ID:        stored.ID.String(),
				Name:      "Movie",
				IsActive:  true,
				CreatedAt: stored.CreatedAt,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var updated *domain.Category
			repo := &mocks.MockCategoryRepo{
				FindByIDFunc: func(ctx context.Context, id domain.CategoryID) (*domain.Category, error) {
					if tt.found == nil {
						return nil, nil
					}
					return domain.NewCategory(domain.CategoryProps{
						ID:          tt.found.ID,
						Name:        tt.found.Name,
						Description: tt.found.Description,
						IsActive:    &tt.found.IsActive,
						CreatedAt:   tt.found.CreatedAt,
					}), nil
				},
				UpdateFunc: func(ctx context.Context, c *domain.Category) error {
					updated = c
					return nil
				},
			}
			app := newTestApplication(withCategoryRepo(repo))

			got, err := app.UpdateCategory(context.Background(), tt.input)

			switch {
			case tt.wantErrs != nil:
				checkValidationErrors(t, err, tt.wantErrs)
				return
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("got error %v, want %v", err, tt.wantErr)
				}
				return
			case err != nil:
				t.Fatalf("unexpected error: %v", err)
			}

			if updated == nil {
				t.Fatal("Update was not called")
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGetAndDeleteCategory(t *testing.T) {
	missing := domain.NewCategoryID()

	repo := &mocks.MockCategoryRepo{
		FindByIDFunc: func(ctx context.Context, id domain.CategoryID) (*domain.Category, error) {
			return nil, nil
		},
		DeleteFunc: func(ctx context.Context, id domain.CategoryID) error {
			return domain.NewNotFoundError(domain.CategoryEntityName, id.String())
		},
	}
	app := newTestApplication(withCategoryRepo(repo))

	_, err := app.GetCategory(context.Background(), missing.String())

	var notFound *domain.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("GetCategory() error = %v, want *NotFoundError", err)
	}
	if diff := cmp.Diff([]string{missing.String()}, notFound.IDs); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}

	if err := app.DeleteCategory(context.Background(), missing.String()); !errors.Is(err, domain.ErrRecordNotFound) {
		t.Errorf("DeleteCategory() error = %v, want not found", err)
	}

	if err := app.DeleteCategory(context.Background(), "42"); !errors.Is(err, domain.ErrMalformedIdentifier) {
		t.Errorf("DeleteCategory() error = %v, want malformed identifier", err)
	}
}

func TestListCategories(t *testing.T) {
	category := domain.NewCategory(domain.CategoryProps{Name: "Movie"})

	tests := []struct {
		name       string
		input      ListCategoriesInput
		wantParams domain.SearchParams[domain.CategoryFilter]
	}{
		{
			name:  "defaults",
			input: ListCategoriesInput{},
			wantParams: domain.SearchParams[domain.CategoryFilter]{
				Page:    1,
				PerPage: 15,
			},
		},
		{
			name:  "raw values are normalized",
			input: ListCategoriesInput{Page: "2", PerPage: -3, Sort: "name", SortDir: "DESC", Filter: "mov"},
			wantParams: domain.SearchParams[domain.CategoryFilter]{
				Page:    2,
				PerPage: 15,
				Sort:    ptr("name"),
				SortDir: ptr(domain.SortDesc),
				Filter:  &domain.CategoryFilter{Name: "mov"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mocks.MockCategoryRepo{
				SearchFunc: func(ctx context.Context, params domain.SearchParams[domain.CategoryFilter]) (domain.SearchResult[*domain.Category], error) {
					if diff := cmp.Diff(tt.wantParams, params); diff != "" {
						t.Errorf("params mismatch (-want +got):\n%s", diff)
					}
					return domain.NewSearchResult([]*domain.Category{category}, 16, params.Page, params.PerPage), nil
				},
			}
			app := newTestApplication(withCategoryRepo(repo))

			got, err := app.ListCategories(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			want := PaginationOutput[CategoryOutput]{
				Items:       []CategoryOutput{toCategoryOutput(category)},
				Total:       16,
				CurrentPage: tt.wantParams.Page,
				LastPage:    2,
				PerPage:     15,
			}

			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
