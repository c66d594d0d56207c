package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/metinatakli/catalog-admin/internal/domain"
	"github.com/metinatakli/catalog-admin/internal/mocks"
	"github.com/metinatakli/catalog-admin/internal/repository"
)

type genreTestEnv struct {
	app        *Application
	categories *repository.InMemoryCategoryRepository
	genres     *repository.InMemoryGenreRepository
	drama      *domain.Category
	action     *domain.Category
}

func newGenreTestEnv(t *testing.T) genreTestEnv {
	t.Helper()

	categories := repository.NewInMemoryCategoryRepository()
	genres := repository.NewInMemoryGenreRepository()
	categories.RestrictDeletesBy(genres)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	drama := domain.NewCategory(domain.CategoryProps{Name: "drama", CreatedAt: base})
	action := domain.NewCategory(domain.CategoryProps{Name: "action", CreatedAt: base.Add(time.Second)})

	if err := categories.BulkInsert(context.Background(), []*domain.Category{drama, action}); err != nil {
		t.Fatalf("seeding categories: %v", err)
	}

	app := New(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		Repositories{Categories: categories, CastMembers: repository.NewInMemoryCastMemberRepository(), Genres: genres},
		func() domain.UnitOfWork { return repository.NewInMemoryUnitOfWork(categories) },
	)

	return genreTestEnv{app: app, categories: categories, genres: genres, drama: drama, action: action}
}

func TestCreateGenre(t *testing.T) {
	env := newGenreTestEnv(t)
	missing := domain.NewCategoryID().String()

	tests := []struct {
		name     string
		input    CreateGenreInput
		wantErrs []any
	}{
		{
			name:     "no categories",
			input:    CreateGenreInput{Name: "Noir"},
			wantErrs: []any{fieldErrors("categories_id", "categories_id must contain at least 1 elements")},
		},
		{
			name:     "malformed category id",
			input:    CreateGenreInput{Name: "Noir", CategoriesID: []string{"nope"}},
			wantErrs: []any{fieldErrors("categories_id", "categories_id must be a UUID")},
		},
		{
			name:  "missing category",
			input: CreateGenreInput{Name: "Noir", CategoriesID: []string{env.drama.ID.String(), missing}},
			wantErrs: []any{fieldErrors("categories_id",
				"Category Not Found using ID "+missing,
			)},
		},
		{
			name:  "blank name and missing category",
			input: CreateGenreInput{Name: " ", CategoriesID: []string{missing}},
			wantErrs: []any{
				fieldErrors("name", "name should not be empty"),
				fieldErrors("categories_id", "Category Not Found using ID "+missing),
			},
		},
		{
			name:  "empty name and malformed category id",
			input: CreateGenreInput{CategoriesID: []string{"nope"}},
			wantErrs: []any{
				fieldErrors("name", "name should not be empty"),
				fieldErrors("categories_id", "categories_id must be a UUID"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.app.CreateGenre(context.Background(), tt.input)
			checkValidationErrors(t, err, tt.wantErrs)

			stored, err := env.genres.FindAll(context.Background())
			if err != nil {
				t.Fatalf("FindAll() error = %v", err)
			}
			if len(stored) != 0 {
				t.Errorf("stored %d genres after a failed create", len(stored))
			}
		})
	}
}

func TestCreateGenreListsCategoriesByName(t *testing.T) {
	env := newGenreTestEnv(t)

	got, err := env.app.CreateGenre(context.Background(), CreateGenreInput{
		Name:         "Noir",
		CategoriesID: []string{env.drama.ID.String(), env.action.ID.String(), env.drama.ID.String()},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantCategories := []GenreCategoryOutput{
		{ID: env.action.ID.String(), Name: "action", CreatedAt: env.action.CreatedAt},
		{ID: env.drama.ID.String(), Name: "drama", CreatedAt: env.drama.CreatedAt},
	}
	if diff := cmp.Diff(wantCategories, got.Categories); diff != "" {
		t.Errorf("categories mismatch (-want +got):\n%s", diff)
	}

	if len(got.CategoriesID) != 2 {
		t.Errorf("got %d category ids, want 2", len(got.CategoriesID))
	}

	if !got.IsActive {
		t.Error("a new genre should be active")
	}

	fetched, err := env.app.GetGenre(context.Background(), got.ID)
	if err != nil {
		t.Fatalf("GetGenre() error = %v", err)
	}
	if diff := cmp.Diff(got, fetched); diff != "" {
		t.Errorf("GetGenre() mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateGenre(t *testing.T) {
	env := newGenreTestEnv(t)
	ctx := context.Background()

	created, err := env.app.CreateGenre(ctx, CreateGenreInput{Name: "Noir", CategoriesID: []string{env.drama.ID.String()}})
	if err != nil {
		t.Fatalf("CreateGenre() error = %v", err)
	}

	t.Run("missing category leaves the genre untouched", func(t *testing.T) {
		missing := domain.NewCategoryID().String()

		_, err := env.app.UpdateGenre(ctx, UpdateGenreInput{
			ID:           created.ID,
			Name:         ptr("Neo-noir"),
			CategoriesID: []string{env.action.ID.String(), missing},
		})
		checkValidationErrors(t, err, []any{fieldErrors("categories_id", "Category Not Found using ID "+missing)})

		got, err := env.app.GetGenre(ctx, created.ID)
		if err != nil {
			t.Fatalf("GetGenre() error = %v", err)
		}
		if diff := cmp.Diff(created, got); diff != "" {
			t.Errorf("genre changed (-want +got):\n%s", diff)
		}
	})

	t.Run("blank name and missing category are reported together", func(t *testing.T) {
		missing := domain.NewCategoryID().String()

		_, err := env.app.UpdateGenre(ctx, UpdateGenreInput{
			ID:           created.ID,
			Name:         ptr(""),
			CategoriesID: []string{missing},
		})
		checkValidationErrors(t, err, []any{
			fieldErrors("name", "name should not be empty"),
			fieldErrors("categories_id", "Category Not Found using ID "+missing),
		})
	})

	t.Run("replaces the category set", func(t *testing.T) {
		got, err := env.app.UpdateGenre(ctx, UpdateGenreInput{
			ID:           created.ID,
			IsActive:     ptr(false),
			CategoriesID: []string{env.action.ID.String()},
		})
		if err != nil {
			t.Fatalf("UpdateGenre() error = %v", err)
		}

		want := GenreOutput{
			ID:           created.ID,
			Name:         "Noir",
			Categories:   []GenreCategoryOutput{{ID: env.action.ID.String(), Name: "action", CreatedAt: env.action.CreatedAt}},
			CategoriesID: []string{env.action.ID.String()},
			IsActive:     false,
			CreatedAt:    created.CreatedAt,
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("output mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("missing genre", func(t *testing.T) {
		_, err := env.app.UpdateGenre(ctx, UpdateGenreInput{ID: domain.NewGenreID().String(), Name: ptr("x")})
		if !errors.Is(err, domain.ErrRecordNotFound) {
			t.Errorf("got error %v, want not found", err)
		}
	})
}

func TestDeleteGenre(t *testing.T) {
	env := newGenreTestEnv(t)
	ctx := context.Background()

	created, err := env.app.CreateGenre(ctx, CreateGenreInput{Name: "Noir", CategoriesID: []string{env.drama.ID.String()}})
	if err != nil {
		t.Fatalf("CreateGenre() error = %v", err)
	}

	if err := env.app.DeleteGenre(ctx, created.ID); err != nil {
		t.Fatalf("DeleteGenre() error = %v", err)
	}

	if err := env.app.DeleteGenre(ctx, created.ID); !errors.Is(err, domain.ErrRecordNotFound) {
		t.Errorf("second DeleteGenre() error = %v, want not found", err)
	}

	if _, err := env.categories.FindByID(ctx, env.drama.ID); err != nil {
		t.Errorf("category lookup after genre delete: %v", err)
	}
}

func TestDeleteCategoryUsedByAGenre(t *testing.T) {
	env := newGenreTestEnv(t)
	ctx := context.Background()

	created, err := env.app.CreateGenre(ctx, CreateGenreInput{Name: "Noir", CategoriesID: []string{env.drama.ID.String()}})
	if err != nil {
		t.Fatalf("CreateGenre() error = %v", err)
	}

	if err := env.app.DeleteCategory(ctx, env.drama.ID.String()); !errors.Is(err, domain.ErrEntityInUse) {
		t.Fatalf("DeleteCategory() error = %v, want in use", err)
	}

	got, err := env.app.GetGenre(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetGenre() error = %v", err)
	}
	if diff := cmp.Diff(created, got); diff != "" {
		t.Errorf("genre changed (-want +got):\n%s", diff)
	}

	if err := env.app.DeleteCategory(ctx, env.action.ID.String()); err != nil {
		t.Errorf("DeleteCategory() of an unused category error = %v", err)
	}
}

func TestListGenres(t *testing.T) {
	env := newGenreTestEnv(t)
	ctx := context.Background()

	for _, in := range []CreateGenreInput{
		{Name: "Noir", CategoriesID: []string{env.drama.ID.String()}},
		{Name: "Heist", CategoriesID: []string{env.action.ID.String()}},
		{Name: "Thriller", CategoriesID: []string{env.action.ID.String(), env.drama.ID.String()}},
	} {
		if _, err := env.app.CreateGenre(ctx, in); err != nil {
			t.Fatalf("CreateGenre(%s) error = %v", in.Name, err)
		}
	}

	got, err := env.app.ListGenres(ctx, ListGenresInput{
		Sort:   "name",
		Filter: &ListGenresFilter{CategoriesID: []string{env.action.ID.String()}},
	})
	if err != nil {
		t.Fatalf("ListGenres() error = %v", err)
	}

	var names []string
	for _, g := range got.Items {
		names = append(names, g.Name)
	}

	if diff := cmp.Diff([]string{"Heist", "Thriller"}, names); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}

	if got.Total != 2 || got.LastPage != 1 || got.PerPage != 15 {
		t.Errorf("unexpected pagination: %+v", got)
	}

	if len(got.Items[1].Categories) != 2 {
		t.Errorf("Thriller lists %d categories, want 2", len(got.Items[1].Categories))
	}

	if _, err := env.app.ListGenres(ctx, ListGenresInput{Filter: &ListGenresFilter{CategoriesID: []string{"bad"}}}); !errors.Is(err, domain.ErrMalformedIdentifier) {
		t.Errorf("ListGenres() with a bad id error = %v, want malformed identifier", err)
	}
}

func TestGenreWritesRunInAUnitOfWork(t *testing.T) {
	errInsert := errors.New("insert failed")

	category := domain.NewCategory(domain.CategoryProps{Name: "drama"})
	uow := &mocks.MockUnitOfWork{}
	genres := &mocks.MockGenreRepo{
		InsertFunc: func(ctx context.Context, g *domain.Genre) error {
			return errInsert
		},
	}
	categories := &mocks.MockCategoryRepo{
		ExistsByIDFunc: func(ctx context.Context, ids []domain.CategoryID) (domain.ExistsResult[domain.CategoryID], error) {
			return domain.ExistsResult[domain.CategoryID]{Exists: ids, NotExists: []domain.CategoryID{}}, nil
		},
	}

	app := newTestApplication(
		withCategoryRepo(categories),
		withGenreRepo(genres),
		func(app *Application) {
			app.newUnitOfWork = func() domain.UnitOfWork { return uow }
		},
	)

	_, err := app.CreateGenre(context.Background(), CreateGenreInput{Name: "Noir", CategoriesID: []string{category.ID.String()}})
	if !errors.Is(err, errInsert) {
		t.Fatalf("got error %v, want %v", err, errInsert)
	}

	if len(genres.BoundTo) != 1 || genres.BoundTo[0] != domain.UnitOfWork(uow) {
		t.Errorf("repository bound to %v, want the unit of work", genres.BoundTo)
	}

	if uow.Rollbacks != 1 || uow.Commits != 0 {
		t.Errorf("got %d commits and %d rollbacks, want 0 and 1", uow.Commits, uow.Rollbacks)
	}
}
