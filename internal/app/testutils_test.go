package app

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/metinatakli/catalog-admin/internal/domain"
	"github.com/metinatakli/catalog-admin/internal/mocks"
	"github.com/metinatakli/catalog-admin/internal/validator"
)

func newTestApplication(opts ...func(*Application)) *Application {
	categoryRepo := &mocks.MockCategoryRepo{}

	app := &Application{
		logger:                slog.New(slog.NewTextHandler(io.Discard, nil)),
		validator:             validator.NewValidator(),
		categoryRepo:          categoryRepo,
		castMemberRepo:        &mocks.MockCastMemberRepo{},
		genreRepo:             &mocks.MockGenreRepo{},
		newUnitOfWork:         func() domain.UnitOfWork { return &mocks.MockUnitOfWork{} },
		categoriesIDValidator: NewCategoriesIDExistsValidator(categoryRepo),
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

func withCategoryRepo(repo domain.CategoryRepository) func(*Application) {
	return func(app *Application) {
		app.categoryRepo = repo
		app.categoriesIDValidator = NewCategoriesIDExistsValidator(repo)
	}
}

func withCastMemberRepo(repo domain.CastMemberRepository) func(*Application) {
	return func(app *Application) {
		app.castMemberRepo = repo
	}
}

func withGenreRepo(repo domain.GenreRepository) func(*Application) {
	return func(app *Application) {
		app.genreRepo = repo
	}
}

// checkValidationErrors fails unless err is an *EntityValidationError holding
// exactly want.
func checkValidationErrors(t *testing.T, err error, want []any) {
	t.Helper()

	var validationErr *domain.EntityValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected *domain.EntityValidationError, got %T (%v)", err, err)
	}

	if diff := cmp.Diff(want, validationErr.Errors); diff != "" {
		t.Errorf("validation errors mismatch (-want +got):\n%s", diff)
	}
}

func fieldErrors(field string, messages ...string) map[string][]string {
	return map[string][]string{field: messages}
}

func ptr[T any](v T) *T {
	return &v
}
