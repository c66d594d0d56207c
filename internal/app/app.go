package app

import (
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/catalog-admin/internal/domain"
	appvalidator "github.com/metinatakli/catalog-admin/internal/validator"
)

// Application holds the catalog use cases. Each write flow that spans more
// than one statement gets a fresh unit of work from newUnitOfWork.
type Application struct {
	logger    *slog.Logger
	validator *validator.Validate

	categoryRepo   domain.CategoryRepository
	castMemberRepo domain.CastMemberRepository
	genreRepo      domain.GenreRepository

	newUnitOfWork         func() domain.UnitOfWork
	categoriesIDValidator *CategoriesIDExistsValidator
}

type Repositories struct {
	Categories  domain.CategoryRepository
	CastMembers domain.CastMemberRepository
	Genres      domain.GenreRepository
}

func New(logger *slog.Logger, repos Repositories, newUnitOfWork func() domain.UnitOfWork) *Application {
	return &Application{
		logger:                logger,
		validator:             appvalidator.NewValidator(),
		categoryRepo:          repos.Categories,
		castMemberRepo:        repos.CastMembers,
		genreRepo:             repos.Genres,
		newUnitOfWork:         newUnitOfWork,
		categoriesIDValidator: NewCategoriesIDExistsValidator(repos.Categories),
	}
}
