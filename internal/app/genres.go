package app

import (
	"cmp"
	"context"
	"slices"

	"github.com/metinatakli/catalog-admin/internal/domain"
)

type CreateGenreInput struct {
	Name         string   `json:"name" validate:"notblank"`
	CategoriesID []string `json:"categories_id" validate:"min=1,dive,uuid"`
	IsActive     *bool    `json:"is_active"`
}

// UpdateGenreInput replaces the category set only when CategoriesID is not
// empty.
type UpdateGenreInput struct {
	ID           string   `json:"id"`
	Name         *string  `json:"name" validate:"omitnil,notblank"`
	CategoriesID []string `json:"categories_id" validate:"omitempty,dive,uuid"`
	IsActive     *bool    `json:"is_active"`
}

type ListGenresInput struct {
	Page    any
	PerPage any
	Sort    any
	SortDir any
	Filter  *ListGenresFilter
}

type ListGenresFilter struct {
	Name         string
	CategoriesID []string
}

func (app *Application) CreateGenre(ctx context.Context, input CreateGenreInput) (GenreOutput, error) {
	genre := domain.CreateGenre(domain.GenreCreateCommand{
		Name:     input.Name,
		IsActive: input.IsActive,
	})

	app.validateInput(genre.Notification(), input)

	if err := app.syncCategories(ctx, genre, input.CategoriesID); err != nil {
		return GenreOutput{}, err
	}

	if err := validationFailure(genre.Notification()); err != nil {
		return GenreOutput{}, err
	}

	uow := app.newUnitOfWork()
	repo := app.genreRepo.WithUnitOfWork(uow)

	err := uow.Do(ctx, func(ctx context.Context) error {
		return repo.Insert(ctx, genre)
	})
	if err != nil {
		return GenreOutput{}, err
	}

	return app.genreOutput(ctx, genre)
}

func (app *Application) UpdateGenre(ctx context.Context, input UpdateGenreInput) (GenreOutput, error) {
	genre, err := app.findGenre(ctx, input.ID)
	if err != nil {
		return GenreOutput{}, err
	}

	if input.Name != nil {
		genre.ChangeName(*input.Name)
	}

	app.validateInput(genre.Notification(), input)

	if input.IsActive != nil {
		if *input.IsActive {
			genre.Activate()
		} else {
			genre.Deactivate()
		}
	}

	if len(input.CategoriesID) > 0 {
		if err := app.syncCategories(ctx, genre, input.CategoriesID); err != nil {
			return GenreOutput{}, err
		}
	}

	if err := validationFailure(genre.Notification()); err != nil {
		return GenreOutput{}, err
	}

	uow := app.newUnitOfWork()
	repo := app.genreRepo.WithUnitOfWork(uow)

	err = uow.Do(ctx, func(ctx context.Context) error {
		return repo.Update(ctx, genre)
	})
	if err != nil {
		app.logger.Error("failed to update genre", "genre_id", genre.ID.String(), "error", err)
		return GenreOutput{}, err
	}

	return app.genreOutput(ctx, genre)
}

func (app *Application) GetGenre(ctx context.Context, id string) (GenreOutput, error) {
	genre, err := app.findGenre(ctx, id)
	if err != nil {
		return GenreOutput{}, err
	}

	return app.genreOutput(ctx, genre)
}

func (app *Application) DeleteGenre(ctx context.Context, id string) error {
	genreID, err := domain.ParseGenreID(id)
	if err != nil {
		return err
	}

	uow := app.newUnitOfWork()
	repo := app.genreRepo.WithUnitOfWork(uow)

	return uow.Do(ctx, func(ctx context.Context) error {
		return repo.Delete(ctx, genreID)
	})
}

func (app *Application) ListGenres(ctx context.Context, input ListGenresInput) (PaginationOutput[GenreOutput], error) {
	var filter *domain.GenreFilter

	if input.Filter != nil {
		filter = &domain.GenreFilter{Name: input.Filter.Name}

		for _, raw := range input.Filter.CategoriesID {
			id, err := domain.ParseCategoryID(raw)
			if err != nil {
				return PaginationOutput[GenreOutput]{}, err
			}
			filter.CategoryIDs = append(filter.CategoryIDs, id)
		}
	}

	params := domain.NewGenreSearchParams(domain.SearchInput[domain.GenreFilter]{
		Page:    input.Page,
		PerPage: input.PerPage,
		Sort:    input.Sort,
		SortDir: input.SortDir,
		Filter:  filter,
	})

	result, err := app.genreRepo.Search(ctx, params)
	if err != nil {
		return PaginationOutput[GenreOutput]{}, err
	}

	var ids []domain.CategoryID
	for _, genre := range result.Items {
		for _, id := range genre.CategoryIDList() {
			if !slices.ContainsFunc(ids, id.Equals) {
				ids = append(ids, id)
			}
		}
	}

	categories, err := app.categoriesByID(ctx, ids)
	if err != nil {
		return PaginationOutput[GenreOutput]{}, err
	}

	return toPaginationOutput(result, func(g *domain.Genre) GenreOutput {
		return toGenreOutput(g, categories)
	}), nil
}

// syncCategories replaces the genre's categories when every id exists, and
// records one categories_id message per missing category otherwise. Ids that
// already failed their input rules are not looked up.
func (app *Application) syncCategories(ctx context.Context, genre *domain.Genre, ids []string) error {
	if len(genre.Notification().FieldErrors("categories_id")) > 0 {
		return nil
	}

	result, err := app.categoriesIDValidator.Validate(ctx, ids)
	if err != nil {
		return err
	}

	categoryIDs, notFound := result.AsArray()

	if result.IsOk() {
		genre.SyncCategoryIDs(categoryIDs)
		return nil
	}

	messages := make([]string, len(notFound))
	for i, err := range notFound {
		messages[i] = err.Error()
	}
	genre.Notification().SetFieldError("categories_id", messages...)

	return nil
}

func (app *Application) findGenre(ctx context.Context, id string) (*domain.Genre, error) {
	genreID, err := domain.ParseGenreID(id)
	if err != nil {
		return nil, err
	}

	genre, err := app.genreRepo.FindByID(ctx, genreID)
	if err != nil {
		return nil, err
	}

	if genre == nil {
		return nil, domain.NewNotFoundError(domain.GenreEntityName, id)
	}

	return genre, nil
}

func (app *Application) genreOutput(ctx context.Context, genre *domain.Genre) (GenreOutput, error) {
	categories, err := app.categoriesByID(ctx, genre.CategoryIDList())
	if err != nil {
		return GenreOutput{}, err
	}

	return toGenreOutput(genre, categories), nil
}

func (app *Application) categoriesByID(ctx context.Context, ids []domain.CategoryID) (map[string]*domain.Category, error) {
	categories := make(map[string]*domain.Category, len(ids))
	if len(ids) == 0 {
		return categories, nil
	}

	found, err := app.categoryRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, c := range found {
		categories[c.ID.String()] = c
	}

	return categories, nil
}

func sortGenreCategories(categories []GenreCategoryOutput) {
	slices.SortFunc(categories, func(a, b GenreCategoryOutput) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
}
