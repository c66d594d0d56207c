package app

import (
	"context"

	"github.com/metinatakli/catalog-admin/internal/domain"
)

type CreateCategoryInput struct {
	Name        string  `json:"name" validate:"notblank"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// UpdateCategoryInput changes only the fields that are set. ClearDescription
// removes the description.
type UpdateCategoryInput struct {
	ID               string  `json:"id"`
	Name             *string `json:"name" validate:"omitnil,notblank"`
	Description      *string `json:"description"`
	ClearDescription bool    `json:"-"`
	IsActive         *bool   `json:"is_active"`
}

type ListCategoriesInput struct {
	Page    any
	PerPage any
	Sort    any
	SortDir any
	Filter  string
}

func (app *Application) CreateCategory(ctx context.Context, input CreateCategoryInput) (CategoryOutput, error) {
	category := domain.CreateCategory(domain.CategoryCreateCommand{
		Name:        input.Name,
		Description: input.Description,
		IsActive:    input.IsActive,
	})

	app.validateInput(category.Notification(), input)

	if err := validationFailure(category.Notification()); err != nil {
		return CategoryOutput{}, err
	}

	if err := app.categoryRepo.Insert(ctx, category); err != nil {
		return CategoryOutput{}, err
	}

	return toCategoryOutput(category), nil
}

func (app *Application) UpdateCategory(ctx context.Context, input UpdateCategoryInput) (CategoryOutput, error) {
	category, err := app.findCategory(ctx, input.ID)
	if err != nil {
		return CategoryOutput{}, err
	}

	if input.Name != nil {
		category.ChangeName(*input.Name)
	}

	app.validateInput(category.Notification(), input)

	if input.ClearDescription {
		category.ChangeDescription(nil)
	} else if input.Description != nil {
		category.ChangeDescription(input.Description)
	}

	if input.IsActive != nil {
		if *input.IsActive {
			category.Activate()
		} else {
			category.Deactivate()
		}
	}

	if err := validationFailure(category.Notification()); err != nil {
		return CategoryOutput{}, err
	}

	if err := app.categoryRepo.Update(ctx, category); err != nil {
		return CategoryOutput{}, err
	}

	return toCategoryOutput(category), nil
}

func (app *Application) GetCategory(ctx context.Context, id string) (CategoryOutput, error) {
	category, err := app.findCategory(ctx, id)
	if err != nil {
		return CategoryOutput{}, err
	}

	return toCategoryOutput(category), nil
}

func (app *Application) DeleteCategory(ctx context.Context, id string) error {
	categoryID, err := domain.ParseCategoryID(id)
	if err != nil {
		return err
	}

	return app.categoryRepo.Delete(ctx, categoryID)
}

func (app *Application) ListCategories(ctx context.Context, input ListCategoriesInput) (PaginationOutput[CategoryOutput], error) {
	params := domain.NewCategorySearchParams(domain.SearchInput[domain.CategoryFilter]{
		Page:    input.Page,
		PerPage: input.PerPage,
		Sort:    input.Sort,
		SortDir: input.SortDir,
		Filter:  &domain.CategoryFilter{Name: input.Filter},
	})

	result, err := app.categoryRepo.Search(ctx, params)
	if err != nil {
		return PaginationOutput[CategoryOutput]{}, err
	}

	return toPaginationOutput(result, toCategoryOutput), nil
}

// findCategory parses id and loads the category, returning a *NotFoundError
// when there is none.
func (app *Application) findCategory(ctx context.Context, id string) (*domain.Category, error) {
	categoryID, err := domain.ParseCategoryID(id)
	if err != nil {
		return nil, err
	}

	category, err := app.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	if category == nil {
		return nil, domain.NewNotFoundError(domain.CategoryEntityName, id)
	}

	return category, nil
}
