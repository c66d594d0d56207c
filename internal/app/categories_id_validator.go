package app

import (
	"context"

	"github.com/metinatakli/catalog-admin/internal/domain"
	"github.com/metinatakli/catalog-admin/internal/either"
)

// CategoriesIDExistsValidator checks that a list of category ids all refer to
// stored categories.
type CategoriesIDExistsValidator struct {
	categoryRepo domain.CategoryRepository
}

func NewCategoriesIDExistsValidator(categoryRepo domain.CategoryRepository) *CategoriesIDExistsValidator {
	return &CategoriesIDExistsValidator{categoryRepo: categoryRepo}
}

// Validate returns the parsed ids, or one *domain.NotFoundError per missing
// category. The error result is reserved for malformed ids and storage
// failures.
func (v *CategoriesIDExistsValidator) Validate(ctx context.Context, ids []string) (either.Either[[]domain.CategoryID, []error], error) {
	categoryIDs := make([]domain.CategoryID, 0, len(ids))
	for _, id := range ids {
		categoryID, err := domain.ParseCategoryID(id)
		if err != nil {
			return either.Either[[]domain.CategoryID, []error]{}, err
		}
		categoryIDs = append(categoryIDs, categoryID)
	}

	result, err := v.categoryRepo.ExistsByID(ctx, categoryIDs)
	if err != nil {
		return either.Either[[]domain.CategoryID, []error]{}, err
	}

	if len(result.NotExists) > 0 {
		errs := make([]error, len(result.NotExists))
		for i, id := range result.NotExists {
			errs[i] = domain.NewNotFoundError(domain.CategoryEntityName, id.String())
		}

		return either.Fail[[]domain.CategoryID](errs), nil
	}

	return either.Ok[[]domain.CategoryID, []error](categoryIDs), nil
}
