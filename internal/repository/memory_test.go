package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/metinatakli/catalog-admin/internal/domain"
	"github.com/metinatakli/catalog-admin/internal/repository"
	"github.com/metinatakli/catalog-admin/internal/repository/conformance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestInMemoryCategoryRepository(t *testing.T) {
	suite.Run(t, &conformance.CategorySuite{
		NewRepository: func() domain.CategoryRepository {
			return repository.NewInMemoryCategoryRepository()
		},
	})
}

func TestInMemoryCastMemberRepository(t *testing.T) {
	suite.Run(t, &conformance.CastMemberSuite{
		NewRepository: func() domain.CastMemberRepository {
			return repository.NewInMemoryCastMemberRepository()
		},
	})
}

func TestInMemoryGenreRepository(t *testing.T) {
	suite.Run(t, &conformance.GenreSuite{
		NewFixture: func() conformance.GenreFixture {
			genres := repository.NewInMemoryGenreRepository()
			categories := repository.NewInMemoryCategoryRepository()
			categories.RestrictDeletesBy(genres)

			return conformance.GenreFixture{
				Genres:     genres,
				Categories: categories,
				UnitOfWork: repository.NewInMemoryUnitOfWork(),
			}
		},
	})
}

func TestInMemoryStoresAreIsolatedFromCallers(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewInMemoryCategoryRepository()

	category := domain.CreateCategory(domain.CategoryCreateCommand{Name: "Movie"})
	require.NoError(t, repo.Insert(ctx, category))

	category.ChangeName("changed outside")

	got, err := repo.FindByID(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Movie", got.Name)

	got.ChangeName("changed again")

	again, err := repo.FindByID(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Movie", again.Name)
}

func TestInMemoryBulkInsertIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewInMemoryCategoryRepository()

	existing := domain.CreateCategory(domain.CategoryCreateCommand{Name: "existing"})
	require.NoError(t, repo.Insert(ctx, existing))

	fresh := domain.CreateCategory(domain.CategoryCreateCommand{Name: "fresh"})
	err := repo.BulkInsert(ctx, []*domain.Category{fresh, existing})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestInMemoryUnitOfWorkRestoresEveryEnlistedStore(t *testing.T) {
	ctx := context.Background()
	categories := repository.NewInMemoryCategoryRepository()
	castMembers := repository.NewInMemoryCastMemberRepository()

	uow := repository.NewInMemoryUnitOfWork(categories)

	errFailed := errors.New("failed")

	err := uow.Do(ctx, func(ctx context.Context) error {
		// enlisted while active, so snapshotted now
		uow.Enlist(castMembers)

		if err := categories.Insert(ctx, domain.CreateCategory(domain.CategoryCreateCommand{Name: "a"})); err != nil {
			return err
		}

		member := domain.CreateCastMember(domain.CastMemberCreateCommand{Name: "b", Type: domain.ActorType()})
		if err := castMembers.Insert(ctx, member); err != nil {
			return err
		}

		return errFailed
	})
	require.ErrorIs(t, err, errFailed)
	assert.False(t, uow.InTransaction())

	assert.Empty(t, categories.Items())
	assert.Empty(t, castMembers.Items())
}

func TestInMemoryUnitOfWorkEnlistsOnce(t *testing.T) {
	ctx := context.Background()
	genres := repository.NewInMemoryGenreRepository()
	uow := repository.NewInMemoryUnitOfWork()

	genres.WithUnitOfWork(uow)
	genres.WithUnitOfWork(uow)

	require.NoError(t, uow.Start(ctx))

	genre := domain.CreateGenre(domain.GenreCreateCommand{
		Name:        "drama",
		CategoryIDs: []domain.CategoryID{domain.NewCategoryID()},
	})
	require.NoError(t, genres.Insert(ctx, genre))

	require.NoError(t, uow.Rollback(ctx))
	assert.Empty(t, genres.Items())
}
