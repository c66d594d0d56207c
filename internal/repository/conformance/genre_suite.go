package conformance

import (
	"context"
	"errors"
	"time"

	"github.com/metinatakli/catalog-admin/internal/domain"
	"github.com/stretchr/testify/suite"
)

// GenreFixture is a set of empty repositories sharing one store, plus a unit
// of work the genre repository can be bound to.
type GenreFixture struct {
	Genres     domain.GenreRepository
	Categories domain.CategoryRepository
	UnitOfWork domain.UnitOfWork
}

type GenreSuite struct {
	suite.Suite

	NewFixture func() GenreFixture

	fx         GenreFixture
	ctx        context.Context
	categories []*domain.Category
}

func (s *GenreSuite) SetupTest() {
	s.ctx = context.Background()
	s.fx = s.NewFixture()

	start := baseTime()
	s.categories = []*domain.Category{
		domain.NewCategory(domain.CategoryProps{Name: "movie", CreatedAt: start}),
		domain.NewCategory(domain.CategoryProps{Name: "series", CreatedAt: start.Add(time.Second)}),
		domain.NewCategory(domain.CategoryProps{Name: "short", CreatedAt: start.Add(2 * time.Second)}),
	}
	s.Require().NoError(s.fx.Categories.BulkInsert(s.ctx, s.categories))
}

func (s *GenreSuite) categoryIDs(indexes ...int) []domain.CategoryID {
	ids := make([]domain.CategoryID, len(indexes))
	for i, idx := range indexes {
		ids[i] = s.categories[idx].ID
	}

	return ids
}

func (s *GenreSuite) newGenre(name string, createdAt time.Time, categories ...int) *domain.Genre {
	return domain.NewGenre(domain.GenreProps{
		Name:        name,
		CategoryIDs: s.categoryIDs(categories...),
		CreatedAt:   createdAt,
	})
}

func genreNames(genres []*domain.Genre) []string {
	return pluck(genres, func(g *domain.Genre) string { return g.Name })
}

func categoryIDStrings(ids []domain.CategoryID) []string {
	return pluck(ids, func(id domain.CategoryID) string { return id.String() })
}

func (s *GenreSuite) requireCategories(id domain.GenreID, want []domain.CategoryID) {
	got, err := s.fx.Genres.FindByID(s.ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.ElementsMatch(categoryIDStrings(want), categoryIDStrings(got.CategoryIDList()))
}

func (s *GenreSuite) TestInsertAndFindByID() {
	genre := s.newGenre("drama", baseTime(), 0, 1)
	genre.Deactivate()

	s.Require().NoError(s.fx.Genres.Insert(s.ctx, genre))

	got, err := s.fx.Genres.FindByID(s.ctx, genre.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got)

	s.True(genre.Equals(got))
	s.Equal("drama", got.Name)
	s.False(got.IsActive)
	s.True(genre.CreatedAt.Equal(got.CreatedAt))
	s.ElementsMatch(categoryIDStrings(genre.CategoryIDList()), categoryIDStrings(got.CategoryIDList()))
}

func (s *GenreSuite) TestFindAll() {
	start := baseTime()
	s.Require().NoError(s.fx.Genres.BulkInsert(s.ctx, []*domain.Genre{
		s.newGenre("b", start, 0),
		s.newGenre("a", start.Add(time.Second), 1, 2),
	}))

	got, err := s.fx.Genres.FindAll(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"b", "a"}, genreNames(got))
	s.Len(got[1].CategoryIDs, 2)
}

func (s *GenreSuite) TestUpdateReplacesCategories() {
	genre := s.newGenre("drama", baseTime(), 0, 1)
	s.Require().NoError(s.fx.Genres.Insert(s.ctx, genre))

	genre.ChangeName("thriller")
	genre.SyncCategoryIDs(s.categoryIDs(2))
	s.Require().NoError(s.fx.Genres.Update(s.ctx, genre))

	got, err := s.fx.Genres.FindByID(s.ctx, genre.ID)
	s.Require().NoError(err)
	s.Equal("thriller", got.Name)
	s.requireCategories(genre.ID, s.categoryIDs(2))
}

func (s *GenreSuite) TestUpdateAndDeleteMissing() {
	genre := s.newGenre("ghost", baseTime(), 0)

	var notFound *domain.NotFoundError

	s.Require().ErrorAs(s.fx.Genres.Update(s.ctx, genre), &notFound)
	s.Equal(domain.GenreEntityName, notFound.EntityName)
	s.Equal([]string{genre.ID.String()}, notFound.IDs)

	s.Require().ErrorAs(s.fx.Genres.Delete(s.ctx, genre.ID), &notFound)
	s.Equal(domain.GenreEntityName, notFound.EntityName)
}

func (s *GenreSuite) TestDelete() {
	genre := s.newGenre("drama", baseTime(), 0)
	s.Require().NoError(s.fx.Genres.Insert(s.ctx, genre))

	s.Require().NoError(s.fx.Genres.Delete(s.ctx, genre.ID))

	got, err := s.fx.Genres.FindByID(s.ctx, genre.ID)
	s.Require().NoError(err)
	s.Nil(got)
}

func (s *GenreSuite) TestSearch() {
	start := baseTime()
	s.Require().NoError(s.fx.Genres.BulkInsert(s.ctx, []*domain.Genre{
		s.newGenre("test", start, 0),
		s.newGenre("a", start.Add(1*time.Second), 1),
		s.newGenre("TEST", start.Add(2*time.Second), 1, 2),
		s.newGenre("e", start.Add(3*time.Second), 0, 2),
		s.newGenre("TeSt", start.Add(4*time.Second), 2),
	}))

	tests := []struct {
		name     string
		input    domain.SearchInput[domain.GenreFilter]
		want     []string
		total    int
		lastPage int
	}{
		{
			name: "name filter sorted by name",
			input: domain.SearchInput[domain.GenreFilter]{
				PerPage: 2,
				Sort:    "name",
				Filter:  &domain.GenreFilter{Name: "TEST"},
			},
			want:     []string{"TEST", "TeSt"},
			total:    3,
			lastPage: 2,
		},
		{
			name: "category filter matches any category",
			input: domain.SearchInput[domain.GenreFilter]{
				Filter: &domain.GenreFilter{CategoryIDs: s.categoryIDs(0, 1)},
			},
			want:     []string{"e", "TEST", "a", "test"},
			total:    4,
			lastPage: 1,
		},
		{
			name: "name and category filters combine",
			input: domain.SearchInput[domain.GenreFilter]{
				Sort:    "name",
				SortDir: "desc",
				Filter:  &domain.GenreFilter{Name: "test", CategoryIDs: s.categoryIDs(2)},
			},
			want:     []string{"TeSt", "TEST"},
			total:    2,
			lastPage: 1,
		},
		{
			name: "second page of everything",
			input: domain.SearchInput[domain.GenreFilter]{
				Page:    2,
				PerPage: 3,
			},
			want:     []string{"a", "test"},
			total:    5,
			lastPage: 2,
		},
	}

	for _, tt := range tests {
		result, err := s.fx.Genres.Search(s.ctx, domain.NewGenreSearchParams(tt.input))
		s.Require().NoError(err, tt.name)

		s.Equal(tt.want, genreNames(result.Items), tt.name)
		s.Equal(tt.total, result.Total, tt.name)
		s.Equal(tt.lastPage, result.LastPage, tt.name)
	}
}

func (s *GenreSuite) TestSearchKeepsAllCategoriesOfMatches() {
	genre := s.newGenre("drama", baseTime(), 0, 1, 2)
	s.Require().NoError(s.fx.Genres.Insert(s.ctx, genre))

	result, err := s.fx.Genres.Search(s.ctx, domain.NewGenreSearchParams(domain.SearchInput[domain.GenreFilter]{
		Filter: &domain.GenreFilter{CategoryIDs: s.categoryIDs(1)},
	}))
	s.Require().NoError(err)
	s.Require().Len(result.Items, 1)
	s.Len(result.Items[0].CategoryIDs, 3)
}

func (s *GenreSuite) TestRollbackHidesWork() {
	genre := s.newGenre("drama", baseTime(), 0)

	s.Require().NoError(s.fx.UnitOfWork.Start(s.ctx))

	repo := s.fx.Genres.WithUnitOfWork(s.fx.UnitOfWork)
	s.Require().NoError(repo.Insert(s.ctx, genre))

	s.Require().NoError(s.fx.UnitOfWork.Rollback(s.ctx))

	got, err := s.fx.Genres.FindByID(s.ctx, genre.ID)
	s.Require().NoError(err)
	s.Nil(got)

	all, err := s.fx.Genres.FindAll(s.ctx)
	s.Require().NoError(err)
	s.Empty(all)
}

func (s *GenreSuite) TestCommitPublishesWork() {
	genre := s.newGenre("drama", baseTime(), 0)

	s.Require().NoError(s.fx.UnitOfWork.Start(s.ctx))

	repo := s.fx.Genres.WithUnitOfWork(s.fx.UnitOfWork)
	s.Require().NoError(repo.Insert(s.ctx, genre))

	s.Require().NoError(s.fx.UnitOfWork.Commit(s.ctx))

	got, err := s.fx.Genres.FindByID(s.ctx, genre.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal("drama", got.Name)
}

func (s *GenreSuite) TestFailedReplacementLeavesCategoriesUntouched() {
	genre := s.newGenre("drama", baseTime(), 0, 1)
	s.Require().NoError(s.fx.Genres.Insert(s.ctx, genre))

	errBoom := errors.New("boom")
	repo := s.fx.Genres.WithUnitOfWork(s.fx.UnitOfWork)

	err := s.fx.UnitOfWork.Do(s.ctx, func(ctx context.Context) error {
		genre.SyncCategoryIDs(s.categoryIDs(2))
		genre.ChangeName("thriller")

		if err := repo.Update(ctx, genre); err != nil {
			return err
		}

		return errBoom
	})
	s.Require().ErrorIs(err, errBoom)

	got, err := s.fx.Genres.FindByID(s.ctx, genre.ID)
	s.Require().NoError(err)
	s.Equal("drama", got.Name)
	s.requireCategories(genre.ID, s.categoryIDs(0, 1))
}

func (s *GenreSuite) TestDoCommits() {
	genre := s.newGenre("drama", baseTime(), 0)
	repo := s.fx.Genres.WithUnitOfWork(s.fx.UnitOfWork)

	err := s.fx.UnitOfWork.Do(s.ctx, func(ctx context.Context) error {
		return repo.Insert(ctx, genre)
	})
	s.Require().NoError(err)

	s.requireCategories(genre.ID, s.categoryIDs(0))
}

func (s *GenreSuite) TestDoRollsBackOnPanic() {
	genre := s.newGenre("drama", baseTime(), 0)
	repo := s.fx.Genres.WithUnitOfWork(s.fx.UnitOfWork)

	s.PanicsWithValue("boom", func() {
		_ = s.fx.UnitOfWork.Do(s.ctx, func(ctx context.Context) error {
			if err := repo.Insert(ctx, genre); err != nil {
				return err
			}
			panic("boom")
		})
	})

	got, err := s.fx.Genres.FindByID(s.ctx, genre.ID)
	s.Require().NoError(err)
	s.Nil(got)

	// the unit of work is idle again and can be reused
	s.Require().NoError(s.fx.UnitOfWork.Start(s.ctx))
	s.Require().NoError(s.fx.UnitOfWork.Rollback(s.ctx))
}

func (s *GenreSuite) TestUnitOfWorkStateErrors() {
	uow := s.fx.UnitOfWork

	s.ErrorIs(uow.Commit(s.ctx), domain.ErrInvalidUnitOfWorkState)
	s.ErrorIs(uow.Rollback(s.ctx), domain.ErrInvalidUnitOfWorkState)

	s.Require().NoError(uow.Start(s.ctx))
	s.ErrorIs(uow.Start(s.ctx), domain.ErrInvalidUnitOfWorkState)
	s.Require().NoError(uow.Rollback(s.ctx))

	err := uow.Do(s.ctx, func(ctx context.Context) error {
		return uow.Start(ctx)
	})
	s.ErrorIs(err, domain.ErrInvalidUnitOfWorkState)
}

func (s *GenreSuite) TestDeletingAReferencedCategoryFails() {
	only := s.newGenre("only movie", baseTime(), 0)
	shared := s.newGenre("movie and series", baseTime().Add(time.Second), 0, 1)
	s.Require().NoError(s.fx.Genres.BulkInsert(s.ctx, []*domain.Genre{only, shared}))

	err := s.fx.Categories.Delete(s.ctx, s.categories[0].ID)

	var inUse *domain.InUseError
	s.Require().ErrorAs(err, &inUse)
	s.True(errors.Is(err, domain.ErrEntityInUse))
	s.Equal(domain.CategoryEntityName, inUse.EntityName)
	s.Equal(s.categories[0].ID.String(), inUse.ID)

	s.requireCategories(only.ID, s.categoryIDs(0))
	s.requireCategories(shared.ID, s.categoryIDs(0, 1))

	all, err := s.fx.Genres.FindAll(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 2)

	s.Require().NoError(s.fx.Genres.Delete(s.ctx, only.ID))
	s.Require().NoError(s.fx.Genres.Delete(s.ctx, shared.ID))
	s.Require().NoError(s.fx.Categories.Delete(s.ctx, s.categories[0].ID))

	var notFound *domain.NotFoundError
	s.ErrorAs(s.fx.Categories.Delete(s.ctx, s.categories[0].ID), &notFound)
}

func (s *GenreSuite) TestDeletingAnUnreferencedCategory() {
	genre := s.newGenre("movie", baseTime(), 0)
	s.Require().NoError(s.fx.Genres.Insert(s.ctx, genre))

	s.Require().NoError(s.fx.Categories.Delete(s.ctx, s.categories[2].ID))
	s.requireCategories(genre.ID, s.categoryIDs(0))
}
