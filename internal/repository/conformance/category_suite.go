package conformance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/metinatakli/catalog-admin/internal/domain"
	"github.com/stretchr/testify/suite"
)

type CategorySuite struct {
	suite.Suite

	// NewRepository returns an empty repository.
	NewRepository func() domain.CategoryRepository

	repo domain.CategoryRepository
	ctx  context.Context
}

func (s *CategorySuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = s.NewRepository()
}

func (s *CategorySuite) newCategory(name string, createdAt time.Time) *domain.Category {
	return domain.NewCategory(domain.CategoryProps{
		Name:      name,
		CreatedAt: createdAt,
	})
}

// seed inserts one category per name, each a second newer than the last.
func (s *CategorySuite) seed(names ...string) []*domain.Category {
	start := baseTime()

	categories := make([]*domain.Category, len(names))
	for i, name := range names {
		categories[i] = s.newCategory(name, start.Add(time.Duration(i)*time.Second))
	}

	s.Require().NoError(s.repo.BulkInsert(s.ctx, categories))

	return categories
}

func categoryNames(categories []*domain.Category) []string {
	return pluck(categories, func(c *domain.Category) string { return c.Name })
}

func (s *CategorySuite) TestInsertAndFindByID() {
	category := domain.NewCategory(domain.CategoryProps{
		Name:        "Movie",
		Description: ptr("some description"),
		IsActive:    ptr(false),
		CreatedAt:   baseTime(),
	})

	s.Require().NoError(s.repo.Insert(s.ctx, category))

	got, err := s.repo.FindByID(s.ctx, category.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got)

	s.True(category.Equals(got))
	s.Equal("Movie", got.Name)
	s.Equal("some description", *got.Description)
	s.False(got.IsActive)
	s.True(category.CreatedAt.Equal(got.CreatedAt))
}

func (s *CategorySuite) TestInsertDuplicate() {
	category := s.newCategory("Movie", baseTime())
	s.Require().NoError(s.repo.Insert(s.ctx, category))

	err := s.repo.Insert(s.ctx, category)
	s.ErrorIs(err, domain.ErrAlreadyExists)
}

func (s *CategorySuite) TestFindByIDMissing() {
	got, err := s.repo.FindByID(s.ctx, domain.NewCategoryID())
	s.NoError(err)
	s.Nil(got)
}

func (s *CategorySuite) TestFindAllKeepsInsertionOrder() {
	s.seed("c", "a", "b")

	got, err := s.repo.FindAll(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"c", "a", "b"}, categoryNames(got))
}

func (s *CategorySuite) TestUpdate() {
	category := s.seed("Movie")[0]

	category.ChangeName("Documentary")
	category.ChangeDescription(nil)
	category.Deactivate()
	s.Require().NoError(s.repo.Update(s.ctx, category))

	got, err := s.repo.FindByID(s.ctx, category.ID)
	s.Require().NoError(err)
	s.Equal("Documentary", got.Name)
	s.Nil(got.Description)
	s.False(got.IsActive)
}

func (s *CategorySuite) TestUpdateMissing() {
	category := s.newCategory("Movie", baseTime())

	err := s.repo.Update(s.ctx, category)

	var notFound *domain.NotFoundError
	s.Require().ErrorAs(err, &notFound)
	s.Equal([]string{category.ID.String()}, notFound.IDs)
	s.Equal(domain.CategoryEntityName, notFound.EntityName)
	s.True(errors.Is(err, domain.ErrRecordNotFound))
}

func (s *CategorySuite) TestDelete() {
	categories := s.seed("a", "b")

	s.Require().NoError(s.repo.Delete(s.ctx, categories[0].ID))

	got, err := s.repo.FindByID(s.ctx, categories[0].ID)
	s.Require().NoError(err)
	s.Nil(got)

	all, err := s.repo.FindAll(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"b"}, categoryNames(all))
}

func (s *CategorySuite) TestDeleteMissing() {
	id := domain.NewCategoryID()

	err := s.repo.Delete(s.ctx, id)

	var notFound *domain.NotFoundError
	s.Require().ErrorAs(err, &notFound)
	s.Equal(fmt.Sprintf("Category Not Found using ID %s", id), err.Error())
}

func (s *CategorySuite) TestFindByIDsAndExistsByID() {
	categories := s.seed("a", "b", "c")
	missing := domain.NewCategoryID()

	found, err := s.repo.FindByIDs(s.ctx, []domain.CategoryID{categories[2].ID, missing, categories[0].ID})
	s.Require().NoError(err)
	s.ElementsMatch([]string{"a", "c"}, categoryNames(found))

	exists, err := s.repo.ExistsByID(s.ctx, []domain.CategoryID{categories[2].ID, missing, categories[0].ID})
	s.Require().NoError(err)
	s.Equal([]domain.CategoryID{categories[2].ID, categories[0].ID}, exists.Exists)
	s.Equal([]domain.CategoryID{missing}, exists.NotExists)
}

func (s *CategorySuite) TestSearchFilterSortPaginate() {
	s.seed("test", "a", "TEST", "e", "TeSt")

	tests := []struct {
		page    int
		perPage int
		want    []string
	}{
		{page: 1, perPage: 2, want: []string{"TEST", "TeSt"}},
		{page: 2, perPage: 2, want: []string{"test"}},
	}

	for _, tt := range tests {
		params := domain.NewCategorySearchParams(domain.SearchInput[domain.CategoryFilter]{
			Page:    tt.page,
			PerPage: tt.perPage,
			Sort:    "name",
			SortDir: "asc",
			Filter:  &domain.CategoryFilter{Name: "TEST"},
		})

		result, err := s.repo.Search(s.ctx, params)
		s.Require().NoError(err)

		s.Equal(tt.want, categoryNames(result.Items))
		s.Equal(3, result.Total)
		s.Equal(tt.page, result.CurrentPage)
		s.Equal(tt.perPage, result.PerPage)
		s.Equal(2, result.LastPage)
	}
}

func (s *CategorySuite) TestSearchDefaultOrderIsNewestFirst() {
	s.seed("first", "second", "third")

	result, err := s.repo.Search(s.ctx, domain.NewCategorySearchParams(domain.SearchInput[domain.CategoryFilter]{}))
	s.Require().NoError(err)

	s.Equal([]string{"third", "second", "first"}, categoryNames(result.Items))
	s.Equal(3, result.Total)
	s.Equal(1, result.LastPage)
}

func (s *CategorySuite) TestSearchUnknownSortFieldFallsBack() {
	s.seed("b", "a", "c")

	result, err := s.repo.Search(s.ctx, domain.NewCategorySearchParams(domain.SearchInput[domain.CategoryFilter]{
		Sort:    "description",
		SortDir: "asc",
	}))
	s.Require().NoError(err)

	s.Equal([]string{"c", "a", "b"}, categoryNames(result.Items))
}

func (s *CategorySuite) TestSearchSortsNamesByByteOrder() {
	s.seed("b", "B", "a", "A", "_z")

	asc, err := s.repo.Search(s.ctx, domain.NewCategorySearchParams(domain.SearchInput[domain.CategoryFilter]{
		Sort: "name",
	}))
	s.Require().NoError(err)
	s.Equal([]string{"A", "B", "_z", "a", "b"}, categoryNames(asc.Items))

	desc, err := s.repo.Search(s.ctx, domain.NewCategorySearchParams(domain.SearchInput[domain.CategoryFilter]{
		Sort:    "name",
		SortDir: "DESC",
	}))
	s.Require().NoError(err)
	s.Equal([]string{"b", "a", "_z", "B", "A"}, categoryNames(desc.Items))
}

func (s *CategorySuite) TestSearchStableSort() {
	same := baseTime()
	categories := []*domain.Category{
		s.newCategory("x", same),
		s.newCategory("x", same),
		s.newCategory("a", same),
		s.newCategory("x", same),
	}
	s.Require().NoError(s.repo.BulkInsert(s.ctx, categories))

	byName, err := s.repo.Search(s.ctx, domain.NewCategorySearchParams(domain.SearchInput[domain.CategoryFilter]{
		Sort: "name",
	}))
	s.Require().NoError(err)

	wantIDs := []string{categories[2].ID.String(), categories[0].ID.String(), categories[1].ID.String(), categories[3].ID.String()}
	s.Equal(wantIDs, pluck(byName.Items, func(c *domain.Category) string { return c.ID.String() }))

	byCreatedAt, err := s.repo.Search(s.ctx, domain.NewCategorySearchParams(domain.SearchInput[domain.CategoryFilter]{}))
	s.Require().NoError(err)

	wantIDs = pluck(categories, func(c *domain.Category) string { return c.ID.String() })
	s.Equal(wantIDs, pluck(byCreatedAt.Items, func(c *domain.Category) string { return c.ID.String() }))
}

func (s *CategorySuite) TestSearchLastPageUsesFilteredTotal() {
	names := make([]string, 16)
	for i := range names {
		names[i] = fmt.Sprintf("category %02d", i)
	}
	s.seed(names...)

	result, err := s.repo.Search(s.ctx, domain.NewCategorySearchParams(domain.SearchInput[domain.CategoryFilter]{
		Page: 1,
	}))
	s.Require().NoError(err)

	s.Len(result.Items, 15)
	s.Equal(16, result.Total)
	s.Equal(2, result.LastPage)
}

func (s *CategorySuite) TestSearchPagePastTheEnd() {
	s.seed("a", "b", "c")

	result, err := s.repo.Search(s.ctx, domain.NewCategorySearchParams(domain.SearchInput[domain.CategoryFilter]{
		Page:    3,
		PerPage: 2,
	}))
	s.Require().NoError(err)

	s.Empty(result.Items)
	s.Equal(3, result.Total)
	s.Equal(3, result.CurrentPage)
	s.Equal(2, result.LastPage)
}

func (s *CategorySuite) TestSearchHugePages() {
	s.seed("a", "b", "c")

	far, err := s.repo.Search(s.ctx, domain.NewCategorySearchParams(domain.SearchInput[domain.CategoryFilter]{
		Page: "4611686018427387904",
	}))
	s.Require().NoError(err)

	s.Empty(far.Items)
	s.Equal(3, far.Total)
	s.Equal(4611686018427387904, far.CurrentPage)
	s.Equal(1, far.LastPage)

	wide, err := s.repo.Search(s.ctx, domain.NewCategorySearchParams(domain.SearchInput[domain.CategoryFilter]{
		PerPage: math.MaxInt,
		Sort:    "name",
	}))
	s.Require().NoError(err)

	s.Equal([]string{"a", "b", "c"}, categoryNames(wide.Items))
	s.Equal(1, wide.LastPage)
}

func (s *CategorySuite) TestSearchTreatsWildcardsLiterally() {
	s.seed("100% drama", "1000 drama", "a_b", "axb", `back\slash`)

	tests := []struct {
		filter string
		want   []string
	}{
		{filter: "%", want: []string{"100% drama"}},
		{filter: "_", want: []string{"a_b"}},
		{filter: `\`, want: []string{`back\slash`}},
	}

	for _, tt := range tests {
		result, err := s.repo.Search(s.ctx, domain.NewCategorySearchParams(domain.SearchInput[domain.CategoryFilter]{
			Filter: &domain.CategoryFilter{Name: tt.filter},
		}))
		s.Require().NoError(err)
		s.Equal(tt.want, categoryNames(result.Items), "filter %q", tt.filter)
	}
}

func (s *CategorySuite) TestSearchEmptyStore() {
	result, err := s.repo.Search(s.ctx, domain.NewCategorySearchParams(domain.SearchInput[domain.CategoryFilter]{}))
	s.Require().NoError(err)

	s.Empty(result.Items)
	s.Equal(0, result.Total)
	s.Equal(1, result.LastPage)
}
