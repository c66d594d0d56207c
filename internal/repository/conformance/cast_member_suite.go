package conformance

import (
	"context"
	"time"

	"github.com/metinatakli/catalog-admin/internal/domain"
	"github.com/stretchr/testify/suite"
)

type CastMemberSuite struct {
	suite.Suite

	// NewRepository returns an empty repository.
	NewRepository func() domain.CastMemberRepository

	repo domain.CastMemberRepository
	ctx  context.Context
}

func (s *CastMemberSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = s.NewRepository()
}

type castMemberSeed struct {
	name string
	typ  domain.CastMemberType
}

func (s *CastMemberSuite) seed(seeds ...castMemberSeed) []*domain.CastMember {
	start := baseTime()

	members := make([]*domain.CastMember, len(seeds))
	for i, seed := range seeds {
		members[i] = domain.NewCastMember(domain.CastMemberProps{
			Name:      seed.name,
			Type:      seed.typ,
			CreatedAt: start.Add(time.Duration(i) * time.Second),
		})
	}

	s.Require().NoError(s.repo.BulkInsert(s.ctx, members))

	return members
}

func castMemberNames(members []*domain.CastMember) []string {
	return pluck(members, func(m *domain.CastMember) string { return m.Name })
}

func (s *CastMemberSuite) TestInsertAndFindByID() {
	member := domain.NewCastMember(domain.CastMemberProps{
		Name:      "Martin Scorsese",
		Type:      domain.DirectorType(),
		CreatedAt: baseTime(),
	})

	s.Require().NoError(s.repo.Insert(s.ctx, member))

	got, err := s.repo.FindByID(s.ctx, member.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got)

	s.True(member.Equals(got))
	s.Equal("Martin Scorsese", got.Name)
	s.True(got.Type.Equals(domain.DirectorType()))
	s.True(member.CreatedAt.Equal(got.CreatedAt))
}

func (s *CastMemberSuite) TestFindByIDMissing() {
	got, err := s.repo.FindByID(s.ctx, domain.NewCastMemberID())
	s.NoError(err)
	s.Nil(got)
}

func (s *CastMemberSuite) TestUpdate() {
	member := s.seed(castMemberSeed{name: "actor", typ: domain.ActorType()})[0]

	member.ChangeName("director")
	member.ChangeType(domain.DirectorType())
	s.Require().NoError(s.repo.Update(s.ctx, member))

	got, err := s.repo.FindByID(s.ctx, member.ID)
	s.Require().NoError(err)
	s.Equal("director", got.Name)
	s.True(got.Type.Equals(domain.DirectorType()))
}

func (s *CastMemberSuite) TestUpdateAndDeleteMissing() {
	member := domain.NewCastMember(domain.CastMemberProps{Name: "ghost", Type: domain.ActorType()})

	var notFound *domain.NotFoundError

	s.Require().ErrorAs(s.repo.Update(s.ctx, member), &notFound)
	s.Equal(domain.CastMemberEntityName, notFound.EntityName)
	s.Equal([]string{member.ID.String()}, notFound.IDs)

	s.Require().ErrorAs(s.repo.Delete(s.ctx, member.ID), &notFound)
	s.Equal([]string{member.ID.String()}, notFound.IDs)
}

func (s *CastMemberSuite) TestDelete() {
	members := s.seed(
		castMemberSeed{name: "a", typ: domain.ActorType()},
		castMemberSeed{name: "b", typ: domain.DirectorType()},
	)

	s.Require().NoError(s.repo.Delete(s.ctx, members[1].ID))

	all, err := s.repo.FindAll(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"a"}, castMemberNames(all))
}

func (s *CastMemberSuite) TestSearchFilters() {
	s.seed(
		castMemberSeed{name: "test", typ: domain.ActorType()},
		castMemberSeed{name: "a", typ: domain.DirectorType()},
		castMemberSeed{name: "TEST", typ: domain.DirectorType()},
		castMemberSeed{name: "e", typ: domain.ActorType()},
		castMemberSeed{name: "TeSt", typ: domain.ActorType()},
	)

	tests := []struct {
		name   string
		filter *domain.CastMemberFilterInput
		want   []string
	}{
		{
			name:   "name only",
			filter: &domain.CastMemberFilterInput{Name: "TEST"},
			want:   []string{"TEST", "TeSt", "test"},
		},
		{
			name:   "type only",
			filter: &domain.CastMemberFilterInput{Type: domain.CastMemberDirector},
			want:   []string{"TEST", "a"},
		},
		{
			name:   "name and type",
			filter: &domain.CastMemberFilterInput{Name: "test", Type: "2"},
			want:   []string{"TeSt", "test"},
		},
		{
			name:   "unknown type is ignored",
			filter: &domain.CastMemberFilterInput{Name: "e", Type: 9},
			want:   []string{"TEST", "TeSt", "e", "test"},
		},
		{
			name: "no filter",
			want: []string{"TEST", "TeSt", "a", "e", "test"},
		},
	}

	for _, tt := range tests {
		params := domain.NewCastMemberSearchParams(domain.CastMemberSearchInput{
			Sort:   "name",
			Filter: tt.filter,
		})

		result, err := s.repo.Search(s.ctx, params)
		s.Require().NoError(err, tt.name)
		s.Equal(tt.want, castMemberNames(result.Items), tt.name)
		s.Equal(len(tt.want), result.Total, tt.name)
	}
}

func (s *CastMemberSuite) TestSearchPaginatesAfterFiltering() {
	s.seed(
		castMemberSeed{name: "test", typ: domain.ActorType()},
		castMemberSeed{name: "a", typ: domain.ActorType()},
		castMemberSeed{name: "TEST", typ: domain.ActorType()},
		castMemberSeed{name: "e", typ: domain.ActorType()},
		castMemberSeed{name: "TeSt", typ: domain.ActorType()},
	)

	result, err := s.repo.Search(s.ctx, domain.NewCastMemberSearchParams(domain.CastMemberSearchInput{
		Page:    "2",
		PerPage: 2,
		Sort:    "name",
		SortDir: "asc",
		Filter:  &domain.CastMemberFilterInput{Name: "TEST", Type: domain.CastMemberActor},
	}))
	s.Require().NoError(err)

	s.Equal([]string{"test"}, castMemberNames(result.Items))
	s.Equal(3, result.Total)
	s.Equal(2, result.CurrentPage)
	s.Equal(2, result.LastPage)
}

func (s *CastMemberSuite) TestSearchDefaultOrderIsNewestFirst() {
	s.seed(
		castMemberSeed{name: "first", typ: domain.ActorType()},
		castMemberSeed{name: "second", typ: domain.DirectorType()},
	)

	result, err := s.repo.Search(s.ctx, domain.NewCastMemberSearchParams(domain.CastMemberSearchInput{
		Sort: "type",
	}))
	s.Require().NoError(err)

	s.Equal([]string{"second", "first"}, castMemberNames(result.Items))
}
