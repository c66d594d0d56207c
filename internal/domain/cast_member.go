package domain

import "time"

const CastMemberEntityName = "CastMember"

type CastMember struct {
	AggregateRoot
	ID        CastMemberID
	Name      string
	Type      CastMemberType
	CreatedAt time.Time
}

type CastMemberProps struct {
	ID        CastMemberID
	Name      string
	Type      CastMemberType
	CreatedAt time.Time
}

type CastMemberCreateCommand struct {
	Name string
	Type CastMemberType
}

type castMemberRules struct {
	Name string `json:"name" validate:"required,max=255"`
}

func NewCastMember(props CastMemberProps) *CastMember {
	m := &CastMember{
		ID:        props.ID,
		Name:      props.Name,
		Type:      props.Type,
		CreatedAt: props.CreatedAt,
	}

	if m.ID.IsZero() {
		m.ID = NewCastMemberID()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}

	return m
}

func CreateCastMember(cmd CastMemberCreateCommand) *CastMember {
	m := NewCastMember(CastMemberProps{
		Name: cmd.Name,
		Type: cmd.Type,
	})
	m.Validate()

	return m
}

func (m *CastMember) ChangeName(name string) {
	m.Name = name
	m.Validate()
}

func (m *CastMember) ChangeType(t CastMemberType) {
	m.Type = t
}

func (m *CastMember) Validate() bool {
	return validateRules(m.Notification(), castMemberRules{Name: m.Name}, "name")
}

func (m *CastMember) Equals(other *CastMember) bool {
	return other != nil && m.ID.Equals(other.ID)
}

// CastMemberFilter combines its keys with AND. A nil Type matches every type.
type CastMemberFilter struct {
	Name string
	Type *CastMemberType
}

func (f CastMemberFilter) IsEmpty() bool {
	return f.Name == "" && f.Type == nil
}

func (f CastMemberFilter) Matches(m *CastMember) bool {
	if f.Name != "" && !containsFold(m.Name, f.Name) {
		return false
	}

	if f.Type != nil && !m.Type.Equals(*f.Type) {
		return false
	}

	return true
}

// CastMemberFilterInput is the raw filter shape; Type may be any value that
// reads as an integer.
type CastMemberFilterInput struct {
	Name string
	Type any
}

type CastMemberSearchInput struct {
	Page    any
	PerPage any
	Sort    any
	SortDir any
	Filter  *CastMemberFilterInput
}

// NewCastMemberSearchParams drops a raw type that is not a known cast member
// type instead of failing.
func NewCastMemberSearchParams(in CastMemberSearchInput) SearchParams[CastMemberFilter] {
	var filter *CastMemberFilter

	if in.Filter != nil {
		filter = &CastMemberFilter{Name: in.Filter.Name}

		if kind, ok := parseInteger(in.Filter.Type); ok {
			if t := CreateCastMemberType(kind); t.IsOk() {
				typ := t.Value()
				filter.Type = &typ
			}
		}
	}

	return NewSearchParams(SearchInput[CastMemberFilter]{
		Page:    in.Page,
		PerPage: in.PerPage,
		Sort:    in.Sort,
		SortDir: in.SortDir,
		Filter:  filter,
	})
}

type CastMemberRepository interface {
	SearchableRepository[*CastMember, CastMemberID, CastMemberFilter]
}
