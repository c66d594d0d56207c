package domain

import "github.com/google/uuid"

// Identifier is a value object over a random UUID in canonical string form.
// Two identifiers are equal iff their string forms match.
type Identifier struct {
	value string
}

func NewIdentifier() Identifier {
	return Identifier{value: uuid.NewString()}
}

func ParseIdentifier(s string) (Identifier, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return Identifier{}, &MalformedIdentifierError{Value: s}
	}

	return Identifier{value: id.String()}, nil
}

func (i Identifier) String() string {
	return i.value
}

func (i Identifier) Equals(other Identifier) bool {
	return i.value == other.value
}

func (i Identifier) IsZero() bool {
	return i.value == ""
}

// UUID returns the raw 128-bit value, or uuid.Nil for the zero identifier.
func (i Identifier) UUID() uuid.UUID {
	if i.IsZero() {
		return uuid.Nil
	}

	return uuid.MustParse(i.value)
}

type CategoryID struct{ Identifier }

func NewCategoryID() CategoryID {
	return CategoryID{NewIdentifier()}
}

func ParseCategoryID(s string) (CategoryID, error) {
	id, err := ParseIdentifier(s)
	return CategoryID{id}, err
}

func (id CategoryID) Equals(other CategoryID) bool {
	return id.Identifier.Equals(other.Identifier)
}

type CastMemberID struct{ Identifier }

func NewCastMemberID() CastMemberID {
	return CastMemberID{NewIdentifier()}
}

func ParseCastMemberID(s string) (CastMemberID, error) {
	id, err := ParseIdentifier(s)
	return CastMemberID{id}, err
}

func (id CastMemberID) Equals(other CastMemberID) bool {
	return id.Identifier.Equals(other.Identifier)
}

type GenreID struct{ Identifier }

func NewGenreID() GenreID {
	return GenreID{NewIdentifier()}
}

func ParseGenreID(s string) (GenreID, error) {
	id, err := ParseIdentifier(s)
	return GenreID{id}, err
}

func (id GenreID) Equals(other GenreID) bool {
	return id.Identifier.Equals(other.Identifier)
}
