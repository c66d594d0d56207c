package domain

import "github.com/metinatakli/catalog-admin/internal/either"

const (
	CastMemberDirector = 1
	CastMemberActor    = 2
)

// CastMemberType is a value object over the cast member kind.
type CastMemberType struct {
	kind int
}

// CreateCastMemberType does not return early on an unknown kind so callers can
// attach the failure to their own Notification.
func CreateCastMemberType(kind int) either.Either[CastMemberType, error] {
	switch kind {
	case CastMemberDirector, CastMemberActor:
		return either.Ok[CastMemberType, error](CastMemberType{kind: kind})
	default:
		return either.Fail[CastMemberType, error](&InvalidCastMemberTypeError{Value: kind})
	}
}

func DirectorType() CastMemberType {
	return CastMemberType{kind: CastMemberDirector}
}

func ActorType() CastMemberType {
	return CastMemberType{kind: CastMemberActor}
}

func (t CastMemberType) Int() int {
	return t.kind
}

func (t CastMemberType) Equals(other CastMemberType) bool {
	return t.kind == other.kind
}

func (t CastMemberType) IsZero() bool {
	return t.kind == 0
}

func (t CastMemberType) String() string {
	switch t.kind {
	case CastMemberDirector:
		return "director"
	case CastMemberActor:
		return "actor"
	default:
		return "unknown"
	}
}
