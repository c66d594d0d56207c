package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRecordNotFound         = errors.New("record not found")
	ErrAlreadyExists          = errors.New("record already exists")
	ErrMalformedIdentifier    = errors.New("malformed identifier")
	ErrInvalidUnitOfWorkState = errors.New("invalid unit of work state")
	ErrEntityInUse            = errors.New("record is still referenced")
)

// NotFoundError is returned by Update and Delete when no record backs the given
// identifier. It matches ErrRecordNotFound.
type NotFoundError struct {
	IDs        []string
	EntityName string
}

func NewNotFoundError(entityName string, ids ...string) *NotFoundError {
	return &NotFoundError{
		IDs:        ids,
		EntityName: entityName,
	}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s Not Found using ID %s", e.EntityName, strings.Join(e.IDs, ", "))
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrRecordNotFound
}

// InUseError is returned by Delete when another aggregate still references the
// record. It matches ErrEntityInUse.
type InUseError struct {
	ID           string
	EntityName   string
	ReferencedBy string
}

func NewInUseError(entityName, id, referencedBy string) *InUseError {
	return &InUseError{
		ID:           id,
		EntityName:   entityName,
		ReferencedBy: referencedBy,
	}
}

func (e *InUseError) Error() string {
	return fmt.Sprintf("%s %s is still used by a %s", e.EntityName, e.ID, e.ReferencedBy)
}

func (e *InUseError) Is(target error) bool {
	return target == ErrEntityInUse
}

// LoadEntityError reports a stored record that no longer passes validation.
type LoadEntityError struct {
	Errors []any
}

func NewLoadEntityError(n *Notification) *LoadEntityError {
	return &LoadEntityError{Errors: n.ToJSON()}
}

func (e *LoadEntityError) Error() string {
	return fmt.Sprintf("Entity Not Loaded: %s", describeErrors(e.Errors))
}

// EntityValidationError carries every validation message collected for an
// aggregate. Use cases build it once all fields have been processed.
type EntityValidationError struct {
	Errors []any
}

func NewEntityValidationError(n *Notification) *EntityValidationError {
	return &EntityValidationError{Errors: n.ToJSON()}
}

func (e *EntityValidationError) Error() string {
	return "Validation Error"
}

func (e *EntityValidationError) Count() int {
	return len(e.Errors)
}

type MalformedIdentifierError struct {
	Value string
}

func (e *MalformedIdentifierError) Error() string {
	return fmt.Sprintf("ID must be a valid UUID: %q", e.Value)
}

func (e *MalformedIdentifierError) Is(target error) bool {
	return target == ErrMalformedIdentifier
}

type InvalidCastMemberTypeError struct {
	Value int
}

func (e *InvalidCastMemberTypeError) Error() string {
	return fmt.Sprintf("Invalid cast member type: %d", e.Value)
}

func describeErrors(errs []any) string {
	parts := make([]string, 0, len(errs))

	for _, e := range errs {
		switch v := e.(type) {
		case string:
			parts = append(parts, v)
		case map[string][]string:
			for field, messages := range v {
				parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(messages, ", ")))
			}
		}
	}

	return strings.Join(parts, "; ")
}
