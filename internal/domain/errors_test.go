package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	err := fmt.Errorf("deleting: %w", NewNotFoundError(CategoryEntityName, "a", "b"))

	if !errors.Is(err, ErrRecordNotFound) {
		t.Error("NotFoundError does not match ErrRecordNotFound")
	}

	if got, want := errors.Unwrap(err).Error(), "Category Not Found using ID a, b"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestInUseError(t *testing.T) {
	err := fmt.Errorf("deleting: %w", NewInUseError(CategoryEntityName, "a", GenreEntityName))

	if !errors.Is(err, ErrEntityInUse) {
		t.Error("InUseError does not match ErrEntityInUse")
	}
	if errors.Is(err, ErrRecordNotFound) {
		t.Error("InUseError matches ErrRecordNotFound")
	}

	if got, want := errors.Unwrap(err).Error(), "Category a is still used by a Genre"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestLoadEntityError(t *testing.T) {
	n := NewNotification()
	n.AddFieldError("name", "name should not be empty")

	err := NewLoadEntityError(n)

	if got, want := err.Error(), "Entity Not Loaded: name: name should not be empty"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if len(err.Errors) != 1 {
		t.Errorf("Errors = %v, want one entry", err.Errors)
	}
}

func TestEntityValidationError(t *testing.T) {
	n := NewNotification()
	n.AddError("broken")
	n.AddFieldError("name", "blank")

	err := NewEntityValidationError(n)

	if err.Error() != "Validation Error" || err.Count() != 2 {
		t.Errorf("got %q with %d errors", err.Error(), err.Count())
	}
}
