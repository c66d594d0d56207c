// Package either holds a two-armed result container for computations that can
// fail without aborting the caller, so several independent failures can be
// collected before deciding what to do.
package either

// Either holds exactly one of a success value or a failure value. The zero
// value is a failure carrying the zero E.
type Either[T, E any] struct {
	value   T
	failure E
	ok      bool
}

func Ok[T, E any](value T) Either[T, E] {
	return Either[T, E]{value: value, ok: true}
}

func Fail[T, E any](failure E) Either[T, E] {
	return Either[T, E]{failure: failure}
}

// FromResult lifts a conventional (value, error) pair.
func FromResult[T any](value T, err error) Either[T, error] {
	if err != nil {
		return Fail[T](err)
	}

	return Ok[T, error](value)
}

func (e Either[T, E]) IsOk() bool {
	return e.ok
}

func (e Either[T, E]) IsFail() bool {
	return !e.ok
}

func (e Either[T, E]) Value() T {
	return e.value
}

func (e Either[T, E]) Failure() E {
	return e.failure
}

// AsArray destructures e into its two arms. The unset arm is its zero value.
func (e Either[T, E]) AsArray() (T, E) {
	return e.value, e.failure
}

// Map transforms the success arm and passes a failure through unchanged.
func Map[T, U, E any](e Either[T, E], fn func(T) U) Either[U, E] {
	if !e.ok {
		return Fail[U](e.failure)
	}

	return Ok[U, E](fn(e.value))
}

// Chain runs fn on the success value and stops at the first failure.
func Chain[T, U, E any](e Either[T, E], fn func(T) Either[U, E]) Either[U, E] {
	if !e.ok {
		return Fail[U](e.failure)
	}

	return fn(e.value)
}
