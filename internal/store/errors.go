package store

import "errors"

// Meeting types.
const (
	TypeCoffee = "coffee"
	TypeLunch  = "lunch"
)

var (
	// ErrNotFound means the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalid means the caller supplied a record that fails validation
	// (empty name, bad meeting type, missing date, unknown contact, or a
	// malformed import payload).
	ErrInvalid = errors.New("invalid")
)

// ValidType reports whether t is a known meeting type.
func ValidType(t string) bool {
	return t == TypeCoffee || t == TypeLunch
}
