package repository

import "errors"

// ErrNotFound is returned when a requested row does not exist. Callers
// distinguish it from infrastructure failures: "no row yet" is a normal
// precondition for upserts, not an error to surface.
var ErrNotFound = errors.New("record not found")

type scanner interface {
	Scan(dest ...interface{}) error
}
