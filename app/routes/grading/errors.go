package grading

import "errors"

// Validation failures caught before any database call. Handlers map these
// to 400/409 responses; anything else from the storage layer surfaces as
// a 500 with the wrapped cause.
var (
	ErrIncompleteMarks = errors.New("cannot submit incomplete marks: total is not computable")
	ErrApprovedLocked  = errors.New("submission is approved and can no longer be edited")
	ErrEmptyReason     = errors.New("rejection reason must not be empty")
	ErrNoSelection     = errors.New("no students selected")
)
