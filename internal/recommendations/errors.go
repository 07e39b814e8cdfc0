package recommendations

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrRecomputeInProgress = errors.New("recompute in progress")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrEmptyNotes          = errors.New("validation notes are required")
)
