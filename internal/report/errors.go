package report

import "errors"

// Sentinel error kinds for rendering.
var (
	ErrNoPeople     = errors.New("nothing to report")
	ErrTaskMismatch = errors.New("task mismatch")
	ErrInvalidMode  = errors.New("invalid output mode")
	ErrInvalidColor = errors.New("invalid color mode")
)
