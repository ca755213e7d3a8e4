package service

import "errors"

// ErrNoUsernames is returned when a run is requested for nobody.
var ErrNoUsernames = errors.New("No arguments given!") //nolint:staticcheck // user-facing message
