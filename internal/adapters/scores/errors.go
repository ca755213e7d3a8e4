package scores

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package. These allow errors.Is from callers.
var (
	ErrTransport    = errors.New("transport error")
	ErrDecode       = errors.New("decode error")
	ErrUserNotFound = errors.New("user not found")
)

// NotFoundError reports a username for which the API returned no tasks.
type NotFoundError struct {
	Username string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("User '%s' does not exist!", e.Username)
}

// Is makes errors.Is(err, ErrUserNotFound) match.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrUserNotFound
}
