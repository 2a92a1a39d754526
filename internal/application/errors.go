package application

import (
	"errors"
	"fmt"
)

// Error kinds the entry points map onto responses.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

var (
	ErrUserNotFound   = fmt.Errorf("user %w", ErrNotFound)
	ErrDuplicateEmail = fmt.Errorf("email already registered: %w", ErrConflict)
)
