package service

import (
	"errors"
	"fmt"
)

// Service layer errors. Handlers map them to HTTP statuses with errors.Is.
var (
	ErrMissingParameter  = errors.New("missing parameter")
	ErrInvalidIdentifier = errors.New("invalid identifier")
	ErrNotFound          = errors.New("not found")
	ErrCommunityNotFound = fmt.Errorf("community %w", ErrNotFound)
	ErrUserNotFound      = fmt.Errorf("user %w", ErrNotFound)
)

// ===== Membership Errors =====
var (
	ErrUserExists    = errors.New("user already exists")
	ErrAlreadyMember = errors.New("already a member of this community")
	ErrNotAMember    = errors.New("not a member of this community")
)

func missing(name string) error {
	return fmt.Errorf("%w: %s", ErrMissingParameter, name)
}
