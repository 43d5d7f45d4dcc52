package service

import (
	"errors"
	"fmt"

	"project-manager/internal/store"
)

var (
	ErrValidation         = errors.New("validation error")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrStoreUnavailable   = errors.New("store unavailable")
)

// tagStoreErr converts strict-load failures into the StoreUnavailable tag
// and leaves taxonomy errors from update callbacks untouched.
func tagStoreErr(err error) error {
	if errors.Is(err, store.ErrUnreadable) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return err
}
