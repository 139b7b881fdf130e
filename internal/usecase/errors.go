package usecase

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrAlreadyResponded   = errors.New("request has already been responded to")
	ErrNotAccepted        = errors.New("only accepted requests can be completed")
	ErrNotPending         = errors.New("only pending requests can be cancelled")
	ErrForbidden          = errors.New("access denied")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid badge number or password")
	ErrInactiveAccount    = errors.New("account is deactivated")
	ErrDuplicate          = errors.New("record already exists")
)

// invalid wraps ErrInvalidInput with a message meant for the client.
func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// notFound converts gorm's sentinel so callers only need to know ours.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
