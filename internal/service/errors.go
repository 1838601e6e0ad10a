package service

import (
	"errors"
	"fmt"

	"github.com/zml18x/SMS-Backend-sub000/internal/repository"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrForbidden          = errors.New("access denied")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	// ErrInvalidState is returned when an operation is well formed but the entity's state forbids it.
	ErrInvalidState = errors.New("operation not allowed in current state")
	ErrBadRequest   = errors.New("invalid request")
)

// translate maps repository sentinels onto service sentinels, naming the entity involved.
func translate(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%s %w", entity, ErrNotFound)
	case errors.Is(err, repository.ErrDuplicate):
		return fmt.Errorf("%s %w", entity, ErrConflict)
	default:
		return err
	}
}
