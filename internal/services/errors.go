package services

import (
	"errors"

	"reviewhub/internal/repositories"
)

var (
	// ErrNotFound is returned when a looked-up resource or its parent does not exist.
	ErrNotFound = repositories.ErrNotFound
	// ErrInvalidCode is returned when a confirmation code does not match an
	// outstanding code of the user.
	ErrInvalidCode = errors.New("invalid confirmation code")
)

func isNotFound(err error) bool {
	return errors.Is(err, repositories.ErrNotFound)
}

func isDuplicate(err error) bool {
	return errors.Is(err, repositories.ErrDuplicate)
}
