package ledger

import (
	"errors"
	"fmt"

	"gitlab.com/yelinaung/fintrack/internal/repository"
)

// Error taxonomy. Every error returned by Service wraps exactly one of these
// or is an unexpected store failure.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("not authorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrExpired      = errors.New("recurring transaction has ended")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// translate maps repository sentinels onto the ledger taxonomy.
func translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	case errors.Is(err, repository.ErrDuplicate):
		return fmt.Errorf("%w: %s", ErrConflict, what)
	case errors.Is(err, repository.ErrOutOfRange):
		return fmt.Errorf("%w: %s value out of range", ErrInvalidInput, what)
	default:
		return err
	}
}
