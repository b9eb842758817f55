// Package repository provides database access for domain entities.
package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when a referenced row does not exist.
	ErrNotFound   = errors.New("not found")
	// ErrDuplicate is returned when an insert or update violates a unique constraint.
	ErrDuplicate  = errors.New("duplicate")
	// ErrOutOfRange is returned when a value does not fit its numeric column.
	ErrOutOfRange = errors.New("numeric value out of range")
)

const (
	pgUniqueViolation = "23505"
	pgNumericOverflow = "22003"
)

// wrap maps driver errors onto repository sentinels and adds context.
func wrap(err error, msg string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", msg, ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%s: %w", msg, ErrDuplicate)
		case pgNumericOverflow:
			return fmt.Errorf("%s: %w", msg, ErrOutOfRange)
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// rowScanner is the subset of pgx.Rows used by the scan helpers.
type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}
