package repository

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"courier-payouts/internal/apperr"
)

// IsDuplicate - signals that the error is a duplicate key violation.
func IsDuplicate(err error) bool {
	var pgerr *pgconn.PgError
	return errors.As(err, &pgerr) && pgerr.Code == "23505"
}

// IsNotFound - signals that the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsTransient reports whether a failed read is worth repeating: the connection dropped,
// the server asked us to come back later, or the query timed out on the server side.
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	if pgconn.SafeToRetry(err) || pgconn.Timeout(err) {
		return true
	}
	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		switch {
		case len(pgerr.Code) >= 2 && pgerr.Code[:2] == "08":
			return true
		case pgerr.Code == "40001", pgerr.Code == "40P01", pgerr.Code == "57P03":
			return true
		}
		return false
	}
	var nerr net.Error
	return errors.As(err, &nerr)
}

// unavailable tags a driver error with apperr.DataUnavailable while keeping the cause reachable.
func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, apperr.DataUnavailable, err)
}

// IsForeignKeyViolation - signals that a referenced row does not exist.
func IsForeignKeyViolation(err error) bool {
	var pgerr *pgconn.PgError
	return errors.As(err, &pgerr) && pgerr.Code == "23503"
}
