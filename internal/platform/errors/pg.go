package errors

// Postgres helpers for mapping read side pgx failures onto ErrorCode

import (
	"context"
	stderrs "errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the archive reader and seeder can hit
const (
	pgErrUniqueViolation           = "23505"
	pgErrForeignKeyViolation       = "23503"
	pgErrNotNullViolation          = "23502"
	pgErrInvalidTextRepresentation = "22P02"
	pgErrInvalidDatetimeFormat     = "22007"
	pgErrDatetimeFieldOverflow     = "22008"
	pgErrNumericValueOutOfRange    = "22003"
	pgErrQueryCanceled             = "57014"
	pgErrAdminShutdown             = "57P01"
	pgErrCannotConnectNow          = "57P03"
	pgErrTooManyConnections        = "53300"
	pgErrSerializationFailure      = "40001"
)

// ExtractPgError returns (*pgconn.PgError, true) if the chain holds a PgError
func ExtractPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsSQLState reports whether the error is a Postgres error with the given SQLSTATE code
func IsSQLState(err error, code string) bool {
	pgErr, ok := ExtractPgError(err)
	return ok && pgErr.Code == code
}

// DBErrorCode maps a database failure to an ErrorCode
// anything that never reached the server as a statement counts as unavailable
func DBErrorCode(err error) ErrorCode {
	switch {
	case stderrs.Is(err, context.DeadlineExceeded):
		return ErrorCodeTimeout
	case stderrs.Is(err, context.Canceled):
		return ErrorCodeUnavailable
	}

	pgErr, ok := ExtractPgError(err)
	if !ok {
		if pgconn.SafeToRetry(err) || pgconn.Timeout(err) || isConnectErr(err) {
			return ErrorCodeUnavailable
		}
		return ErrorCodeDB
	}

	switch pgErr.Code {
	case pgErrInvalidTextRepresentation, pgErrInvalidDatetimeFormat,
		pgErrDatetimeFieldOverflow, pgErrNumericValueOutOfRange:
		return ErrorCodeInvalidArgument
	case pgErrUniqueViolation, pgErrForeignKeyViolation, pgErrNotNullViolation:
		return ErrorCodeValidation
	case pgErrQueryCanceled:
		return ErrorCodeTimeout
	case pgErrAdminShutdown, pgErrCannotConnectNow, pgErrTooManyConnections,
		pgErrSerializationFailure:
		return ErrorCodeUnavailable
	}
	if strings.HasPrefix(pgErr.Code, "08") {
		// class 08 connection exception
		return ErrorCodeUnavailable
	}
	return ErrorCodeDB
}

func isConnectErr(err error) bool {
	var ce *pgconn.ConnectError
	return stderrs.As(err, &ce)
}

// FromPostgres wraps a database error with its mapped ErrorCode and msg
// If err is nil, returns nil
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	if _, ours := As(err); ours {
		return err
	}
	return Wrap(err, DBErrorCode(err), msg)
}
