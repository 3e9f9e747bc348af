package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestDBErrorCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"bad date literal", &pgconn.PgError{Code: "22007"}, ErrorCodeInvalidArgument},
		{"bad int literal", fmt.Errorf("q: %w", &pgconn.PgError{Code: "22P02"}), ErrorCodeInvalidArgument},
		{"statement timeout", &pgconn.PgError{Code: "57014"}, ErrorCodeTimeout},
		{"starting up", &pgconn.PgError{Code: "57P03"}, ErrorCodeUnavailable},
		{"too many connections", &pgconn.PgError{Code: "53300"}, ErrorCodeUnavailable},
		{"connection class", &pgconn.PgError{Code: "08006"}, ErrorCodeUnavailable},
		{"duplicate party", &pgconn.PgError{Code: "23505"}, ErrorCodeValidation},
		{"missing affiliation", &pgconn.PgError{Code: "23503"}, ErrorCodeValidation},
		{"syntax", &pgconn.PgError{Code: "42601"}, ErrorCodeDB},
		{"deadline", context.DeadlineExceeded, ErrorCodeTimeout},
		{"canceled", fmt.Errorf("x: %w", context.Canceled), ErrorCodeUnavailable},
		{"plain", stderrs.New("scan failed"), ErrorCodeDB},
	}
	for _, tc := range cases {
		if got := DBErrorCode(tc.err); got != tc.want {
			t.Errorf("%s: DBErrorCode = %v want %v", tc.name, got, tc.want)
		}
	}
}

func TestFromPostgres(t *testing.T) {
	if FromPostgres(nil, "x") != nil {
		t.Fatalf("nil should stay nil")
	}

	pgErr := &pgconn.PgError{Code: "57014", Message: "canceling statement due to statement timeout"}
	err := FromPostgres(pgErr, "list speeches")
	if !IsCode(err, ErrorCodeTimeout) || WireFrom(err).Message != "list speeches" {
		t.Fatalf("wrapped = %v (%v)", err, CodeOf(err))
	}
	if got, ok := ExtractPgError(err); !ok || got != pgErr {
		t.Fatalf("pg error lost")
	}
	if !IsSQLState(err, "57014") || IsSQLState(err, "22007") {
		t.Fatalf("IsSQLState mismatch")
	}

	ours := InvalidArgf("date_from must be YYYY-MM-DD")
	if FromPostgres(ours, "list speeches") != ours {
		t.Fatalf("project errors pass through")
	}
}
