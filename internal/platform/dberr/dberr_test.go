package dberr_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/library/internal/platform/apperr"
	"github.com/taibuivan/library/internal/platform/dberr"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"no_rows_sql", sql.ErrNoRows, apperr.CodeNotFound},
		{"no_rows_pgx", fmt.Errorf("scan: %w", pgx.ErrNoRows), apperr.CodeNotFound},
		{"unique", &pgconn.PgError{Code: pgerrcode.UniqueViolation}, apperr.CodeConflict},
		{"foreign_key", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, apperr.CodeValidation},
		{"check", &pgconn.PgError{Code: pgerrcode.CheckViolation}, apperr.CodeValidation},
		{"other_sqlstate", &pgconn.PgError{Code: pgerrcode.SerializationFailure}, apperr.CodeInternal},
		{"driver", errors.New("conn reset"), apperr.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, apperr.HasCode(dberr.Wrap(tt.err, "copies.update_state"), tt.code))
		})
	}
}

func TestWrap_PassThrough(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "users.create"))

	cancelled := fmt.Errorf("query: %w", context.Canceled)
	assert.Same(t, cancelled, dberr.Wrap(cancelled, "users.create"))
	assert.ErrorIs(t, dberr.Wrap(context.DeadlineExceeded, "users.create"), context.DeadlineExceeded)
}

func TestWrap_KeepsCause(t *testing.T) {
	cause := errors.New("conn reset")
	wrapped := dberr.Wrap(cause, "loans.open")

	assert.ErrorIs(t, wrapped, cause)
	assert.NotContains(t, wrapped.Error(), "conn reset")
}
