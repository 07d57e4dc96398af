//go:build unit

package infra_test

import (
	"testing"

	"bookcars/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrapRepoErr_Classification(t *testing.T) {
	cases := []struct {
		name string
		err  error
		kind infra.RepositoryErrorKind
	}{
		{
			name: "no rows maps to not found",
			err:  pgx.ErrNoRows,
			kind: infra.KindNotFound,
		},
		{
			name: "unique violation maps to duplicate key",
			err:  &pgconn.PgError{Code: "23505"},
			kind: infra.KindDuplicateKey,
		},
		{
			name: "exclusion violation maps to conflict",
			err:  &pgconn.PgError{Code: "23P01"},
			kind: infra.KindConflict,
		},
		{
			name: "foreign key violation maps to its own kind",
			err:  &pgconn.PgError{Code: "23503"},
			kind: infra.KindForeignKeyViolated,
		},
		{
			name: "anything else maps to db failure",
			err:  &pgconn.PgError{Code: "57014"},
			kind: infra.KindDBFailure,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := infra.WrapRepoErr("delete listing", tc.err)
			assert.True(t, infra.IsKind(wrapped, tc.kind))
		})
	}
}
