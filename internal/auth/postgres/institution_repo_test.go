// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CollegeCrew Contributors

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collegecrew/collegecrew/internal/auth"
)

func TestInstitutionRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts institution", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		institution, err := auth.NewInstitution("school.edu")
		require.NoError(t, err)

		mock.ExpectExec(`INSERT INTO institutions`).
			WithArgs(institution.ID.String(), institution.Domain, institution.CreatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		repo := NewInstitutionRepository(mock)
		require.NoError(t, repo.Create(ctx, institution))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("concurrent domain insert maps to ErrDuplicate", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		institution, err := auth.NewInstitution("school.edu")
		require.NoError(t, err)

		mock.ExpectExec(`INSERT INTO institutions`).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

		repo := NewInstitutionRepository(mock)
		err = repo.Create(ctx, institution)
		assert.ErrorIs(t, err, auth.ErrDuplicate)
	})
}

func TestInstitutionRepository_GetByDomain(t *testing.T) {
	ctx := context.Background()

	t.Run("returns stored institution", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		id := ulid.Make()
		rows := pgxmock.NewRows([]string{"id", "domain_name", "created_at"}).
			AddRow(id.String(), "school.edu", time.Now().UTC())
		mock.ExpectQuery(`SELECT id, domain_name, created_at`).
			WithArgs("school.edu").
			WillReturnRows(rows)

		repo := NewInstitutionRepository(mock)
		institution, err := repo.GetByDomain(ctx, "school.edu")
		require.NoError(t, err)
		assert.Equal(t, id, institution.ID)
		assert.Equal(t, "school.edu", institution.Domain)
	})

	t.Run("unknown domain maps to ErrNotFound", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT id, domain_name, created_at`).
			WithArgs("unknown.edu").
			WillReturnRows(pgxmock.NewRows([]string{"id", "domain_name", "created_at"}))

		repo := NewInstitutionRepository(mock)
		_, err = repo.GetByDomain(ctx, "unknown.edu")
		assert.ErrorIs(t, err, auth.ErrNotFound)
	})

	t.Run("exact domain string is queried", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		// Case matters: School.EDU and school.edu are distinct domains.
		mock.ExpectQuery(`SELECT id, domain_name, created_at`).
			WithArgs("School.EDU").
			WillReturnRows(pgxmock.NewRows([]string{"id", "domain_name", "created_at"}))

		repo := NewInstitutionRepository(mock)
		_, err = repo.GetByDomain(ctx, "School.EDU")
		assert.ErrorIs(t, err, auth.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestInstitutionRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("missing id maps to ErrNotFound", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		id := ulid.Make()
		mock.ExpectQuery(`SELECT id, domain_name, created_at`).
			WithArgs(id.String()).
			WillReturnRows(pgxmock.NewRows([]string{"id", "domain_name", "created_at"}))

		repo := NewInstitutionRepository(mock)
		_, err = repo.GetByID(ctx, id)
		assert.ErrorIs(t, err, auth.ErrNotFound)
	})
}
