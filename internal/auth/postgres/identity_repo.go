// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CollegeCrew Contributors

package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/collegecrew/collegecrew/internal/auth"
)

// IdentityRepository implements auth.IdentityRepository using PostgreSQL.
type IdentityRepository struct {
	pool poolIface
}

// NewIdentityRepository creates a new IdentityRepository.
func NewIdentityRepository(pool poolIface) *IdentityRepository {
	return &IdentityRepository{pool: pool}
}

// Create stores a new identity. A unique violation on the email
// column is converted to auth.ErrDuplicate so the constraint never
// leaks raw across the service boundary.
func (r *IdentityRepository) Create(ctx context.Context, identity *auth.Identity) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO identities (id, email, password_hash, alias, institution_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		identity.ID.String(),
		identity.Email,
		identity.PasswordHash,
		identity.Alias,
		identity.InstitutionID.String(),
		identity.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return oops.Code("IDENTITY_DUPLICATE").
				With("email", identity.Email).
				Wrap(auth.ErrDuplicate)
		}
		return oops.Code("IDENTITY_CREATE_FAILED").
			With("operation", "insert identity").
			With("email", identity.Email).
			Wrap(err)
	}
	return nil
}

// GetByID retrieves an identity by ID.
func (r *IdentityRepository) GetByID(ctx context.Context, id ulid.ULID) (*auth.Identity, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, alias, institution_id, created_at
		FROM identities
		WHERE id = $1
	`, id.String())

	identity, err := scanIdentity(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("IDENTITY_NOT_FOUND").
			With("id", id.String()).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("IDENTITY_GET_BY_ID_FAILED").
			With("operation", "get identity by id").
			With("id", id.String()).
			Wrap(err)
	}
	return identity, nil
}

// GetByEmail retrieves an identity by exact email (case-sensitive as stored).
func (r *IdentityRepository) GetByEmail(ctx context.Context, email string) (*auth.Identity, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, alias, institution_id, created_at
		FROM identities
		WHERE email = $1
	`, email)

	identity, err := scanIdentity(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("IDENTITY_NOT_FOUND").
			With("email", email).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("IDENTITY_GET_BY_EMAIL_FAILED").
			With("operation", "get identity by email").
			With("email", email).
			Wrap(err)
	}
	return identity, nil
}

// scanIdentity scans a single row into an Identity.
// Callers are responsible for handling pgx.ErrNoRows.
func scanIdentity(row pgx.Row) (*auth.Identity, error) {
	var (
		idStr            string
		email            string
		passwordHash     string
		alias            string
		institutionIDStr string
		createdAt        time.Time
	)

	err := row.Scan(&idStr, &email, &passwordHash, &alias, &institutionIDStr, &createdAt)
	if err != nil {
		// Propagate pgx.ErrNoRows unchanged for callers to handle with context.
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.Code("IDENTITY_SCAN_FAILED").
			With("operation", "scan identity").
			Wrap(err)
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("IDENTITY_INVALID_ID").
			With("id", idStr).
			Wrap(err)
	}
	institutionID, err := ulid.Parse(institutionIDStr)
	if err != nil {
		return nil, oops.Code("IDENTITY_INVALID_INSTITUTION_ID").
			With("institution_id", institutionIDStr).
			Wrap(err)
	}

	return &auth.Identity{
		ID:            id,
		Email:         email,
		PasswordHash:  passwordHash,
		Alias:         alias,
		InstitutionID: institutionID,
		CreatedAt:     createdAt,
	}, nil
}

// Compile-time interface check.
var _ auth.IdentityRepository = (*IdentityRepository)(nil)
