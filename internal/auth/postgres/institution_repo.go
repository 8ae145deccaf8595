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

// InstitutionRepository implements auth.InstitutionRepository using PostgreSQL.
type InstitutionRepository struct {
	pool poolIface
}

// NewInstitutionRepository creates a new InstitutionRepository.
func NewInstitutionRepository(pool poolIface) *InstitutionRepository {
	return &InstitutionRepository{pool: pool}
}

// Create stores a new institution. A unique violation on the domain
// column is converted to auth.ErrDuplicate; the resolver treats it as
// "someone else created this domain first" and re-reads.
func (r *InstitutionRepository) Create(ctx context.Context, institution *auth.Institution) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO institutions (id, domain_name, created_at)
		VALUES ($1, $2, $3)
	`,
		institution.ID.String(),
		institution.Domain,
		institution.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return oops.Code("INSTITUTION_DUPLICATE").
				With("domain", institution.Domain).
				Wrap(auth.ErrDuplicate)
		}
		return oops.Code("INSTITUTION_CREATE_FAILED").
			With("operation", "insert institution").
			With("domain", institution.Domain).
			Wrap(err)
	}
	return nil
}

// GetByID retrieves an institution by ID.
func (r *InstitutionRepository) GetByID(ctx context.Context, id ulid.ULID) (*auth.Institution, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, domain_name, created_at
		FROM institutions
		WHERE id = $1
	`, id.String())

	institution, err := scanInstitution(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("INSTITUTION_NOT_FOUND").
			With("id", id.String()).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("INSTITUTION_GET_BY_ID_FAILED").
			With("operation", "get institution by id").
			With("id", id.String()).
			Wrap(err)
	}
	return institution, nil
}

// GetByDomain retrieves an institution by exact domain string.
func (r *InstitutionRepository) GetByDomain(ctx context.Context, domain string) (*auth.Institution, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, domain_name, created_at
		FROM institutions
		WHERE domain_name = $1
	`, domain)

	institution, err := scanInstitution(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("INSTITUTION_NOT_FOUND").
			With("domain", domain).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("INSTITUTION_GET_BY_DOMAIN_FAILED").
			With("operation", "get institution by domain").
			With("domain", domain).
			Wrap(err)
	}
	return institution, nil
}

// scanInstitution scans a single row into an Institution.
// Callers are responsible for handling pgx.ErrNoRows.
func scanInstitution(row pgx.Row) (*auth.Institution, error) {
	var (
		idStr     string
		domain    string
		createdAt time.Time
	)

	err := row.Scan(&idStr, &domain, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.Code("INSTITUTION_SCAN_FAILED").
			With("operation", "scan institution").
			Wrap(err)
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("INSTITUTION_INVALID_ID").
			With("id", idStr).
			Wrap(err)
	}

	return &auth.Institution{
		ID:        id,
		Domain:    domain,
		CreatedAt: createdAt,
	}, nil
}

// Compile-time interface check.
var _ auth.InstitutionRepository = (*InstitutionRepository)(nil)
