// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CollegeCrew Contributors

package auth

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Institution is a college inferred from an email domain, created
// lazily on first registration from that domain. Exactly one row
// exists per distinct domain string; institutions are never deleted.
type Institution struct {
	ID        ulid.ULID
	Domain    string
	CreatedAt time.Time
}

// NewInstitution creates a validated Institution for a domain.
func NewInstitution(domain string) (*Institution, error) {
	if domain == "" {
		return nil, oops.Code("AUTH_INVALID_DOMAIN").Errorf("domain cannot be empty")
	}

	return &Institution{
		ID:        ulid.Make(),
		Domain:    domain,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// InstitutionRepository manages institution persistence.
type InstitutionRepository interface {
	// Create stores a new institution. Returns ErrDuplicate if an
	// institution with the same domain already exists.
	Create(ctx context.Context, institution *Institution) error

	// GetByID retrieves an institution by ID. Returns ErrNotFound if absent.
	GetByID(ctx context.Context, id ulid.ULID) (*Institution, error)

	// GetByDomain retrieves an institution by exact domain string.
	// Returns ErrNotFound if absent.
	GetByDomain(ctx context.Context, domain string) (*Institution, error)
}
