// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CollegeCrew Contributors

package auth

import (
	"context"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Alias validation constraints.
const (
	MinAliasLength = 1
	MaxAliasLength = 100
)

// Identity is a registered user's credential record. Email and
// InstitutionID are immutable after creation.
type Identity struct {
	ID            ulid.ULID
	Email         string
	PasswordHash  string
	Alias         string
	InstitutionID ulid.ULID
	CreatedAt     time.Time
}

// NewIdentity creates a validated Identity. The password hash must
// already be produced by a PasswordHasher; this constructor never sees
// a plaintext password.
func NewIdentity(email, passwordHash, alias string, institutionID ulid.ULID) (*Identity, error) {
	if _, err := EmailDomain(email); err != nil {
		return nil, err
	}
	if passwordHash == "" {
		return nil, oops.Code("AUTH_INVALID_HASH").Errorf("password hash cannot be empty")
	}
	if err := ValidateAlias(alias); err != nil {
		return nil, err
	}
	if institutionID.Compare(ulid.ULID{}) == 0 {
		return nil, oops.Code("AUTH_INVALID_INSTITUTION").Errorf("institution ID cannot be zero")
	}

	return &Identity{
		ID:            ulid.Make(),
		Email:         email,
		PasswordHash:  passwordHash,
		Alias:         alias,
		InstitutionID: institutionID,
		CreatedAt:     time.Now().UTC(),
	}, nil
}

// ValidateAlias validates a display alias.
func ValidateAlias(alias string) error {
	if len(alias) < MinAliasLength {
		return oops.Code("AUTH_INVALID_ALIAS").
			With("min", MinAliasLength).
			Errorf("alias cannot be empty")
	}
	if len(alias) > MaxAliasLength {
		return oops.Code("AUTH_INVALID_ALIAS").
			With("max", MaxAliasLength).
			Errorf("alias must be at most %d characters", MaxAliasLength)
	}
	return nil
}

// EmailDomain extracts the institution domain from an email address:
// the substring after the first '@', case-sensitive. Returns
// ErrInvalidEmail when the email is empty, has no '@', or the domain
// part is empty.
func EmailDomain(email string) (string, error) {
	if email == "" {
		return "", oops.Code("AUTH_INVALID_EMAIL").Wrap(ErrInvalidEmail)
	}
	_, domain, found := strings.Cut(email, "@")
	if !found || domain == "" {
		return "", oops.Code("AUTH_INVALID_EMAIL").
			With("email", email).
			Wrap(ErrInvalidEmail)
	}
	return domain, nil
}

// IdentityRepository manages identity persistence.
type IdentityRepository interface {
	// Create stores a new identity. Returns ErrDuplicate if the email
	// is already registered.
	Create(ctx context.Context, identity *Identity) error

	// GetByID retrieves an identity by ID. Returns ErrNotFound if absent.
	GetByID(ctx context.Context, id ulid.ULID) (*Identity, error)

	// GetByEmail retrieves an identity by exact email. Returns
	// ErrNotFound if absent.
	GetByEmail(ctx context.Context, email string) (*Identity, error)
}
