// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CollegeCrew Contributors

package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// dummyPasswordHash is used when an identity doesn't exist to prevent
// timing-based account enumeration. We still run password verification
// so the response time stays consistent.
// This is NOT a real credential - it's a fake hash that will never match any password.
//
//nolint:gosec // G101: This is an intentionally fake hash for timing attack prevention, not a credential.
const dummyPasswordHash = "$argon2id$v=19$m=65536,t=1,p=4$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// Result is the response shape shared by Register and Login.
type Result struct {
	Token         string
	IdentityID    ulid.ULID
	Email         string
	Alias         string
	InstitutionID ulid.ULID
}

// Service composes the credential store, institution resolver,
// password hasher, and token service into the two public auth
// operations. Each call is an independent, stateless unit of work.
type Service struct {
	identities IdentityRepository
	resolver   *InstitutionResolver
	hasher     PasswordHasher
	tokens     *TokenService
	logger     *slog.Logger
}

// NewService creates an auth Service.
func NewService(identities IdentityRepository, resolver *InstitutionResolver, hasher PasswordHasher, tokens *TokenService) (*Service, error) {
	return NewServiceWithLogger(identities, resolver, hasher, tokens, slog.Default())
}

// NewServiceWithLogger creates an auth Service with an explicit logger.
func NewServiceWithLogger(identities IdentityRepository, resolver *InstitutionResolver, hasher PasswordHasher, tokens *TokenService, logger *slog.Logger) (*Service, error) {
	if identities == nil {
		return nil, oops.Code("AUTH_SERVICE_INVALID").Errorf("identities repository is required")
	}
	if resolver == nil {
		return nil, oops.Code("AUTH_SERVICE_INVALID").Errorf("institution resolver is required")
	}
	if hasher == nil {
		return nil, oops.Code("AUTH_SERVICE_INVALID").Errorf("password hasher is required")
	}
	if tokens == nil {
		return nil, oops.Code("AUTH_SERVICE_INVALID").Errorf("token service is required")
	}
	if logger == nil {
		return nil, oops.Code("AUTH_SERVICE_INVALID").Errorf("logger is required")
	}
	return &Service{
		identities: identities,
		resolver:   resolver,
		hasher:     hasher,
		tokens:     tokens,
		logger:     logger,
	}, nil
}

// Register provisions a new identity: duplicate check, institution
// resolution, password hash, persist, token issue. Failure at any
// step prevents the later steps, so no half-created identity is left
// behind.
func (s *Service) Register(ctx context.Context, email, password, alias string) (*Result, error) {
	// Field validation happens before any pipeline step so blank form
	// input never reaches the hasher or surfaces as a server error.
	if password == "" {
		return nil, oops.Code("AUTH_INVALID_INPUT").
			With("field", "password").
			Wrap(ErrInvalidInput)
	}
	if err := ValidateAlias(alias); err != nil {
		return nil, oops.Code("AUTH_INVALID_INPUT").
			With("field", "alias").
			Wrap(ErrInvalidInput)
	}

	if _, err := s.identities.GetByEmail(ctx, email); err == nil {
		return nil, oops.Code("AUTH_DUPLICATE_IDENTITY").
			With("email", email).
			Wrap(ErrDuplicateIdentity)
	} else if !errors.Is(err, ErrNotFound) {
		return nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "get identity by email").
			Wrap(err)
	}

	institution, err := s.resolver.Resolve(ctx, email)
	if err != nil {
		if errors.Is(err, ErrInvalidEmail) {
			return nil, err
		}
		return nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "resolve institution").
			Wrap(err)
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "hash password").
			Wrap(err)
	}

	identity, err := NewIdentity(email, digest, alias, institution.ID)
	if err != nil {
		return nil, err
	}

	if err := s.identities.Create(ctx, identity); err != nil {
		// A concurrent registration for the same email won the
		// check-then-insert race; surface the domain error, not the
		// constraint violation.
		if errors.Is(err, ErrDuplicate) {
			return nil, oops.Code("AUTH_DUPLICATE_IDENTITY").
				With("email", email).
				Wrap(ErrDuplicateIdentity)
		}
		return nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "persist identity").
			Wrap(err)
	}

	token, err := s.tokens.Issue(identity.ID, identity.Email, identity.Alias, identity.InstitutionID)
	if err != nil {
		return nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "issue token").
			Wrap(err)
	}

	s.logger.InfoContext(ctx, "identity registered",
		"identity_id", identity.ID.String(),
		"institution_id", institution.ID.String(),
		"domain", institution.Domain,
	)

	return &Result{
		Token:         token,
		IdentityID:    identity.ID,
		Email:         identity.Email,
		Alias:         identity.Alias,
		InstitutionID: identity.InstitutionID,
	}, nil
}

// Login authenticates an identity and issues a session token. Unknown
// email and wrong password are deliberately indistinguishable: both
// surface the same AUTH_INVALID_CREDENTIALS failure, and the missing
// identity path still runs a hash verification to keep response time
// consistent.
func (s *Service) Login(ctx context.Context, email, password string) (*Result, error) {
	identity, lookupErr := s.identities.GetByEmail(ctx, email)

	targetHash := dummyPasswordHash
	identityExists := false

	if lookupErr != nil {
		if !errors.Is(lookupErr, ErrNotFound) {
			return nil, oops.Code("AUTH_LOGIN_FAILED").
				With("operation", "get identity by email").
				Wrap(lookupErr)
		}
	} else {
		targetHash = identity.PasswordHash
		identityExists = true
	}

	valid, verifyErr := s.hasher.Verify(password, targetHash)
	if verifyErr != nil {
		if !identityExists {
			return nil, oops.Code("AUTH_INVALID_CREDENTIALS").Wrap(ErrAuthenticationFailed)
		}
		return nil, oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "verify password").
			Wrap(verifyErr)
	}

	if !identityExists || !valid {
		return nil, oops.Code("AUTH_INVALID_CREDENTIALS").Wrap(ErrAuthenticationFailed)
	}

	token, err := s.tokens.Issue(identity.ID, identity.Email, identity.Alias, identity.InstitutionID)
	if err != nil {
		return nil, oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "issue token").
			Wrap(err)
	}

	s.logger.InfoContext(ctx, "identity logged in", "identity_id", identity.ID.String())

	return &Result{
		Token:         token,
		IdentityID:    identity.ID,
		Email:         identity.Email,
		Alias:         identity.Alias,
		InstitutionID: identity.InstitutionID,
	}, nil
}
