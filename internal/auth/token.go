// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CollegeCrew Contributors

package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// MinTokenSecretLen is the minimum signing secret length in bytes.
const MinTokenSecretLen = 32

// TokenConfig holds the immutable signing configuration. It is
// constructed once at process start and passed by reference into the
// TokenService; there is no late mutation.
type TokenConfig struct {
	// Secret is the symmetric HS256 signing key.
	Secret []byte

	// Lifetime is the validity window stamped into each token.
	Lifetime time.Duration

	// Now overrides the clock, for tests. Defaults to time.Now.
	Now func() time.Time
}

// Claims are the structured fields embedded in a session token's
// payload. A token is fully reconstructible from its own signed
// payload; no server-side record of issued tokens exists.
type Claims struct {
	Subject       string
	IdentityID    ulid.ULID
	Alias         string
	InstitutionID ulid.ULID
	IssuedAt      time.Time
	ExpiresAt     time.Time
}

// sessionClaims is the internal claims type used for JWT encoding.
type sessionClaims struct {
	jwt.RegisteredClaims
	IdentityID    string `json:"identity_id"`
	Alias         string `json:"alias"`
	InstitutionID string `json:"institution_id"`
}

// TokenService issues and validates signed, self-contained session
// tokens. Issuance and validation are pure functions of their inputs
// plus the immutable signing key, so a single instance is safe for
// concurrent use without synchronization.
type TokenService struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

// NewTokenService creates a TokenService, failing fast on a missing
// or short secret or a non-positive lifetime rather than defaulting
// to an insecure value.
func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	if len(cfg.Secret) < MinTokenSecretLen {
		return nil, oops.Code("TOKEN_CONFIG_INVALID").
			With("min_bytes", MinTokenSecretLen).
			Errorf("signing secret must be at least %d bytes", MinTokenSecretLen)
	}
	if cfg.Lifetime <= 0 {
		return nil, oops.Code("TOKEN_CONFIG_INVALID").Errorf("token lifetime must be positive")
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &TokenService{
		secret:   cfg.Secret,
		lifetime: cfg.Lifetime,
		now:      now,
	}, nil
}

// Issue creates a signed session token binding the identity's id,
// email, alias, and institution id. The issued-at and expiry instants
// are embedded in the payload.
func (s *TokenService) Issue(identityID ulid.ULID, email, alias string, institutionID ulid.ULID) (string, error) {
	now := s.now().UTC()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
		},
		IdentityID:    identityID.String(),
		Alias:         alias,
		InstitutionID: institutionID.String(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", oops.Code("TOKEN_SIGN_FAILED").Wrap(err)
	}
	return token, nil
}

// Validate reports whether the token's structure and signature are
// sound. It returns false, never an error, for empty input, malformed
// structure, an unknown algorithm, or a signature mismatch.
//
// Validate deliberately does not check expiry: a well-signed expired
// token still validates. Callers that care about the lifetime check
// IsExpired separately.
func (s *TokenService) Validate(token string) bool {
	_, err := s.parse(token)
	return err == nil
}

// Claims extracts the full claim set from a token. Fails with
// ErrInvalidToken if signature verification fails or the structure is
// malformed. Expired tokens remain readable.
func (s *TokenService) Claims(token string) (Claims, error) {
	parsed, err := s.parse(token)
	if err != nil {
		return Claims{}, err
	}

	identityID, err := ulid.Parse(parsed.IdentityID)
	if err != nil {
		return Claims{}, oops.Code("TOKEN_INVALID").
			With("claim", "identity_id").
			Wrap(ErrInvalidToken)
	}
	institutionID, err := ulid.Parse(parsed.InstitutionID)
	if err != nil {
		return Claims{}, oops.Code("TOKEN_INVALID").
			With("claim", "institution_id").
			Wrap(ErrInvalidToken)
	}
	if parsed.IssuedAt == nil || parsed.ExpiresAt == nil {
		return Claims{}, oops.Code("TOKEN_INVALID").
			With("claim", "iat/exp").
			Wrap(ErrInvalidToken)
	}

	return Claims{
		Subject:       parsed.Subject,
		IdentityID:    identityID,
		Alias:         parsed.Alias,
		InstitutionID: institutionID,
		IssuedAt:      parsed.IssuedAt.Time.UTC(),
		ExpiresAt:     parsed.ExpiresAt.Time.UTC(),
	}, nil
}

// IsExpired reports whether the token is past its embedded lifetime.
// Fails with ErrInvalidToken under the same conditions as Claims.
func (s *TokenService) IsExpired(token string) (bool, error) {
	claims, err := s.Claims(token)
	if err != nil {
		return false, err
	}
	return !s.now().Before(claims.ExpiresAt), nil
}

// Subject extracts the subject email from a token.
func (s *TokenService) Subject(token string) (string, error) {
	claims, err := s.Claims(token)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// IdentityID extracts the identity id claim from a token.
func (s *TokenService) IdentityID(token string) (ulid.ULID, error) {
	claims, err := s.Claims(token)
	if err != nil {
		return ulid.ULID{}, err
	}
	return claims.IdentityID, nil
}

// Alias extracts the display alias claim from a token.
func (s *TokenService) Alias(token string) (string, error) {
	claims, err := s.Claims(token)
	if err != nil {
		return "", err
	}
	return claims.Alias, nil
}

// InstitutionID extracts the institution id claim from a token.
func (s *TokenService) InstitutionID(token string) (ulid.ULID, error) {
	claims, err := s.Claims(token)
	if err != nil {
		return ulid.ULID{}, err
	}
	return claims.InstitutionID, nil
}

// IssuedAt extracts the issuance instant from a token.
func (s *TokenService) IssuedAt(token string) (time.Time, error) {
	claims, err := s.Claims(token)
	if err != nil {
		return time.Time{}, err
	}
	return claims.IssuedAt, nil
}

// ExpiresAt extracts the expiry instant from a token.
func (s *TokenService) ExpiresAt(token string) (time.Time, error) {
	claims, err := s.Claims(token)
	if err != nil {
		return time.Time{}, err
	}
	return claims.ExpiresAt, nil
}

// parse verifies structure and signature without temporal claim
// validation, so expired tokens parse cleanly.
func (s *TokenService) parse(token string) (*sessionClaims, error) {
	if token == "" {
		return nil, oops.Code("TOKEN_INVALID").Wrap(ErrInvalidToken)
	}

	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return nil, oops.Code("TOKEN_INVALID").Wrap(ErrInvalidToken)
	}
	return &claims, nil
}
