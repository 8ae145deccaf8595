// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CollegeCrew Contributors

package auth_test

import (
	"strings"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collegecrew/collegecrew/internal/auth"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func newTestTokenService(t *testing.T, lifetime time.Duration, now func() time.Time) *auth.TokenService {
	t.Helper()
	svc, err := auth.NewTokenService(auth.TokenConfig{
		Secret:   testSecret,
		Lifetime: lifetime,
		Now:      now,
	})
	require.NoError(t, err)
	return svc
}

func TestNewTokenService(t *testing.T) {
	t.Run("rejects short secret", func(t *testing.T) {
		_, err := auth.NewTokenService(auth.TokenConfig{
			Secret:   []byte("too-short"),
			Lifetime: time.Hour,
		})
		assert.Error(t, err)
	})

	t.Run("rejects missing secret", func(t *testing.T) {
		_, err := auth.NewTokenService(auth.TokenConfig{Lifetime: time.Hour})
		assert.Error(t, err)
	})

	t.Run("rejects non-positive lifetime", func(t *testing.T) {
		_, err := auth.NewTokenService(auth.TokenConfig{Secret: testSecret})
		assert.Error(t, err)
	})
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService(t, time.Hour, nil)
	identityID := ulid.Make()
	institutionID := ulid.Make()

	token, err := svc.Issue(identityID, "a@school.edu", "alice", institutionID)
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	assert.True(t, svc.Validate(token))

	claims, err := svc.Claims(token)
	require.NoError(t, err)
	assert.Equal(t, "a@school.edu", claims.Subject)
	assert.Equal(t, identityID, claims.IdentityID)
	assert.Equal(t, "alice", claims.Alias)
	assert.Equal(t, institutionID, claims.InstitutionID)
	assert.Equal(t, claims.IssuedAt.Add(time.Hour), claims.ExpiresAt)

	expired, err := svc.IsExpired(token)
	require.NoError(t, err)
	assert.False(t, expired)
}

func TestTokenValidate(t *testing.T) {
	svc := newTestTokenService(t, time.Hour, nil)

	t.Run("rejects empty token", func(t *testing.T) {
		assert.False(t, svc.Validate(""))
	})

	t.Run("rejects malformed token", func(t *testing.T) {
		assert.False(t, svc.Validate("not.a.jwt"))
		assert.False(t, svc.Validate("onlyonepart"))
	})

	t.Run("rejects tampered token", func(t *testing.T) {
		token, err := svc.Issue(ulid.Make(), "a@school.edu", "alice", ulid.Make())
		require.NoError(t, err)

		last := token[len(token)-1]
		flipped := byte('A')
		if last == 'A' {
			flipped = 'B'
		}
		tampered := token[:len(token)-1] + string(flipped)
		assert.False(t, svc.Validate(tampered))
	})

	t.Run("rejects token signed with a different secret", func(t *testing.T) {
		other, err := auth.NewTokenService(auth.TokenConfig{
			Secret:   []byte("ffffffffffffffffffffffffffffffff"),
			Lifetime: time.Hour,
		})
		require.NoError(t, err)

		token, err := other.Issue(ulid.Make(), "a@school.edu", "alice", ulid.Make())
		require.NoError(t, err)
		assert.False(t, svc.Validate(token))
	})

	t.Run("expired token still validates", func(t *testing.T) {
		past := time.Now().Add(-2 * time.Hour)
		issuer := newTestTokenService(t, time.Hour, func() time.Time { return past })

		token, err := issuer.Issue(ulid.Make(), "a@school.edu", "alice", ulid.Make())
		require.NoError(t, err)

		// Structure and signature are sound, so validation passes even
		// though the embedded expiry is in the past.
		assert.True(t, svc.Validate(token))

		expired, err := svc.IsExpired(token)
		require.NoError(t, err)
		assert.True(t, expired)
	})
}

func TestTokenIsExpired(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	clock := base
	svc := newTestTokenService(t, time.Minute, func() time.Time { return clock })

	token, err := svc.Issue(ulid.Make(), "a@school.edu", "alice", ulid.Make())
	require.NoError(t, err)

	t.Run("fresh token is not expired", func(t *testing.T) {
		clock = base
		expired, err := svc.IsExpired(token)
		require.NoError(t, err)
		assert.False(t, expired)
	})

	t.Run("just before expiry is not expired", func(t *testing.T) {
		clock = base.Add(time.Minute - time.Second)
		expired, err := svc.IsExpired(token)
		require.NoError(t, err)
		assert.False(t, expired)
	})

	t.Run("at expiry instant is expired", func(t *testing.T) {
		clock = base.Add(time.Minute)
		expired, err := svc.IsExpired(token)
		require.NoError(t, err)
		assert.True(t, expired)
	})

	t.Run("invalid token reports error", func(t *testing.T) {
		_, err := svc.IsExpired("garbage")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func TestTokenClaimExtractors(t *testing.T) {
	svc := newTestTokenService(t, time.Hour, nil)
	identityID := ulid.Make()
	institutionID := ulid.Make()

	token, err := svc.Issue(identityID, "b@campus.edu", "bob", institutionID)
	require.NoError(t, err)

	subject, err := svc.Subject(token)
	require.NoError(t, err)
	assert.Equal(t, "b@campus.edu", subject)

	gotIdentity, err := svc.IdentityID(token)
	require.NoError(t, err)
	assert.Equal(t, identityID, gotIdentity)

	alias, err := svc.Alias(token)
	require.NoError(t, err)
	assert.Equal(t, "bob", alias)

	gotInstitution, err := svc.InstitutionID(token)
	require.NoError(t, err)
	assert.Equal(t, institutionID, gotInstitution)

	issuedAt, err := svc.IssuedAt(token)
	require.NoError(t, err)
	expiresAt, err := svc.ExpiresAt(token)
	require.NoError(t, err)
	assert.Equal(t, issuedAt.Add(time.Hour), expiresAt)

	t.Run("extractors fail on invalid token", func(t *testing.T) {
		_, err := svc.Subject("garbage")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}
