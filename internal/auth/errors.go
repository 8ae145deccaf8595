// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CollegeCrew Contributors

package auth

import "errors"

// Sentinel errors forming the closed auth failure taxonomy. Services
// translate storage and crypto failures into these before they cross
// the package boundary, so callers match with errors.Is instead of
// inspecting messages.
var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned by repositories when a unique
	// constraint rejects an insert.
	ErrDuplicate = errors.New("already exists")

	// ErrInvalidEmail is returned when an email has no domain part.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrInvalidInput is returned when a registration field fails
	// validation: empty password or bad alias.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicateIdentity is returned when registering an email that
	// already has an identity.
	ErrDuplicateIdentity = errors.New("email already registered")

	// ErrAuthenticationFailed covers both unknown email and wrong
	// password so login failures are indistinguishable to the caller.
	ErrAuthenticationFailed = errors.New("invalid email or password")

	// ErrInvalidToken is returned when a session token is malformed,
	// unsigned, or fails signature verification.
	ErrInvalidToken = errors.New("invalid session token")
)
