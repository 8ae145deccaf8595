// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CollegeCrew Contributors

// Package auth provides authentication and identity provisioning for
// CollegeCrew.
//
// # Domain Types
//
// Domain types (Identity, Institution) should be created using their
// constructors:
//   - NewIdentity - creates an Identity with validated email, alias, and hash
//   - NewInstitution - creates an Institution for an email domain
//
// Direct struct initialization bypasses validation and may create invalid state.
// Repository implementations receive pre-validated types from these constructors.
//
// # Services
//
// Service types coordinate domain operations:
//   - Service - register and login
//   - InstitutionResolver - race-safe find-or-create on email domains
//   - TokenService - stateless signed session tokens
//
// Token validation is split in two: Validate answers "structure and
// signature sound", IsExpired answers "past its lifetime". Callers
// choose which checks they need; the two are never merged.
package auth
