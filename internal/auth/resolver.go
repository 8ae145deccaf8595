// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CollegeCrew Contributors

package auth

import (
	"context"
	"errors"
	"time"

	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"
)

// Find-or-create retry policy. A retry only happens when a concurrent
// first registration for the same domain wins the insert race, so the
// surviving row is visible almost immediately.
const (
	resolveMaxRetries    = 3
	resolveRetryInterval = 10 * time.Millisecond
)

// InstitutionResolver derives an institution from an email address,
// creating the institution record on first sight of its domain.
type InstitutionResolver struct {
	institutions InstitutionRepository
}

// NewInstitutionResolver creates an InstitutionResolver.
func NewInstitutionResolver(institutions InstitutionRepository) (*InstitutionResolver, error) {
	if institutions == nil {
		return nil, oops.Code("AUTH_RESOLVER_INVALID").Errorf("institutions repository is required")
	}
	return &InstitutionResolver{institutions: institutions}, nil
}

// Resolve maps an email to its institution, find-or-create on the
// domain after the first '@'. Under concurrent first registrations for
// the same new domain exactly one row survives: the unique constraint
// on the domain column rejects the losing insert, and the loser
// re-reads the winner's row. All callers observe the same id.
func (r *InstitutionResolver) Resolve(ctx context.Context, email string) (*Institution, error) {
	domain, err := EmailDomain(email)
	if err != nil {
		return nil, err
	}

	var institution *Institution
	backoff := retry.WithMaxRetries(resolveMaxRetries, retry.NewConstant(resolveRetryInterval))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		found, err := r.findOrCreate(ctx, domain)
		if err != nil {
			// Lost the insert race; the winner's row is now there.
			if errors.Is(err, ErrDuplicate) {
				return retry.RetryableError(err)
			}
			return err
		}
		institution = found
		return nil
	})
	if err != nil {
		return nil, oops.Code("AUTH_RESOLVE_FAILED").
			With("domain", domain).
			Wrap(err)
	}
	return institution, nil
}

func (r *InstitutionResolver) findOrCreate(ctx context.Context, domain string) (*Institution, error) {
	existing, err := r.institutions.GetByDomain(ctx, domain)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	institution, err := NewInstitution(domain)
	if err != nil {
		return nil, err
	}
	if err := r.institutions.Create(ctx, institution); err != nil {
		return nil, err
	}
	return institution, nil
}
