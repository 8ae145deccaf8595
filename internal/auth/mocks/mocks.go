// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CollegeCrew Contributors

// Package mocks provides testify mocks for auth interfaces.
package mocks

import (
	"context"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/mock"

	"github.com/collegecrew/collegecrew/internal/auth"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockIdentityRepository is a mock implementation of auth.IdentityRepository.
type MockIdentityRepository struct {
	mock.Mock
}

// NewMockIdentityRepository creates a MockIdentityRepository that
// asserts its expectations on test cleanup.
func NewMockIdentityRepository(t testingT) *MockIdentityRepository {
	m := &MockIdentityRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockIdentityRepository) Create(ctx context.Context, identity *auth.Identity) error {
	ret := m.Called(ctx, identity)
	return ret.Error(0)
}

func (m *MockIdentityRepository) GetByID(ctx context.Context, id ulid.ULID) (*auth.Identity, error) {
	ret := m.Called(ctx, id)
	var identity *auth.Identity
	if ret.Get(0) != nil {
		identity = ret.Get(0).(*auth.Identity)
	}
	return identity, ret.Error(1)
}

func (m *MockIdentityRepository) GetByEmail(ctx context.Context, email string) (*auth.Identity, error) {
	ret := m.Called(ctx, email)
	var identity *auth.Identity
	if ret.Get(0) != nil {
		identity = ret.Get(0).(*auth.Identity)
	}
	return identity, ret.Error(1)
}

// MockInstitutionRepository is a mock implementation of auth.InstitutionRepository.
type MockInstitutionRepository struct {
	mock.Mock
}

// NewMockInstitutionRepository creates a MockInstitutionRepository that
// asserts its expectations on test cleanup.
func NewMockInstitutionRepository(t testingT) *MockInstitutionRepository {
	m := &MockInstitutionRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockInstitutionRepository) Create(ctx context.Context, institution *auth.Institution) error {
	ret := m.Called(ctx, institution)
	return ret.Error(0)
}

func (m *MockInstitutionRepository) GetByID(ctx context.Context, id ulid.ULID) (*auth.Institution, error) {
	ret := m.Called(ctx, id)
	var institution *auth.Institution
	if ret.Get(0) != nil {
		institution = ret.Get(0).(*auth.Institution)
	}
	return institution, ret.Error(1)
}

func (m *MockInstitutionRepository) GetByDomain(ctx context.Context, domain string) (*auth.Institution, error) {
	ret := m.Called(ctx, domain)
	var institution *auth.Institution
	if ret.Get(0) != nil {
		institution = ret.Get(0).(*auth.Institution)
	}
	return institution, ret.Error(1)
}

// MockPasswordHasher is a mock implementation of auth.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

// NewMockPasswordHasher creates a MockPasswordHasher that asserts its
// expectations on test cleanup.
func NewMockPasswordHasher(t testingT) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	ret := m.Called(password)
	return ret.String(0), ret.Error(1)
}

func (m *MockPasswordHasher) Verify(password, digest string) (bool, error) {
	ret := m.Called(password, digest)
	return ret.Bool(0), ret.Error(1)
}

// Compile-time interface checks.
var (
	_ auth.IdentityRepository    = (*MockIdentityRepository)(nil)
	_ auth.InstitutionRepository = (*MockInstitutionRepository)(nil)
	_ auth.PasswordHasher        = (*MockPasswordHasher)(nil)
)
