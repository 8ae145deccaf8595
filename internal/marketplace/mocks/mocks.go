// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CollegeCrew Contributors

// Package mocks provides testify mocks for marketplace interfaces.
package mocks

import (
	"context"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/mock"

	"github.com/collegecrew/collegecrew/internal/marketplace"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockJobRepository is a mock implementation of marketplace.JobRepository.
type MockJobRepository struct {
	mock.Mock
}

// NewMockJobRepository creates a MockJobRepository that asserts its
// expectations on test cleanup.
func NewMockJobRepository(t testingT) *MockJobRepository {
	m := &MockJobRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockJobRepository) Create(ctx context.Context, job *marketplace.Job) error {
	ret := m.Called(ctx, job)
	return ret.Error(0)
}

func (m *MockJobRepository) GetByID(ctx context.Context, id ulid.ULID) (*marketplace.Job, error) {
	ret := m.Called(ctx, id)
	var job *marketplace.Job
	if ret.Get(0) != nil {
		job = ret.Get(0).(*marketplace.Job)
	}
	return job, ret.Error(1)
}

func (m *MockJobRepository) ListByInstitution(ctx context.Context, institutionID ulid.ULID) ([]*marketplace.Job, error) {
	ret := m.Called(ctx, institutionID)
	var jobs []*marketplace.Job
	if ret.Get(0) != nil {
		jobs = ret.Get(0).([]*marketplace.Job)
	}
	return jobs, ret.Error(1)
}

func (m *MockJobRepository) Update(ctx context.Context, job *marketplace.Job) error {
	ret := m.Called(ctx, job)
	return ret.Error(0)
}

// MockBidRepository is a mock implementation of marketplace.BidRepository.
type MockBidRepository struct {
	mock.Mock
}

// NewMockBidRepository creates a MockBidRepository that asserts its
// expectations on test cleanup.
func NewMockBidRepository(t testingT) *MockBidRepository {
	m := &MockBidRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockBidRepository) Create(ctx context.Context, bid *marketplace.Bid) error {
	ret := m.Called(ctx, bid)
	return ret.Error(0)
}

func (m *MockBidRepository) GetByID(ctx context.Context, id ulid.ULID) (*marketplace.Bid, error) {
	ret := m.Called(ctx, id)
	var bid *marketplace.Bid
	if ret.Get(0) != nil {
		bid = ret.Get(0).(*marketplace.Bid)
	}
	return bid, ret.Error(1)
}

func (m *MockBidRepository) ListByJob(ctx context.Context, jobID ulid.ULID) ([]*marketplace.Bid, error) {
	ret := m.Called(ctx, jobID)
	var bids []*marketplace.Bid
	if ret.Get(0) != nil {
		bids = ret.Get(0).([]*marketplace.Bid)
	}
	return bids, ret.Error(1)
}

func (m *MockBidRepository) Update(ctx context.Context, bid *marketplace.Bid) error {
	ret := m.Called(ctx, bid)
	return ret.Error(0)
}

// MockTransactionRepository is a mock implementation of marketplace.TransactionRepository.
type MockTransactionRepository struct {
	mock.Mock
}

// NewMockTransactionRepository creates a MockTransactionRepository that
// asserts its expectations on test cleanup.
func NewMockTransactionRepository(t testingT) *MockTransactionRepository {
	m := &MockTransactionRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTransactionRepository) Create(ctx context.Context, txn *marketplace.Transaction) error {
	ret := m.Called(ctx, txn)
	return ret.Error(0)
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id ulid.ULID) (*marketplace.Transaction, error) {
	ret := m.Called(ctx, id)
	var txn *marketplace.Transaction
	if ret.Get(0) != nil {
		txn = ret.Get(0).(*marketplace.Transaction)
	}
	return txn, ret.Error(1)
}

func (m *MockTransactionRepository) ListByJob(ctx context.Context, jobID ulid.ULID) ([]*marketplace.Transaction, error) {
	ret := m.Called(ctx, jobID)
	var txns []*marketplace.Transaction
	if ret.Get(0) != nil {
		txns = ret.Get(0).([]*marketplace.Transaction)
	}
	return txns, ret.Error(1)
}

// Compile-time interface checks.
var (
	_ marketplace.JobRepository         = (*MockJobRepository)(nil)
	_ marketplace.BidRepository         = (*MockBidRepository)(nil)
	_ marketplace.TransactionRepository = (*MockTransactionRepository)(nil)
)
