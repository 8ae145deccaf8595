// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CollegeCrew Contributors

package marketplace

import (
	"context"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// TransactionStatus enumerates the settlement states of a transaction.
type TransactionStatus string

// Transaction settlement states.
const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
)

// Transaction records a payment between two identities for a job.
// Amount is carried in integer cents.
type Transaction struct {
	ID          ulid.ULID
	JobID       ulid.ULID
	PayerID     ulid.ULID
	PayeeID     ulid.ULID
	AmountCents int64
	Status      TransactionStatus
	CreatedAt   time.Time
}

// NewTransaction creates a validated pending Transaction.
func NewTransaction(jobID, payerID, payeeID ulid.ULID, amountCents int64) (*Transaction, error) {
	if jobID.Compare(ulid.ULID{}) == 0 {
		return nil, oops.Code("TRANSACTION_INVALID").Errorf("job ID cannot be zero")
	}
	if payerID.Compare(ulid.ULID{}) == 0 {
		return nil, oops.Code("TRANSACTION_INVALID").Errorf("payer ID cannot be zero")
	}
	if payeeID.Compare(ulid.ULID{}) == 0 {
		return nil, oops.Code("TRANSACTION_INVALID").Errorf("payee ID cannot be zero")
	}
	if payerID.Compare(payeeID) == 0 {
		return nil, oops.Code("TRANSACTION_INVALID").Errorf("payer and payee must differ")
	}
	if amountCents <= 0 {
		return nil, oops.Code("TRANSACTION_INVALID").Errorf("amount must be positive")
	}

	return &Transaction{
		ID:          ulid.Make(),
		JobID:       jobID,
		PayerID:     payerID,
		PayeeID:     payeeID,
		AmountCents: amountCents,
		Status:      TransactionStatusPending,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// TransactionRepository manages transaction persistence.
type TransactionRepository interface {
	// Create stores a new transaction.
	Create(ctx context.Context, txn *Transaction) error

	// GetByID retrieves a transaction by ID. Returns ErrNotFound if absent.
	GetByID(ctx context.Context, id ulid.ULID) (*Transaction, error)

	// ListByJob retrieves all transactions for a job, newest first.
	ListByJob(ctx context.Context, jobID ulid.ULID) ([]*Transaction, error)
}
