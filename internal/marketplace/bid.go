// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CollegeCrew Contributors

package marketplace

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// BidStatus enumerates the lifecycle states of a bid.
type BidStatus string

// Bid lifecycle states.
const (
	BidStatusPending  BidStatus = "PENDING"
	BidStatusAccepted BidStatus = "ACCEPTED"
	BidStatusRejected BidStatus = "REJECTED"
)

// Bid is an offer to take a job at a price. Amount is carried in
// integer cents.
type Bid struct {
	ID          ulid.ULID
	JobID       ulid.ULID
	BidderID    ulid.ULID
	AmountCents int64
	Proposal    string
	Status      BidStatus
	CreatedAt   time.Time
}

// NewBid creates a validated pending Bid.
func NewBid(jobID, bidderID ulid.ULID, amountCents int64, proposal string) (*Bid, error) {
	if jobID.Compare(ulid.ULID{}) == 0 {
		return nil, oops.Code("BID_INVALID").Errorf("job ID cannot be zero")
	}
	if bidderID.Compare(ulid.ULID{}) == 0 {
		return nil, oops.Code("BID_INVALID").Errorf("bidder ID cannot be zero")
	}
	if amountCents <= 0 {
		return nil, oops.Code("BID_INVALID").Errorf("amount must be positive")
	}

	return &Bid{
		ID:          ulid.Make(),
		JobID:       jobID,
		BidderID:    bidderID,
		AmountCents: amountCents,
		Proposal:    proposal,
		Status:      BidStatusPending,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// BidRepository manages bid persistence.
type BidRepository interface {
	// Create stores a new bid.
	Create(ctx context.Context, bid *Bid) error

	// GetByID retrieves a bid by ID. Returns ErrNotFound if absent.
	GetByID(ctx context.Context, id ulid.ULID) (*Bid, error)

	// ListByJob retrieves all bids for a job, newest first.
	ListByJob(ctx context.Context, jobID ulid.ULID) ([]*Bid, error)

	// Update updates an existing bid's status.
	Update(ctx context.Context, bid *Bid) error
}
