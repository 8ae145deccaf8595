// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CollegeCrew Contributors

package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/collegecrew/collegecrew/internal/marketplace"
)

// BidRepository implements marketplace.BidRepository using PostgreSQL.
type BidRepository struct {
	pool poolIface
}

// NewBidRepository creates a new BidRepository.
func NewBidRepository(pool poolIface) *BidRepository {
	return &BidRepository{pool: pool}
}

// Create stores a new bid.
func (r *BidRepository) Create(ctx context.Context, bid *marketplace.Bid) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO bids (id, job_id, bidder_id, amount_cents, proposal, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		bid.ID.String(),
		bid.JobID.String(),
		bid.BidderID.String(),
		bid.AmountCents,
		bid.Proposal,
		string(bid.Status),
		bid.CreatedAt,
	)
	if err != nil {
		return oops.Code("BID_CREATE_FAILED").
			With("operation", "insert bid").
			With("bid_id", bid.ID.String()).
			Wrap(err)
	}
	return nil
}

// GetByID retrieves a bid by ID.
func (r *BidRepository) GetByID(ctx context.Context, id ulid.ULID) (*marketplace.Bid, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, job_id, bidder_id, amount_cents, proposal, status, created_at
		FROM bids
		WHERE id = $1
	`, id.String())

	bid, err := scanBid(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("BID_NOT_FOUND").
			With("id", id.String()).
			Wrap(marketplace.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("BID_GET_BY_ID_FAILED").
			With("operation", "get bid by id").
			With("id", id.String()).
			Wrap(err)
	}
	return bid, nil
}

// ListByJob retrieves all bids for a job, newest first.
func (r *BidRepository) ListByJob(ctx context.Context, jobID ulid.ULID) ([]*marketplace.Bid, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, job_id, bidder_id, amount_cents, proposal, status, created_at
		FROM bids
		WHERE job_id = $1
		ORDER BY id DESC
	`, jobID.String())
	if err != nil {
		return nil, oops.Code("BID_LIST_FAILED").
			With("operation", "list bids by job").
			With("job_id", jobID.String()).
			Wrap(err)
	}
	defer rows.Close()

	var bids []*marketplace.Bid
	for rows.Next() {
		bid, err := scanBid(rows)
		if err != nil {
			return nil, oops.Code("BID_LIST_FAILED").
				With("operation", "scan bid row").
				Wrap(err)
		}
		bids = append(bids, bid)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("BID_LIST_FAILED").
			With("operation", "iterate bids").
			Wrap(err)
	}
	return bids, nil
}

// Update updates an existing bid's status.
func (r *BidRepository) Update(ctx context.Context, bid *marketplace.Bid) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE bids SET status = $2
		WHERE id = $1
	`,
		bid.ID.String(),
		string(bid.Status),
	)
	if err != nil {
		return oops.Code("BID_UPDATE_FAILED").
			With("operation", "update bid").
			With("id", bid.ID.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("BID_NOT_FOUND").
			With("id", bid.ID.String()).
			Wrap(marketplace.ErrNotFound)
	}
	return nil
}

// scanBid scans a single row into a Bid.
// Callers are responsible for handling pgx.ErrNoRows.
func scanBid(row pgx.Row) (*marketplace.Bid, error) {
	var (
		idStr       string
		jobIDStr    string
		bidderIDStr string
		amountCents int64
		proposal    string
		status      string
		createdAt   time.Time
	)

	err := row.Scan(&idStr, &jobIDStr, &bidderIDStr, &amountCents, &proposal, &status, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.Code("BID_SCAN_FAILED").
			With("operation", "scan bid").
			Wrap(err)
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("BID_INVALID_ID").With("id", idStr).Wrap(err)
	}
	jobID, err := ulid.Parse(jobIDStr)
	if err != nil {
		return nil, oops.Code("BID_INVALID_JOB_ID").With("job_id", jobIDStr).Wrap(err)
	}
	bidderID, err := ulid.Parse(bidderIDStr)
	if err != nil {
		return nil, oops.Code("BID_INVALID_BIDDER_ID").With("bidder_id", bidderIDStr).Wrap(err)
	}

	return &marketplace.Bid{
		ID:          id,
		JobID:       jobID,
		BidderID:    bidderID,
		AmountCents: amountCents,
		Proposal:    proposal,
		Status:      marketplace.BidStatus(status),
		CreatedAt:   createdAt,
	}, nil
}

// Compile-time interface check.
var _ marketplace.BidRepository = (*BidRepository)(nil)
