// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CollegeCrew Contributors

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collegecrew/collegecrew/internal/marketplace"
)

var bidColumns = []string{"id", "job_id", "bidder_id", "amount_cents", "proposal", "status", "created_at"}

func TestBidRepository_Create(t *testing.T) {
	ctx := context.Background()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	bid, err := marketplace.NewBid(ulid.Make(), ulid.Make(), 2000, "I can do this tomorrow")
	require.NoError(t, err)

	mock.ExpectExec(`INSERT INTO bids`).
		WithArgs(bid.ID.String(), bid.JobID.String(), bid.BidderID.String(),
			bid.AmountCents, bid.Proposal, string(bid.Status), bid.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := NewBidRepository(mock)
	require.NoError(t, repo.Create(ctx, bid))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBidRepository_ListByJob(t *testing.T) {
	ctx := context.Background()

	t.Run("returns bids for job", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		jobID := ulid.Make()
		rows := pgxmock.NewRows(bidColumns).
			AddRow(ulid.Make().String(), jobID.String(), ulid.Make().String(),
				int64(2000), "tomorrow", "PENDING", time.Now().UTC()).
			AddRow(ulid.Make().String(), jobID.String(), ulid.Make().String(),
				int64(1800), "today", "PENDING", time.Now().UTC())
		mock.ExpectQuery(`SELECT id, job_id, bidder_id, amount_cents, proposal`).
			WithArgs(jobID.String()).
			WillReturnRows(rows)

		repo := NewBidRepository(mock)
		bids, err := repo.ListByJob(ctx, jobID)
		require.NoError(t, err)
		require.Len(t, bids, 2)
		assert.Equal(t, jobID, bids[0].JobID)
		assert.Equal(t, marketplace.BidStatusPending, bids[0].Status)
	})

	t.Run("no bids returns empty slice", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		jobID := ulid.Make()
		mock.ExpectQuery(`SELECT id, job_id, bidder_id, amount_cents, proposal`).
			WithArgs(jobID.String()).
			WillReturnRows(pgxmock.NewRows(bidColumns))

		repo := NewBidRepository(mock)
		bids, err := repo.ListByJob(ctx, jobID)
		require.NoError(t, err)
		assert.Empty(t, bids)
	})
}

func TestBidRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := ulid.Make()
	mock.ExpectQuery(`SELECT id, job_id, bidder_id, amount_cents, proposal`).
		WithArgs(id.String()).
		WillReturnRows(pgxmock.NewRows(bidColumns))

	repo := NewBidRepository(mock)
	_, err = repo.GetByID(ctx, id)
	assert.ErrorIs(t, err, marketplace.ErrNotFound)
}

func TestBidRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("updates bid status", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		bid, err := marketplace.NewBid(ulid.Make(), ulid.Make(), 2000, "")
		require.NoError(t, err)
		bid.Status = marketplace.BidStatusAccepted

		mock.ExpectExec(`UPDATE bids SET status`).
			WithArgs(bid.ID.String(), "ACCEPTED").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		repo := NewBidRepository(mock)
		require.NoError(t, repo.Update(ctx, bid))
	})

	t.Run("zero rows affected maps to ErrNotFound", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		bid, err := marketplace.NewBid(ulid.Make(), ulid.Make(), 2000, "")
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE bids SET status`).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		repo := NewBidRepository(mock)
		assert.ErrorIs(t, repo.Update(ctx, bid), marketplace.ErrNotFound)
	})
}
