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

// TransactionRepository implements marketplace.TransactionRepository using PostgreSQL.
type TransactionRepository struct {
	pool poolIface
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool poolIface) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create stores a new transaction.
func (r *TransactionRepository) Create(ctx context.Context, txn *marketplace.Transaction) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO transactions (id, job_id, payer_id, payee_id, amount_cents, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		txn.ID.String(),
		txn.JobID.String(),
		txn.PayerID.String(),
		txn.PayeeID.String(),
		txn.AmountCents,
		string(txn.Status),
		txn.CreatedAt,
	)
	if err != nil {
		return oops.Code("TRANSACTION_CREATE_FAILED").
			With("operation", "insert transaction").
			With("transaction_id", txn.ID.String()).
			Wrap(err)
	}
	return nil
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id ulid.ULID) (*marketplace.Transaction, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, job_id, payer_id, payee_id, amount_cents, status, created_at
		FROM transactions
		WHERE id = $1
	`, id.String())

	txn, err := scanTransaction(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("TRANSACTION_NOT_FOUND").
			With("id", id.String()).
			Wrap(marketplace.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("TRANSACTION_GET_BY_ID_FAILED").
			With("operation", "get transaction by id").
			With("id", id.String()).
			Wrap(err)
	}
	return txn, nil
}

// ListByJob retrieves all transactions for a job, newest first.
func (r *TransactionRepository) ListByJob(ctx context.Context, jobID ulid.ULID) ([]*marketplace.Transaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, job_id, payer_id, payee_id, amount_cents, status, created_at
		FROM transactions
		WHERE job_id = $1
		ORDER BY id DESC
	`, jobID.String())
	if err != nil {
		return nil, oops.Code("TRANSACTION_LIST_FAILED").
			With("operation", "list transactions by job").
			With("job_id", jobID.String()).
			Wrap(err)
	}
	defer rows.Close()

	var txns []*marketplace.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, oops.Code("TRANSACTION_LIST_FAILED").
				With("operation", "scan transaction row").
				Wrap(err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("TRANSACTION_LIST_FAILED").
			With("operation", "iterate transactions").
			Wrap(err)
	}
	return txns, nil
}

// scanTransaction scans a single row into a Transaction.
// Callers are responsible for handling pgx.ErrNoRows.
func scanTransaction(row pgx.Row) (*marketplace.Transaction, error) {
	var (
		idStr       string
		jobIDStr    string
		payerIDStr  string
		payeeIDStr  string
		amountCents int64
		status      string
		createdAt   time.Time
	)

	err := row.Scan(&idStr, &jobIDStr, &payerIDStr, &payeeIDStr, &amountCents, &status, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.Code("TRANSACTION_SCAN_FAILED").
			With("operation", "scan transaction").
			Wrap(err)
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("TRANSACTION_INVALID_ID").With("id", idStr).Wrap(err)
	}
	jobID, err := ulid.Parse(jobIDStr)
	if err != nil {
		return nil, oops.Code("TRANSACTION_INVALID_JOB_ID").With("job_id", jobIDStr).Wrap(err)
	}
	payerID, err := ulid.Parse(payerIDStr)
	if err != nil {
		return nil, oops.Code("TRANSACTION_INVALID_PAYER_ID").With("payer_id", payerIDStr).Wrap(err)
	}
	payeeID, err := ulid.Parse(payeeIDStr)
	if err != nil {
		return nil, oops.Code("TRANSACTION_INVALID_PAYEE_ID").With("payee_id", payeeIDStr).Wrap(err)
	}

	return &marketplace.Transaction{
		ID:          id,
		JobID:       jobID,
		PayerID:     payerID,
		PayeeID:     payeeID,
		AmountCents: amountCents,
		Status:      marketplace.TransactionStatus(status),
		CreatedAt:   createdAt,
	}, nil
}

// Compile-time interface check.
var _ marketplace.TransactionRepository = (*TransactionRepository)(nil)
