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

// JobRepository implements marketplace.JobRepository using PostgreSQL.
type JobRepository struct {
	pool poolIface
}

// NewJobRepository creates a new JobRepository.
func NewJobRepository(pool poolIface) *JobRepository {
	return &JobRepository{pool: pool}
}

// Create stores a new job.
func (r *JobRepository) Create(ctx context.Context, job *marketplace.Job) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO jobs (id, title, description, budget_cents, status, poster_id, assignee_id, institution_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		job.ID.String(),
		job.Title,
		job.Description,
		job.BudgetCents,
		string(job.Status),
		job.PosterID.String(),
		ulidToStringPtr(job.AssigneeID),
		job.InstitutionID.String(),
		job.CreatedAt,
	)
	if err != nil {
		return oops.Code("JOB_CREATE_FAILED").
			With("operation", "insert job").
			With("job_id", job.ID.String()).
			Wrap(err)
	}
	return nil
}

// GetByID retrieves a job by ID.
func (r *JobRepository) GetByID(ctx context.Context, id ulid.ULID) (*marketplace.Job, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, title, description, budget_cents, status, poster_id, assignee_id, institution_id, created_at
		FROM jobs
		WHERE id = $1
	`, id.String())

	job, err := scanJob(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("JOB_NOT_FOUND").
			With("id", id.String()).
			Wrap(marketplace.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("JOB_GET_BY_ID_FAILED").
			With("operation", "get job by id").
			With("id", id.String()).
			Wrap(err)
	}
	return job, nil
}

// ListByInstitution retrieves jobs for one institution, newest first.
func (r *JobRepository) ListByInstitution(ctx context.Context, institutionID ulid.ULID) ([]*marketplace.Job, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, description, budget_cents, status, poster_id, assignee_id, institution_id, created_at
		FROM jobs
		WHERE institution_id = $1
		ORDER BY id DESC
	`, institutionID.String())
	if err != nil {
		return nil, oops.Code("JOB_LIST_FAILED").
			With("operation", "list jobs by institution").
			With("institution_id", institutionID.String()).
			Wrap(err)
	}
	defer rows.Close()

	var jobs []*marketplace.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, oops.Code("JOB_LIST_FAILED").
				With("operation", "scan job row").
				Wrap(err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("JOB_LIST_FAILED").
			With("operation", "iterate jobs").
			Wrap(err)
	}
	return jobs, nil
}

// Update updates an existing job's mutable fields.
func (r *JobRepository) Update(ctx context.Context, job *marketplace.Job) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE jobs SET status = $2, assignee_id = $3
		WHERE id = $1
	`,
		job.ID.String(),
		string(job.Status),
		ulidToStringPtr(job.AssigneeID),
	)
	if err != nil {
		return oops.Code("JOB_UPDATE_FAILED").
			With("operation", "update job").
			With("id", job.ID.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("JOB_NOT_FOUND").
			With("id", job.ID.String()).
			Wrap(marketplace.ErrNotFound)
	}
	return nil
}

// scanJob scans a single row into a Job.
// Callers are responsible for handling pgx.ErrNoRows.
func scanJob(row pgx.Row) (*marketplace.Job, error) {
	var (
		idStr            string
		title            string
		description      string
		budgetCents      int64
		status           string
		posterIDStr      string
		assigneeIDStr    *string
		institutionIDStr string
		createdAt        time.Time
	)

	err := row.Scan(&idStr, &title, &description, &budgetCents, &status,
		&posterIDStr, &assigneeIDStr, &institutionIDStr, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.Code("JOB_SCAN_FAILED").
			With("operation", "scan job").
			Wrap(err)
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("JOB_INVALID_ID").With("id", idStr).Wrap(err)
	}
	posterID, err := ulid.Parse(posterIDStr)
	if err != nil {
		return nil, oops.Code("JOB_INVALID_POSTER_ID").With("poster_id", posterIDStr).Wrap(err)
	}
	assigneeID, err := parseOptionalULID(assigneeIDStr, "assignee_id")
	if err != nil {
		return nil, err
	}
	institutionID, err := ulid.Parse(institutionIDStr)
	if err != nil {
		return nil, oops.Code("JOB_INVALID_INSTITUTION_ID").With("institution_id", institutionIDStr).Wrap(err)
	}

	return &marketplace.Job{
		ID:            id,
		Title:         title,
		Description:   description,
		BudgetCents:   budgetCents,
		Status:        marketplace.JobStatus(status),
		PosterID:      posterID,
		AssigneeID:    assigneeID,
		InstitutionID: institutionID,
		CreatedAt:     createdAt,
	}, nil
}

// Compile-time interface check.
var _ marketplace.JobRepository = (*JobRepository)(nil)
