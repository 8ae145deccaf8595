// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CollegeCrew Contributors

// Package marketplace holds the job, bid, and transaction entities of
// the campus marketplace. This is a thin relational layer: entities
// are reached through simple finder/save operations, with no workflow
// engine on top.
package marketplace

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// JobStatus enumerates the lifecycle states of a job posting.
type JobStatus string

// Job lifecycle states.
const (
	JobStatusOpen      JobStatus = "OPEN"
	JobStatusAssigned  JobStatus = "ASSIGNED"
	JobStatusCompleted JobStatus = "COMPLETED"
)

// Job is a short-term job posted within one institution. Budget is
// carried in integer cents.
type Job struct {
	ID            ulid.ULID
	Title         string
	Description   string
	BudgetCents   int64
	Status        JobStatus
	PosterID      ulid.ULID
	AssigneeID    *ulid.ULID
	InstitutionID ulid.ULID
	CreatedAt     time.Time
}

// NewJob creates a validated open Job.
func NewJob(title, description string, budgetCents int64, posterID, institutionID ulid.ULID) (*Job, error) {
	if title == "" {
		return nil, oops.Code("JOB_INVALID").Errorf("title cannot be empty")
	}
	if budgetCents <= 0 {
		return nil, oops.Code("JOB_INVALID").Errorf("budget must be positive")
	}
	if posterID.Compare(ulid.ULID{}) == 0 {
		return nil, oops.Code("JOB_INVALID").Errorf("poster ID cannot be zero")
	}
	if institutionID.Compare(ulid.ULID{}) == 0 {
		return nil, oops.Code("JOB_INVALID").Errorf("institution ID cannot be zero")
	}

	return &Job{
		ID:            ulid.Make(),
		Title:         title,
		Description:   description,
		BudgetCents:   budgetCents,
		Status:        JobStatusOpen,
		PosterID:      posterID,
		InstitutionID: institutionID,
		CreatedAt:     time.Now().UTC(),
	}, nil
}

// JobRepository manages job persistence.
type JobRepository interface {
	// Create stores a new job.
	Create(ctx context.Context, job *Job) error

	// GetByID retrieves a job by ID. Returns ErrNotFound if absent.
	GetByID(ctx context.Context, id ulid.ULID) (*Job, error)

	// ListByInstitution retrieves jobs for one institution, newest first.
	ListByInstitution(ctx context.Context, institutionID ulid.ULID) ([]*Job, error)

	// Update updates an existing job's status and assignee.
	Update(ctx context.Context, job *Job) error
}
