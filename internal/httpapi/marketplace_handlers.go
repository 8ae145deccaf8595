// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CollegeCrew Contributors

package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/oklog/ulid/v2"

	"github.com/collegecrew/collegecrew/internal/marketplace"
)

type createJobRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	BudgetCents int64  `json:"budgetCents"`
}

type jobResponse struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	BudgetCents   int64   `json:"budgetCents"`
	Status        string  `json:"status"`
	PosterID      string  `json:"posterId"`
	AssigneeID    *string `json:"assigneeId,omitempty"`
	InstitutionID string  `json:"institutionId"`
}

func toJobResponse(job *marketplace.Job) jobResponse {
	resp := jobResponse{
		ID:            job.ID.String(),
		Title:         job.Title,
		Description:   job.Description,
		BudgetCents:   job.BudgetCents,
		Status:        string(job.Status),
		PosterID:      job.PosterID.String(),
		InstitutionID: job.InstitutionID.String(),
	}
	if job.AssigneeID != nil {
		assignee := job.AssigneeID.String()
		resp.AssigneeID = &assignee
	}
	return resp
}

type placeBidRequest struct {
	AmountCents int64  `json:"amountCents"`
	Proposal    string `json:"proposal"`
}

type bidResponse struct {
	ID          string `json:"id"`
	JobID       string `json:"jobId"`
	BidderID    string `json:"bidderId"`
	AmountCents int64  `json:"amountCents"`
	Proposal    string `json:"proposal"`
	Status      string `json:"status"`
}

func toBidResponse(bid *marketplace.Bid) bidResponse {
	return bidResponse{
		ID:          bid.ID.String(),
		JobID:       bid.JobID.String(),
		BidderID:    bid.BidderID.String(),
		AmountCents: bid.AmountCents,
		Proposal:    bid.Proposal,
		Status:      string(bid.Status),
	}
}

type recordTransactionRequest struct {
	PayeeID     string `json:"payeeId"`
	AmountCents int64  `json:"amountCents"`
}

type transactionResponse struct {
	ID          string `json:"id"`
	JobID       string `json:"jobId"`
	PayerID     string `json:"payerId"`
	PayeeID     string `json:"payeeId"`
	AmountCents int64  `json:"amountCents"`
	Status      string `json:"status"`
}

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r.Context())
	if !ok {
		s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
		return
	}

	var req createJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	job, err := marketplace.NewJob(req.Title, req.Description, req.BudgetCents, claims.IdentityID, claims.InstitutionID)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if err := s.jobs.Create(r.Context(), job); err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, toJobResponse(job))
}

// handleListJobs lists the jobs of the caller's own institution. The
// institution comes from the token claims, never from the request, so
// cross-campus listing is not reachable.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r.Context())
	if !ok {
		s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
		return
	}

	jobs, err := s.jobs.ListByInstitution(r.Context(), claims.InstitutionID)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	resp := make([]jobResponse, 0, len(jobs))
	for _, job := range jobs {
		resp = append(resp, toJobResponse(job))
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePlaceBid(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r.Context())
	if !ok {
		s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
		return
	}

	jobID, err := ulid.Parse(r.PathValue("id"))
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid job id"})
		return
	}

	var req placeBidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	job, err := s.jobs.GetByID(r.Context(), jobID)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	if job.InstitutionID.Compare(claims.InstitutionID) != 0 {
		// Jobs outside the caller's institution are invisible.
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
		return
	}
	if job.Status != marketplace.JobStatusOpen {
		s.writeJSON(w, http.StatusConflict, errorResponse{Error: "job is not open for bids"})
		return
	}

	bid, err := marketplace.NewBid(job.ID, claims.IdentityID, req.AmountCents, req.Proposal)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if err := s.bids.Create(r.Context(), bid); err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, toBidResponse(bid))
}

func (s *Server) handleListBids(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r.Context())
	if !ok {
		s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
		return
	}

	jobID, err := ulid.Parse(r.PathValue("id"))
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid job id"})
		return
	}

	job, err := s.jobs.GetByID(r.Context(), jobID)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	if job.InstitutionID.Compare(claims.InstitutionID) != 0 {
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
		return
	}

	bids, err := s.bids.ListByJob(r.Context(), jobID)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	resp := make([]bidResponse, 0, len(bids))
	for _, bid := range bids {
		resp = append(resp, toBidResponse(bid))
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// handleRecordTransaction records a payment from the caller to the
// payee for a job in the caller's institution.
func (s *Server) handleRecordTransaction(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r.Context())
	if !ok {
		s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
		return
	}

	jobID, err := ulid.Parse(r.PathValue("id"))
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid job id"})
		return
	}

	var req recordTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	payeeID, err := ulid.Parse(req.PayeeID)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid payee id"})
		return
	}

	job, err := s.jobs.GetByID(r.Context(), jobID)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	if job.InstitutionID.Compare(claims.InstitutionID) != 0 {
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
		return
	}

	txn, err := marketplace.NewTransaction(job.ID, claims.IdentityID, payeeID, req.AmountCents)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if err := s.transactions.Create(r.Context(), txn); err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, transactionResponse{
		ID:          txn.ID.String(),
		JobID:       txn.JobID.String(),
		PayerID:     txn.PayerID.String(),
		PayeeID:     txn.PayeeID.String(),
		AmountCents: txn.AmountCents,
		Status:      string(txn.Status),
	})
}
