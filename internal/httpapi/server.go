// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CollegeCrew Contributors

// Package httpapi is the thin HTTP shim over the auth and marketplace
// services. It maps requests to service calls and domain errors to
// client error responses; no business logic lives here.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/samber/oops"

	"github.com/collegecrew/collegecrew/internal/auth"
	"github.com/collegecrew/collegecrew/internal/marketplace"
	"github.com/collegecrew/collegecrew/internal/observability"
	"github.com/collegecrew/collegecrew/pkg/errutil"
)

// Server serves the public HTTP API.
type Server struct {
	addr         string
	authService  *auth.Service
	tokens       *auth.TokenService
	jobs         marketplace.JobRepository
	bids         marketplace.BidRepository
	transactions marketplace.TransactionRepository
	metrics      *observability.Metrics
	logger       *slog.Logger

	listener   net.Listener
	httpServer *http.Server
}

// NewServer creates an API server. metrics may be nil when the
// observability server is disabled.
func NewServer(addr string, authService *auth.Service, tokens *auth.TokenService,
	jobs marketplace.JobRepository, bids marketplace.BidRepository,
	transactions marketplace.TransactionRepository,
	metrics *observability.Metrics, logger *slog.Logger) (*Server, error) {
	if authService == nil {
		return nil, oops.Code("API_SERVER_INVALID").Errorf("auth service is required")
	}
	if tokens == nil {
		return nil, oops.Code("API_SERVER_INVALID").Errorf("token service is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		addr:         addr,
		authService:  authService,
		tokens:       tokens,
		jobs:         jobs,
		bids:         bids,
		transactions: transactions,
		metrics:      metrics,
		logger:       logger,
	}, nil
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)

	mux.HandleFunc("POST /api/jobs", s.requireToken(s.handleCreateJob))
	mux.HandleFunc("GET /api/jobs", s.requireToken(s.handleListJobs))
	mux.HandleFunc("POST /api/jobs/{id}/bids", s.requireToken(s.handlePlaceBid))
	mux.HandleFunc("GET /api/jobs/{id}/bids", s.requireToken(s.handleListBids))
	mux.HandleFunc("POST /api/jobs/{id}/transactions", s.requireToken(s.handleRecordTransaction))

	return mux
}

// Start begins serving the API. It returns an error channel that
// receives any error from the HTTP server after it starts.
func (s *Server) Start() (<-chan error, error) {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return nil, oops.With("addr", s.addr).Wrap(err)
	}
	s.listener = listener

	httpSrv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.httpServer = httpSrv

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		if serveErr := httpSrv.Serve(listener); serveErr != nil && serveErr != http.ErrServerClosed {
			slog.Error("api server error", "error", serveErr)
			errCh <- serveErr
		}
	}()

	slog.Info("api server started", "addr", listener.Addr().String())
	return errCh, nil
}

// Stop gracefully shuts down the API server.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return oops.With("operation", "shutdown api server").Wrap(err)
	}
	return nil
}

// Addr returns the address the server is listening on, or empty if
// not running.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return ""
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes v as a JSON response with the given status.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Debug("failed to write response", "error", err)
	}
}

// writeDomainError maps a domain error to a client error response.
// Expected auth failures never surface as server errors, and internal
// detail is not leaked.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidEmail):
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid email format"})
	case errors.Is(err, auth.ErrInvalidInput):
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid input"})
	case errors.Is(err, auth.ErrDuplicateIdentity):
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "email already registered"})
	case errors.Is(err, auth.ErrAuthenticationFailed):
		s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid email or password"})
	case errors.Is(err, auth.ErrInvalidToken):
		s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid token"})
	case errors.Is(err, auth.ErrNotFound), errors.Is(err, marketplace.ErrNotFound):
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	default:
		errutil.LogError(s.logger, "request failed", err)
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
