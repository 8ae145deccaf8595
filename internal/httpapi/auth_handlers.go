// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CollegeCrew Contributors

package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/collegecrew/collegecrew/internal/auth"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Alias    string `json:"alias"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse mirrors auth.Result on the wire.
type authResponse struct {
	Token         string `json:"token"`
	IdentityID    string `json:"identityId"`
	Email         string `json:"email"`
	Alias         string `json:"alias"`
	InstitutionID string `json:"institutionId"`
}

func toAuthResponse(result *auth.Result) authResponse {
	return authResponse{
		Token:         result.Token,
		IdentityID:    result.IdentityID.String(),
		Email:         result.Email,
		Alias:         result.Alias,
		InstitutionID: result.InstitutionID.String(),
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	result, err := s.authService.Register(r.Context(), req.Email, req.Password, req.Alias)
	if err != nil {
		s.countRegistration("failure")
		s.writeDomainError(w, err)
		return
	}

	s.countRegistration("success")
	s.writeJSON(w, http.StatusCreated, toAuthResponse(result))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	result, err := s.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.countLogin("failure")
		s.writeDomainError(w, err)
		return
	}

	s.countLogin("success")
	s.writeJSON(w, http.StatusOK, toAuthResponse(result))
}

func (s *Server) countRegistration(status string) {
	if s.metrics != nil {
		s.metrics.RegistrationsTotal.WithLabelValues(status).Inc()
	}
}

func (s *Server) countLogin(status string) {
	if s.metrics != nil {
		s.metrics.LoginsTotal.WithLabelValues(status).Inc()
	}
}

func (s *Server) countTokenValidation(result string) {
	if s.metrics != nil {
		s.metrics.TokenValidationTotal.WithLabelValues(result).Inc()
	}
}
