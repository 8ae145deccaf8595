// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CollegeCrew Contributors

package observability

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startTestServer(t *testing.T, ready ReadinessChecker) *Server {
	t.Helper()
	srv := NewServer("127.0.0.1:0", ready)
	_, err := srv.Start()
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Stop(ctx)
	})
	return srv
}

func TestServerLiveness(t *testing.T) {
	srv := startTestServer(t, nil)

	resp, err := http.Get(fmt.Sprintf("http://%s/healthz/liveness", srv.Addr()))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServerReadiness(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		srv := startTestServer(t, func() bool { return true })

		resp, err := http.Get(fmt.Sprintf("http://%s/healthz/readiness", srv.Addr()))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("not ready", func(t *testing.T) {
		srv := startTestServer(t, func() bool { return false })

		resp, err := http.Get(fmt.Sprintf("http://%s/healthz/readiness", srv.Addr()))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})
}

func TestServerMetrics(t *testing.T) {
	srv := startTestServer(t, nil)

	srv.Metrics().RegistrationsTotal.WithLabelValues("success").Inc()
	srv.Metrics().LoginsTotal.WithLabelValues("failure").Inc()
	srv.Metrics().TokenValidationTotal.WithLabelValues("ok").Add(3)

	resp, err := http.Get(fmt.Sprintf("http://%s/metrics", srv.Addr()))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `collegecrew_registrations_total{status="success"} 1`)
	assert.Contains(t, string(body), `collegecrew_logins_total{status="failure"} 1`)
	assert.Contains(t, string(body), `collegecrew_token_validations_total{result="ok"} 3`)
}

func TestServerLifecycle(t *testing.T) {
	srv := NewServer("127.0.0.1:0", nil)

	_, err := srv.Start()
	require.NoError(t, err)

	t.Run("double start fails", func(t *testing.T) {
		_, err := srv.Start()
		assert.Error(t, err)
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Stop(ctx))

	t.Run("double stop is a no-op", func(t *testing.T) {
		assert.NoError(t, srv.Stop(ctx))
	})
}
