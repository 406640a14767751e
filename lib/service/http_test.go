// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bureau-foundation/barcamp-bot/lib/testutil"
)

func TestHTTPServerLifecycle(t *testing.T) {
	registry := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "barcamp_test_total", Help: "test"})
	registry.MustRegister(counter)
	counter.Add(3)

	server := NewHTTPServer(HTTPServerConfig{
		Address:         "127.0.0.1:0",
		Handler:         NewMetricsHandler(registry),
		ShutdownTimeout: 2 * time.Second,
		Logger:          discardLogger,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serveDone := make(chan error, 1)
	go func() {
		serveDone <- server.Serve(ctx)
	}()

	testutil.RequireClosed(t, server.Ready(), testutil.DefaultTimeout, "metrics server ready")

	response, err := http.Get("http://" + server.Addr().String() + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	body, _ := io.ReadAll(response.Body)
	response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Errorf("GET /metrics status = %d", response.StatusCode)
	}
	if !strings.Contains(string(body), "barcamp_test_total 3") {
		t.Errorf("metrics output missing counter:\n%s", body)
	}

	cancel()

	if err := testutil.RequireReceive(t, serveDone, testutil.DefaultTimeout, "server shutdown"); err != nil {
		t.Errorf("Serve() = %v, want nil", err)
	}
}

func TestHTTPServerListenError(t *testing.T) {
	server := NewHTTPServer(HTTPServerConfig{
		Address: "256.0.0.1:0",
		Handler: http.NotFoundHandler(),
		Logger:  discardLogger,
	})
	if err := server.Serve(context.Background()); err == nil {
		t.Fatal("expected listen error")
	}
}

func TestMetricsHandlerHealthz(t *testing.T) {
	handler := NewMetricsHandler(prometheus.NewRegistry())

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if recorder.Code != http.StatusOK || recorder.Body.String() != "ok\n" {
		t.Errorf("GET /healthz = %d %q", recorder.Code, recorder.Body.String())
	}

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/metrics", nil))
	if recorder.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST /metrics = %d, want 405", recorder.Code)
	}
}

func TestHTTPServerPanicsOnMissingConfig(t *testing.T) {
	handler := http.NotFoundHandler()

	tests := []struct {
		name   string
		config HTTPServerConfig
	}{
		{name: "missing_address", config: HTTPServerConfig{Handler: handler, Logger: discardLogger}},
		{name: "missing_handler", config: HTTPServerConfig{Address: ":0", Logger: discardLogger}},
		{name: "missing_logger", config: HTTPServerConfig{Address: ":0", Handler: handler}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("NewHTTPServer did not panic")
				}
			}()
			NewHTTPServer(test.config)
		})
	}
}
