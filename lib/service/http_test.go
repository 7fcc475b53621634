// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/garnix-insights/garnix-insights/lib/testutil"
)

type lockedBuffer struct {
	mu     sync.Mutex
	buffer bytes.Buffer
}

func (b *lockedBuffer) Write(data []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buffer.Write(data)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buffer.String()
}

func TestHTTPServerLifecycle(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		fmt.Fprintf(writer, "ok")
	})

	server := NewHTTPServer(HTTPServerConfig{
		Address:         "127.0.0.1:0",
		Handler:         handler,
		ShutdownTimeout: 2 * time.Second,
		Logger:          logger,
	})

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	serveDone := make(chan error, 1)
	go func() {
		serveDone <- server.Serve(ctx)
	}()

	testutil.RequireClosed(t, server.Ready(), 5*time.Second, "server ready")

	response, err := http.Get("http://" + server.Addr().String() + "/api/v1/health")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	body, _ := io.ReadAll(response.Body)
	response.Body.Close()
	if response.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Errorf("GET = %d %q, want 200 %q", response.StatusCode, body, "ok")
	}

	cancel()

	if err := testutil.RequireReceive(t, serveDone, 5*time.Second, "server shutdown"); err != nil {
		t.Errorf("Serve() = %v, want nil", err)
	}
}

func TestHTTPServerListenError(t *testing.T) {
	occupied, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer occupied.Close()

	server := NewHTTPServer(HTTPServerConfig{
		Address: occupied.Addr().String(),
		Handler: http.NotFoundHandler(),
		Logger:  slog.New(slog.DiscardHandler),
	})
	err = server.Serve(t.Context())
	if err == nil || !strings.Contains(err.Error(), "listening on") {
		t.Fatalf("Serve() = %v, want listen error", err)
	}
}

func TestLogRequests(t *testing.T) {
	var output lockedBuffer
	logger := slog.New(slog.NewTextHandler(&output, &slog.HandlerOptions{Level: slog.LevelDebug}))

	handler := logRequests(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path == "/broken" {
			writer.WriteHeader(http.StatusBadGateway)
			return
		}
		writer.Write([]byte("fine"))
	}), logger)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/build-status/abc1234?token=secret-jwt", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/broken", nil))

	logged := output.String()
	if !strings.Contains(logged, "level=DEBUG") || !strings.Contains(logged, "status=200") {
		t.Errorf("missing debug line for 200: %s", logged)
	}
	if !strings.Contains(logged, "level=WARN") || !strings.Contains(logged, "status=502") {
		t.Errorf("missing warn line for 502: %s", logged)
	}
	if strings.Contains(logged, "secret-jwt") {
		t.Errorf("query string leaked into logs: %s", logged)
	}
}

func TestHTTPServerPanicsOnMissingConfig(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	handler := http.NotFoundHandler()

	tests := []struct {
		name   string
		config HTTPServerConfig
	}{
		{"missing_address", HTTPServerConfig{Handler: handler, Logger: logger}},
		{"missing_handler", HTTPServerConfig{Address: ":0", Logger: logger}},
		{"missing_logger", HTTPServerConfig{Address: ":0", Handler: handler}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Error("NewHTTPServer did not panic")
				}
			}()
			NewHTTPServer(tt.config)
		})
	}
}
