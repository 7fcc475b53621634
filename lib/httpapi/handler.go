// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/klauspost/compress/gzhttp"

	"github.com/garnix-insights/garnix-insights/lib/clock"
	"github.com/garnix-insights/garnix-insights/lib/garnix"
	"github.com/garnix-insights/garnix-insights/lib/netutil"
	"github.com/garnix-insights/garnix-insights/lib/report"
	"github.com/garnix-insights/garnix-insights/lib/version"
)

// Provider is the subset of the Garnix client the API needs.
type Provider interface {
	FetchBuildStatus(ctx context.Context, token, commitID string) (*garnix.BuildStatus, error)
	FetchBuildLogs(ctx context.Context, token, buildID string) (*garnix.LogResponse, error)
}

// Config configures the API handler.
type Config struct {
	// Provider answers every build query. Required.
	Provider Provider

	// Logger is the structured logger. Required.
	Logger *slog.Logger

	// Clock stamps health responses. Defaults to the real clock.
	Clock clock.Clock

	// Version is reported by the health endpoint and index page.
	// Defaults to version.Short().
	Version string
}

// BuildStatusRequest is the POST /api/v1/build-status body.
type BuildStatusRequest struct {
	Token    string `json:"jwt_token"`
	CommitID string `json:"commit_id"`
}

// BuildStatusData is the data member of a successful build status
// response.
type BuildStatusData struct {
	Status          *garnix.BuildStatus `json:"status"`
	SummaryMarkdown string              `json:"summary_markdown"`
	DetailsMarkdown string              `json:"details_markdown"`
	SuccessRate     float64             `json:"success_rate"`
}

// Health is the GET /api/v1/health body.
type Health struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

// endpoints is reported on 404s.
var endpoints = []string{
	"GET /",
	"GET /api/v1/health",
	"POST /api/v1/build-status",
	"GET /api/v1/build-status/{commit_id}",
	"GET /api/v1/builds/{build_id}/logs",
}

type handler struct {
	provider Provider
	logger   *slog.Logger
	clock    clock.Clock
	version  string
	index    []byte
}

// NewHandler builds the routed, gzip-wrapped API handler.
func NewHandler(config Config) (http.Handler, error) {
	if config.Provider == nil {
		panic("httpapi: Provider is required")
	}
	if config.Logger == nil {
		panic("httpapi: Logger is required")
	}

	h := &handler{
		provider: config.Provider,
		logger:   config.Logger,
		clock:    config.Clock,
		version:  config.Version,
	}
	if h.clock == nil {
		h.clock = clock.Real()
	}
	if h.version == "" {
		h.version = version.Short()
	}

	index, err := renderIndex(h.version)
	if err != nil {
		return nil, err
	}
	h.index = index

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.handleIndex)
	mux.HandleFunc("GET /api/v1/health", h.handleHealth)
	mux.HandleFunc("POST /api/v1/build-status", h.handleBuildStatusPost)
	mux.HandleFunc("GET /api/v1/build-status/{commit_id}", h.handleBuildStatusGet)
	mux.HandleFunc("GET /api/v1/builds/{build_id}/logs", h.handleBuildLogs)
	mux.HandleFunc("/", h.handleNotFound)

	return gzhttp.GzipHandler(mux), nil
}

func (h *handler) handleIndex(writer http.ResponseWriter, request *http.Request) {
	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	writer.Write(h.index)
}

func (h *handler) handleHealth(writer http.ResponseWriter, request *http.Request) {
	h.write(writer, request, http.StatusOK, Health{
		Status:    "healthy",
		Service:   "garnix-insights",
		Version:   h.version,
		Timestamp: h.clock.Now().UTC().Format(time.RFC3339),
	}, false)
}

func (h *handler) handleNotFound(writer http.ResponseWriter, request *http.Request) {
	h.sendError(writer, request, http.StatusNotFound, ErrorBody{
		Code:               CodeNotFound,
		Message:            "Endpoint not found",
		AvailableEndpoints: endpoints,
	})
}

func (h *handler) handleBuildStatusPost(writer http.ResponseWriter, request *http.Request) {
	var body BuildStatusRequest
	if err := netutil.DecodeRequest(request.Body, &body); err != nil {
		if errors.Is(err, netutil.ErrBodyTooLarge) {
			h.sendError(writer, request, http.StatusRequestEntityTooLarge, ErrorBody{
				Code:    CodeRequestTooLarge,
				Message: "Request body too large",
			})
			return
		}
		h.sendError(writer, request, http.StatusBadRequest, ErrorBody{
			Code:    CodeInvalidRequest,
			Message: "Request body must be a JSON object with jwt_token and commit_id",
		})
		return
	}

	if body.Token == "" {
		h.sendError(writer, request, http.StatusBadRequest, ErrorBody{Code: CodeMissingToken, Message: "JWT token is required"})
		return
	}
	if body.CommitID == "" {
		h.sendError(writer, request, http.StatusBadRequest, ErrorBody{Code: CodeMissingCommitID, Message: "Commit ID is required"})
		return
	}
	h.serveBuildStatus(writer, request, body.Token, body.CommitID)
}

func (h *handler) handleBuildStatusGet(writer http.ResponseWriter, request *http.Request) {
	token := requestToken(request)
	if token == "" {
		h.sendError(writer, request, http.StatusBadRequest, ErrorBody{
			Code:    CodeMissingToken,
			Message: "JWT token is required as 'token' query parameter or Bearer authorization",
		})
		return
	}
	h.serveBuildStatus(writer, request, token, request.PathValue("commit_id"))
}

func (h *handler) serveBuildStatus(writer http.ResponseWriter, request *http.Request, token, commitID string) {
	if !validCommitID(commitID) {
		h.logger.Warn("invalid commit id", "commit", commitID)
		h.sendError(writer, request, http.StatusBadRequest, ErrorBody{Code: CodeInvalidCommitID, Message: "Invalid commit ID format"})
		return
	}

	h.logger.Info("build status requested", "commit", commitID)
	status, err := h.provider.FetchBuildStatus(request.Context(), token, commitID)
	if err != nil {
		h.providerError(writer, request, "commit", commitID, err)
		return
	}

	h.write(writer, request, http.StatusOK, Envelope{
		Success: true,
		Data: BuildStatusData{
			Status:          status,
			SummaryMarkdown: report.Summary(status),
			DetailsMarkdown: report.Details(status.Builds),
			SuccessRate:     status.SuccessRate(),
		},
	}, true)
}

func (h *handler) handleBuildLogs(writer http.ResponseWriter, request *http.Request) {
	token := requestToken(request)
	if token == "" {
		h.sendError(writer, request, http.StatusBadRequest, ErrorBody{
			Code:    CodeMissingToken,
			Message: "JWT token is required as 'token' query parameter or Bearer authorization",
		})
		return
	}
	buildID := request.PathValue("build_id")

	h.logger.Info("build logs requested", "build", buildID)
	logs, err := h.provider.FetchBuildLogs(request.Context(), token, buildID)
	if err != nil {
		h.providerError(writer, request, "build", buildID, err)
		return
	}
	h.write(writer, request, http.StatusOK, Envelope{Success: true, Data: logs}, true)
}

func (h *handler) providerError(writer http.ResponseWriter, request *http.Request, subject, id string, err error) {
	status, body := providerFailure(err)
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	h.logger.Log(request.Context(), level, "garnix request failed", subject, id, "code", body.Code, "error", err)
	h.sendError(writer, request, status, body)
}

// requestToken returns the ?token= query parameter, falling back to an
// Authorization: Bearer header.
func requestToken(request *http.Request) string {
	if token := request.URL.Query().Get("token"); token != "" {
		return token
	}
	scheme, credentials, found := strings.Cut(request.Header.Get("Authorization"), " ")
	if found && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(credentials)
	}
	return ""
}

// validCommitID accepts hex strings of at least seven characters.
func validCommitID(commitID string) bool {
	if len(commitID) < 7 {
		return false
	}
	for _, r := range commitID {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
