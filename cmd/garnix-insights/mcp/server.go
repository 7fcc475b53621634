// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/garnix-insights/garnix-insights/cmd/garnix-insights/cli"
	"github.com/garnix-insights/garnix-insights/lib/version"
)

// DefaultToolTimeout bounds each provider call made by a tool.
const DefaultToolTimeout = 30 * time.Second

// Server is an MCP server for one session on one byte stream.
type Server struct {
	provider    BuildStatusProvider
	logger      *slog.Logger
	toolTimeout time.Duration
	info        ServerInfo

	tools       []tool
	toolsByName map[string]*tool

	// version is the negotiated protocol version. It is written only
	// by handleInitialize and read when reporting protocolVersion.
	version ProtocolVersion
}

// Option configures optional server behavior.
type Option func(*Server)

// WithLogger sets the logger for framing warnings and per-call debug
// records. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithToolTimeout sets the deadline for each provider call. Values
// that are not positive keep [DefaultToolTimeout].
func WithToolTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		if timeout > 0 {
			s.toolTimeout = timeout
		}
	}
}

// WithServerInfo overrides the serverInfo reported to clients.
func WithServerInfo(info ServerInfo) Option {
	return func(s *Server) {
		s.info = info
	}
}

// NewServer creates a server that answers tool calls from provider and
// starts out at the given protocol version. A version that is not
// supported is replaced by [DefaultVersion].
func NewServer(provider BuildStatusProvider, initial ProtocolVersion, options ...Option) *Server {
	if !IsSupported(initial) {
		initial = DefaultVersion
	}
	s := &Server{
		provider:    provider,
		logger:      slog.New(slog.DiscardHandler),
		toolTimeout: DefaultToolTimeout,
		info:        ServerInfo{Name: "garnix-insights", Version: version.Short()},
		tools:       registry(),
		version:     initial,
	}
	for _, option := range options {
		option(s)
	}

	s.toolsByName = make(map[string]*tool, len(s.tools))
	for i := range s.tools {
		s.toolsByName[s.tools[i].name] = &s.tools[i]
	}
	return s
}

// Version returns the currently negotiated protocol version.
func (s *Server) Version() ProtocolVersion {
	return s.version
}

// Run announces the current protocol version on output, then reads
// requests from input one line at a time and writes one response per
// request until input ends. It returns nil at a clean end of stream
// and an error only when reading or writing fails.
//
// ctx bounds in-flight provider calls; cancelling it does not
// interrupt a blocked read.
func (s *Server) Run(ctx context.Context, input io.Reader, output io.Writer) error {
	frames := newFramer(input, output, s.logger)

	if err := frames.writeMessage(response{
		JSONRPC: "2.0",
		ID:      announcementID,
		Result:  s.initializeResult(),
	}); err != nil {
		return err
	}

	for {
		members, err := frames.readMessage()
		if errors.Is(err, io.EOF) {
			s.logger.Debug("input closed, ending session")
			return nil
		}
		if err != nil {
			return err
		}

		reply := s.handle(ctx, members)
		if err := frames.writeMessage(reply); err != nil {
			return err
		}
	}
}

// handle decodes one message and dispatches it. It always returns a
// response echoing the request id.
func (s *Server) handle(ctx context.Context, members map[string]json.RawMessage) response {
	req := request{ID: members["id"], Params: members["params"]}
	if rawMethod, ok := members["method"]; ok {
		if err := json.Unmarshal(rawMethod, &req.Method); err != nil {
			return errorResponse(req.ID, &rpcError{Code: codeInvalidRequest, Message: "Invalid request: method must be a string"})
		}
	}

	result, rpcErr := s.dispatch(ctx, &req)
	if rpcErr != nil {
		return errorResponse(req.ID, rpcErr)
	}
	return response{JSONRPC: "2.0", ID: req.ID, Result: result}
}

// dispatch routes a request by method. Exactly one of the return
// values is non-nil.
func (s *Server) dispatch(ctx context.Context, req *request) (any, *rpcError) {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req.Params), nil
	case "tools/list":
		return s.handleToolsList()
	case "tools/call":
		result, err := s.handleToolsCall(ctx, req.Params)
		if err != nil {
			return nil, applicationError(err)
		}
		return result, nil
	default:
		return nil, &rpcError{Code: codeMethodNotFound, Message: "Method not found: " + req.Method}
	}
}

func (s *Server) handleInitialize(params json.RawMessage) initializeResult {
	var selector string
	var decoded initializeParams
	if len(params) > 0 && json.Unmarshal(params, &decoded) == nil {
		selector, _ = decoded.ProtocolVersion.(string)
	}

	negotiated := Negotiate(selector)
	if negotiated != s.version {
		s.logger.Debug("protocol version negotiated",
			"selector", selector,
			"previous", s.version,
			"version", negotiated,
		)
	}
	s.version = negotiated
	return s.initializeResult()
}

func (s *Server) initializeResult() initializeResult {
	return initializeResult{
		ProtocolVersion:   s.version,
		ServerInfo:        s.info,
		Capabilities:      serverCapabilities{Tools: toolCapability{ListChanged: false}},
		SupportedVersions: SupportedVersions(),
	}
}

func (s *Server) handleToolsList() (any, *rpcError) {
	descriptions, err := describeTools(s.tools)
	if err != nil {
		return nil, applicationError(err)
	}
	return toolsListResult{Tools: descriptions}, nil
}

func (s *Server) handleToolsCall(ctx context.Context, params json.RawMessage) (toolsCallResult, error) {
	name, rawArguments, err := parseCallParams(params)
	if err != nil {
		return toolsCallResult{}, err
	}

	entry, ok := s.toolsByName[name]
	if !ok {
		return toolsCallResult{}, cli.Validation("Unknown tool: %s", name)
	}

	arguments, err := parseCommitArguments(rawArguments)
	if err != nil {
		return toolsCallResult{}, err
	}

	logger := s.logger.With("tool", name, "commit", arguments.CommitID)
	started := time.Now()

	status, err := fetchWithTimeout(ctx, s.provider, s.toolTimeout, arguments)
	if err != nil {
		logger.Debug("tool call failed", "error", err, "elapsed", time.Since(started))
		return toolsCallResult{}, err
	}

	text, err := entry.render(arguments.CommitID, status)
	if err != nil {
		return toolsCallResult{}, cli.Internal("rendering %s result: %w", name, err)
	}
	logger.Debug("tool call completed", "builds", len(status.Builds), "elapsed", time.Since(started))
	return textResult(text), nil
}

// applicationError converts a tool failure into the -32000 error with
// category data.
func applicationError(err error) *rpcError {
	category := cli.CategoryOf(err)
	return &rpcError{
		Code:    codeApplicationError,
		Message: err.Error(),
		Data: &errorData{
			Category:  string(category),
			Retryable: category.Retryable(),
		},
	}
}

func errorResponse(id json.RawMessage, rpcErr *rpcError) response {
	return response{JSONRPC: "2.0", ID: id, Error: rpcErr}
}
