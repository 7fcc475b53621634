// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

package mcp

import (
	"encoding/json"

	"github.com/garnix-insights/garnix-insights/cmd/garnix-insights/cli"
)

// JSON-RPC 2.0 error codes used by this server.
const (
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601

	// codeApplicationError is the implementation-defined code for tool
	// failures: bad arguments, unknown tool, provider errors.
	codeApplicationError = -32000
)

// announcementID is the id of the unsolicited message written before
// the first read.
var announcementID = json.RawMessage("0")

// request is a decoded JSON-RPC 2.0 request. The jsonrpc member is
// accepted without validation. ID is kept as raw bytes so it is echoed
// exactly, and is nil when the request carried no id.
type request struct {
	ID     json.RawMessage
	Method string
	Params json.RawMessage
}

// response is a JSON-RPC 2.0 response. Exactly one of Result or Error
// is set. ID has no omitempty: a nil ID marshals as null, which is how
// requests without an id are answered.
type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int        `json:"code"`
	Message string     `json:"message"`
	Data    *errorData `json:"data,omitempty"`
}

// errorData accompanies application errors so clients can decide
// whether to retry, fix their input, or give up without parsing text.
type errorData struct {
	// Category is one of validation, forbidden, not_found, transient,
	// internal.
	Category  string `json:"category"`
	Retryable bool   `json:"retryable"`
}

// initializeParams carries the client's version selector. It is decoded
// loosely: only a JSON string counts as a selector, any other value is
// treated as absent.
type initializeParams struct {
	ProtocolVersion any `json:"protocolVersion"`
}

// initializeResult is both the initialize reply and the announcement.
type initializeResult struct {
	ProtocolVersion   ProtocolVersion    `json:"protocolVersion"`
	ServerInfo        ServerInfo         `json:"serverInfo"`
	Capabilities      serverCapabilities `json:"capabilities"`
	SupportedVersions []ProtocolVersion  `json:"supportedVersions"`
}

// ServerInfo identifies this server to clients.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type serverCapabilities struct {
	Tools toolCapability `json:"tools"`
}

// toolCapability always serializes listChanged: the registry is fixed
// for the life of the process.
type toolCapability struct {
	ListChanged bool `json:"listChanged"`
}

type toolsListResult struct {
	Tools []toolDescription `json:"tools"`
}

type toolDescription struct {
	Name        string               `json:"name"`
	Title       string               `json:"title,omitempty"`
	Description string               `json:"description"`
	InputSchema *cli.Schema          `json:"inputSchema"`
	Annotations *cli.ToolAnnotations `json:"annotations,omitempty"`
}

// toolsCallResult always holds exactly one text block.
type toolsCallResult struct {
	Content []contentBlock `json:"content"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func textResult(text string) toolsCallResult {
	return toolsCallResult{Content: []contentBlock{{Type: "text", Text: text}}}
}
