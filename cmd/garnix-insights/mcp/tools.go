// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/garnix-insights/garnix-insights/cmd/garnix-insights/cli"
	"github.com/garnix-insights/garnix-insights/lib/garnix"
	"github.com/garnix-insights/garnix-insights/lib/report"
)

// BuildStatusProvider fetches the build status of a commit. The
// *garnix.Client satisfies it; the server never holds a credential of
// its own and passes the caller's token through.
type BuildStatusProvider interface {
	FetchBuildStatus(ctx context.Context, token, commitID string) (*garnix.BuildStatus, error)
}

// commitArguments is the argument object every tool accepts. Its tags
// generate the advertised inputSchema.
type commitArguments struct {
	CommitID string `json:"commit_id" desc:"Git commit SHA to query" required:"true"`
	Token    string `json:"token" desc:"Garnix JWT token used to authenticate with the Garnix API" required:"true"`
}

// tool is one entry of the fixed registry. render turns a fetched
// build status into the text of the single result block.
type tool struct {
	name        string
	description string
	annotations *cli.ToolAnnotations
	render      func(commitID string, status *garnix.BuildStatus) (string, error)
}

// registry returns the tools in the order tools/list reports them.
func registry() []tool {
	return []tool{
		{
			name:        "get_build_status",
			description: "Get the Garnix CI build status for a commit: the summary counts and every individual build, as JSON.",
			annotations: cli.RemoteQuery("Get build status"),
			render: func(commitID string, status *garnix.BuildStatus) (string, error) {
				return report.IndentedJSON(status)
			},
		},
		{
			name:        "get_build_logs",
			description: "Summarize each build of a commit: build ID, system, status, package, and start and end times.",
			annotations: cli.RemoteQuery("Get build summaries"),
			render: func(commitID string, status *garnix.BuildStatus) (string, error) {
				return report.BuildBlocks(commitID, status), nil
			},
		},
		{
			name:        "check_commit_ready",
			description: "Check whether every Garnix build for a commit has passed, so it is safe to merge or deploy.",
			annotations: cli.RemoteQuery("Check commit readiness"),
			render: func(commitID string, status *garnix.BuildStatus) (string, error) {
				return report.ReadinessMessage(commitID, status), nil
			},
		},
	}
}

// describeTools builds the tools/list payload. The input schema is the
// same for every tool.
func describeTools(tools []tool) ([]toolDescription, error) {
	schema, err := cli.ParamsSchema(&commitArguments{})
	if err != nil {
		return nil, err
	}
	descriptions := make([]toolDescription, 0, len(tools))
	for _, entry := range tools {
		descriptions = append(descriptions, toolDescription{
			Name:        entry.name,
			Title:       entry.annotations.Title,
			Description: entry.description,
			InputSchema: schema,
			Annotations: entry.annotations,
		})
	}
	return descriptions, nil
}

// parseCallParams extracts the tool name and arguments from a
// tools/call envelope. Both keys must be present.
func parseCallParams(params json.RawMessage) (string, json.RawMessage, error) {
	var envelope map[string]json.RawMessage
	if len(params) == 0 || json.Unmarshal(params, &envelope) != nil || envelope == nil {
		return "", nil, cli.Validation("tools/call params must be an object with name and arguments")
	}

	rawName, ok := envelope["name"]
	if !ok {
		return "", nil, cli.Validation("missing required parameter: name")
	}
	var name string
	if err := json.Unmarshal(rawName, &name); err != nil {
		return "", nil, cli.Validation("invalid parameter: name must be a string")
	}

	arguments, ok := envelope["arguments"]
	if !ok {
		return "", nil, cli.Validation("missing required parameter: arguments")
	}
	return name, arguments, nil
}

// parseCommitArguments checks commit_id and then token. A key that is
// absent, not a string, or empty counts as missing.
func parseCommitArguments(arguments json.RawMessage) (commitArguments, error) {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(arguments, &members); err != nil || members == nil {
		return commitArguments{}, cli.Validation("arguments must be an object")
	}

	commitID, ok := stringMember(members, "commit_id")
	if !ok {
		return commitArguments{}, cli.Validation("missing required argument: commit_id")
	}
	token, ok := stringMember(members, "token")
	if !ok {
		return commitArguments{}, cli.Validation("missing required argument: token")
	}
	return commitArguments{CommitID: commitID, Token: token}, nil
}

func stringMember(members map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := members[key]
	if !ok {
		return "", false
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil || value == "" {
		return "", false
	}
	return value, true
}

// fetchResult carries a provider reply across the goroutine boundary
// in fetchWithTimeout.
type fetchResult struct {
	status *garnix.BuildStatus
	err    error
}

// fetchWithTimeout calls the provider under a deadline. The call runs
// on its own goroutine so that a provider which ignores its context
// still cannot stall the session past the deadline.
func fetchWithTimeout(ctx context.Context, provider BuildStatusProvider, timeout time.Duration, arguments commitArguments) (*garnix.BuildStatus, error) {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan fetchResult, 1)
	go func() {
		status, err := provider.FetchBuildStatus(callCtx, arguments.Token, arguments.CommitID)
		done <- fetchResult{status: status, err: err}
	}()

	select {
	case result := <-done:
		if result.err != nil {
			if ctx.Err() == nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) {
				return nil, upstreamTimeout(timeout)
			}
			return nil, cli.FromProviderError(result.err)
		}
		if result.status == nil {
			return nil, cli.Internal("build status provider returned no result for commit %s", arguments.CommitID)
		}
		return result.status, nil
	case <-callCtx.Done():
		if ctx.Err() != nil {
			return nil, cli.Wrap(cli.CategoryTransient, fmt.Errorf("request cancelled: %w", ctx.Err()))
		}
		return nil, upstreamTimeout(timeout)
	}
}

func upstreamTimeout(timeout time.Duration) error {
	return cli.Transient("upstream timeout: build status provider did not respond within %s", timeout)
}
