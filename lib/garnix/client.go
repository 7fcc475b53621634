// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

package garnix

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/garnix-insights/garnix-insights/lib/clock"
	"github.com/garnix-insights/garnix-insights/lib/netutil"
	"github.com/garnix-insights/garnix-insights/lib/version"
)

// DefaultBaseURL is the root of the public Garnix API.
const DefaultBaseURL = "https://garnix.io/api"

const (
	// defaultRetryAfter is used when a 429 carries no usable
	// Retry-After header.
	defaultRetryAfter = time.Second

	// maxRetryAfter caps the backoff a server can ask for.
	maxRetryAfter = time.Minute
)

// Config holds configuration for creating a Client.
type Config struct {
	// BaseURL is the root URL for API requests. Defaults to
	// DefaultBaseURL. Must use HTTPS.
	BaseURL string

	// HTTPClient is used for all HTTP requests. Defaults to
	// http.DefaultClient.
	HTTPClient *http.Client

	// Clock provides time operations for rate limit backoff.
	// Defaults to clock.Real().
	Clock clock.Clock

	// Logger is used for structured logging. Defaults to slog.Default().
	Logger *slog.Logger
}

// Client is a Garnix REST API client. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	clock      clock.Clock
	logger     *slog.Logger
	userAgent  string
}

// NewClient creates a Garnix API client from the given configuration.
// Returns an error if the base URL is not HTTPS.
func NewClient(config Config) (*Client, error) {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	if !strings.HasPrefix(baseURL, "https://") {
		return nil, &Error{
			Kind:    KindConfig,
			Message: fmt.Sprintf("garnix: API client requires HTTPS (got %q)", baseURL),
		}
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		clock:      clk,
		logger:     logger,
		userAgent:  "garnix-insights/" + version.Short(),
	}, nil
}

// FetchBuildStatus returns the summary and build list for a commit.
func (client *Client) FetchBuildStatus(ctx context.Context, token, commitID string) (*BuildStatus, error) {
	if err := requireArgument("token", token); err != nil {
		return nil, err
	}
	if err := requireArgument("commit id", commitID); err != nil {
		return nil, err
	}

	var status BuildStatus
	if err := client.get(ctx, token, "/builds/"+url.PathEscape(commitID), "Commit "+commitID, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// FetchBuildLogs returns the log lines recorded for a single build.
func (client *Client) FetchBuildLogs(ctx context.Context, token, buildID string) (*LogResponse, error) {
	if err := requireArgument("token", token); err != nil {
		return nil, err
	}
	if err := requireArgument("build id", buildID); err != nil {
		return nil, err
	}

	var logs LogResponse
	if err := client.get(ctx, token, "/builds/"+url.PathEscape(buildID)+"/logs", "Build "+buildID, &logs); err != nil {
		return nil, err
	}
	return &logs, nil
}

// ValidateToken checks that Garnix accepts token. A nil return means
// the token is valid; an auth-kind error means it was rejected.
func (client *Client) ValidateToken(ctx context.Context, token string) error {
	if err := requireArgument("token", token); err != nil {
		return err
	}
	_, err := client.do(ctx, token, "/user", "User", false)
	return err
}

func requireArgument(name, value string) error {
	if value == "" {
		return &Error{Kind: KindValidation, Message: name + " is required"}
	}
	return nil
}

// get performs a GET and decodes the JSON body into result. resource
// names the requested object in not-found messages ("Commit abc123").
func (client *Client) get(ctx context.Context, token, path, resource string, result any) error {
	body, err := client.do(ctx, token, path, resource, false)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, result); err != nil {
		return &Error{Kind: KindParse, Message: "garnix: decoding response from " + path, Err: err}
	}
	return nil
}

// do executes an authenticated GET against path and returns the body
// of a 2xx response. A 429 is retried once after the server's
// Retry-After delay; isRetry prevents a second retry.
func (client *Client) do(ctx context.Context, token, path, resource string, isRetry bool) ([]byte, error) {
	requestURL := client.baseURL + path

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, &Error{Kind: KindConfig, Message: "garnix: creating request", Err: err}
	}
	request.Header.Set("Authorization", "Bearer "+token)
	request.Header.Set("Accept", "application/json")
	request.Header.Set("User-Agent", client.userAgent)

	started := client.clock.Now()
	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, transportError(requestURL, err)
	}
	defer response.Body.Close()

	body, err := netutil.ReadResponse(response.Body)
	if err != nil {
		return nil, &Error{Kind: KindIO, Message: "garnix: reading response body", Err: err}
	}

	client.logger.Debug("garnix request",
		"path", path,
		"status", response.StatusCode,
		"duration", client.clock.Now().Sub(started),
	)

	switch {
	case response.StatusCode >= 200 && response.StatusCode < 300:
		return body, nil

	case response.StatusCode == http.StatusUnauthorized:
		return nil, &Error{Kind: KindAuth, StatusCode: response.StatusCode, Message: "Invalid JWT token"}

	case response.StatusCode == http.StatusNotFound:
		return nil, &Error{Kind: KindNotFound, StatusCode: response.StatusCode, Message: resource + " not found"}

	case response.StatusCode == http.StatusTooManyRequests:
		if !isRetry {
			delay := retryAfter(response.Header)
			client.logger.Info("rate limited, backing off",
				"duration", delay,
				"path", path,
			)
			select {
			case <-client.clock.After(delay):
			case <-ctx.Done():
				return nil, transportError(requestURL, ctx.Err())
			}
			return client.do(ctx, token, path, resource, true)
		}
		return nil, &Error{Kind: KindRateLimit, StatusCode: response.StatusCode, Message: "Rate limit exceeded"}

	default:
		return nil, &Error{
			Kind:       KindAPI,
			StatusCode: response.StatusCode,
			Message:    fmt.Sprintf("HTTP %d: %s", response.StatusCode, strings.TrimSpace(string(body))),
		}
	}
}

// transportError classifies a failure that prevented any response
// from arriving.
func transportError(requestURL string, err error) *Error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &Error{Kind: KindTimeout, Message: "garnix: request timed out: GET " + requestURL, Err: err}
	}
	return &Error{Kind: KindNetwork, Message: "garnix: GET " + requestURL, Err: err}
}

// retryAfter reads the Retry-After header (delay in seconds), falling
// back to defaultRetryAfter and clamping to maxRetryAfter.
func retryAfter(header http.Header) time.Duration {
	value := header.Get("Retry-After")
	if value == "" {
		return defaultRetryAfter
	}
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds <= 0 {
		return defaultRetryAfter
	}
	return min(time.Duration(seconds)*time.Second, maxRetryAfter)
}
