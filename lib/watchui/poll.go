// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

package watchui

import (
	"context"
	"errors"
	"time"

	"github.com/garnix-insights/garnix-insights/lib/clock"
	"github.com/garnix-insights/garnix-insights/lib/garnix"
)

// DefaultInterval is the time between polls.
const DefaultInterval = 10 * time.Second

// ErrInterrupted is returned when the user quits before the builds
// settle.
var ErrInterrupted = errors.New("watch interrupted")

// Fetcher returns the current build status of the watched commit.
type Fetcher func(ctx context.Context) (*garnix.BuildStatus, error)

// Config configures Poll and Run.
type Config struct {
	// CommitID labels the output. Required.
	CommitID string

	// Fetch is called once per poll. Required.
	Fetch Fetcher

	// Interval is the delay between polls. Defaults to
	// DefaultInterval.
	Interval time.Duration

	// Clock drives the delay. Defaults to the real clock.
	Clock clock.Clock
}

func (c Config) withDefaults() Config {
	if c.Interval <= 0 {
		c.Interval = DefaultInterval
	}
	if c.Clock == nil {
		c.Clock = clock.Real()
	}
	return c
}

// Settled reports whether Garnix has scheduled builds for the commit and
// none is still pending.
func Settled(status *garnix.BuildStatus) bool {
	if status == nil || len(status.Builds) == 0 {
		return false
	}
	return status.Summary.Pending == 0 && len(status.PendingBuilds()) == 0
}

// Update is one poll result. Exactly one of Status and Err is set.
type Update struct {
	Status *garnix.BuildStatus
	Err    error
}

// Poll fetches until the commit settles and returns the final status.
// report is called after every fetch, including retryable failures.
// Non-retryable errors and context cancellation end the loop.
func Poll(ctx context.Context, config Config, report func(Update)) (*garnix.BuildStatus, error) {
	config = config.withDefaults()
	for {
		status, err := config.Fetch(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			report(Update{Err: err})
			if !garnix.IsRetryable(err) {
				return nil, err
			}
		} else {
			report(Update{Status: status})
			if Settled(status) {
				return status, nil
			}
		}

		select {
		case <-config.Clock.After(config.Interval):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
