// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

package garnix

// Status is the state of a single build as reported by Garnix. The
// service sends free-form strings; the four known values have
// constants, anything else is carried through unchanged.
type Status string

const (
	StatusSuccess   Status = "Success"
	StatusFailed    Status = "Failed"
	StatusPending   Status = "Pending"
	StatusCancelled Status = "Cancelled"
)

// Indicator returns the emoji used to mark this status in rendered
// output. Unknown statuses get a question mark.
func (s Status) Indicator() string {
	switch s {
	case StatusSuccess:
		return "✅"
	case StatusFailed:
		return "❌"
	case StatusPending:
		return "⏳"
	case StatusCancelled:
		return "🚫"
	default:
		return "❓"
	}
}

// WithIndicator returns the status prefixed by its indicator, e.g.
// "✅ Success".
func (s Status) WithIndicator() string {
	return s.Indicator() + " " + string(s)
}

// Summary is the per-commit aggregate returned alongside the build list.
type Summary struct {
	RepoOwner    string `json:"repo_owner"`
	RepoName     string `json:"repo_name"`
	RepoIsPublic bool   `json:"repo_is_public"`
	GitCommit    string `json:"git_commit"`
	Branch       string `json:"branch"`
	RequestUser  string `json:"req_user"`
	StartTime    string `json:"start_time"`
	Succeeded    int    `json:"succeeded"`
	Failed       int    `json:"failed"`
	Pending      int    `json:"pending"`
	Cancelled    int    `json:"cancelled"`
}

// Build is one package build within a commit's CI run.
type Build struct {
	ID                  string            `json:"id"`
	RepoUser            string            `json:"repo_user"`
	RepoName            string            `json:"repo_name"`
	Branch              string            `json:"branch"`
	RepoIsPublic        bool              `json:"repo_is_public"`
	GitCommit           string            `json:"git_commit"`
	Package             string            `json:"package"`
	PackageType         string            `json:"package_type"`
	System              string            `json:"system,omitempty"`
	RequestUser         string            `json:"req_user"`
	Status              Status            `json:"status"`
	StartTime           string            `json:"start_time"`
	EndTime             string            `json:"end_time,omitempty"`
	DrvPath             string            `json:"drv_path,omitempty"`
	OutputPaths         map[string]string `json:"output_paths,omitempty"`
	GitHubRunID         uint64            `json:"github_run_id,omitempty"`
	WantsIncrementalism bool              `json:"wants_incrementalism"`
	EvalHost            string            `json:"eval_host,omitempty"`
	UploadedToCache     bool              `json:"uploaded_to_cache"`
}

// BuildStatus is the full response for GET /builds/{commit}.
type BuildStatus struct {
	Summary Summary `json:"summary"`
	Builds  []Build `json:"builds"`

	// Runs is passed through verbatim. Its shape is not documented
	// and nothing here interprets it.
	Runs []any `json:"runs"`
}

// SuccessRate returns the percentage of builds that succeeded, using
// the summary's success count over the number of listed builds. A
// commit with no builds reports 100.
func (s *BuildStatus) SuccessRate() float64 {
	if len(s.Builds) == 0 {
		return 100
	}
	return float64(s.Summary.Succeeded) / float64(len(s.Builds)) * 100
}

// AllSuccessful reports whether no build failed, was cancelled, or is
// still pending.
func (s *BuildStatus) AllSuccessful() bool {
	return s.Summary.Failed == 0 && s.Summary.Cancelled == 0 && s.Summary.Pending == 0
}

// FailedBuilds returns the builds whose status is Failed.
func (s *BuildStatus) FailedBuilds() []Build { return s.filter(StatusFailed) }

// PendingBuilds returns the builds whose status is Pending.
func (s *BuildStatus) PendingBuilds() []Build { return s.filter(StatusPending) }

// SuccessfulBuilds returns the builds whose status is Success.
func (s *BuildStatus) SuccessfulBuilds() []Build { return s.filter(StatusSuccess) }

func (s *BuildStatus) filter(status Status) []Build {
	var matched []Build
	for _, build := range s.Builds {
		if build.Status == status {
			matched = append(matched, build)
		}
	}
	return matched
}

// Readiness classifies whether a commit can be merged or deployed.
type Readiness int

const (
	// ReadinessNotReady means at least one build did not succeed
	// (failed, cancelled, or still pending).
	ReadinessNotReady Readiness = iota

	// ReadinessReady means there is at least one build and every
	// build succeeded.
	ReadinessReady

	// ReadinessNoBuilds means Garnix has not scheduled any builds
	// for the commit yet.
	ReadinessNoBuilds
)

func (r Readiness) String() string {
	switch r {
	case ReadinessReady:
		return "ready"
	case ReadinessNoBuilds:
		return "no_builds"
	default:
		return "not_ready"
	}
}

// Readiness classifies the commit: ready iff there is at least one
// build and the success rate is exactly 100.
func (s *BuildStatus) Readiness() Readiness {
	if len(s.Builds) == 0 {
		return ReadinessNoBuilds
	}
	if s.SuccessRate() == 100 {
		return ReadinessReady
	}
	return ReadinessNotReady
}

// LogEntry is one line of build output.
type LogEntry struct {
	Timestamp string `json:"timestamp"`
	Message   string `json:"log_message"`
}

// LogResponse is the response for GET /builds/{id}/logs.
type LogResponse struct {
	Finished bool       `json:"finished"`
	Logs     []LogEntry `json:"logs"`
}
