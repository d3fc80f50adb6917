// Package contracts defines the events pantry-ci publishes for downstream consumers.
package contracts

// Topics the CLI publishes to when a broker is configured.
const (
	TopicFilterResults    = "pantry_filter_results"
	TopicPlatformResolved = "pantry_platform_resolved"
)

// RunInfo identifies the CI run that produced an event.
type RunInfo struct {
	// GitHub Actions run ID, empty outside Actions.
	RunID string `json:"run_id,omitempty"`
	// Repository in owner/name form, empty outside Actions.
	Repository string `json:"repository,omitempty"`
	// RFC 3339 time the event was produced.
	Timestamp string `json:"timestamp"`
}

// FilterResult is published after the filter command computes its output.
type FilterResult struct {
	RunInfo
	// Package identifiers as given on the command line.
	Requested []string `json:"requested"`
	// Projects kept by the filter, in output order.
	Kept []string `json:"kept"`
	// Whether installed (true) or missing (false) packages were kept.
	Invert bool `json:"invert"`
}

// PlatformResolved is published after the platform command resolves a record.
type PlatformResolved struct {
	RunInfo
	Platform string   `json:"platform"`
	Packages []string `json:"packages"`
	// RunnerSize is the core count the build runner was sized for.
	RunnerSize int `json:"runner_size"`
	// Outputs maps each output key to its JSON-encoded value.
	Outputs map[string]string `json:"outputs"`
}
