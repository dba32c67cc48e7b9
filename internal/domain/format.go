package domain

import (
	"bytes"
	"fmt"
)

// Invocation is one fully resolved formatter call: the argument vector
// for the subprocess transport and the equivalent header mapping for the
// daemon transport, derived from the same configuration snapshot.
type Invocation struct {
	Args     []string
	Headers  map[string]string
	URL      string
	Encoding string
	WorkDir  string
	Diff     bool
}

// String returns the canonical representation used for cache equality.
func (inv Invocation) String() string {
	return fmt.Sprintf("%v", inv.Args)
}

// FormatResult normalizes the outcome of either transport into the
// subprocess shape: exit code, stdout, stderr.
type FormatResult struct {
	Code        int
	Output      []byte
	Diagnostics []byte
	// Hint carries a user-facing remediation suggestion for synthetic
	// transport failures (e.g. how to start blackd).
	Hint string
}

// Unchanged reports whether the formatter declared the input already
// formatted. Black signals this through its stderr text.
func (r FormatResult) Unchanged() bool {
	return bytes.Contains(r.Diagnostics, []byte("unchanged"))
}

// FormatStatus labels an orchestrated invocation's terminal state.
type FormatStatus string

const (
	StatusReformatted FormatStatus = "reformatted"
	StatusUnchanged   FormatStatus = "unchanged"
	StatusCached      FormatStatus = "cached"
	StatusDiffed      FormatStatus = "diffed"
	StatusFailed      FormatStatus = "failed"
	StatusSkipped     FormatStatus = "skipped"
)

// FormatOptions selects per-invocation behavior.
type FormatOptions struct {
	Diff  bool
	Extra []string
}

// FormatOutcome summarizes one orchestrated invocation.
type FormatOutcome struct {
	Status      FormatStatus
	Transport   string
	Diagnostics string
	Hint        string
}

// DaemonState is the tri-state readiness value owned by the daemon manager.
type DaemonState string

const (
	DaemonStopped  DaemonState = "stopped"
	DaemonStarting DaemonState = "starting"
	DaemonReady    DaemonState = "ready"
)

// ProjectReport aggregates a project-wide formatting run.
type ProjectReport struct {
	Reformatted int
	Unchanged   int
	Failed      int
	Cached      int
	Diffs       []string
	Failures    []string
}
