package domain

import "time"

// FormatRecord captures one formatter invocation for the history store.
type FormatRecord struct {
	Timestamp  time.Time    `json:"timestamp"`
	File       string       `json:"file"`
	Command    string       `json:"command"`
	Transport  string       `json:"transport"`
	Status     FormatStatus `json:"status"`
	ExitCode   int          `json:"exit_code"`
	DurationMS int64        `json:"duration_ms"`
}
