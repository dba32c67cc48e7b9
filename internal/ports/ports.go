// Package ports defines the interfaces between the formatting
// orchestrator and its adapters: transports, the editor host, the
// result cache, and the daemon process manager. The application layer
// depends only on these abstractions, never on concrete adapters.
package ports

import (
	"context"

	"github.com/doeshing/blackline/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.blackline/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// Transport runs one formatter invocation against buffer content and
// returns the normalized (code, output, diagnostics) result. The two
// implementations are the black subprocess and the blackd HTTP daemon;
// callers treat them uniformly.
type Transport interface {
	Name() string
	Format(ctx context.Context, inv domain.Invocation, content []byte) (domain.FormatResult, error)
}

// FormatCache is the bounded content+command de-duplication store used
// to skip redundant formatter calls. Lookup is best-effort: a broken or
// missing cache file reads as a miss, never as an error.
type FormatCache interface {
	Lookup(content []byte, command string) bool
	Record(content []byte, command string) error
	Entries() ([]domain.CacheEntry, error)
	Clear() error
	Path() string
}

// FoldReconciler translates folded ranges across a full-text replacement.
type FoldReconciler interface {
	Reconcile(oldSrc, newSrc []byte, folds []domain.FoldRange) []domain.FoldRange
}

// EditorView is the collaborator contract with the host editor: buffer
// access, cursor and folding state, atomic full replacement, scratch
// view creation, and a status line.
type EditorView interface {
	FileName() string
	Content() []byte
	Encoding() string
	Cursor() int
	SetCursor(pos int)
	FoldedRegions() []domain.FoldRange
	Fold(ranges []domain.FoldRange)
	Replace(content []byte) error
	OpenScratch(name string, content []byte) EditorView
	SetStatus(msg string)
}

// DaemonManager owns the blackd process lifecycle and its tri-state
// readiness value. The orchestrator only consumes Ready.
type DaemonManager interface {
	Start(ctx context.Context, port int) error
	Stop() error
	State() domain.DaemonState
	Ready() bool
	RunningPort() int
}

// HistoryStore persists per-invocation format records.
type HistoryStore interface {
	Save(record domain.FormatRecord) error
	Records(limit int, search string) ([]domain.FormatRecord, error)
	Clear() error
	Path() string
}

// ConfirmationPrompter asks the user a yes/no question, e.g. whether to
// start blackd after a refused connection.
type ConfirmationPrompter interface {
	Confirm(question string) (bool, error)
	Enabled() bool
}

// Clipboard provides cross-platform clipboard integration for copying
// diff output.
type Clipboard interface {
	Copy(text string) error
	Enabled() bool
}

// Logger provides leveled logging for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
