package domain

import "errors"

// Sentinel errors for invocation preconditions.
var (
	// ErrCommandUnresolved means no formatter executable could be resolved.
	ErrCommandUnresolved = errors.New("black command not configured")
	// ErrDaemonNotReady means the daemon transport was asked to run before
	// blackd answered its readiness probe.
	ErrDaemonNotReady = errors.New("blackd not ready")
	// ErrViewReadOnly rejects buffer mutation on scratch views.
	ErrViewReadOnly = errors.New("view is read-only")
)

// ConfigurationError aborts an invocation before any buffer mutation and
// carries a remediation hint for the user.
type ConfigurationError struct {
	Hint string
	Err  error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return e.Err.Error() + " (" + e.Hint + ")"
	}
	return e.Hint
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// IsConfiguration reports whether err is a configuration failure.
func IsConfiguration(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce) || errors.Is(err, ErrCommandUnresolved)
}
