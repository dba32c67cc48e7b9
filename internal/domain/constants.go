package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// DataFilePermissions is the permission for cache and history files (rw-r--r--)
	DataFilePermissions = 0o644
)

// Formatter defaults
const (
	// DefaultBlackCommand is looked up on PATH when black.command is unset
	DefaultBlackCommand = "black"
	// DefaultBlackdCommand starts the formatting daemon
	DefaultBlackdCommand = "blackd"
	// DefaultPreCommitCommand runs the black hook when use_precommit is set
	DefaultPreCommitCommand = "pre-commit"
	// DefaultBlackdHost is the daemon bind host
	DefaultBlackdHost = "localhost"
	// DefaultBlackdPort is blackd's own default port
	DefaultBlackdPort = 45484
	// DefaultEncoding is assumed when the view reports none
	DefaultEncoding = "utf-8"
)

// Limit constants
const (
	// DefaultMaxCacheEntries caps the formatted-content cache file
	DefaultMaxCacheEntries = 250
	// DefaultHistoryLimit is the default number of history records to display
	DefaultHistoryLimit = 20
	// DaemonClientTimeout bounds a single blackd round trip
	DaemonClientTimeout = 60 * time.Second
	// DaemonStartupTimeout bounds the readiness poll after spawning blackd
	DaemonStartupTimeout = 5 * time.Second
)

// Status line messages shown in the editor host.
const (
	StatusKey                     = "blackline"
	ReformattedMessage            = "blackline: reformatted"
	AlreadyFormattedMessage       = "blackline: already formatted"
	AlreadyFormattedCacheMessage  = "blackline: already formatted (cached)"
	BlackdNotInitializedMessage   = "blackd has not finished initializing"
	CommandUnresolvedMessage      = "black command not configured, check your settings"
)

// Diagnostic strings matching black's own stderr vocabulary.
const (
	DiagReformatted = "1 file reformatted"
	DiagUnchanged   = "1 file left unchanged"
	DiagUnknownErr  = "unknown error"
	DiagNoResponse  = "no valid response"
)

// blackd protocol headers.
const (
	HeaderLineLength       = "X-Line-Length"
	HeaderSkipStringNorm   = "X-Skip-String-Normalization"
	HeaderFastOrSafe       = "X-Fast-Or-Safe"
	HeaderPythonVariant    = "X-Python-Variant"
	HeaderDiff             = "X-Diff"
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
)
