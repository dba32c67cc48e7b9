package domain

import (
	"fmt"
	"strings"
)

// UsesDaemon reports whether an invocation should go through blackd.
// Diff mode always falls back to the subprocess transport because black
// produces the diff itself.
func (c Config) UsesDaemon(diffMode bool) bool {
	return c.Blackd.Enabled && !diffMode
}

// UsesPreCommit reports whether formatting is delegated to the
// pre-commit hook runner. Diff mode bypasses it; the hook rewrites
// files instead of producing a patch.
func (c Config) UsesPreCommit(diffMode bool) bool {
	return c.Black.UsePreCommit && !diffMode
}

// BlackdHost returns the configured daemon host, defaulting to localhost.
func (c Config) BlackdHost() string {
	if c.Blackd.Host != "" {
		return c.Blackd.Host
	}
	return DefaultBlackdHost
}

// BlackdPort returns the configured daemon port, defaulting to blackd's own.
func (c Config) BlackdPort() int {
	if c.Blackd.Port > 0 {
		return c.Blackd.Port
	}
	return DefaultBlackdPort
}

// Encoding returns the configured default encoding label.
func (c Config) Encoding() string {
	if c.Black.DefaultEncoding != "" {
		return c.Black.DefaultEncoding
	}
	return DefaultEncoding
}

// CacheMaxEntries returns the cache cap.
func (c Config) CacheMaxEntries() int {
	if c.Cache.MaxEntries > 0 {
		return c.Cache.MaxEntries
	}
	return DefaultMaxCacheEntries
}

// ValidateConsistency rejects configs that cannot produce a usable invocation.
func (c Config) ValidateConsistency() error {
	if c.Black.LineLength < 0 {
		return fmt.Errorf("black.line_length must not be negative: %d", c.Black.LineLength)
	}
	if c.Blackd.Port < 0 || c.Blackd.Port > 65535 {
		return fmt.Errorf("blackd.port out of range: %d", c.Blackd.Port)
	}
	if c.Cache.MaxEntries < 0 {
		return fmt.Errorf("cache.max_entries must not be negative: %d", c.Cache.MaxEntries)
	}
	for _, v := range c.Black.TargetVersions {
		if !strings.HasPrefix(v, "py") || len(v) < 3 {
			return fmt.Errorf("invalid target version %q (expected e.g. py36)", v)
		}
	}
	return nil
}
