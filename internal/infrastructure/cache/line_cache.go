// Package cache persists the (content fingerprint, command) pairs of
// successful format runs so redundant formatter calls can be skipped.
package cache

import (
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/doeshing/blackline/internal/domain"
	"github.com/doeshing/blackline/internal/pkg/filesystem"
	"github.com/doeshing/blackline/internal/ports"
)

const separator = "|||"

// LineCache is a bounded, line-oriented store: one entry per line in the
// form "<fingerprint>|||<command>", most recent first, capped at
// maxEntries with oldest-first eviction. Lookups are linear scans, which
// the cap keeps at a small constant cost. There is no inter-process
// locking; a lost racing write only costs a redundant reformat.
type LineCache struct {
	path       string
	maxEntries int
	mu         sync.Mutex
}

// NewLineCache returns a cache backed by ~/.blackline/cache/formatted.
func NewLineCache(maxEntries int) *LineCache {
	if maxEntries <= 0 {
		maxEntries = domain.DefaultMaxCacheEntries
	}
	return &LineCache{
		path:       filepath.Join(filesystem.UserHomeDir(), ".blackline", "cache", "formatted"),
		maxEntries: maxEntries,
	}
}

// NewLineCacheAt returns a cache backed by an explicit file path.
func NewLineCacheAt(path string, maxEntries int) *LineCache {
	c := NewLineCache(maxEntries)
	c.path = path
	return c
}

// Lookup reports whether content was already formatted with the given
// command representation. Any read failure counts as a miss. A
// fingerprint collision yields a false positive, an accepted trade-off.
func (c *LineCache) Lookup(content []byte, command string) bool {
	fp := Fingerprint(content)
	for _, entry := range c.read() {
		if entry.Fingerprint == fp && entry.Command == command {
			return true
		}
	}
	return false
}

// Record prepends a new entry unless an equal one exists, evicting the
// oldest entry when the cap is exceeded, and rewrites the file.
func (c *LineCache) Record(content []byte, command string) error {
	if c.Lookup(content, command) {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := c.read()
	entries = append([]domain.CacheEntry{{
		Fingerprint: Fingerprint(content),
		Command:     command,
	}}, entries...)
	if len(entries) > c.maxEntries {
		entries = entries[:c.maxEntries]
	}
	return c.write(entries)
}

// Entries returns all persisted entries, most recent first.
func (c *LineCache) Entries() ([]domain.CacheEntry, error) {
	return c.read(), nil
}

// Clear removes the cache file.
func (c *LineCache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.Remove(c.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Path exposes the backing file path.
func (c *LineCache) Path() string {
	return c.path
}

func (c *LineCache) read() []domain.CacheEntry {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil
	}
	var entries []domain.CacheEntry
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, separator, 2)
		if len(parts) != 2 {
			continue
		}
		entries = append(entries, domain.CacheEntry{Fingerprint: parts[0], Command: parts[1]})
	}
	return entries
}

func (c *LineCache) write(entries []domain.CacheEntry) error {
	if err := os.MkdirAll(filepath.Dir(c.path), domain.DirectoryPermissions); err != nil {
		return err
	}
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, entry.Fingerprint+separator+entry.Command)
	}
	return os.WriteFile(c.path, []byte(strings.Join(lines, "\n")), domain.DataFilePermissions)
}

// Fingerprint computes the non-cryptographic content hash used as the
// cache key (FNV-1a 64, printed in decimal).
func Fingerprint(content []byte) string {
	h := fnv.New64a()
	_, _ = h.Write(content)
	return fmt.Sprintf("%d", h.Sum64())
}

var _ ports.FormatCache = (*LineCache)(nil)
