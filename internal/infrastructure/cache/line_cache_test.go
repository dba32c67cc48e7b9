package cache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestCache(t *testing.T, maxEntries int) *LineCache {
	t.Helper()
	return NewLineCacheAt(filepath.Join(t.TempDir(), "formatted"), maxEntries)
}

func TestLookupMissOnEmptyCache(t *testing.T) {
	c := newTestCache(t, 10)
	if c.Lookup([]byte("x = 1\n"), "[black]") {
		t.Error("lookup hit on an empty cache")
	}
}

func TestRecordThenLookup(t *testing.T) {
	c := newTestCache(t, 10)
	content := []byte("x = 1\n")

	if err := c.Record(content, "[black]"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if !c.Lookup(content, "[black]") {
		t.Error("lookup miss after record")
	}
	if c.Lookup(content, "[black --fast]") {
		t.Error("lookup hit for a different command")
	}
	if c.Lookup([]byte("y = 2\n"), "[black]") {
		t.Error("lookup hit for different content")
	}
}

func TestRecordIsIdempotent(t *testing.T) {
	c := newTestCache(t, 10)
	content := []byte("x = 1\n")

	for i := 0; i < 3; i++ {
		if err := c.Record(content, "[black]"); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	entries, err := c.Entries()
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("got %d entries, want 1", len(entries))
	}
}

func TestEvictionDropsOldestOnly(t *testing.T) {
	c := newTestCache(t, 3)
	bufs := [][]byte{
		[]byte("a = 1\n"),
		[]byte("b = 2\n"),
		[]byte("c = 3\n"),
		[]byte("d = 4\n"),
	}
	for _, buf := range bufs {
		if err := c.Record(buf, "[black]"); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	if c.Lookup(bufs[0], "[black]") {
		t.Error("oldest entry survived eviction")
	}
	for _, buf := range bufs[1:] {
		if !c.Lookup(buf, "[black]") {
			t.Errorf("entry for %q evicted prematurely", buf)
		}
	}

	entries, err := c.Entries()
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[0].Fingerprint != Fingerprint(bufs[3]) {
		t.Error("newest entry is not first")
	}
}

func TestClearRemovesBackingFile(t *testing.T) {
	c := newTestCache(t, 10)
	if err := c.Record([]byte("x = 1\n"), "[black]"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := os.Stat(c.Path()); !os.IsNotExist(err) {
		t.Error("cache file still exists after Clear")
	}
	if c.Lookup([]byte("x = 1\n"), "[black]") {
		t.Error("lookup hit after Clear")
	}
	// Clearing an already empty cache is not an error.
	if err := c.Clear(); err != nil {
		t.Errorf("second Clear: %v", err)
	}
}

func TestMalformedLinesAreSkipped(t *testing.T) {
	c := newTestCache(t, 10)
	content := []byte("x = 1\n")
	if err := c.Record(content, "[black]"); err != nil {
		t.Fatalf("Record: %v", err)
	}

	raw, err := os.ReadFile(c.Path())
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	corrupted := "garbage-without-separator\n" + string(raw)
	if err := os.WriteFile(c.Path(), []byte(corrupted), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if !c.Lookup(content, "[black]") {
		t.Error("valid entry lost after corruption")
	}
	entries, err := c.Entries()
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	for _, entry := range entries {
		if strings.Contains(entry.Fingerprint, "garbage") {
			t.Error("malformed line surfaced as an entry")
		}
	}
}

func TestFingerprintIsDeterministicDecimal(t *testing.T) {
	a := Fingerprint([]byte("x = 1\n"))
	b := Fingerprint([]byte("x = 1\n"))
	if a != b {
		t.Errorf("fingerprints differ: %s vs %s", a, b)
	}
	for _, r := range a {
		if r < '0' || r > '9' {
			t.Fatalf("fingerprint %q is not decimal", a)
		}
	}
	if Fingerprint([]byte("x = 1\n")) == Fingerprint([]byte("x = 2\n")) {
		t.Error("distinct content produced identical fingerprints")
	}
}
