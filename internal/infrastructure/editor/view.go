// Package editor provides an in-memory implementation of the editor
// host contract. The CLI drives it against files on disk; embedding
// editors supply their own ports.EditorView instead.
package editor

import (
	"os"
	"sync"

	"github.com/doeshing/blackline/internal/domain"
	"github.com/doeshing/blackline/internal/ports"
)

// MemoryView holds a buffer, cursor, fold set and status line.
type MemoryView struct {
	mu       sync.Mutex
	name     string
	content  []byte
	encoding string
	cursor   int
	folds    []domain.FoldRange
	status   string
	readOnly bool
	scratch  []*MemoryView
}

// NewMemoryView builds a view over the given content. An empty encoding
// means "unspecified"; the orchestrator then falls back to the config
// default.
func NewMemoryView(name string, content []byte, encoding string) *MemoryView {
	return &MemoryView{name: name, content: content, encoding: encoding}
}

// LoadFile reads path into a fresh view.
func LoadFile(path, encoding string) (*MemoryView, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewMemoryView(path, data, encoding), nil
}

// Save writes the buffer back to its file name.
func (v *MemoryView) Save() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return os.WriteFile(v.name, v.content, domain.DataFilePermissions)
}

// FileName implements ports.EditorView.
func (v *MemoryView) FileName() string {
	return v.name
}

// Content returns a copy of the buffer bytes.
func (v *MemoryView) Content() []byte {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]byte, len(v.content))
	copy(out, v.content)
	return out
}

// Encoding returns the view's encoding label.
func (v *MemoryView) Encoding() string {
	return v.encoding
}

// Cursor returns the current cursor offset.
func (v *MemoryView) Cursor() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cursor
}

// SetCursor moves the cursor, clamped to the buffer.
func (v *MemoryView) SetCursor(pos int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if pos < 0 {
		pos = 0
	}
	if pos > len(v.content) {
		pos = len(v.content)
	}
	v.cursor = pos
}

// FoldedRegions returns the currently folded ranges.
func (v *MemoryView) FoldedRegions() []domain.FoldRange {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]domain.FoldRange, len(v.folds))
	copy(out, v.folds)
	return out
}

// Fold replaces the folded set.
func (v *MemoryView) Fold(ranges []domain.FoldRange) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.folds = append([]domain.FoldRange(nil), ranges...)
}

// Replace swaps the whole buffer atomically. Existing folds are cleared;
// the caller reapplies reconciled ones.
func (v *MemoryView) Replace(content []byte) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.readOnly {
		return domain.ErrViewReadOnly
	}
	v.content = append([]byte(nil), content...)
	v.folds = nil
	if v.cursor > len(v.content) {
		v.cursor = len(v.content)
	}
	return nil
}

// OpenScratch creates a read-only auxiliary view (e.g. for diff output).
func (v *MemoryView) OpenScratch(name string, content []byte) ports.EditorView {
	scratch := NewMemoryView(name, append([]byte(nil), content...), v.encoding)
	scratch.readOnly = true
	v.mu.Lock()
	v.scratch = append(v.scratch, scratch)
	v.mu.Unlock()
	return scratch
}

// Scratch returns the auxiliary views opened from this one.
func (v *MemoryView) Scratch() []*MemoryView {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]*MemoryView(nil), v.scratch...)
}

// SetStatus records the latest status line message.
func (v *MemoryView) SetStatus(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.status = msg
}

// Status returns the last status message.
func (v *MemoryView) Status() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.status
}

// ReadOnly reports whether the view rejects buffer mutation.
func (v *MemoryView) ReadOnly() bool {
	return v.readOnly
}

var _ ports.EditorView = (*MemoryView)(nil)
