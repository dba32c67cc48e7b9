// Package selector decides which files a project-wide format run visits,
// applying the configured include/exclude regex rules to relative paths.
package selector

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Selector filters candidate files for project formatting.
type Selector struct {
	include *regexp.Regexp
	exclude *regexp.Regexp
}

// New compiles the include/exclude patterns; empty patterns match
// everything / nothing respectively.
func New(include, exclude string) (*Selector, error) {
	s := &Selector{}
	var err error
	if include != "" {
		if s.include, err = regexp.Compile(include); err != nil {
			return nil, fmt.Errorf("invalid include pattern: %w", err)
		}
	}
	if exclude != "" {
		if s.exclude, err = regexp.Compile(exclude); err != nil {
			return nil, fmt.Errorf("invalid exclude pattern: %w", err)
		}
	}
	return s, nil
}

// Match reports whether the relative path is a Python source file that
// passes the configured filters.
func (s *Selector) Match(relPath string) bool {
	clean := filepath.ToSlash(relPath)
	if !strings.HasSuffix(clean, ".py") && !strings.HasSuffix(clean, ".pyi") {
		return false
	}
	if s.exclude != nil && s.exclude.MatchString(clean) {
		return false
	}
	if s.include != nil && !s.include.MatchString(clean) {
		return false
	}
	return true
}
