package format

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/doeshing/blackline/internal/domain"
	"github.com/doeshing/blackline/internal/pkg/logger"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("MkdirAll: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
	return root
}

func newProject(cfg domain.Config, cache *memCache, process *stubTransport) *Project {
	return &Project{
		ConfigProvider: staticConfig{cfg: cfg},
		Cache:          cache,
		Process:        process,
		Logger:         logger.NewStd(false),
	}
}

func TestProjectRunRewritesFiles(t *testing.T) {
	root := writeTree(t, map[string]string{
		"app/main.py": "x=1\n",
		"README.md":   "not python\n",
	})
	process := &stubTransport{
		name: "black",
		res:  domain.FormatResult{Code: 0, Output: []byte("x = 1\n"), Diagnostics: []byte(domain.DiagReformatted)},
	}
	p := newProject(testConfig(), &memCache{}, process)

	report, err := p.Run(context.Background(), root, false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Reformatted != 1 || report.Failed != 0 {
		t.Errorf("report = %+v", report)
	}
	data, err := os.ReadFile(filepath.Join(root, "app", "main.py"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "x = 1\n" {
		t.Errorf("file content = %q", data)
	}
	if process.calls != 1 {
		t.Errorf("transport calls = %d, want 1 (non-python files must be skipped)", process.calls)
	}
}

func TestProjectRunCheckModeProducesDiffs(t *testing.T) {
	root := writeTree(t, map[string]string{"m.py": "x=1\n"})
	process := &stubTransport{
		name: "black",
		res:  domain.FormatResult{Code: 0, Output: []byte("x = 1\n"), Diagnostics: []byte(domain.DiagReformatted)},
	}
	p := newProject(testConfig(), &memCache{}, process)

	report, err := p.Run(context.Background(), root, true)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Reformatted != 1 {
		t.Errorf("report = %+v", report)
	}
	if len(report.Diffs) != 1 || !strings.Contains(report.Diffs[0], "+x = 1") {
		t.Errorf("diffs = %v", report.Diffs)
	}

	data, err := os.ReadFile(filepath.Join(root, "m.py"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "x=1\n" {
		t.Error("check mode rewrote the file")
	}
}

func TestProjectRunHonorsExclude(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/m.py":       "x=1\n",
		".venv/lib.py":   "x=1\n",
		"build/gen.py":   "x=1\n",
		"src/nested.pyi": "x=1\n",
	})
	cfg := testConfig()
	cfg.Project.Exclude = `(\.venv|build)/`
	process := &stubTransport{
		name: "black",
		res:  domain.FormatResult{Code: 0, Diagnostics: []byte(domain.DiagUnchanged)},
	}
	p := newProject(cfg, &memCache{}, process)

	report, err := p.Run(context.Background(), root, false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if process.calls != 2 {
		t.Errorf("transport calls = %d, want 2", process.calls)
	}
	if report.Unchanged != 2 {
		t.Errorf("report = %+v", report)
	}
}

func TestProjectRunCountsCacheHits(t *testing.T) {
	root := writeTree(t, map[string]string{"m.py": "x = 1\n"})
	process := &stubTransport{
		name: "black",
		res:  domain.FormatResult{Code: 0, Diagnostics: []byte(domain.DiagUnchanged)},
	}
	cache := &memCache{}
	p := newProject(testConfig(), cache, process)

	if _, err := p.Run(context.Background(), root, false); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	report, err := p.Run(context.Background(), root, false)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if report.Cached != 1 {
		t.Errorf("report = %+v", report)
	}
	if process.calls != 1 {
		t.Errorf("transport calls = %d, want 1", process.calls)
	}
}

func TestProjectRunCollectsPerFileFailures(t *testing.T) {
	root := writeTree(t, map[string]string{"bad.py": "x=(\n"})
	process := &stubTransport{
		name: "black",
		res:  domain.FormatResult{Code: 123, Diagnostics: []byte("Cannot parse: 1:3")},
	}
	p := newProject(testConfig(), &memCache{}, process)

	report, err := p.Run(context.Background(), root, false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Failed != 1 || len(report.Failures) != 1 {
		t.Errorf("report = %+v", report)
	}
	if !strings.Contains(report.Failures[0], "bad.py") {
		t.Errorf("failure message %q does not name the file", report.Failures[0])
	}
}
