package format

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/doeshing/blackline/internal/domain"
	"github.com/doeshing/blackline/internal/infrastructure/command"
	"github.com/doeshing/blackline/internal/infrastructure/selector"
	"github.com/doeshing/blackline/internal/pkg/diffview"
	"github.com/doeshing/blackline/internal/ports"
)

// Project formats every selected Python file under a root directory in
// place. It always uses the subprocess transport: a tree walk is a batch
// operation, not an interactive edit.
type Project struct {
	ConfigProvider ports.ConfigProvider
	Cache          ports.FormatCache
	Process        ports.Transport
	Logger         ports.Logger
}

// Run walks root and reformats matching files. In check mode files are
// left untouched and the report carries unified diffs instead.
func (p *Project) Run(ctx context.Context, root string, check bool) (domain.ProjectReport, error) {
	var report domain.ProjectReport

	cfg, err := p.ConfigProvider.Load(ctx)
	if err != nil {
		return report, fmt.Errorf("load config: %w", err)
	}
	sel, err := selector.New(cfg.Project.Include, cfg.Project.Exclude)
	if err != nil {
		return report, err
	}

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		if !sel.Match(rel) {
			return nil
		}
		if err := p.formatFile(ctx, cfg, path, rel, check, &report); err != nil {
			return err
		}
		return ctx.Err()
	})
	return report, walkErr
}

func (p *Project) formatFile(ctx context.Context, cfg domain.Config, path, rel string, check bool, report *domain.ProjectReport) error {
	data, err := os.ReadFile(path)
	if err != nil {
		report.Failed++
		report.Failures = append(report.Failures, fmt.Sprintf("%s: %v", rel, err))
		return nil
	}

	inv, err := command.NewBuilder(cfg, path).Build()
	if err != nil {
		// An unresolvable formatter fails the whole run, not one file.
		return err
	}

	if p.Cache.Lookup(data, inv.String()) {
		report.Cached++
		return nil
	}

	res, err := p.Process.Format(ctx, inv, data)
	if err != nil {
		if domain.IsConfiguration(err) {
			return err
		}
		report.Failed++
		report.Failures = append(report.Failures, fmt.Sprintf("%s: %v", rel, err))
		return nil
	}

	switch {
	case res.Code != 0:
		report.Failed++
		report.Failures = append(report.Failures, fmt.Sprintf("%s: %s", rel, normalizeDiagnostics(res.Diagnostics)))

	case res.Unchanged():
		report.Unchanged++
		p.recordCache(data, inv.String())

	case check:
		report.Reformatted++
		report.Diffs = append(report.Diffs, diffview.Unified("a/"+rel, "b/"+rel, data, res.Output))

	default:
		if err := writePreservingMode(path, res.Output); err != nil {
			report.Failed++
			report.Failures = append(report.Failures, fmt.Sprintf("%s: %v", rel, err))
			return nil
		}
		report.Reformatted++
		p.recordCache(res.Output, inv.String())
	}
	return nil
}

func (p *Project) recordCache(content []byte, repr string) {
	if err := p.Cache.Record(content, repr); err != nil {
		p.Logger.Warn("cache record failed", map[string]interface{}{"error": err.Error()})
	}
}

func writePreservingMode(path string, content []byte) error {
	mode := fs.FileMode(domain.DataFilePermissions)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	return os.WriteFile(path, content, mode)
}
