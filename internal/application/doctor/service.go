// Package doctor runs environment diagnostics for the formatter setup.
package doctor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/doeshing/blackline/internal/domain"
	"github.com/doeshing/blackline/internal/ports"
)

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Daemon         ports.DaemonManager
	Cache          ports.FormatCache
	History        ports.HistoryStore
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("loaded version %s", cfg.ConfigFormatVersion)))

	checks = append(checks, blackCheck(cfg))
	checks = append(checks, s.blackdCheck(cfg))
	checks = append(checks, s.cacheCheck())
	checks = append(checks, s.historyCheck())

	return domain.HealthReport{Checks: checks}, nil
}

func blackCheck(cfg domain.Config) domain.HealthCheck {
	candidate := cfg.Black.Command
	if candidate == "" {
		candidate = domain.DefaultBlackCommand
	}
	path, err := exec.LookPath(candidate)
	if err != nil {
		return fail("Black executable", fmt.Sprintf("%q not found, install black or set black.command", candidate))
	}
	return ok("Black executable", path)
}

func (s *Service) blackdCheck(cfg domain.Config) domain.HealthCheck {
	if !cfg.Blackd.Enabled {
		return warn("Blackd", "disabled in config")
	}
	if s.Daemon == nil {
		return warn("Blackd", "daemon manager not initialized")
	}
	if s.Daemon.Ready() {
		return ok("Blackd", fmt.Sprintf("ready on port %d", s.Daemon.RunningPort()))
	}
	return warn("Blackd", fmt.Sprintf("not responding on port %d (state %s)", cfg.BlackdPort(), s.Daemon.State()))
}

func (s *Service) cacheCheck() domain.HealthCheck {
	if s.Cache == nil {
		return warn("Cache", "not initialized")
	}
	dir := filepath.Dir(s.Cache.Path())
	if err := os.MkdirAll(dir, domain.DirectoryPermissions); err != nil {
		return fail("Cache", fmt.Sprintf("directory not writable: %v", err))
	}
	entries, err := s.Cache.Entries()
	if err != nil {
		return warn("Cache", err.Error())
	}
	return ok("Cache", fmt.Sprintf("%d entries at %s", len(entries), s.Cache.Path()))
}

func (s *Service) historyCheck() domain.HealthCheck {
	if s.History == nil {
		return warn("History", "not initialized")
	}
	if _, err := s.History.Records(1, ""); err != nil {
		return warn("History", err.Error())
	}
	return ok("History", s.History.Path())
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
