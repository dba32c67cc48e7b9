// Package format orchestrates a single reformat invocation end-to-end:
// extract buffer content, consult the cache, dispatch to a transport,
// apply the result to the view, reconcile folds and record the outcome.
package format

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/doeshing/blackline/internal/domain"
	"github.com/doeshing/blackline/internal/infrastructure/command"
	"github.com/doeshing/blackline/internal/ports"
)

const startHint = "start it with 'blackline blackd start'"

// Service orchestrates the format lifecycle end-to-end.
type Service struct {
	ConfigProvider  ports.ConfigProvider
	Cache           ports.FormatCache
	Daemon          ports.DaemonManager
	Process         ports.Transport
	DaemonTransport ports.Transport
	PreCommit       ports.Transport
	Reconciler      ports.FoldReconciler
	History         ports.HistoryStore
	Logger          ports.Logger

	// Defer schedules the post-reformat cache write off the critical
	// path. Defaults to a goroutine; tests may run it inline.
	Defer func(func())
}

// Run processes one invocation against the view. The buffer is mutated
// only on a successful non-diff reformat; every failure leaves it
// untouched and uncached.
func (s *Service) Run(ctx context.Context, view ports.EditorView, opts domain.FormatOptions) (domain.FormatOutcome, error) {
	if s.ConfigProvider == nil || s.Cache == nil || s.Process == nil || s.Logger == nil {
		return domain.FormatOutcome{}, errors.New("format.Service dependencies not satisfied")
	}

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		return domain.FormatOutcome{}, fmt.Errorf("load config: %w", err)
	}

	content := view.Content()
	start := time.Now()

	extra := append([]string(nil), opts.Extra...)
	if opts.Diff && !containsFlag(extra, "--diff") {
		extra = append(extra, "--diff")
	}

	builder := command.NewBuilder(cfg, view.FileName())
	inv, err := builder.Build(extra...)
	if err != nil {
		// Configuration failures abort before any process or network call.
		view.SetStatus(domain.CommandUnresolvedMessage)
		return domain.FormatOutcome{Status: domain.StatusFailed, Diagnostics: err.Error()}, err
	}
	// The view's encoding wins over the configured default; it is what
	// blackd needs in the Content-Type charset.
	if enc := view.Encoding(); enc != "" {
		inv.Encoding = enc
	}

	if s.Cache.Lookup(content, inv.String()) {
		view.SetStatus(domain.AlreadyFormattedCacheMessage)
		return domain.FormatOutcome{Status: domain.StatusCached}, nil
	}

	transport := s.Process
	if cfg.UsesPreCommit(opts.Diff) && s.PreCommit != nil {
		transport = s.PreCommit
	} else if cfg.UsesDaemon(opts.Diff) && s.DaemonTransport != nil {
		if s.Daemon == nil || !s.Daemon.Ready() {
			view.SetStatus(domain.BlackdNotInitializedMessage)
			return domain.FormatOutcome{
				Status:      domain.StatusSkipped,
				Transport:   s.DaemonTransport.Name(),
				Diagnostics: domain.BlackdNotInitializedMessage,
				Hint:        startHint,
			}, nil
		}
		transport = s.DaemonTransport
	}

	s.Logger.Debug("invoking formatter", map[string]interface{}{
		"transport": transport.Name(),
		"command":   inv.String(),
	})

	res, err := transport.Format(ctx, inv, content)
	if err != nil {
		view.SetStatus(err.Error())
		return domain.FormatOutcome{Status: domain.StatusFailed, Transport: transport.Name(), Diagnostics: err.Error()}, err
	}

	outcome := s.finalize(view, opts, inv, content, res)
	outcome.Transport = transport.Name()
	s.record(view.FileName(), inv, transport.Name(), outcome.Status, res.Code, time.Since(start))
	return outcome, nil
}

// finalize applies the normalized result to the view, mirroring the
// ResultReceived -> Applied transition.
func (s *Service) finalize(view ports.EditorView, opts domain.FormatOptions, inv domain.Invocation, content []byte, res domain.FormatResult) domain.FormatOutcome {
	diagnostics := normalizeDiagnostics(res.Diagnostics)

	switch {
	case res.Code != 0:
		view.SetStatus(diagnostics)
		return domain.FormatOutcome{Status: domain.StatusFailed, Diagnostics: diagnostics, Hint: res.Hint}

	case res.Unchanged():
		view.SetStatus(domain.AlreadyFormattedMessage)
		if err := s.Cache.Record(content, inv.String()); err != nil {
			s.Logger.Warn("cache record failed", map[string]interface{}{"error": err.Error()})
		}
		return domain.FormatOutcome{Status: domain.StatusUnchanged, Diagnostics: diagnostics}

	case opts.Diff:
		view.OpenScratch(fmt.Sprintf("blackline diff: %s", view.FileName()), res.Output)
		return domain.FormatOutcome{Status: domain.StatusDiffed}

	default:
		cursor := view.Cursor()
		folds := view.FoldedRegions()
		if err := view.Replace(res.Output); err != nil {
			view.SetStatus(err.Error())
			return domain.FormatOutcome{Status: domain.StatusFailed, Diagnostics: err.Error()}
		}
		view.SetCursor(cursor)
		if s.Reconciler != nil && len(folds) > 0 {
			view.Fold(s.Reconciler.Reconcile(content, res.Output, folds))
		}
		view.SetStatus(domain.ReformattedMessage)

		formatted := res.Output
		repr := inv.String()
		s.deferCall(func() {
			if err := s.Cache.Record(formatted, repr); err != nil {
				s.Logger.Warn("cache record failed", map[string]interface{}{"error": err.Error()})
			}
		})
		return domain.FormatOutcome{Status: domain.StatusReformatted, Diagnostics: diagnostics}
	}
}

func (s *Service) record(file string, inv domain.Invocation, transport string, status domain.FormatStatus, code int, elapsed time.Duration) {
	if s.History == nil {
		return
	}
	err := s.History.Save(domain.FormatRecord{
		Timestamp:  time.Now(),
		File:       file,
		Command:    inv.String(),
		Transport:  transport,
		Status:     status,
		ExitCode:   code,
		DurationMS: elapsed.Milliseconds(),
	})
	if err != nil {
		s.Logger.Warn("history save failed", map[string]interface{}{"error": err.Error()})
	}
}

func (s *Service) deferCall(f func()) {
	if s.Defer != nil {
		s.Defer(f)
		return
	}
	go f()
}

func normalizeDiagnostics(raw []byte) string {
	msg := strings.ReplaceAll(string(raw), "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	return strings.TrimSpace(msg)
}

func containsFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}
