package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/doeshing/blackline/internal/domain"
	"github.com/doeshing/blackline/internal/ports"
)

// Daemon posts buffer content to a local blackd instance. One synchronous
// round trip per invocation; no pooling, retry or backoff.
type Daemon struct {
	client  *http.Client
	manager ports.DaemonManager
	logger  ports.Logger
}

// NewDaemon builds the daemon transport. The manager gates every call on
// readiness; a nil manager disables the gate (used by tests).
func NewDaemon(manager ports.DaemonManager, logger ports.Logger) *Daemon {
	return &Daemon{
		client:  &http.Client{Timeout: domain.DaemonClientTimeout},
		manager: manager,
		logger:  logger,
	}
}

// Name implements ports.Transport.
func (t *Daemon) Name() string {
	return "blackd"
}

// Format posts the content with the invocation's headers and maps the
// status code onto the subprocess result shape. When the daemon has not
// finished initializing the call is a no-op returning an empty result;
// the network is never touched.
func (t *Daemon) Format(ctx context.Context, inv domain.Invocation, content []byte) (domain.FormatResult, error) {
	if t.manager != nil && !t.manager.Ready() {
		t.debug("blackd has not finished initializing", nil)
		return domain.FormatResult{}, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, inv.URL, bytes.NewReader(content))
	if err != nil {
		return domain.FormatResult{}, err
	}
	for name, value := range inv.Headers {
		req.Header.Set(name, value)
	}
	req.Header.Set("Content-Type", fmt.Sprintf("application/octet-stream; charset=%s", inv.Encoding))

	resp, err := t.client.Do(req)
	if err != nil {
		// Connection failures become a synthetic error result so callers
		// can branch on (code, output, diagnostics) uniformly.
		msg := fmt.Sprintf("blackd not running at %s: %v", inv.URL, err)
		if t.logger != nil {
			t.logger.Error("blackd request failed", err, nil)
		}
		return domain.FormatResult{
			Code:        -1,
			Diagnostics: []byte(msg),
			Hint:        "start it with 'blackline blackd start'",
		}, nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.FormatResult{}, err
	}

	return mapResponse(resp.StatusCode, body), nil
}

// mapResponse converts a blackd status code into the subprocess format:
// returncode, out, err.
func mapResponse(status int, body []byte) domain.FormatResult {
	switch status {
	case http.StatusOK:
		return domain.FormatResult{Code: 0, Output: body, Diagnostics: []byte(domain.DiagReformatted)}
	case http.StatusNoContent:
		return domain.FormatResult{Code: 0, Output: body, Diagnostics: []byte(domain.DiagUnchanged)}
	case http.StatusBadRequest, http.StatusInternalServerError:
		return domain.FormatResult{Code: -1, Output: body, Diagnostics: []byte(domain.DiagUnknownErr)}
	default:
		return domain.FormatResult{Code: -1, Output: body, Diagnostics: []byte(domain.DiagNoResponse)}
	}
}

func (t *Daemon) debug(msg string, fields map[string]interface{}) {
	if t.logger != nil {
		t.logger.Debug(msg, fields)
	}
}

var _ ports.Transport = (*Daemon)(nil)
