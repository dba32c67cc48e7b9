// Package blackd owns the local formatting daemon's process lifecycle
// and its tri-state readiness value. The orchestrator never pokes the
// daemon directly; it only consumes the readiness query.
package blackd

import (
	"context"
	"fmt"
	"net/http"
	"os/exec"
	"strconv"
	"sync"
	"time"

	"github.com/doeshing/blackline/internal/domain"
	"github.com/doeshing/blackline/internal/ports"
)

// Manager spawns and supervises one blackd child process.
type Manager struct {
	host   string
	port   int
	logger ports.Logger

	mu     sync.Mutex
	cmd    *exec.Cmd
	state  domain.DaemonState
	client *http.Client
}

// NewManager builds a manager for the configured host/port.
func NewManager(host string, port int, logger ports.Logger) *Manager {
	if host == "" {
		host = domain.DefaultBlackdHost
	}
	if port <= 0 {
		port = domain.DefaultBlackdPort
	}
	return &Manager{
		host:   host,
		port:   port,
		logger: logger,
		state:  domain.DaemonStopped,
		client: &http.Client{Timeout: time.Second},
	}
}

// Start spawns blackd bound to the given port (0 = configured port) and
// polls until it answers. Starting an already-ready daemon is a no-op.
func (m *Manager) Start(ctx context.Context, port int) error {
	m.mu.Lock()
	if port > 0 {
		m.port = port
	}
	if m.state == domain.DaemonReady && m.probe() {
		m.mu.Unlock()
		return nil
	}
	m.state = domain.DaemonStarting

	cmd := exec.Command(domain.DefaultBlackdCommand,
		"--bind-host", m.host,
		"--bind-port", strconv.Itoa(m.port),
	)
	if err := cmd.Start(); err != nil {
		m.state = domain.DaemonStopped
		m.mu.Unlock()
		return &domain.ConfigurationError{
			Hint: "you may need to install blackd (pip install 'black[d]')",
			Err:  err,
		}
	}
	m.cmd = cmd
	m.mu.Unlock()

	deadline := time.Now().Add(domain.DaemonStartupTimeout)
	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
		if m.Ready() {
			m.info("blackd ready", map[string]interface{}{"port": m.port})
			return nil
		}
	}
	return fmt.Errorf("blackd did not become ready on port %d", m.port)
}

// Stop kills the managed child, if any, and resets the state. A daemon
// started outside this process is left alone.
func (m *Manager) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = domain.DaemonStopped
	if m.cmd == nil || m.cmd.Process == nil {
		return nil
	}
	err := m.cmd.Process.Kill()
	m.cmd = nil
	return err
}

// State returns the last known lifecycle state.
func (m *Manager) State() domain.DaemonState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Ready probes the daemon socket. A daemon started externally on the
// configured port counts as ready too.
func (m *Manager) Ready() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.probe() {
		m.state = domain.DaemonReady
		return true
	}
	if m.state == domain.DaemonReady {
		m.state = domain.DaemonStopped
	}
	return false
}

// RunningPort returns the port when ready, 0 otherwise.
func (m *Manager) RunningPort() int {
	if m.Ready() {
		return m.port
	}
	return 0
}

// probe issues a GET against the daemon root. blackd answers 405 to GET;
// any HTTP response at all means the socket is up. Caller holds the lock.
func (m *Manager) probe() bool {
	resp, err := m.client.Get(fmt.Sprintf("http://%s:%d/", m.host, m.port))
	if err != nil {
		return false
	}
	resp.Body.Close()
	return true
}

func (m *Manager) info(msg string, fields map[string]interface{}) {
	if m.logger != nil {
		m.logger.Info(msg, fields)
	}
}

var _ ports.DaemonManager = (*Manager)(nil)
