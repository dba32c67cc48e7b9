// Package transport implements the two interchangeable formatter
// transports: a black subprocess fed on stdin, and a single HTTP POST to
// a local blackd daemon. Both normalize to domain.FormatResult.
package transport

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"os/exec"

	"github.com/doeshing/blackline/internal/domain"
	"github.com/doeshing/blackline/internal/ports"
)

const installHint = "you may need to install black and/or configure 'black.command' in your settings"

// Process spawns the formatter as a child process. The invocation blocks
// until the child exits; no timeout is enforced.
type Process struct {
	logger ports.Logger
}

// NewProcess builds the subprocess transport.
func NewProcess(logger ports.Logger) *Process {
	return &Process{logger: logger}
}

// Name implements ports.Transport.
func (t *Process) Name() string {
	return "black"
}

// Format writes content to the child's stdin and captures exit code,
// stdout and stderr. A spawn failure (binary missing, not executable) is
// a ConfigurationError; a nonzero exit is a formatting failure carried
// inside the result.
func (t *Process) Format(ctx context.Context, inv domain.Invocation, content []byte) (domain.FormatResult, error) {
	if len(inv.Args) == 0 {
		return domain.FormatResult{}, &domain.ConfigurationError{
			Hint: domain.CommandUnresolvedMessage,
			Err:  domain.ErrCommandUnresolved,
		}
	}

	c := exec.CommandContext(ctx, inv.Args[0], inv.Args[1:]...)
	c.Stdin = bytes.NewReader(content)
	if inv.WorkDir != "" {
		c.Dir = inv.WorkDir
	}
	c.Env = os.Environ()

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()
	if exitErr, ok := err.(*exec.ExitError); ok {
		return domain.FormatResult{
			Code:        exitErr.ExitCode(),
			Output:      stdout.Bytes(),
			Diagnostics: stderr.Bytes(),
		}, nil
	}
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return domain.FormatResult{}, &domain.ConfigurationError{Hint: installHint, Err: err}
		}
		return domain.FormatResult{}, err
	}

	t.debug("black finished", map[string]interface{}{"stderr": stderr.String()})
	return domain.FormatResult{
		Code:        0,
		Output:      stdout.Bytes(),
		Diagnostics: stderr.Bytes(),
	}, nil
}

func (t *Process) debug(msg string, fields map[string]interface{}) {
	if t.logger != nil {
		t.logger.Debug(msg, fields)
	}
}

var _ ports.Transport = (*Process)(nil)
