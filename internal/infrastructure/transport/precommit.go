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

const precommitHint = "you may need to install pre-commit and add a black hook to your project"

// PreCommit delegates formatting to a project's pre-commit black hook.
// The hook runner only rewrites files, so the buffer is staged through a
// temp file and read back; the exit code is ignored because pre-commit
// exits nonzero whenever a hook modified anything.
type PreCommit struct {
	command string
	logger  ports.Logger
}

// NewPreCommit builds the pre-commit transport.
func NewPreCommit(logger ports.Logger) *PreCommit {
	return &PreCommit{command: domain.DefaultPreCommitCommand, logger: logger}
}

// NewPreCommitWith builds the transport around an explicit runner binary.
func NewPreCommitWith(command string, logger ports.Logger) *PreCommit {
	return &PreCommit{command: command, logger: logger}
}

// Name implements ports.Transport.
func (t *PreCommit) Name() string {
	return "pre-commit"
}

// Format stages content into a temp file, runs the black hook against it
// from the invocation's working directory and reads the result back.
func (t *PreCommit) Format(ctx context.Context, inv domain.Invocation, content []byte) (domain.FormatResult, error) {
	tmp, err := os.CreateTemp("", "blackline-*.py")
	if err != nil {
		return domain.FormatResult{}, err
	}
	path := tmp.Name()
	defer os.Remove(path)

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return domain.FormatResult{}, err
	}
	if err := tmp.Close(); err != nil {
		return domain.FormatResult{}, err
	}

	c := exec.CommandContext(ctx, t.command, "run", "black", "--files", path)
	if inv.WorkDir != "" {
		c.Dir = inv.WorkDir
	}
	c.Env = os.Environ()

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	if runErr := c.Run(); runErr != nil {
		if _, ok := runErr.(*exec.ExitError); !ok {
			if errors.Is(runErr, exec.ErrNotFound) || errors.Is(runErr, fs.ErrNotExist) {
				return domain.FormatResult{}, &domain.ConfigurationError{Hint: precommitHint, Err: runErr}
			}
			return domain.FormatResult{}, runErr
		}
	}

	formatted, err := os.ReadFile(path)
	if err != nil {
		return domain.FormatResult{}, err
	}

	t.debug("pre-commit finished", map[string]interface{}{"stdout": stdout.String(), "stderr": stderr.String()})
	diag := domain.DiagReformatted
	if bytes.Equal(formatted, content) {
		diag = domain.DiagUnchanged
	}
	return domain.FormatResult{
		Code:        0,
		Output:      formatted,
		Diagnostics: []byte(diag),
	}, nil
}

func (t *PreCommit) debug(msg string, fields map[string]interface{}) {
	if t.logger != nil {
		t.logger.Debug(msg, fields)
	}
}

var _ ports.Transport = (*PreCommit)(nil)
