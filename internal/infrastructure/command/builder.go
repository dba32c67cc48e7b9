// Package command assembles formatter invocations from a configuration
// snapshot: the subprocess argument vector and the equivalent blackd
// header mapping are always derived from the same token list so that
// both transports share one cache representation.
package command

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/doeshing/blackline/internal/domain"
)

// Builder derives invocations for one view/file.
type Builder struct {
	cfg      domain.Config
	fileName string
}

// NewBuilder creates a builder for the given config snapshot and file name.
// fileName may be empty for unsaved buffers.
func NewBuilder(cfg domain.Config, fileName string) *Builder {
	return &Builder{cfg: cfg, fileName: fileName}
}

// Build resolves the full invocation. It fails with a ConfigurationError
// when no formatter executable can be resolved at all; nothing is spawned
// or contacted in that case.
func (b *Builder) Build(extra ...string) (domain.Invocation, error) {
	args, err := b.args(extra)
	if err != nil {
		return domain.Invocation{}, err
	}
	inv := domain.Invocation{
		Args:     args,
		Headers:  b.headers(args),
		URL:      fmt.Sprintf("http://%s:%d/", b.cfg.BlackdHost(), b.cfg.BlackdPort()),
		Encoding: b.cfg.Encoding(),
		WorkDir:  b.workDir(),
		Diff:     contains(args, "--diff"),
	}
	return inv, nil
}

func (b *Builder) args(extra []string) ([]string, error) {
	executable, err := b.resolveExecutable()
	if err != nil {
		return nil, err
	}

	args := []string{executable}
	args = append(args, extra...)

	if n := b.cfg.Black.LineLength; n > 0 {
		args = append(args, "-l", strconv.Itoa(n))
	}
	if b.cfg.Black.Fast {
		args = append(args, "--fast")
	}
	if b.cfg.Black.SkipStringNormalization {
		args = append(args, "--skip-string-normalization")
	}
	// .pyi files force stub mode regardless of target versions.
	if b.isStub() {
		args = append(args, "--pyi")
	}
	if b.cfg.Black.Py36 {
		args = append(args, "--py36")
	}
	for _, v := range b.cfg.Black.TargetVersions {
		args = append(args, "--target-version", v)
	}
	return args, nil
}

func (b *Builder) resolveExecutable() (string, error) {
	if cmd := b.cfg.Black.Command; cmd != "" {
		return cmd, nil
	}
	path, err := exec.LookPath(domain.DefaultBlackCommand)
	if err != nil {
		return "", &domain.ConfigurationError{
			Hint: domain.CommandUnresolvedMessage,
			Err:  domain.ErrCommandUnresolved,
		}
	}
	return path, nil
}

// headers translates the argument vector into the blackd protocol
// headers. The X-Fast-Or-Safe header is always present; the rest are
// emitted only when the matching flag is.
func (b *Builder) headers(args []string) map[string]string {
	headers := map[string]string{
		domain.HeaderFastOrSafe: "safe",
	}
	for i, item := range args {
		switch item {
		case "--fast":
			headers[domain.HeaderFastOrSafe] = "fast"
		case "--skip-string-normalization":
			headers[domain.HeaderSkipStringNorm] = "1"
		case "--diff":
			headers[domain.HeaderDiff] = "true"
		case "-l":
			if i+1 < len(args) {
				headers[domain.HeaderLineLength] = args[i+1]
			}
		}
	}

	if b.isStub() {
		headers[domain.HeaderPythonVariant] = "pyi"
		return headers
	}

	var variants []string
	for i, item := range args {
		if item != "--target-version" || i+1 >= len(args) {
			continue
		}
		variants = append(variants, variantTag(args[i+1]))
	}
	if len(variants) > 0 {
		headers[domain.HeaderPythonVariant] = strings.Join(variants, ",")
	}
	return headers
}

// variantTag converts black's --target-version tokens into blackd's
// dotted variant tags by splitting after the major digit, e.g.
// py36 -> py3.6, py310 -> py3.10.
func variantTag(version string) string {
	if len(version) < 4 || !strings.HasPrefix(version, "py") {
		return version
	}
	return version[:3] + "." + version[3:]
}

func (b *Builder) isStub() bool {
	return strings.HasSuffix(b.fileName, ".pyi")
}

func (b *Builder) workDir() string {
	if b.fileName == "" {
		return ""
	}
	return filepath.Dir(b.fileName)
}

func contains(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}
