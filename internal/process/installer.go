package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/modu-ai/create-electron-app/pkg/models"
)

// stderrTailSize bounds the stderr kept for error messages.
const stderrTailSize = 4 << 10

// Installer runs "<pm> install" with the terminal attached.
type Installer struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger

	// For mocking in tests
	commandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// NewInstaller creates an Installer writing to the given streams.
// Nil streams default to the process stdio.
func NewInstaller(stdout, stderr io.Writer, logger *slog.Logger) *Installer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Installer{
		stdin:       os.Stdin,
		stdout:      stdout,
		stderr:      stderr,
		logger:      logger.With("module", "installer"),
		commandFunc: exec.CommandContext,
	}
}

// Install runs the package manager in dir and blocks until it exits.
// There is no timeout; cancelling ctx kills the process.
func (i *Installer) Install(ctx context.Context, dir string, pm models.PackageManager) error {
	if !pm.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnsupportedPackageManager, pm)
	}

	name := string(pm)
	cmd := i.commandFunc(ctx, name, "install")
	cmd.Dir = dir
	cmd.Stdin = i.stdin
	cmd.Stdout = i.stdout

	tail := &tailBuffer{max: stderrTailSize}
	cmd.Stderr = io.MultiWriter(i.stderr, tail)

	i.logger.Debug("running package manager", "command", name+" install", "dir", dir)

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrCommandNotFound, name)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s install cancelled: %w", name, ctxErr)
		}
		if msg := tail.lastLine(); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}

// tailBuffer keeps the last max bytes written to it.
type tailBuffer struct {
	max int
	buf []byte
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.buf = append(t.buf, p...)
	if over := len(t.buf) - t.max; over > 0 {
		t.buf = t.buf[over:]
	}
	return len(p), nil
}

// lastLine returns the last non-empty line written.
func (t *tailBuffer) lastLine() string {
	lines := strings.Split(strings.TrimSpace(string(t.buf)), "\n")
	for idx := len(lines) - 1; idx >= 0; idx-- {
		if line := strings.TrimSpace(lines[idx]); line != "" {
			return line
		}
	}
	return ""
}
