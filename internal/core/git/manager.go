package git

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// runFunc executes git with args in dir and returns trimmed stdout.
type runFunc func(ctx context.Context, dir string, args ...string) (string, error)

// Manager runs the repository bootstrap commands of a new project.
type Manager struct {
	run    runFunc
	logger *slog.Logger
}

// NewManager creates a Manager backed by the system git binary.
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Manager{
		run:    execGit,
		logger: logger.With("module", "git"),
	}
}

// Available reports whether a git binary can be found on PATH.
func Available() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// Init creates an empty repository in dir.
func (m *Manager) Init(ctx context.Context, dir string) error {
	m.logger.Debug("initializing repository", "dir", dir)
	if _, err := m.run(ctx, dir, "init"); err != nil {
		return fmt.Errorf("init repository: %w", err)
	}
	return nil
}

// AddAll stages every file of the working tree.
func (m *Manager) AddAll(ctx context.Context, dir string) error {
	if _, err := m.run(ctx, dir, "add", "."); err != nil {
		return fmt.Errorf("stage files: %w", err)
	}
	return nil
}

// Commit records the staged files with the given message.
func (m *Manager) Commit(ctx context.Context, dir, message string) error {
	if strings.TrimSpace(message) == "" {
		return ErrEmptyCommitMessage
	}
	out, err := m.run(ctx, dir, "commit", "-m", message)
	if err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	m.logger.Debug("repository committed", "dir", dir, "output", out)
	return nil
}

// @MX:NOTE: [AUTO] execGit is the single place git is spawned; GIT_TERMINAL_PROMPT=0 keeps a missing credential from blocking the run.
// execGit executes a git command in the given directory and returns stdout.
// It sets GIT_TERMINAL_PROMPT=0 and LC_ALL=C for consistent behavior.
func execGit(ctx context.Context, dir string, args ...string) (string, error) {
	gitPath, err := exec.LookPath("git")
	if err != nil {
		return "", fmt.Errorf("system git lookup: %w", ErrSystemGitNotFound)
	}

	cmd := exec.CommandContext(ctx, gitPath, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_TERMINAL_PROMPT=0",
		"LC_ALL=C",
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		stderrStr := strings.TrimSpace(stderr.String())
		if len(args) > 0 {
			return "", fmt.Errorf("git %s: %s: %w", args[0], stderrStr, err)
		}
		return "", fmt.Errorf("git: %s: %w", stderrStr, err)
	}

	return strings.TrimRight(stdout.String(), "\n\r"), nil
}
