package git

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

// isolateGit points git at an empty configuration and a fixed identity.
func isolateGit(t *testing.T) {
	t.Helper()
	if !Available() {
		t.Skip("git not installed")
	}
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GIT_AUTHOR_NAME", "Test")
	t.Setenv("GIT_AUTHOR_EMAIL", "test@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "Test")
	t.Setenv("GIT_COMMITTER_EMAIL", "test@example.com")
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestManager_InitAddCommit(t *testing.T) {
	isolateGit(t)
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "package.json"), "{}\n")
	writeTestFile(t, filepath.Join(dir, "src", "main.ts"), "export {};\n")

	m := NewManager(nil)
	ctx := context.Background()

	if err := m.Init(ctx, dir); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".git")); err != nil {
		t.Fatalf(".git missing after Init(): %v", err)
	}
	if err := m.AddAll(ctx, dir); err != nil {
		t.Fatalf("AddAll() error: %v", err)
	}
	if err := m.Commit(ctx, dir, "Initial commit"); err != nil {
		t.Fatalf("Commit() error: %v", err)
	}

	subject, err := execGit(ctx, dir, "log", "-1", "--format=%s")
	if err != nil {
		t.Fatal(err)
	}
	if subject != "Initial commit" {
		t.Errorf("commit subject = %q, want %q", subject, "Initial commit")
	}

	files, err := execGit(ctx, dir, "ls-files")
	if err != nil {
		t.Fatal(err)
	}
	got := strings.Split(files, "\n")
	slices.Sort(got)
	if !slices.Equal(got, []string{"package.json", "src/main.ts"}) {
		t.Errorf("tracked files = %v", got)
	}
}

func TestManager_CommitNothingStaged(t *testing.T) {
	isolateGit(t)
	dir := t.TempDir()
	m := NewManager(nil)
	ctx := context.Background()

	if err := m.Init(ctx, dir); err != nil {
		t.Fatal(err)
	}
	err := m.Commit(ctx, dir, "Initial commit")
	if err == nil {
		t.Fatal("Commit() with nothing staged should fail")
	}
	if !strings.Contains(err.Error(), "git commit") {
		t.Errorf("error %q should name the git subcommand", err)
	}
}

func TestManager_FakeRunner(t *testing.T) {
	var calls []string
	boom := errors.New("exit status 128")
	m := NewManager(nil)
	m.run = func(_ context.Context, dir string, args ...string) (string, error) {
		calls = append(calls, dir+": "+strings.Join(args, " "))
		if args[0] == "add" {
			return "", boom
		}
		return "", nil
	}
	ctx := context.Background()

	if err := m.Init(ctx, "/p"); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	if err := m.AddAll(ctx, "/p"); !errors.Is(err, boom) {
		t.Errorf("AddAll() error = %v, want wrapped cause", err)
	}
	if err := m.Commit(ctx, "/p", "msg"); err != nil {
		t.Fatalf("Commit() error: %v", err)
	}
	if err := m.Commit(ctx, "/p", "  "); !errors.Is(err, ErrEmptyCommitMessage) {
		t.Errorf("Commit() empty message error = %v", err)
	}

	want := []string{"/p: init", "/p: add .", "/p: commit -m msg"}
	if !slices.Equal(calls, want) {
		t.Errorf("calls = %v, want %v", calls, want)
	}
}

func TestExecGit_MissingBinary(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	_, err := execGit(context.Background(), t.TempDir(), "init")
	if !errors.Is(err, ErrSystemGitNotFound) {
		t.Errorf("execGit() error = %v, want ErrSystemGitNotFound", err)
	}
	if Available() {
		t.Error("Available() = true with an empty PATH")
	}
}
