package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/modu-ai/create-electron-app/pkg/models"
)

// helperCommand re-executes the test binary as a fake package manager.
func helperCommand(env ...string) func(ctx context.Context, name string, args ...string) *exec.Cmd {
	return func(ctx context.Context, name string, args ...string) *exec.Cmd {
		cs := append([]string{"-test.run=TestHelperProcess", "--", name}, args...)
		cmd := exec.CommandContext(ctx, os.Args[0], cs...)
		cmd.Env = append([]string{"GO_WANT_HELPER_PROCESS=1"}, env...)
		return cmd
	}
}

// TestHelperProcess is the fake package manager.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	args := os.Args
	for idx, arg := range args {
		if arg == "--" {
			args = args[idx+1:]
			break
		}
	}
	if len(args) < 2 || args[1] != "install" {
		fmt.Fprintln(os.Stderr, "usage: <pm> install")
		os.Exit(2)
	}

	if os.Getenv("HELPER_FAIL") == "1" {
		fmt.Fprintln(os.Stderr, "resolving dependencies")
		fmt.Fprintf(os.Stderr, "%s ERR! 404 Not Found\n\n", args[0])
		os.Exit(1)
	}

	_ = os.WriteFile("installed-by", []byte(args[0]), 0o644)
	fmt.Println("added 42 packages")
	os.Exit(0)
}

func newTestInstaller(env ...string) (*Installer, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	inst := NewInstaller(&stdout, &stderr, nil)
	inst.stdin = strings.NewReader("")
	inst.commandFunc = helperCommand(env...)
	return inst, &stdout, &stderr
}

func TestInstall_Success(t *testing.T) {
	for _, pm := range models.ValidPackageManagers() {
		t.Run(string(pm), func(t *testing.T) {
			dir := t.TempDir()
			inst, stdout, _ := newTestInstaller()

			if err := inst.Install(context.Background(), dir, pm); err != nil {
				t.Fatalf("Install error: %v", err)
			}
			if !strings.Contains(stdout.String(), "added 42 packages") {
				t.Errorf("stdout = %q, want package manager output", stdout.String())
			}
			data, err := os.ReadFile(filepath.Join(dir, "installed-by"))
			if err != nil {
				t.Fatalf("install did not run in the project directory: %v", err)
			}
			if string(data) != string(pm) {
				t.Errorf("ran %q, want %q", data, pm)
			}
		})
	}
}

func TestInstall_Failure(t *testing.T) {
	inst, _, stderr := newTestInstaller("HELPER_FAIL=1")

	err := inst.Install(context.Background(), t.TempDir(), models.PackageManagerYarn)
	if err == nil {
		t.Fatal("Install should fail")
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Errorf("error = %v, want *exec.ExitError in chain", err)
	}
	if !strings.Contains(err.Error(), "yarn ERR! 404 Not Found") {
		t.Errorf("error %q should carry the last stderr line", err)
	}
	if !strings.Contains(stderr.String(), "resolving dependencies") {
		t.Error("stderr should still be streamed to the terminal")
	}
}

func TestInstall_UnsupportedPackageManager(t *testing.T) {
	inst, _, _ := newTestInstaller()
	err := inst.Install(context.Background(), t.TempDir(), models.PackageManager("bun"))
	if !errors.Is(err, ErrUnsupportedPackageManager) {
		t.Errorf("error = %v, want ErrUnsupportedPackageManager", err)
	}
}

func TestInstall_CommandNotFound(t *testing.T) {
	inst, _, _ := newTestInstaller()
	inst.commandFunc = func(ctx context.Context, _ string, args ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "create-electron-app-no-such-binary", args...)
	}
	err := inst.Install(context.Background(), t.TempDir(), models.PackageManagerNPM)
	if !errors.Is(err, ErrCommandNotFound) {
		t.Errorf("error = %v, want ErrCommandNotFound", err)
	}
}

func TestInstall_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	inst, _, _ := newTestInstaller()
	err := inst.Install(ctx, t.TempDir(), models.PackageManagerNPM)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestTailBuffer(t *testing.T) {
	tb := &tailBuffer{max: 8}
	_, _ = tb.Write([]byte("0123456789"))
	_, _ = tb.Write([]byte("ab\n\n"))
	if got := string(tb.buf); got != "6789ab\n\n" {
		t.Errorf("buf = %q", got)
	}
	if got := tb.lastLine(); got != "6789ab" {
		t.Errorf("lastLine() = %q", got)
	}
	if got := (&tailBuffer{max: 4}).lastLine(); got != "" {
		t.Errorf("empty lastLine() = %q", got)
	}
}
