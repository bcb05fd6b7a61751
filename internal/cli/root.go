package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/modu-ai/create-electron-app/pkg/version"
)

var rootCmd = newRootCmd()

// newRootCmd builds the command with its flags registered.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-electron-app [app-name]",
		Short: "Scaffold a secure Electron + React + Vite + TypeScript app",
		Long: `create-electron-app generates a new Electron project with secure defaults.

Answers come from an interactive wizard, an answers file, or flags. Flags
override the answers file; the wizard starts from both and is skipped when
--non-interactive is given or no terminal is attached.

Examples:
  create-electron-app                          Run the wizard
  create-electron-app my-app --yes             Wizard without the final confirmation
  create-electron-app my-app --non-interactive --features darkmode,sqlite --scripts dev,build,lint
  create-electron-app --answers answers.yaml --non-interactive --skip-install`,
		Args:          cobra.MaximumNArgs(1),
		Version:       version.GetVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE:       validateCreateFlags,
		RunE:          runCreate,
	}

	cmd.SetVersionTemplate(fmt.Sprintf("create-electron-app %s\n", version.GetFullVersion()))

	cmd.Flags().String("title", "", "Window title (default: derived from the app name)")
	cmd.Flags().String("description", "", "App description")
	cmd.Flags().String("author", "", "Author written to package.json")
	cmd.Flags().String("license", "", "License identifier (default: MIT)")
	cmd.Flags().StringP("package-manager", "p", "", "Package manager: npm, yarn, or pnpm (default: npm)")
	cmd.Flags().String("features", "", "Comma-separated optional features (e.g. darkmode,sqlite,git)")
	cmd.Flags().String("scripts", "", "Comma-separated scripts (default: dev,build)")
	cmd.Flags().String("answers", "", "YAML file with answers; flags override its values")
	cmd.Flags().StringP("output", "o", "", "Parent directory of the project (default: current directory)")
	cmd.Flags().Bool("skip-install", false, "Do not install dependencies (also SKIP_INSTALL=1)")
	cmd.Flags().Bool("non-interactive", false, "Skip the wizard; use the answers file, flags and defaults")
	cmd.Flags().BoolP("yes", "y", false, "Skip the final confirmation")
	cmd.Flags().BoolP("verbose", "v", false, "Enable debug logging on stderr")

	return cmd
}

// @MX:ANCHOR: [AUTO] Execute is the main entry point for the create-electron-app CLI
// @MX:REASON: [AUTO] fan_in=2, called from cmd/create-electron-app/main.go and root_test.go
// Execute initializes dependencies and runs the root command. Interrupts
// cancel the command context so a running generation rolls back.
func Execute() error {
	if err := InitDependencies(); err != nil {
		printFailure(os.Stderr, err)
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printFailure(rootCmd.ErrOrStderr(), err)
		return err
	}
	return nil
}

// getStringFlag retrieves a string flag value from the command.
func getStringFlag(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return val
}

// getBoolFlag retrieves a bool flag value from the command.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return val
}
