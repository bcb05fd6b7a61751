package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/modu-ai/create-electron-app/internal/cli/wizard"
	"github.com/modu-ai/create-electron-app/internal/config"
	"github.com/modu-ai/create-electron-app/internal/core/project"
	"github.com/modu-ai/create-electron-app/internal/feature"
	"github.com/modu-ai/create-electron-app/internal/ui"
	"github.com/modu-ai/create-electron-app/pkg/models"
)

// skipInstallEnv disables dependency installation when set to a true value.
const skipInstallEnv = "SKIP_INSTALL"

var (
	// ErrAborted is returned when the user declines the final confirmation.
	ErrAborted = errors.New("project creation aborted")
	// ErrAppNameRequired is returned when no app name is available without the wizard.
	ErrAppNameRequired = errors.New("app name is required in non-interactive mode")
)

// validateCreateFlags validates flag values before execution.
func validateCreateFlags(cmd *cobra.Command, _ []string) error {
	if getBoolFlag(cmd, "verbose") {
		logLevel.Set(slog.LevelDebug)
	}

	if pm := getStringFlag(cmd, "package-manager"); pm != "" {
		if !models.PackageManager(strings.ToLower(pm)).IsValid() {
			return fmt.Errorf("invalid --package-manager value %q: must be one of: npm, yarn, pnpm", pm)
		}
	}
	return nil
}

// runCreate collects the answers, confirms them and scaffolds the project.
func runCreate(cmd *cobra.Command, args []string) error {
	if deps == nil {
		return fmt.Errorf("dependencies not initialized")
	}
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	// Step 1: Answers file, positional app name, then flags.
	answers, err := collectAnswers(cmd, args)
	if err != nil {
		return err
	}

	// Step 2: Interactive wizard unless disabled or headless.
	interactive := !getBoolFlag(cmd, "non-interactive") && !deps.Headless.IsHeadless()
	var questions []wizard.Question
	if interactive {
		printWelcome(out, cmd.Name())
		questions = wizard.DefaultQuestions(deps.Registry)
		if err := wizard.Run(ctx, questions, answers, out); err != nil {
			return err
		}
	} else if answers.AppName == "" {
		return ErrAppNameRequired
	}

	// Step 3: Normalization, defaults and validation.
	config.Normalize(answers)
	config.ApplyDefaults(answers)
	if err := answers.Validate(); err != nil {
		return err
	}
	if err := checkSelection(answers, deps.Registry); err != nil {
		return err
	}

	// Step 4: Resolve now so the summary shows the final feature set.
	resolution := feature.Resolve(answers, deps.Registry)
	printNotices(out, resolution.Notices())

	// Step 5: Summary and confirmation.
	if interactive && !getBoolFlag(cmd, "yes") {
		_, _ = fmt.Fprintln(out, wizard.RenderStep(questions, "Summary & Confirm"))
		_, _ = fmt.Fprintln(out, wizard.RenderSummary(answers, deps.Registry, nil))
		proceed, err := wizard.Confirm(ctx, "Proceed with project creation?")
		if err != nil {
			return err
		}
		if !proceed {
			return ErrAborted
		}
		_, _ = fmt.Fprintf(out, "%s Configuration confirmed. Starting scaffolding...\n", symSuccess())
	}

	// Step 6: Generate.
	skipInstall := shouldSkipInstall(cmd)
	reporter := newStageReporter(out, deps.Theme, deps.Headless, answers, skipInstall)
	defer reporter.stop()

	result, err := deps.Composer.Scaffold(ctx, answers, project.Options{
		SkipInstall: skipInstall,
		OutputRoot:  getStringFlag(cmd, "output"),
		Reporter:    reporter,
	})
	if err != nil {
		return err
	}
	reporter.stop()

	printNotices(out, result.Resolution.Notices())
	printWarnings(out, result.Warnings)
	printSuccess(out, result, skipInstall, deps.Headless.IsHeadless() || deps.Theme.NoColor)
	return nil
}

// collectAnswers merges the answers file, the positional app name and the
// flags that were set explicitly, in increasing precedence.
func collectAnswers(cmd *cobra.Command, args []string) (*models.Answers, error) {
	answers := &models.Answers{}
	if path := getStringFlag(cmd, "answers"); path != "" {
		loaded, err := config.LoadAnswers(path)
		if err != nil {
			return nil, err
		}
		answers = loaded
	}

	if len(args) > 0 {
		answers.AppName = args[0]
	}

	flags := cmd.Flags()
	if flags.Changed("title") {
		answers.Title = getStringFlag(cmd, "title")
	}
	if flags.Changed("description") {
		answers.Description = getStringFlag(cmd, "description")
	}
	if flags.Changed("author") {
		answers.Author = getStringFlag(cmd, "author")
	}
	if flags.Changed("license") {
		answers.License = getStringFlag(cmd, "license")
	}
	if flags.Changed("package-manager") {
		answers.PackageManager = models.PackageManager(getStringFlag(cmd, "package-manager"))
	}
	if flags.Changed("features") {
		answers.Features = config.SplitList(getStringFlag(cmd, "features"))
	}
	if flags.Changed("scripts") {
		answers.Scripts = config.SplitList(getStringFlag(cmd, "scripts"))
	}

	return answers, nil
}

// checkSelection rejects feature and script identifiers the registry does not know.
func checkSelection(a *models.Answers, reg *feature.Registry) error {
	if unknown := reg.UnknownFeatures(a.Features); len(unknown) > 0 {
		return fmt.Errorf("unknown feature(s): %s", strings.Join(unknown, ", "))
	}
	if unknown := reg.UnknownScripts(a.Scripts); len(unknown) > 0 {
		return fmt.Errorf("unknown script(s): %s", strings.Join(unknown, ", "))
	}
	return nil
}

// shouldSkipInstall reports whether --skip-install or SKIP_INSTALL is set.
func shouldSkipInstall(cmd *cobra.Command) bool {
	if getBoolFlag(cmd, "skip-install") {
		return true
	}
	v, err := strconv.ParseBool(os.Getenv(skipInstallEnv))
	return err == nil && v
}

// stageReporter prints one line per completed stage and runs a spinner
// while the repository is initialized. Install output is inherited from
// the package manager, so that stage gets a plain line instead.
type stageReporter struct {
	out         io.Writer
	theme       *ui.Theme
	headless    *ui.HeadlessManager
	answers     *models.Answers
	skipInstall bool
	spinner     ui.Spinner
}

func newStageReporter(out io.Writer, theme *ui.Theme, hm *ui.HeadlessManager, answers *models.Answers, skipInstall bool) *stageReporter {
	return &stageReporter{out: out, theme: theme, headless: hm, answers: answers, skipInstall: skipInstall}
}

// StageChanged implements project.Reporter.
func (r *stageReporter) StageChanged(stage project.Stage) {
	switch stage {
	case project.StageValidating, project.StageDone:
		return
	case project.StageAborted:
		r.stop()
		return
	case project.StageVCSInitialized:
		r.stop()
	}

	_, _ = fmt.Fprintf(r.out, "%s %s\n", symSuccess(), stage)

	switch stage {
	case project.StageTokensRendered:
		if r.skipInstall {
			_, _ = fmt.Fprintf(r.out, "%s Skipping dependency installation (%s)\n", symWarning(), skipInstallEnv)
		} else {
			_, _ = fmt.Fprintf(r.out, "%s Installing dependencies with %s...\n", symProgress(), r.answers.PackageManagerOrDefault())
		}
	case project.StageDependenciesInstalled:
		if r.answers.HasFeature(feature.Git) {
			r.spinner = ui.NewSpinner(r.theme, r.headless, r.out, "Initializing Git repository...")
		}
	}
}

// stop halts the spinner if one is running. Safe to call repeatedly.
func (r *stageReporter) stop() {
	if r.spinner != nil {
		r.spinner.Stop()
		r.spinner = nil
	}
}
