package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/modu-ai/create-electron-app/internal/core/project"
	"github.com/modu-ai/create-electron-app/internal/feature"
	"github.com/modu-ai/create-electron-app/pkg/models"
)

// CLI output styles for consistent terminal output.
var (
	cliSuccess = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"})
	cliWarn    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#F59E0B"})
	cliError   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"})
	cliMuted   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"})
	cliPrimary = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#2F6670", Dark: "#47848F"})
	cliBorder  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"})
)

func symSuccess() string  { return cliSuccess.Render("✓") }
func symError() string    { return cliError.Render("✗") }
func symWarning() string  { return cliWarn.Render("!") }
func symProgress() string { return cliMuted.Render("○") }

// printWelcome prints the boxed banner shown before the wizard.
func printWelcome(out io.Writer, name string) {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(cliBorder.GetForeground()).
		Padding(1, 2).
		Margin(1, 0)
	content := cliPrimary.Bold(true).Render(name) + "\n" +
		"A friendly wizard to scaffold your Electron project."
	_, _ = fmt.Fprintln(out, box.Render(content))
	_, _ = fmt.Fprintln(out, cliMuted.Render("Use arrow keys to navigate, space to select, enter to confirm."))
}

// printNotices prints the messages produced by feature resolution.
func printNotices(out io.Writer, notices []string) {
	for _, n := range notices {
		_, _ = fmt.Fprintf(out, "%s %s\n", symWarning(), cliWarn.Render(n))
	}
}

// printWarnings lists the non-fatal patch failures of a run.
func printWarnings(out io.Writer, warnings []project.PatchWarning) {
	if len(warnings) == 0 {
		return
	}
	_, _ = fmt.Fprintf(out, "\n%s Completed with %d warning(s):\n", symWarning(), len(warnings))
	for _, w := range warnings {
		_, _ = fmt.Fprintf(out, "  %s %s\n", cliMuted.Render("-"), w.String())
	}
}

// printFailure reports a fatal error.
func printFailure(out io.Writer, err error) {
	_, _ = fmt.Fprintf(out, "\n%s %s\n", symError(), cliError.Render(err.Error()))
}

// printSuccess prints the success line and the rendered next steps.
func printSuccess(out io.Writer, result *project.Result, skipInstall, plain bool) {
	_, _ = fmt.Fprintf(out, "\n%s Project created at %s\n", symSuccess(), cliPrimary.Render(result.OutputDir))
	_, _ = fmt.Fprint(out, renderMarkdown(nextStepsMarkdown(result, skipInstall), plain))
}

// nextStepsMarkdown builds the commands that get the new project running.
func nextStepsMarkdown(result *project.Result, skipInstall bool) string {
	a := result.Answers
	if a == nil {
		a = &models.Answers{}
	}
	pm := a.PackageManagerOrDefault()

	var b strings.Builder
	b.WriteString("## Next steps\n\n```sh\n")
	fmt.Fprintf(&b, "cd %s\n", displayPath(result.OutputDir))
	if skipInstall {
		fmt.Fprintf(&b, "%s install\n", pm)
	}
	if script := launchScript(a); script != "" {
		fmt.Fprintf(&b, "%s run %s\n", pm, script)
	}
	b.WriteString("```\n")
	return b.String()
}

// launchScript picks the script that starts the app, preferring dev.
func launchScript(a *models.Answers) string {
	for _, id := range []string{feature.ScriptDev, feature.ScriptStart} {
		if a.HasScript(id) {
			return id
		}
	}
	if len(a.Scripts) > 0 {
		return a.Scripts[0]
	}
	return ""
}

// displayPath shortens dir relative to the working directory when it lies below it.
func displayPath(dir string) string {
	wd, err := os.Getwd()
	if err != nil {
		return dir
	}
	rel, err := filepath.Rel(wd, dir)
	if err != nil || strings.HasPrefix(rel, "..") {
		return dir
	}
	return rel
}

// renderMarkdown renders md for the terminal. Plain output uses the
// notty style so no escape sequences are emitted.
func renderMarkdown(md string, plain bool) string {
	style := glamour.WithAutoStyle()
	if plain {
		style = glamour.WithStandardStyle("notty")
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(80))
	if err != nil {
		return md
	}
	rendered, err := r.Render(md)
	if err != nil {
		return md
	}
	return rendered
}
