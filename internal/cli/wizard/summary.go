package wizard

import (
	"strings"

	"github.com/modu-ai/create-electron-app/internal/feature"
	"github.com/modu-ai/create-electron-app/pkg/models"
)

// RenderSummary renders the boxed project summary shown before the
// confirmation prompt. Feature and script identifiers are shown with
// their registry titles when known.
func RenderSummary(a *models.Answers, reg *feature.Registry, styles *Styles) string {
	if styles == nil {
		styles = NewStyles()
	}
	if reg == nil {
		reg = feature.NewDefaultRegistry()
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render("Project Summary"))
	b.WriteString("\n\n")

	b.WriteString(styles.Section.Render("Metadata"))
	b.WriteString("\n")
	for _, row := range [][2]string{
		{"Name", a.AppName},
		{"Title", a.Title},
		{"Description", a.Description},
		{"Author", a.Author},
		{"License", a.License},
		{"Package Manager", string(a.PackageManagerOrDefault())},
	} {
		b.WriteString(styles.Label.Render(row[0] + ":"))
		b.WriteString(" ")
		b.WriteString(row[1])
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.Section.Render("Features"))
	for _, id := range a.Features {
		label := id
		if def, ok := reg.Feature(id); ok {
			label = def.Title + " (" + id + ")"
		}
		b.WriteString("\n✓ ")
		b.WriteString(label)
	}

	b.WriteString("\n\n")
	b.WriteString(styles.Section.Render("Scripts"))
	for _, id := range a.Scripts {
		b.WriteString("\n⚙ ")
		b.WriteString(id)
	}

	return styles.Box.Render(b.String())
}

// RenderNotices renders the messages produced when feature resolution
// added features on the user's behalf, one per line.
func RenderNotices(notices []string, styles *Styles) string {
	if len(notices) == 0 {
		return ""
	}
	if styles == nil {
		styles = NewStyles()
	}
	lines := make([]string, len(notices))
	for i, n := range notices {
		lines[i] = styles.Notice.Render(n)
	}
	return strings.Join(lines, "\n")
}
