package wizard

import "github.com/charmbracelet/lipgloss"

// Brand colors shared by the wizard theme and the summary box.
const (
	ColorPrimary   = "#47848F"
	ColorSecondary = "#9FEAF9"
	ColorSuccess   = "#10B981"
	ColorWarning   = "#F59E0B"
	ColorError     = "#EF4444"
	ColorText      = "#F3F4F6"
	ColorMuted     = "#6B7280"
	ColorBorder    = "#4B5563"
)

// Styles holds the lipgloss styles used outside of huh forms.
type Styles struct {
	Header  lipgloss.Style
	Step    lipgloss.Style
	Box     lipgloss.Style
	Title   lipgloss.Style
	Section lipgloss.Style
	Label   lipgloss.Style
	Muted   lipgloss.Style
	Notice  lipgloss.Style
}

// NewStyles creates the wizard styles.
func NewStyles() *Styles {
	primary := lipgloss.AdaptiveColor{Light: "#2F6670", Dark: ColorPrimary}
	success := lipgloss.AdaptiveColor{Light: "#059669", Dark: ColorSuccess}
	warning := lipgloss.AdaptiveColor{Light: "#B45309", Dark: ColorWarning}
	muted := lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: ColorMuted}

	return &Styles{
		Header: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(1, 2).
			Margin(1, 0),
		Step: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}).
			Background(primary).
			Bold(true).
			Padding(0, 1),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(success).
			Padding(1, 2).
			Margin(1, 0),
		Title:   lipgloss.NewStyle().Bold(true),
		Section: lipgloss.NewStyle().Underline(true).Foreground(primary),
		Label:   lipgloss.NewStyle().Foreground(muted),
		Muted:   lipgloss.NewStyle().Foreground(muted),
		Notice:  lipgloss.NewStyle().Foreground(warning),
	}
}
