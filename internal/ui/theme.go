// Package ui holds the terminal building blocks shared by the CLI: headless
// detection, the color theme and the spinner.
package ui

import "os"

// Colors are lipgloss color strings (ANSI 256 codes or hex).
type Colors struct {
	Primary   string
	Secondary string
	Success   string
	Warning   string
	Error     string
	Muted     string
}

// Theme is the visual configuration of interactive components.
type Theme struct {
	Colors  Colors
	NoColor bool
}

// NewTheme returns the default theme. Color is disabled when the NO_COLOR
// environment variable is set to any value.
func NewTheme() *Theme {
	_, noColor := os.LookupEnv("NO_COLOR")
	return &Theme{
		Colors: Colors{
			Primary:   "#47848F",
			Secondary: "#9FEAF9",
			Success:   "#10B981",
			Warning:   "#F59E0B",
			Error:     "#EF4444",
			Muted:     "#6B7280",
		},
		NoColor: noColor,
	}
}
