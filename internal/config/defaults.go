package config

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/modu-ai/create-electron-app/internal/feature"
	"github.com/modu-ai/create-electron-app/pkg/models"
)

// Default answer values.
const (
	DefaultTitle          = "MyApp"
	DefaultDescription    = "A secure Electron app."
	DefaultLicense        = "MIT"
	DefaultPackageManager = models.PackageManagerNPM
)

// DefaultScripts is the script selection used when none is given.
var DefaultScripts = []string{feature.ScriptDev, feature.ScriptBuild}

// TitleFromAppName turns an app name such as "my-cool_app" into "My Cool App".
// An empty name yields DefaultTitle.
func TitleFromAppName(appName string) string {
	words := strings.FieldsFunc(appName, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	if len(words) == 0 {
		return DefaultTitle
	}
	return cases.Title(language.English).String(strings.Join(words, " "))
}

// ApplyDefaults fills every empty field of a except Author and Features.
// Scripts are only defaulted when nil, so an explicit empty list survives.
func ApplyDefaults(a *models.Answers) {
	if a.Title == "" {
		a.Title = TitleFromAppName(a.AppName)
	}
	if a.Description == "" {
		a.Description = DefaultDescription
	}
	if a.License == "" {
		a.License = DefaultLicense
	}
	if a.PackageManager == "" {
		a.PackageManager = DefaultPackageManager
	}
	if a.Scripts == nil {
		a.Scripts = append([]string(nil), DefaultScripts...)
	}
}
