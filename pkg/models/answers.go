// @MX:NOTE: [AUTO] Answers is mutated in place by feature resolution; Features keeps first-seen order because overlays are applied in that order.
package models

import (
	"regexp"
	"slices"
)

// PackageManager identifies the tool used to install project dependencies.
type PackageManager string

const (
	PackageManagerNPM  PackageManager = "npm"
	PackageManagerYarn PackageManager = "yarn"
	PackageManagerPNPM PackageManager = "pnpm"
)

// ValidPackageManagers returns all supported package managers in display order.
func ValidPackageManagers() []PackageManager {
	return []PackageManager{PackageManagerNPM, PackageManagerYarn, PackageManagerPNPM}
}

// IsValid checks if the package manager is a supported value.
func (p PackageManager) IsValid() bool {
	switch p {
	case PackageManagerNPM, PackageManagerYarn, PackageManagerPNPM:
		return true
	}
	return false
}

// appNamePattern restricts application names to characters that are safe
// both as a directory name and as an npm package name.
var appNamePattern = regexp.MustCompile(`^[a-zA-Z0-9-_]+$`)

// Answers holds the configuration choices collected by the wizard or flags.
type Answers struct {
	AppName        string         `yaml:"app_name" json:"appName"`
	Title          string         `yaml:"title" json:"title"`
	Description    string         `yaml:"description" json:"description"`
	Author         string         `yaml:"author" json:"author"`
	License        string         `yaml:"license" json:"license"`
	PackageManager PackageManager `yaml:"package_manager" json:"packageManager"`
	Features       []string       `yaml:"features" json:"features"`
	Scripts        []string       `yaml:"scripts" json:"scripts"`

	// AutoPreload is set when preload was added because another feature needs it.
	AutoPreload bool `yaml:"-" json:"autoPreload,omitempty"`
}

// HasFeature reports whether the feature identifier is selected.
func (a *Answers) HasFeature(id string) bool {
	return slices.Contains(a.Features, id)
}

// HasScript reports whether the script identifier is selected.
func (a *Answers) HasScript(id string) bool {
	return slices.Contains(a.Scripts, id)
}

// AddFeature appends the feature if it is not already selected.
// Returns true when the feature was added.
func (a *Answers) AddFeature(id string) bool {
	if a.HasFeature(id) {
		return false
	}
	a.Features = append(a.Features, id)
	return true
}

// PackageManagerOrDefault returns the selected package manager, or npm when unset.
func (a *Answers) PackageManagerOrDefault() PackageManager {
	if a.PackageManager == "" {
		return PackageManagerNPM
	}
	return a.PackageManager
}

// Validate checks the answers and returns a *ValidationErrors describing
// every invalid field, or nil when the answers are usable.
func (a *Answers) Validate() error {
	var errs []ValidationError

	if !appNamePattern.MatchString(a.AppName) {
		errs = append(errs, ValidationError{
			Field:   "app_name",
			Message: "must contain only letters, digits, dashes and underscores",
			Value:   a.AppName,
			Wrapped: ErrInvalidAppName,
		})
	}
	if a.PackageManager != "" && !a.PackageManager.IsValid() {
		errs = append(errs, ValidationError{
			Field:   "package_manager",
			Message: "must be one of: npm, yarn, pnpm",
			Value:   string(a.PackageManager),
			Wrapped: ErrInvalidPackageManager,
		})
	}
	if dup := firstDuplicate(a.Scripts); dup != "" {
		errs = append(errs, ValidationError{
			Field:   "scripts",
			Message: "script selected more than once",
			Value:   dup,
			Wrapped: ErrDuplicateScript,
		})
	}

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}

func firstDuplicate(values []string) string {
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if seen[v] {
			return v
		}
		seen[v] = true
	}
	return ""
}
