package template

import (
	"embed"
	"fmt"
	"io/fs"
	"path"

	"github.com/modu-ai/create-electron-app/internal/defs"
)

// embedded holds the base tree and every with-<name> overlay.
// The all: prefix keeps dotfiles such as .gitignore.
//
//go:embed all:templates
var embedded embed.FS

// EmbeddedTemplates returns the template trees rooted at the templates directory.
func EmbeddedTemplates() (fs.FS, error) {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		return nil, fmt.Errorf("open embedded templates: %w", err)
	}
	return sub, nil
}

// OverlayName returns the template tree name of a feature overlay.
func OverlayName(featureID string) string {
	return defs.FeatureTemplatePrefix + featureID
}

// OverlayFile returns the slash path of a file inside a feature overlay.
func OverlayFile(featureID, rel string) string {
	return path.Join(OverlayName(featureID), rel)
}
