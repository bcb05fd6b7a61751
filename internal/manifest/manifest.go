// Package manifest builds and writes the package.json of a generated project.
//
// The manifest is assembled by merging, in order: the base runtime
// dependencies, the always-present dev toolchain, the dependency fragment of
// every selected feature that registers one, and the dev dependencies of every
// selected script. Later fragments overwrite earlier version ranges.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"

	"github.com/modu-ai/create-electron-app/internal/defs"
	"github.com/modu-ai/create-electron-app/internal/feature"
	"github.com/modu-ai/create-electron-app/pkg/models"
)

// Default values written into every manifest.
const (
	InitialVersion = "0.1.0"
	ModuleType     = "module"
)

// ErrInvalidManifest indicates a package.json that cannot be decoded.
var ErrInvalidManifest = errors.New("manifest: invalid package.json")

// BaseDependencies are the runtime dependencies of every generated app.
var BaseDependencies = map[string]string{
	"react":     "^18.0.0",
	"react-dom": "^18.0.0",
	"electron":  "^29.0.0",
}

// BaseDevDependencies are the build-time dependencies of every generated app.
var BaseDevDependencies = map[string]string{
	"vite":                 "^4.5.14",
	"@vitejs/plugin-react": "^3.0.0",
	"typescript":           "^5.4.5",
	"@types/node":          "^20.0.0",
	"@types/react":         "^18.0.0",
	"@types/react-dom":     "^18.0.0",
}

// PackageJSON is the project descriptor. Field order matches the emitted key order.
type PackageJSON struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Description     string            `json:"description"`
	Author          string            `json:"author"`
	License         string            `json:"license"`
	Type            string            `json:"type"`
	Main            string            `json:"main"`
	Scripts         map[string]string `json:"scripts"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// Build assembles the manifest for already-resolved answers.
// Features without a registered package fragment and unknown scripts
// contribute nothing.
func Build(answers *models.Answers, reg *feature.Registry) *PackageJSON {
	pkg := &PackageJSON{
		Name:            answers.AppName,
		Version:         InitialVersion,
		Description:     answers.Description,
		Author:          answers.Author,
		License:         answers.License,
		Type:            ModuleType,
		Main:            defs.ElectronEntry,
		Scripts:         make(map[string]string),
		Dependencies:    maps.Clone(BaseDependencies),
		DevDependencies: maps.Clone(BaseDevDependencies),
	}

	for _, id := range answers.Features {
		def, ok := reg.Feature(id)
		if !ok {
			continue
		}
		maps.Copy(pkg.Dependencies, def.Packages.Dependencies)
		maps.Copy(pkg.DevDependencies, def.Packages.DevDependencies)
	}

	for _, id := range answers.Scripts {
		script, ok := reg.Script(id)
		if !ok {
			continue
		}
		pkg.Scripts[id] = script.Command
		maps.Copy(pkg.DevDependencies, script.DevDependencies)
	}

	return pkg
}

// Marshal encodes the manifest with two-space indentation and a trailing
// newline. HTML characters are not escaped so commands keep their "&&".
func Marshal(pkg *PackageJSON) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(pkg); err != nil {
		return nil, fmt.Errorf("encode package.json: %w", err)
	}
	return buf.Bytes(), nil
}

// Write stores the manifest as package.json inside dir.
func Write(dir string, pkg *PackageJSON) error {
	data, err := Marshal(pkg)
	if err != nil {
		return err
	}
	path := filepath.Join(dir, defs.PackageJSON)
	if err := os.WriteFile(path, data, defs.FilePerm); err != nil {
		return fmt.Errorf("write %s: %w", defs.PackageJSON, err)
	}
	return nil
}

// Load reads package.json from dir.
func Load(dir string) (*PackageJSON, error) {
	data, err := os.ReadFile(filepath.Join(dir, defs.PackageJSON))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", defs.PackageJSON, err)
	}
	var pkg PackageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	return &pkg, nil
}
