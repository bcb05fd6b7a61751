package feature

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/modu-ai/create-electron-app/internal/defs"
)

// Feature identifiers with special handling in the composer.
const (
	Security  = "security"
	Preload   = "preload"
	Frameless = "frameless"
	Darkmode  = "darkmode"
	SQLite    = "sqlite"
	SSO       = "sso"
	ESLint    = "eslint"
	Prettier  = "prettier"
	Git       = "git"
)

// Script identifiers with special handling in the manifest builder and composer.
const (
	ScriptDev       = "dev"
	ScriptStart     = "start"
	ScriptBuild     = "build"
	ScriptPreview   = "preview"
	ScriptTypecheck = "typecheck"
	ScriptDist      = "dist"
	ScriptLint      = "lint"
	ScriptFormat    = "format"
	ScriptClean     = "clean"
	ScriptReset     = "reset"
)

// Packages is a dependency fragment merged into package.json.
type Packages struct {
	Dependencies    map[string]string
	DevDependencies map[string]string
}

// FileCopy copies one template file to one or more project paths.
type FileCopy struct {
	Source   string   // Slash path inside the templates filesystem.
	Targets  []string // Slash paths relative to the project root.
	Required bool     // A failed copy aborts generation.
}

// Definition describes a selectable feature.
type Definition struct {
	ID          string
	Title       string
	Description string
	Mandatory   bool
	Packages    Packages
	Copies      []FileCopy
	MainImports []string // Side-effect imports injected into the main-process entry.
}

// Script describes a package.json script entry.
type Script struct {
	ID              string
	Title           string
	Command         string
	DevDependencies map[string]string
}

// EdgeKind tells what kind of selection triggers an implied feature.
type EdgeKind int

const (
	// FeatureEdge is triggered by a selected feature.
	FeatureEdge EdgeKind = iota
	// ScriptEdge is triggered by a selected script.
	ScriptEdge
)

// Edge states that selecting From implies feature To.
type Edge struct {
	Kind   EdgeKind
	From   string
	To     string
	Notice string
}

// Registry is the static catalogue of features, scripts and implication edges.
type Registry struct {
	features []Definition
	scripts  []Script
	edges    []Edge
}

// NewRegistry creates a Registry from the given definitions.
// Definitions keep their order; it is the display order of the wizard.
func NewRegistry(features []Definition, scripts []Script, edges []Edge) *Registry {
	return &Registry{
		features: slices.Clone(features),
		scripts:  slices.Clone(scripts),
		edges:    slices.Clone(edges),
	}
}

// Feature looks up a feature definition by identifier.
func (r *Registry) Feature(id string) (Definition, bool) {
	for _, f := range r.features {
		if f.ID == id {
			return f, true
		}
	}
	return Definition{}, false
}

// Features returns all feature definitions in display order.
func (r *Registry) Features() []Definition {
	return slices.Clone(r.features)
}

// Optional returns the features the user may toggle.
func (r *Registry) Optional() []Definition {
	var out []Definition
	for _, f := range r.features {
		if !f.Mandatory {
			out = append(out, f)
		}
	}
	return out
}

// Mandatory returns the identifiers of features that are always included.
func (r *Registry) Mandatory() []string {
	var ids []string
	for _, f := range r.features {
		if f.Mandatory {
			ids = append(ids, f.ID)
		}
	}
	return ids
}

// Script looks up a script definition by identifier.
func (r *Registry) Script(id string) (Script, bool) {
	for _, s := range r.scripts {
		if s.ID == id {
			return s, true
		}
	}
	return Script{}, false
}

// Scripts returns all script definitions in display order.
func (r *Registry) Scripts() []Script {
	return slices.Clone(r.scripts)
}

// Edges returns the implication edges in evaluation order.
func (r *Registry) Edges() []Edge {
	return slices.Clone(r.edges)
}

// UnknownFeatures returns the selected feature identifiers that have no definition.
func (r *Registry) UnknownFeatures(ids []string) []string {
	var unknown []string
	for _, id := range ids {
		if _, ok := r.Feature(id); !ok {
			unknown = append(unknown, id)
		}
	}
	return unknown
}

// UnknownScripts returns the selected script identifiers that have no definition.
func (r *Registry) UnknownScripts(ids []string) []string {
	var unknown []string
	for _, id := range ids {
		if _, ok := r.Script(id); !ok {
			unknown = append(unknown, id)
		}
	}
	return unknown
}

// ElectronCommand returns the command line that launches the Electron entry.
// Chromium refuses to start as root without --no-sandbox.
func ElectronCommand(asRoot bool) string {
	if asRoot {
		return "electron --no-sandbox " + defs.ElectronEntry
	}
	return "electron " + defs.ElectronEntry
}

// RunningAsRoot reports whether the generator runs with uid 0.
// Always false on platforms without uids.
func RunningAsRoot() bool {
	return os.Geteuid() == 0
}

var typeScriptToolchain = map[string]string{
	"typescript":  "^5.4.5",
	"@types/node": "^20.0.0",
}

// DefaultScripts returns the built-in script catalogue.
func DefaultScripts(asRoot bool) []Script {
	electron := ElectronCommand(asRoot)
	vite := "vite --config vite.config.js"

	withTS := func(extra map[string]string) map[string]string {
		out := maps.Clone(typeScriptToolchain)
		maps.Copy(out, extra)
		return out
	}

	return []Script{
		{
			ID:      ScriptDev,
			Title:   "dev - watch TypeScript, serve Vite and launch Electron",
			Command: fmt.Sprintf(`cross-env NODE_ENV=development concurrently "tsc -w" "%s" "%s"`, vite, electron),
			DevDependencies: withTS(map[string]string{
				"cross-env":    "^7.0.3",
				"concurrently": "^8.2.2",
			}),
		},
		{
			ID:      ScriptStart,
			Title:   "start - serve Vite and launch Electron when ready",
			Command: fmt.Sprintf(`concurrently "%s" "wait-on tcp:5173 && %s"`, vite, electron),
			DevDependencies: map[string]string{
				"concurrently": "^8.2.2",
				"wait-on":      "^7.0.1",
			},
		},
		{
			ID:              ScriptBuild,
			Title:           "build - compile main process and bundle renderer",
			Command:         "tsc && vite build --config vite.config.js",
			DevDependencies: withTS(nil),
		},
		{
			ID:      ScriptPreview,
			Title:   "preview - preview the production renderer bundle",
			Command: "vite preview --config vite.config.js",
		},
		{
			ID:      ScriptTypecheck,
			Title:   "typecheck - run the TypeScript compiler without emitting",
			Command: "tsc --noEmit",
		},
		{
			ID:      ScriptDist,
			Title:   "dist - package the app with electron-builder",
			Command: "electron-builder",
			DevDependencies: map[string]string{
				"electron-builder": "^26.0.0",
			},
		},
		{
			ID:      ScriptLint,
			Title:   "lint - run ESLint over the sources",
			Command: `eslint "src/**/*.{ts,tsx}"`,
		},
		{
			ID:      ScriptFormat,
			Title:   "format - format sources with Prettier",
			Command: `prettier --write "src/**/*.{ts,tsx,js,css,html}"`,
		},
		{
			ID:      ScriptClean,
			Title:   "clean - remove build output",
			Command: "rimraf dist dist-renderer",
			DevDependencies: map[string]string{
				"rimraf": "^6.0.1",
			},
		},
		{
			ID:      ScriptReset,
			Title:   "reset - remove build output and node_modules",
			Command: "rimraf dist dist-renderer node_modules",
			DevDependencies: map[string]string{
				"rimraf": "^6.0.1",
			},
		},
	}
}

// DefaultFeatures returns the built-in feature catalogue.
func DefaultFeatures() []Definition {
	return []Definition{
		{
			ID:          Security,
			Title:       "Secure defaults",
			Description: "Context isolation, no node integration, strict CSP",
			Mandatory:   true,
		},
		{
			ID:          Preload,
			Title:       "Preload script",
			Description: "contextBridge API exposed to the renderer",
		},
		{
			ID:          Frameless,
			Title:       "Frameless window",
			Description: "Custom title bar with window controls",
		},
		{
			ID:          Darkmode,
			Title:       "Dark mode",
			Description: "Follow the OS theme via nativeTheme",
			Copies: []FileCopy{{
				Source:   "with-darkmode/src/darkmode.js",
				Targets:  []string{defs.DarkmodeFile, defs.DarkmodeFile},
				Required: true,
			}},
		},
		{
			ID:          SQLite,
			Title:       "SQLite",
			Description: "better-sqlite3 database in the main process",
			Packages: Packages{
				Dependencies: map[string]string{"better-sqlite3": "^12.2.0"},
			},
		},
		{
			ID:          SSO,
			Title:       "Single sign-on",
			Description: "OAuth device flow helper loaded by the main process",
			Packages: Packages{
				Dependencies: map[string]string{"node-fetch": "^3.3.2"},
			},
			Copies: []FileCopy{{
				Source:  "with-sso/auth.js",
				Targets: []string{defs.SSOAuthFile},
			}},
			MainImports: []string{"../auth.js"},
		},
		{
			ID:          ESLint,
			Title:       "ESLint",
			Description: "TypeScript-aware linting",
			Packages: Packages{
				DevDependencies: map[string]string{
					"eslint":                           "^8.56.0",
					"@typescript-eslint/parser":        "^6.7.0",
					"@typescript-eslint/eslint-plugin": "^6.7.0",
				},
			},
		},
		{
			ID:          Prettier,
			Title:       "Prettier",
			Description: "Opinionated code formatting",
			Packages: Packages{
				DevDependencies: map[string]string{"prettier": "^3.6.2"},
			},
		},
		{
			ID:          Git,
			Title:       "Git repository",
			Description: "git init and an initial commit",
		},
	}
}

// DefaultEdges returns the built-in implication edges.
func DefaultEdges() []Edge {
	return []Edge{
		{Kind: FeatureEdge, From: Frameless, To: Preload, Notice: "Preload enabled automatically for frameless windows."},
		{Kind: FeatureEdge, From: Darkmode, To: Preload, Notice: "Preload enabled automatically for dark mode."},
		{Kind: ScriptEdge, From: ScriptLint, To: ESLint, Notice: "ESLint feature added because lint script selected."},
		{Kind: ScriptEdge, From: ScriptFormat, To: Prettier, Notice: "Prettier feature added because format script selected."},
	}
}

// NewDefaultRegistry builds the registry used by the CLI.
func NewDefaultRegistry() *Registry {
	return NewRegistry(DefaultFeatures(), DefaultScripts(RunningAsRoot()), DefaultEdges())
}
