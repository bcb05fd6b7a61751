package defs

// Common file names used across the generated project.
const (
	// PackageJSON is the project descriptor consumed by the package manager.
	PackageJSON = "package.json"

	// TSConfigJSON is the TypeScript project configuration.
	TSConfigJSON = "tsconfig.json"

	// GitDir is the version control metadata directory.
	GitDir = ".git"

	// SourceDir holds the main-process and renderer sources.
	SourceDir = "src"

	// ElectronEntry is the manifest "main" entry point.
	ElectronEntry = "electron-main.mjs"
)

// Source files patched after the base tree is laid down, relative to the
// project root in slash form.
const (
	MainProcessFile = "src/main.ts"
	PreloadFile     = "src/preload.ts"
	AppRootFile     = "src/App.tsx"
	GlobalTypesFile = "src/global.d.ts"
	DarkmodeFile    = "src/darkmode.js"
	SSOAuthFile     = "auth.js"
)

// Template tree names inside the embedded templates filesystem.
const (
	BaseTemplate          = "base"
	FeatureTemplatePrefix = "with-"
	DistTemplate          = "with-dist"
)
