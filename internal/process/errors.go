// Package process runs the external tools a generated project needs,
// currently the package manager install.
package process

import "errors"

// Sentinel errors for the process package.
var (
	// ErrCommandNotFound indicates the executable is not on PATH.
	ErrCommandNotFound = errors.New("process: command not found")

	// ErrUnsupportedPackageManager indicates a package manager outside npm, yarn and pnpm.
	ErrUnsupportedPackageManager = errors.New("process: unsupported package manager")
)
