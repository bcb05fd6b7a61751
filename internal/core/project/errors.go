// Package project implements the project composer: it validates the target
// directory, lays down the embedded templates for the resolved feature set,
// patches sources, renders tokens, installs dependencies and initializes the
// repository, rolling the whole directory back on any fatal failure.
package project

import (
	"errors"
	"fmt"
)

// Sentinel errors for the project package. Fatal failures are returned as a
// *StageError whose Kind is one of these.
var (
	// ErrDirectoryNotEmpty indicates the target path exists and is not an empty directory.
	ErrDirectoryNotEmpty = errors.New("project: target directory is not empty")

	// ErrManifestWrite indicates package.json could not be written.
	ErrManifestWrite = errors.New("project: manifest write failed")

	// ErrCopy indicates a template tree or a required file could not be copied.
	ErrCopy = errors.New("project: template copy failed")

	// ErrRender indicates token substitution failed.
	ErrRender = errors.New("project: token render failed")

	// ErrInstall indicates the package manager install failed.
	ErrInstall = errors.New("project: dependency install failed")

	// ErrVCS indicates repository initialization failed.
	ErrVCS = errors.New("project: repository initialization failed")

	// ErrCancelled indicates the context was cancelled between stages.
	ErrCancelled = errors.New("project: generation cancelled")
)

// StageError is a fatal failure of one composer stage.
type StageError struct {
	Stage Stage // Stage whose transition failed.
	Kind  error // One of the package sentinels.
	Err   error // Underlying cause.
}

// Error implements the error interface as "<stage>: <cause>".
func (e *StageError) Error() string {
	cause := e.Err
	if cause == nil {
		cause = e.Kind
	}
	return fmt.Sprintf("%s: %v", e.Stage, cause)
}

// Unwrap exposes both the sentinel and the cause to errors.Is and errors.As.
func (e *StageError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// PatchWarning is a non-fatal failure of an optional content patch.
type PatchWarning struct {
	Step string // Short name of the patch, e.g. "strip preload".
	File string // Slash path relative to the project root, if any.
	Err  error
}

// String formats the warning for display.
func (w PatchWarning) String() string {
	if w.File == "" {
		return fmt.Sprintf("%s: %v", w.Step, w.Err)
	}
	return fmt.Sprintf("%s (%s): %v", w.Step, w.File, w.Err)
}
