// Package config loads answers files and supplies the default answers used
// when a question is skipped.
package config

import "errors"

// Sentinel errors for configuration operations.
var (
	// ErrAnswersNotFound indicates the answers file does not exist.
	ErrAnswersNotFound = errors.New("config: answers file not found")

	// ErrInvalidYAML indicates invalid YAML syntax or an unknown key in an answers file.
	ErrInvalidYAML = errors.New("config: invalid YAML syntax")

	// ErrFileTooLarge indicates the answers file exceeds MaxAnswersFileSize.
	ErrFileTooLarge = errors.New("config: answers file too large")
)
