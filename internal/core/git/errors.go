// Package git initializes the repository of a generated project with the
// system git binary.
package git

import "errors"

// Sentinel errors for the git package.
var (
	// ErrSystemGitNotFound indicates git is not installed or not on PATH.
	ErrSystemGitNotFound = errors.New("git: system git not found")

	// ErrEmptyCommitMessage indicates Commit was called without a message.
	ErrEmptyCommitMessage = errors.New("git: empty commit message")
)
