// Package template materializes the embedded project templates: it copies
// template trees into the output directory and substitutes flat {{TOKEN}}
// placeholders in text files.
package template

import "errors"

// Sentinel errors for the template package.
var (
	// ErrTemplateNotFound indicates a template tree or file is not embedded.
	ErrTemplateNotFound = errors.New("template: not found")

	// ErrPathTraversal indicates a template path would escape the destination root.
	ErrPathTraversal = errors.New("template: path escapes destination root")
)
