package template

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
)

// Tokens maps placeholder names to their replacement values.
type Tokens map[string]string

// Placeholder returns the text that stands for a token in template files.
func Placeholder(name string) string {
	return "{{" + name + "}}"
}

// unexpandedTokenPattern detects placeholders left after rendering.
// JSX style objects such as {{ color: "red" }} do not match.
var unexpandedTokenPattern = regexp.MustCompile(`\{\{[A-Z][A-Z0-9_]*\}\}`)

// textExtensions lists the file extensions eligible for substitution.
var textExtensions = map[string]bool{
	".ts": true, ".tsx": true, ".js": true, ".mjs": true, ".cjs": true, ".jsx": true,
	".json": true, ".html": true, ".css": true, ".md": true, ".txt": true,
	".yml": true, ".yaml": true,
}

// textDotfiles lists extension-less configuration files eligible for substitution.
var textDotfiles = map[string]bool{
	".gitignore": true, ".prettierrc": true, ".eslintrc": true,
	".npmrc": true, ".editorconfig": true, ".env.example": true,
}

// skipDirs are never descended into while rendering.
var skipDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
}

// IsTextFile reports whether a file name is eligible for token substitution.
func IsTextFile(name string) bool {
	base := filepath.Base(name)
	if textDotfiles[base] {
		return true
	}
	return textExtensions[strings.ToLower(filepath.Ext(base))]
}

// UnexpandedToken is a placeholder still present after rendering.
type UnexpandedToken struct {
	File  string // Slash path relative to the rendered root.
	Token string
}

// RenderResult summarizes a RenderTree call.
type RenderResult struct {
	Files      []string // Files whose content changed, slash paths relative to root.
	Unexpanded []UnexpandedToken
}

// Renderer substitutes tokens across an output tree.
type Renderer interface {
	// RenderTree replaces every placeholder of tokens in each eligible text
	// file below root and writes changed files back in place.
	RenderTree(ctx context.Context, root string, tokens Tokens) (*RenderResult, error)
}

// renderer is the concrete implementation of Renderer.
type renderer struct{}

// NewRenderer creates the flat find/replace Renderer.
func NewRenderer() Renderer {
	return &renderer{}
}

// NewReplacer builds a single-pass replacer for the given tokens. Replaced
// text is never scanned again, so a value containing a placeholder stays literal.
func NewReplacer(tokens Tokens) *strings.Replacer {
	names := make([]string, 0, len(tokens))
	for name := range tokens {
		names = append(names, name)
	}
	slices.Sort(names)

	pairs := make([]string, 0, len(names)*2)
	for _, name := range names {
		pairs = append(pairs, Placeholder(name), tokens[name])
	}
	return strings.NewReplacer(pairs...)
}

// RenderTree walks root and substitutes tokens in text files.
func (r *renderer) RenderTree(ctx context.Context, root string, tokens Tokens) (*RenderResult, error) {
	root = filepath.Clean(root)
	replacer := NewReplacer(tokens)
	result := &RenderResult{}

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if entry.IsDir() {
			if path != root && skipDirs[entry.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !entry.Type().IsRegular() || !IsTextFile(entry.Name()) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("relative path of %q: %w", path, err)
		}
		rel = filepath.ToSlash(rel)

		changed, leftovers, err := renderFile(path, replacer)
		if err != nil {
			return err
		}
		if changed {
			result.Files = append(result.Files, rel)
		}
		for _, tok := range leftovers {
			result.Unexpanded = append(result.Unexpanded, UnexpandedToken{File: rel, Token: tok})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// renderFile rewrites one file in place. It reports whether the content
// changed and which placeholders remain afterwards.
func renderFile(path string, replacer *strings.Replacer) (bool, []string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, nil, fmt.Errorf("stat %q: %w", path, err)
	}
	original, err := os.ReadFile(path)
	if err != nil {
		return false, nil, fmt.Errorf("read %q: %w", path, err)
	}

	rendered := []byte(replacer.Replace(string(original)))

	var leftovers []string
	for _, m := range unexpandedTokenPattern.FindAll(rendered, -1) {
		if tok := string(m); !slices.Contains(leftovers, tok) {
			leftovers = append(leftovers, tok)
		}
	}

	if bytes.Equal(original, rendered) {
		return false, leftovers, nil
	}
	if err := os.WriteFile(path, rendered, info.Mode().Perm()); err != nil {
		return false, nil, fmt.Errorf("write %q: %w", path, err)
	}
	return true, leftovers, nil
}
