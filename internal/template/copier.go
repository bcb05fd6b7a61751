package template

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/modu-ai/create-electron-app/internal/defs"
)

// @MX:ANCHOR: [AUTO] Copier lays down the base tree and every overlay; the composer never writes template files any other way.
// @MX:REASON: [AUTO] fan_in=4, base copy, overlays, extra copies and dist overlay
// Copier copies template trees and files from a filesystem into a project.
type Copier interface {
	// CopyTree recursively copies the tree named src into destRoot,
	// creating directories and overwriting existing files.
	CopyTree(ctx context.Context, src, destRoot string) error

	// CopyFile copies a single template file to dest, creating parent directories.
	CopyFile(src, dest string) error

	// HasTree reports whether a tree with the given name exists.
	HasTree(name string) bool
}

// copier is the concrete implementation of Copier.
type copier struct {
	fsys fs.FS
}

// NewCopier creates a Copier backed by the given filesystem.
// In production the fs.FS comes from go:embed; in tests use testing/fstest.MapFS.
func NewCopier(fsys fs.FS) Copier {
	return &copier{fsys: fsys}
}

// HasTree reports whether name is a directory in the template filesystem.
func (c *copier) HasTree(name string) bool {
	info, err := fs.Stat(c.fsys, name)
	return err == nil && info.IsDir()
}

// CopyTree walks src and writes every file below destRoot at the same
// relative path. The first error aborts the copy.
func (c *copier) CopyTree(ctx context.Context, src, destRoot string) error {
	destRoot = filepath.Clean(destRoot)

	info, err := fs.Stat(c.fsys, src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrTemplateNotFound, src)
		}
		return fmt.Errorf("stat template %q: %w", src, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("template %q is not a directory", src)
	}

	return fs.WalkDir(c.fsys, src, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Check context cancellation before each entry
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if path == src {
			return nil
		}
		rel := strings.TrimPrefix(path, src+"/")

		if err := validateDeployPath(destRoot, rel); err != nil {
			return err
		}
		destPath := filepath.Join(destRoot, filepath.FromSlash(rel))

		if entry.IsDir() {
			if err := os.MkdirAll(destPath, defs.DirPerm); err != nil {
				return fmt.Errorf("template copy mkdir %q: %w", destPath, err)
			}
			return nil
		}

		return c.writeFile(path, destPath)
	})
}

// CopyFile copies one file of the template filesystem to dest.
func (c *copier) CopyFile(src, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), defs.DirPerm); err != nil {
		return fmt.Errorf("template copy mkdir %q: %w", filepath.Dir(dest), err)
	}
	return c.writeFile(src, dest)
}

func (c *copier) writeFile(src, dest string) error {
	content, err := fs.ReadFile(c.fsys, src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrTemplateNotFound, src)
		}
		return fmt.Errorf("template copy read %q: %w", src, err)
	}

	perm := defs.FilePerm
	if strings.HasSuffix(dest, ".sh") {
		perm = defs.ExecPerm
	}

	if err := os.WriteFile(dest, content, perm); err != nil {
		return fmt.Errorf("template copy write %q: %w", dest, err)
	}
	return nil
}

// validateDeployPath ensures a template path does not escape destRoot.
func validateDeployPath(destRoot, relPath string) error {
	cleaned := filepath.Clean(filepath.FromSlash(relPath))

	if filepath.IsAbs(cleaned) {
		return fmt.Errorf("%w: absolute path %q", ErrPathTraversal, relPath)
	}

	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: parent reference in %q", ErrPathTraversal, relPath)
	}

	absRoot, err := filepath.Abs(destRoot)
	if err != nil {
		return fmt.Errorf("resolve destination root: %w", err)
	}

	absPath := filepath.Join(absRoot, cleaned)
	if !strings.HasPrefix(absPath, absRoot+string(filepath.Separator)) && absPath != absRoot {
		return fmt.Errorf("%w: %q escapes destination root", ErrPathTraversal, relPath)
	}

	return nil
}
