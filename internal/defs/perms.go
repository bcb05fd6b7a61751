package defs

import "io/fs"

// File permissions used when materializing templates.
const (
	// DirPerm is the permission for created directories.
	DirPerm fs.FileMode = 0o755

	// FilePerm is the permission for created files.
	FilePerm fs.FileMode = 0o644

	// ExecPerm is the permission for shell scripts shipped in templates.
	ExecPerm fs.FileMode = 0o755
)
