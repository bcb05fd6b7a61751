// Package version reports the build identity of the create-electron-app binary.
package version

import (
	"fmt"
	"runtime/debug"
)

// Build-time variables injected via -ldflags. Commit and Date fall back to
// the VCS stamp recorded by the Go toolchain when left unset.
var (
	Version = "v0.4.0"
	Commit  = ""
	Date    = ""
)

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}

// GetCommit returns the build commit hash, shortened to 12 characters.
func GetCommit() string {
	if Commit != "" {
		return Commit
	}
	rev := buildSetting("vcs.revision")
	if len(rev) > 12 {
		rev = rev[:12]
	}
	if rev == "" {
		return "none"
	}
	if buildSetting("vcs.modified") == "true" {
		rev += "-dirty"
	}
	return rev
}

// GetDate returns the build date.
func GetDate() string {
	if Date != "" {
		return Date
	}
	if t := buildSetting("vcs.time"); t != "" {
		return t
	}
	return "unknown"
}

// GetFullVersion returns a formatted full version string.
func GetFullVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", GetVersion(), GetCommit(), GetDate())
}

func buildSetting(key string) string {
	info, ok := readBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == key {
			return s.Value
		}
	}
	return ""
}
