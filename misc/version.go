// Package misc provides program identification helpers.
package misc

import (
	"runtime/debug"
)

const appName = "nbk"

// Set by the build system via -ldflags, empty for "go install" builds.
var (
	version string
	gitHash string
)

// GetAppName returns short program name used for logging, temporary files and
// report naming.
func GetAppName() string {
	return appName
}

// GetVersion returns program version - either set at build time or derived
// from module build information.
func GetVersion() string {
	if len(version) > 0 {
		return version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && len(bi.Main.Version) > 0 {
		return bi.Main.Version
	}
	return "unknown"
}

// GetGitHash returns VCS revision recorded in build information.
func GetGitHash() string {
	if len(gitHash) > 0 {
		return gitHash
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				if len(s.Value) > 8 {
					return s.Value[:8]
				}
				return s.Value
			}
		}
	}
	return "unknown"
}
