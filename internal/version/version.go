// Package version holds build metadata set through -ldflags.
package version

import "fmt"

//nolint:gochecknoglobals // Overridden at build time with -ldflags "-X".
var (
	// Version is the released version.
	Version = "0.1.0"
	// Commit is the source revision.
	Commit = "none"
	// BuildTime is the build timestamp.
	BuildTime = "unknown"
)

// Short returns the version only.
func Short() string {
	return Version
}

// Full returns the version, the commit and the build time.
func Full() string {
	return fmt.Sprintf("version: %s, commit: %s, built at: %s", Version, Commit, BuildTime)
}
