// Package version holds build information for cvr-i18n.
package version

import "runtime"

// These variables can be overridden at build time using ldflags:
// go build -ldflags "-X cvri18n/internal/version.Version=0.2.0 -X cvri18n/internal/version.Commit=abc123"
var (
	// Version is the semantic version of cvr-i18n
	Version = "0.1.0"

	// Commit is the git commit hash (set at build time)
	Commit = "unknown"

	// BuildDate is the build timestamp (set at build time)
	BuildDate = "unknown"
)

// Info returns the short version string used by --version.
func Info() string {
	if Commit != "unknown" && len(Commit) > 7 {
		return Version + " (" + Commit[:7] + ")"
	}
	return Version
}

// Full returns complete version information
func Full() string {
	return "cvr-i18n version " + Version + "\n" +
		"Commit: " + Commit + "\n" +
		"Built: " + BuildDate + "\n" +
		"Go: " + runtime.Version()
}
