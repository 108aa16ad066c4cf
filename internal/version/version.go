// Package version holds the application version string.
// It is overridden at build time via -ldflags.
package version

// Version is the application version.
var Version = "dev"
