package sbomgrader

import (
	"fmt"
	"runtime"
)

var (
	// version, commit and buildTime are set via ldflags during build by
	// GoReleaser. For development builds these retain their defaults.
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Version returns the compiled version or "dev" if run from source.
func Version() string {
	return version
}

// Commit returns the git commit this binary was built from, or "unknown"
// if run from source.
func Commit() string {
	return commit
}

// BuildTime returns the RFC3339 build timestamp, or "unknown" if run from
// source.
func BuildTime() string {
	return buildTime
}

// GoVersion returns the Go toolchain version used to build the binary.
func GoVersion() string {
	return runtime.Version()
}

// UserAgent returns a User-Agent string of the form "sbomgrader/<version>".
// Nothing in this module makes HTTP requests itself.
func UserAgent() string {
	return fmt.Sprintf("sbomgrader/%s", version)
}

// BuildInfo returns a multi-line summary of all build metadata. The CLI's
// "version" command prints its own lines rather than this summary.
func BuildInfo() string {
	return fmt.Sprintf("Version: %s\nCommit: %s\nBuild Time: %s\nGo Version: %s",
		Version(), Commit(), BuildTime(), GoVersion())
}
