// Package version exposes build metadata injected with -ldflags.
package version

import (
	"fmt"
	"runtime"
)

var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// Short returns the bare version string.
func Short() string {
	return version
}

// Info returns the multi-line version report.
func Info() string {
	return fmt.Sprintf("biblec %s\ncommit: %s\nbuilt: %s\ngo: %s %s/%s",
		version, gitCommit, buildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
