// Package version reports build metadata injected at link time.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set with -ldflags "-X github.com/example/worklog/internal/version.Commit=...".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// String describes the running binary. Commit and build time fall back to
// the VCS stamp the go tool embeds when ldflags did not set them.
func String() string {
	commit, built := Commit, BuildTime
	if info, ok := readBuildInfo(); ok {
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if commit == "unknown" {
					commit = s.Value
				}
			case "vcs.time":
				if built == "unknown" {
					built = s.Value
				}
			}
		}
	}
	return fmt.Sprintf("worklog %s (commit: %s, built: %s)", Version, short(commit), built)
}

func short(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}
