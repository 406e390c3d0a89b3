// Package version holds build metadata injected at link time.
package version

import (
	"runtime/debug"
)

const unknown = "<unknown>"

// Set via -ldflags "-X github.com/Sumatoshi-tech/rbkeys/pkg/version.Version=...".
var (
	Version = "dev"
	Commit  = unknown
	Date    = unknown
)

const (
	settingRevision = "vcs.revision"
	settingTime     = "vcs.time"
)

// InitBinaryVersion fills metadata not set by ldflags from the module build
// info embedded by the Go toolchain.
func InitBinaryVersion() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	apply(info)
}

func apply(info *debug.BuildInfo) {
	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	for _, setting := range info.Settings {
		switch setting.Key {
		case settingRevision:
			if Commit == unknown {
				Commit = setting.Value
			}
		case settingTime:
			if Date == unknown {
				Date = setting.Value
			}
		}
	}
}

// String formats the metadata as a single line.
func String() string {
	return Version + " (commit: " + Commit + ", built: " + Date + ")"
}
