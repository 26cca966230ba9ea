package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Version is stamped at release time with -ldflags "-X .../internal/version.Version=v1.2.3".
var Version = ""

// Info describes the running binary.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get reports the stamped version, falling back to the module build info.
func Get() Info {
	info := Info{
		Version:   Version,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		if info.Version == "" {
			info.Version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				info.Commit = shortRevision(s.Value)
			}
		}
	}
	if info.Version == "" || info.Version == "(devel)" {
		info.Version = "dev"
	}
	return info
}

// String renders the one-line version banner.
func (i Info) String() string {
	if i.Commit == "" {
		return fmt.Sprintf("ci-mgmt %s (%s, %s)", i.Version, i.GoVersion, i.Platform)
	}
	return fmt.Sprintf("ci-mgmt %s+%s (%s, %s)", i.Version, i.Commit, i.GoVersion, i.Platform)
}

func shortRevision(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}
