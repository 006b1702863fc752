// Package version reports the build metadata of mediacaps.
package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Set via ldflags during build.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info contains version and build metadata.
type Info struct {
	Version     string   `json:"version"`
	GitCommit   string   `json:"git_commit"`
	BuildDate   string   `json:"build_date"`
	GoVersion   string   `json:"go_version"`
	Platform    string   `json:"platform"`
	Generations []string `json:"generations,omitempty"`
}

// Get returns version and build information. Generations lists the
// hardware generations compiled into the binary.
func Get(generations ...string) Info {
	return Info{
		Version:     Version,
		GitCommit:   GitCommit,
		BuildDate:   BuildDate,
		GoVersion:   runtime.Version(),
		Platform:    runtime.GOOS + "/" + runtime.GOARCH,
		Generations: generations,
	}
}

// String formats the info as a single line.
func (i Info) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "mediacaps %s", i.Version)
	if i.GitCommit != "" && i.GitCommit != "unknown" {
		short := i.GitCommit
		if len(short) > 7 {
			short = short[:7]
		}
		fmt.Fprintf(&b, " (%s)", short)
	}
	fmt.Fprintf(&b, " %s %s", i.GoVersion, i.Platform)
	if len(i.Generations) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(i.Generations, ", "))
	}
	return b.String()
}

// String returns the application version string.
func String() string {
	return Version
}
