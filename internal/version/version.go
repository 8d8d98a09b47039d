// Package version provides build version information for qgate.
// Variables are set at build time via ldflags:
//
//	go build -ldflags="-X github.com/jpl-au/qgate/internal/version.Version=v1.0.0 \
//	  -X github.com/jpl-au/qgate/internal/version.GitCommit=abc123 \
//	  -X github.com/jpl-au/qgate/internal/version.BuildTime=2026-01-15T10:30:00Z"
package version

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/jpl-au/qgate/internal/platform"
)

// Build information. Set via ldflags at build time.
var (
	Version   = "dev"     // Version tag (e.g., "v1.0.0")
	GitCommit = "unknown" // Short git commit hash
	BuildTime = "unknown" // RFC3339 build timestamp
)

// Info holds structured version information.
type Info struct {
	BuildTag  string   `json:"build_tag"`  // Version tag (e.g., "v1.0.0" or "dev")
	BuildTime string   `json:"build_time"` // RFC3339 build timestamp
	GitCommit string   `json:"git_commit"` // Short git commit hash
	GoVersion string   `json:"go_version"` // Go runtime version
	OSArch    string   `json:"os_arch"`    // OS and architecture (e.g., "darwin arm64")
	Platforms []string `json:"platforms"`  // Content platforms with built-in rules
}

// Get returns the current version information.
func Get() Info {
	var names []string
	for _, p := range platform.Known() {
		names = append(names, p.String())
	}
	return Info{
		BuildTag:  Version,
		BuildTime: BuildTime,
		GitCommit: GitCommit,
		GoVersion: runtime.Version(),
		OSArch:    fmt.Sprintf("%s %s", runtime.GOOS, runtime.GOARCH),
		Platforms: names,
	}
}

// String returns a formatted version string suitable for display.
func (i Info) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Build Tag:    %s\n", i.BuildTag)
	fmt.Fprintf(&b, "Build Time:   %s\n", i.BuildTime)
	fmt.Fprintf(&b, "Go Version:   %s\n", i.GoVersion)
	fmt.Fprintf(&b, "OS/Arch:      %s\n", i.OSArch)
	fmt.Fprintf(&b, "Git Commit:   %s\n", i.GitCommit)
	fmt.Fprintf(&b, "Platforms:    %s\n", strings.Join(i.Platforms, ", "))
	return b.String()
}

// Short returns just the version string (e.g., "v1.0.0" or "dev").
func Short() string {
	return Version
}
