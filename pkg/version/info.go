// Package version carries the build metadata of the i18nbuild binary.
package version

import (
	"fmt"
	"strings"
	"time"
)

const (
	// Tool is the binary name reported by Current.
	Tool = "i18nbuild"
	// Unknown is used when build metadata is not provided.
	Unknown = "unknown"
	// DevelopmentVersion is the default version in local builds.
	DevelopmentVersion = "dev"
)

var (
	// AppVersion is intended to be overridden at build time:
	// go build -ldflags="-X github.com/nimburion/i18nbuild/pkg/version.AppVersion=v1.2.3"
	AppVersion = DevelopmentVersion

	// GitCommit is intended to be overridden at build time.
	GitCommit = Unknown

	// BuildTime is intended to be overridden at build time (RFC3339 recommended).
	BuildTime = Unknown
)

// Info contains version metadata of the binary.
type Info struct {
	Tool       string `json:"tool" yaml:"tool"`
	Version    string `json:"version" yaml:"version"`
	Commit     string `json:"commit" yaml:"commit"`
	BuildTime  string `json:"build_time" yaml:"build_time"`
	Prerelease bool   `json:"prerelease" yaml:"prerelease"`
}

// Current returns the current build version metadata.
func Current() Info {
	info := Info{
		Tool:      Tool,
		Version:   normalizeOrDefault(AppVersion, DevelopmentVersion),
		Commit:    normalizeOrDefault(GitCommit, Unknown),
		BuildTime: normalizeOrDefault(BuildTime, Unknown),
	}
	if v, ok := info.SemVer(); ok {
		info.Version = "v" + v.String()
		info.Prerelease = v.PreRelease != ""
	} else {
		info.Prerelease = true
	}
	return info
}

// ParseBuildTime parses BuildTime as RFC3339 if present.
func (i Info) ParseBuildTime() (time.Time, bool) {
	if i.BuildTime == "" || i.BuildTime == Unknown {
		return time.Time{}, false
	}

	ts, err := time.Parse(time.RFC3339, i.BuildTime)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// SemVer parses the Info version if it is a semantic version.
func (i Info) SemVer() (SemVer, bool) {
	v, err := Parse(i.Version)
	if err != nil {
		return SemVer{}, false
	}
	return v, true
}

// String returns a log-friendly representation.
func (i Info) String() string {
	return fmt.Sprintf("%s %s (commit=%s, build_time=%s)", i.Tool, i.Version, i.Commit, i.BuildTime)
}

func normalizeOrDefault(v, fallback string) string {
	norm := strings.TrimSpace(v)
	if norm == "" {
		return fallback
	}
	return norm
}
