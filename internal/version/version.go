// Package version carries the build metadata and the ranges of backend
// and engine versions this build works with.
package version

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var (
	// Version is the application version, set via ldflags during build.
	Version = "dev"
	// GitCommit is the git commit hash, set via ldflags during build.
	GitCommit = "unknown"
	// BuildDate is the build timestamp, set via ldflags during build.
	BuildDate = "unknown"
	// BuildID is the build identifier, set via ldflags during build.
	BuildID = "unknown"
)

// Supported version ranges.
const (
	Core   = "^15.0.0 || ^16.0.0"
	FFmpeg = "^5.0.1"
)

// Info contains version and build metadata.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	BuildID   string `json:"build_id"`
	GoVersion string `json:"go_version"`
	Compiler  string `json:"compiler"`
	Platform  string `json:"platform"`
	Core      string `json:"core"`
	FFmpeg    string `json:"ffmpeg"`
}

// Get returns version and build information.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		BuildID:   BuildID,
		GoVersion: runtime.Version(),
		Compiler:  runtime.Compiler,
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		Core:      Core,
		FFmpeg:    FFmpeg,
	}
}

// String returns the application version string.
func String() string {
	return Version
}

// CheckCore reports whether a backend version is in the supported range.
func CheckCore(v string) (bool, error) {
	return check(Core, v)
}

// CheckFFmpeg reports whether an engine version is in the supported range.
// Distribution suffixes such as "-0+deb12u1" and a leading "n" are ignored.
func CheckFFmpeg(v string) (bool, error) {
	return check(FFmpeg, v)
}

func check(constraint, v string) (bool, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("invalid constraint %q: %w", constraint, err)
	}
	parsed, err := semver.NewVersion(release(v))
	if err != nil {
		return false, fmt.Errorf("invalid version %q: %w", v, err)
	}
	return c.Check(parsed), nil
}

// release strips everything but the dotted release number.
func release(v string) string {
	v = strings.TrimLeft(strings.TrimSpace(v), "nv")
	if i := strings.IndexFunc(v, func(r rune) bool {
		return r != '.' && (r < '0' || r > '9')
	}); i >= 0 {
		v = v[:i]
	}
	return v
}
