package contracts

import (
	"fmt"
	"runtime"
)

const (
	// Version is the current version of keyprep
	Version = "0.3.0"

	// ArtifactFormatVersion changes whenever an exported sheet layout changes
	ArtifactFormatVersion = "v1"
)

var (
	// BuildTime is set during build using ldflags
	BuildTime = "unknown"

	// GitCommit is set during build using ldflags
	GitCommit = "unknown"
)

// VersionInfo contains detailed version information
type VersionInfo struct {
	Version        string `json:"version"`
	BuildTime      string `json:"build_time"`
	GitCommit      string `json:"git_commit"`
	GoVersion      string `json:"go_version"`
	OS             string `json:"os"`
	Architecture   string `json:"architecture"`
	ArtifactFormat string `json:"artifact_format"`
}

// GetVersionInfo returns detailed version information
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:        Version,
		BuildTime:      BuildTime,
		GitCommit:      GitCommit,
		GoVersion:      runtime.Version(),
		OS:             runtime.GOOS,
		Architecture:   runtime.GOARCH,
		ArtifactFormat: ArtifactFormatVersion,
	}
}

// GetVersionString returns a formatted version string
func GetVersionString() string {
	return fmt.Sprintf("keyprep v%s", Version)
}

// GetFullVersionString returns a detailed version string
func GetFullVersionString() string {
	info := GetVersionInfo()
	return fmt.Sprintf(
		"%s (built: %s, commit: %s, go: %s, os: %s/%s, artifacts: %s)",
		GetVersionString(),
		info.BuildTime,
		info.GitCommit,
		info.GoVersion,
		info.OS,
		info.Architecture,
		info.ArtifactFormat,
	)
}
