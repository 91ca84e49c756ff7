package toolchain

import (
	"strings"

	nberr "github.com/ozacod/nbuild/pkg/errors"
)

// BuildType selects the optimization and debug-info profile for a run.
type BuildType string

const (
	Debug          BuildType = "debug"
	DebugOptimized BuildType = "debugoptimized"
	Release        BuildType = "release"
	MinSize        BuildType = "minsize"
)

// BuildTypes lists the accepted build type names.
func BuildTypes() []string {
	return []string{string(Debug), string(DebugOptimized), string(Release), string(MinSize)}
}

// ParseBuildType parses a build type name. The empty string means Debug.
func ParseBuildType(s string) (BuildType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "debug":
		return Debug, nil
	case "debugoptimized", "debug-optimized":
		return DebugOptimized, nil
	case "release":
		return Release, nil
	case "minsize":
		return MinSize, nil
	}
	return "", nberr.NewConfigError("buildtype", "unknown build type \""+s+"\"",
		"use one of: "+strings.Join(BuildTypes(), ", "))
}

// IsDebug reports whether the build type links against debug runtimes.
func (bt BuildType) IsDebug() bool { return bt == Debug }

func (bt BuildType) String() string { return string(bt) }
