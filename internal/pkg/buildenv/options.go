package buildenv

import (
	"github.com/ozacod/nbuild/pkg/config"
)

// Output layout below the build directory.
const (
	BinDir = "bin"
	LibDir = "lib"
	ObjDir = "obj"

	// BuildFile is the name of the generated Ninja file.
	BuildFile = "build.ninja"
)

// DefaultBuildDir is used when Options.BuildDir is empty.
const DefaultBuildDir = "build"

// Options is the complete, immutable input of one generator run. It is
// assembled by the caller (flags, user defaults, environment) and passed
// explicitly; nothing here is read from globals.
type Options struct {
	// Platform is the explicit target platform; empty selects the host.
	Platform string
	// Host is the explicit host platform; empty detects it from HostID.
	Host string
	// HostID is the raw host identifier; empty uses platform.HostIdentifier.
	HostID string

	BuildType string
	Toolchain string

	// RootDir is the project root that source paths are relative to.
	RootDir string
	// BuildDir is where build.ninja is written. Relative paths are taken
	// relative to RootDir.
	BuildDir string
	// TargetsFile is the declaration file the regeneration edge watches.
	TargetsFile string

	NinjaVersion string
	// Generator is the argv that regenerates the build file.
	Generator []string

	Env config.Environment
}
