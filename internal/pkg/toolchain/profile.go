package toolchain

import (
	"github.com/ozacod/nbuild/internal/pkg/platform"
	"github.com/ozacod/nbuild/pkg/config"
)

type flagTable struct {
	defines  []string
	cflags   []string
	cxxflags []string
	ldflags  []string
}

var defaultWarnings = []string{"-Wshadow", "-Wundef", "-Wnon-virtual-dtor"}

var windowsDefines = []string{
	"-DUNICODE",
	"-D_UNICODE",
	"-DWIN32_LEAN_AND_MEAN",
	"-DWINVER=0x0A00",
	"-D_WIN32_WINNT=0x0A00",
	"-D_CRT_SECURE_NO_DEPRECATE",
	"-D_SCL_SECURE_NO_DEPRECATE",
}

const (
	colorDiagnostics = "-fcolor-diagnostics"
	emulatedTLS      = "-femulated-tls"
)

var clangTable = map[BuildType]flagTable{
	Debug: {
		defines:  []string{"-DDEBUG"},
		cflags:   []string{"-O0", "-g", "-pipe"},
		cxxflags: []string{"-O0", "-g", "-pipe", "-std=c++14"},
	},
	DebugOptimized: {
		defines:  []string{"-DDEBUG"},
		cflags:   []string{"-O1", "-g", "-pipe"},
		cxxflags: []string{"-O1", "-g", "-pipe", "-std=c++14"},
	},
	Release: {
		defines:  []string{"-DNDEBUG"},
		cflags:   []string{"-Os", "-pipe"},
		cxxflags: []string{"-Os", "-pipe", "-std=c++14"},
	},
	MinSize: {
		defines:  []string{"-DNDEBUG"},
		cflags:   []string{"-Oz", "-pipe"},
		cxxflags: []string{"-Oz", "-pipe", "-std=c++14"},
	},
}

var clangCLTable = map[BuildType]flagTable{
	Debug: {
		defines:  []string{"-DDEBUG"},
		cflags:   []string{"-MDd", "-Zi"},
		cxxflags: []string{"-MDd", "-Zi", "-EHsc", "-GR", "-std:c++14"},
		ldflags:  []string{"/debug"},
	},
	DebugOptimized: {
		defines:  []string{"-DDEBUG"},
		cflags:   []string{"-MD", "-Zi", "-O2"},
		cxxflags: []string{"-MD", "-Zi", "-O2", "-EHsc", "-GR", "-std:c++14"},
	},
	Release: {
		defines:  []string{"-DNDEBUG"},
		cflags:   []string{"-MD", "-O2"},
		cxxflags: []string{"-MD", "-O2", "-EHsc", "-GR", "-std:c++14"},
	},
	MinSize: {
		defines:  []string{"-DNDEBUG"},
		cflags:   []string{"-MD", "-Os"},
		cxxflags: []string{"-MD", "-Os", "-EHsc", "-GR", "-std:c++14"},
	},
}

// Profile is the default flag set for one (toolchain, build type, platform).
type Profile struct {
	Toolchain Toolchain
	BuildType BuildType

	defines  *FlagSet
	warnings *FlagSet
	cflags   *FlagSet
	cxxflags *FlagSet
	ldflags  *FlagSet
}

// ProfileFor builds the profile for tc and bt on p. An unknown build type
// falls back to Debug.
func ProfileFor(tc Toolchain, bt BuildType, p platform.Platform) Profile {
	prof := Profile{
		Toolchain: tc,
		BuildType: bt,
		defines:   NewFlagSet(),
		warnings:  NewFlagSet(),
		cflags:    NewFlagSet(),
		cxxflags:  NewFlagSet(),
		ldflags:   NewFlagSet(),
	}

	if tc.IsMSVCCompatible() {
		tbl, ok := clangCLTable[bt]
		if !ok {
			tbl = clangCLTable[Debug]
		}
		prof.defines.Union(windowsDefines, tbl.defines)
		prof.warnings.Union([]string{"-W1"}, defaultWarnings)
		prof.cflags.Union(tbl.cflags)
		prof.cxxflags.Union(tbl.cxxflags)
		prof.ldflags.Union(tbl.ldflags)
		return prof
	}

	tbl, ok := clangTable[bt]
	if !ok {
		tbl = clangTable[Debug]
	}
	prof.defines.Union(tbl.defines)
	prof.warnings.Union([]string{"-Wall"}, defaultWarnings)
	prof.cflags.Union(tbl.cflags, []string{colorDiagnostics})
	prof.cxxflags.Union(tbl.cxxflags, []string{colorDiagnostics})
	prof.ldflags.Union(tbl.ldflags)

	if p.SystemName() == platform.WindowsSystem {
		prof.defines.Union(windowsDefines)
	}
	if p.IsMinGW() {
		prof.cflags.Add(emulatedTLS)
		prof.cxxflags.Add(emulatedTLS)
	}
	return prof
}

// Defines returns the default preprocessor defines.
func (p Profile) Defines() []string { return p.defines.List() }

// Warnings returns the default warning flags.
func (p Profile) Warnings() []string { return p.warnings.List() }

// CFlags returns the environment CFLAGS united with warnings and C flags.
func (p Profile) CFlags(env config.Environment) []string {
	return Union(env.CFlags, p.warnings.List(), p.cflags.List())
}

// CXXFlags returns the environment CXXFLAGS united with warnings and C++ flags.
func (p Profile) CXXFlags(env config.Environment) []string {
	return Union(env.CXXFlags, p.warnings.List(), p.cxxflags.List())
}

// LDFlags returns the environment LDFLAGS united with the default link flags.
func (p Profile) LDFlags(env config.Environment) []string {
	return Union(env.LDFlags, p.ldflags.List())
}
