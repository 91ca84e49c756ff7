package buildenv

import (
	"strings"

	"github.com/ozacod/nbuild/internal/pkg/platform"
	"github.com/ozacod/nbuild/internal/pkg/target"
)

// strategy is everything that differs between platform families.
type strategy interface {
	// sharedFlags are the link flags that turn a link into a shared library.
	sharedFlags(e *Env, lib *target.SharedLib) []string
	// executableFlags are the extra link flags of executables.
	executableFlags(e *Env) []string
	// externalLib formats a library that is not a declared target.
	externalLib(e *Env, name string) string
	// systemLibs are appended to every link on the family.
	systemLibs() []string
	// linksImportLibrary reports whether dependents link a shared library
	// through its import library.
	linksImportLibrary() bool
	// coreRules are the cc, cxx, ar and link rules.
	coreRules() []Rule
}

var strategies = map[platform.Family]strategy{
	platform.FamilyPosix:  gnuStrategy{},
	platform.FamilyDarwin: darwinStrategy{},
	platform.FamilyMinGW:  mingwStrategy{},
	platform.FamilyMSVC:   msvcStrategy{},
}

// windowsLibs are linked into every Windows binary so that targets do not
// need to list the core system libraries themselves.
var windowsLibs = []string{
	"kernel32", "user32", "gdi32", "winspool", "shell32",
	"ole32", "oleaut32", "uuid", "comdlg32", "advapi32",
}

// LinkArgs are the per-edge variables of an archive or link step.
type LinkArgs struct {
	LDFlags []string
	Libs    []string
}

// LinkFlags returns the link variables of t. Static libraries are archived,
// not linked, and get empty arguments.
func (e *Env) LinkFlags(t target.Target) (LinkArgs, error) {
	var args LinkArgs
	switch tt := t.(type) {
	case *target.SharedLib:
		args.LDFlags = append(args.LDFlags, e.strategy.sharedFlags(e, tt)...)
	case *target.Exe:
		args.LDFlags = append(args.LDFlags, e.strategy.executableFlags(e)...)
	default:
		return args, nil
	}
	args.LDFlags = append(args.LDFlags, t.LDFlags()...)

	for _, name := range t.Libs() {
		dep, err := e.declaredLib(t, name)
		if err != nil {
			return LinkArgs{}, err
		}
		if dep != nil {
			args.Libs = append(args.Libs, e.ShellArg(e.linkPath(dep)))
			continue
		}
		args.Libs = append(args.Libs, e.strategy.externalLib(e, e.nativeLibName(name)))
	}
	for _, name := range e.strategy.systemLibs() {
		args.Libs = append(args.Libs, e.strategy.externalLib(e, name))
	}
	return args, nil
}

// nativeLibName maps a portable library name to the name it is installed
// under. Boost on MSVC carries the toolset and runtime in its file name, e.g.
// boost_program_options becomes boost_program_options-vc140-mt-gd in debug
// builds.
func (e *Env) nativeLibName(name string) string {
	if strings.HasPrefix(name, "boost") && e.platform.IsMSVC() {
		if e.buildType.IsDebug() {
			return name + "-vc140-mt-gd"
		}
		return name + "-vc140-mt"
	}
	return name
}
