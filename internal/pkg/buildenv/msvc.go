package buildenv

import (
	"github.com/ozacod/nbuild/internal/pkg/target"
)

type msvcStrategy struct{}

var _ strategy = msvcStrategy{}

func (msvcStrategy) sharedFlags(e *Env, lib *target.SharedLib) []string {
	return []string{"/dll", e.ShellArg("/implib:" + e.ImportPath(lib))}
}

func (msvcStrategy) executableFlags(*Env) []string {
	return []string{"/libpath:" + LibDir}
}

func (msvcStrategy) externalLib(_ *Env, name string) string { return name + ".lib" }

func (msvcStrategy) systemLibs() []string {
	return append(append([]string{}, windowsLibs...), "mincore")
}

func (msvcStrategy) linksImportLibrary() bool { return true }

func (msvcStrategy) coreRules() []Rule {
	return []Rule{
		{
			Name:        RuleCC,
			Command:     "$cc /nologo /showIncludes $defines $includes $cppflags $cflags -c $in -Fo$out",
			Deps:        "msvc",
			Description: "CC $out",
		},
		{
			Name:        RuleCXX,
			Command:     "$cxx /nologo /showIncludes $defines $includes $cppflags $cxxflags -c $in -Fo$out",
			Deps:        "msvc",
			Description: "CXX $out",
		},
		{
			Name:        RuleAR,
			Command:     "$ar $in /nologo -OUT:$out",
			Description: "AR $out",
		},
		{
			Name:        RuleLink,
			Command:     "$ld /nologo /out:$out $gbl_ldflags $ldflags $in $libs $gbl_libs",
			Description: "LINK $out",
		},
	}
}
