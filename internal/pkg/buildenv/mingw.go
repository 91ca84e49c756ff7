package buildenv

import (
	"github.com/ozacod/nbuild/internal/pkg/target"
)

type mingwStrategy struct{}

var _ strategy = mingwStrategy{}

func (mingwStrategy) sharedFlags(e *Env, lib *target.SharedLib) []string {
	return []string{"-shared", e.ShellArg("-Wl,--out-implib," + e.ImportPath(lib))}
}

// DLLs are found next to the executable, so no search path is needed.
func (mingwStrategy) executableFlags(*Env) []string { return nil }

func (mingwStrategy) externalLib(_ *Env, name string) string { return "-l" + name }
func (mingwStrategy) systemLibs() []string                  { return windowsLibs }
func (mingwStrategy) linksImportLibrary() bool              { return true }

func (mingwStrategy) coreRules() []Rule {
	return []Rule{
		gccCompileRule(RuleCC, "$cc", "$cflags", "CC"),
		gccCompileRule(RuleCXX, "$cxx", "$cxxflags", "CXX"),
		{
			Name:        RuleAR,
			Command:     "$ar rcs $out $in",
			Description: "AR $out",
		},
		{
			Name:        RuleLink,
			Command:     "$ld $gbl_ldflags $ldflags -o $out -Wl,--start-group $in $libs -Wl,--end-group $gbl_libs",
			Description: "LINK $out",
		},
	}
}
