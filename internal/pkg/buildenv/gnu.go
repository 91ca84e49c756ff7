package buildenv

import (
	"github.com/ozacod/nbuild/internal/pkg/target"
)

// gnuStrategy covers the ELF platforms linked with a GNU-compatible driver.
type gnuStrategy struct{}

var _ strategy = gnuStrategy{}

func (gnuStrategy) sharedFlags(_ *Env, lib *target.SharedLib) []string {
	return []string{"-shared", "-Wl,-soname," + lib.Filename()}
}

// Executables find shared libraries next to themselves in bin/. $ORIGIN is
// for the dynamic loader and must reach the linker unexpanded.
func (gnuStrategy) executableFlags(e *Env) []string {
	return []string{e.ShellArg("-Wl,-rpath,$ORIGIN")}
}

func (gnuStrategy) externalLib(_ *Env, name string) string { return "-l" + name }
func (gnuStrategy) systemLibs() []string                  { return nil }
func (gnuStrategy) linksImportLibrary() bool              { return false }

func (gnuStrategy) coreRules() []Rule {
	return []Rule{
		gccCompileRule(RuleCC, "$cc", "$cflags", "CC"),
		gccCompileRule(RuleCXX, "$cxx", "$cxxflags", "CXX"),
		{
			Name:        RuleAR,
			Command:     "rm -f $out && $ar rcsT $out $in",
			Description: "AR $out",
		},
		{
			Name:        RuleLink,
			Command:     "$ld $gbl_ldflags $ldflags -o $out -Wl,--start-group $in $libs -Wl,--end-group $gbl_libs",
			Description: "LINK $out",
		},
	}
}
