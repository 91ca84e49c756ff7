package buildenv

import (
	"github.com/ozacod/nbuild/internal/pkg/target"
)

type darwinStrategy struct{}

var _ strategy = darwinStrategy{}

func (darwinStrategy) sharedFlags(_ *Env, lib *target.SharedLib) []string {
	flags := []string{"-dynamiclib", "-Wl,-install_name,@rpath/" + lib.Filename()}
	if lib.SOVersion() != "" {
		flags = append(flags, "-compatibility_version", lib.SOVersion())
	}
	if lib.Version() != "" {
		flags = append(flags, "-current_version", lib.Version())
	}
	return flags
}

func (darwinStrategy) executableFlags(*Env) []string {
	return []string{"-Wl,-rpath,@executable_path"}
}

func (darwinStrategy) externalLib(_ *Env, name string) string { return "-l" + name }
func (darwinStrategy) systemLibs() []string                  { return nil }
func (darwinStrategy) linksImportLibrary() bool              { return false }

func (darwinStrategy) coreRules() []Rule {
	return []Rule{
		gccCompileRule(RuleCC, "$cc", "$cflags", "CC"),
		gccCompileRule(RuleCXX, "$cxx", "$cxxflags", "CXX"),
		{
			Name:        RuleAR,
			Command:     "rm -f $out && libtool -static -o $out $in",
			Description: "AR $out",
		},
		{
			Name:        RuleLink,
			Command:     "$ld $gbl_ldflags $ldflags -o $out $in $libs $gbl_libs",
			Description: "LINK $out",
		},
	}
}
