package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/ozacod/nbuild/internal/pkg/buildenv"
	"github.com/ozacod/nbuild/internal/pkg/utils/colors"
	"github.com/spf13/cobra"
)

func InfoCmd() *cobra.Command {
	flags := &envFlags{}
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show the resolved build environment",
		Long: `Show the platform, toolchain, tools and global flags that configure would
use with the same options. No targets file is needed.`,
		Example: `  nbuild info                          # Host defaults
  nbuild info --platform msvc -b debug # Cross environment`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			env, err := newEnv(*flags, wd, "")
			if err != nil {
				return err
			}
			printInfo(cmd.OutOrStdout(), env)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func printInfo(w io.Writer, env *buildenv.Env) {
	field := func(label, value string) {
		fmt.Fprintf(w, "  %s%-12s%s %s\n", colors.Bold, label+":", colors.Reset, value)
	}

	fmt.Fprintf(w, "%sBuild environment%s\n", colors.Cyan, colors.Reset)
	field("Platform", fmt.Sprintf("%s (%s, %s)", env.Platform(), env.Platform().Family(), env.Platform().SystemName()))
	field("Host", env.Host().Name())
	field("Toolchain", env.Toolchain().String())
	field("Build type", env.BuildType().String())
	field("Build dir", env.BuildDir())

	tools := env.Tools()
	fmt.Fprintf(w, "\n%sTools%s\n", colors.Cyan, colors.Reset)
	for _, tool := range []struct{ label, cmd string }{
		{"cc", tools.CC},
		{"cxx", tools.CXX},
		{"ld", tools.LD},
		{"ar", tools.AR},
	} {
		status := colors.Green + IconSuccess + colors.Reset
		if !toolExists(tool.cmd) {
			status = colors.Yellow + IconWarning + " not found" + colors.Reset
		}
		field(tool.label, tool.cmd+" "+status)
	}

	prof := env.Profile()
	ev := env.Environment()
	fmt.Fprintf(w, "\n%sGlobal flags%s\n", colors.Cyan, colors.Reset)
	field("defines", flagLine(prof.Defines()))
	field("cppflags", flagLine(ev.CPPFlags))
	field("cflags", flagLine(prof.CFlags(ev)))
	field("cxxflags", flagLine(prof.CXXFlags(ev)))
	field("ldflags", flagLine(prof.LDFlags(ev)))
	field("libs", flagLine(ev.LibFlags))
}

// toolExists reports whether the executable of a tool command is on PATH.
// The command may carry arguments, as in CC="ccache gcc".
func toolExists(command string) bool {
	words, err := shellquote.Split(command)
	if err != nil || len(words) == 0 {
		return false
	}
	return CheckCommandExists(words[0])
}

func flagLine(flags []string) string {
	if len(flags) == 0 {
		return colors.Dim + "(none)" + colors.Reset
	}
	return strings.Join(flags, " ")
}
