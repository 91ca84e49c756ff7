package root

import (
	"os"

	"github.com/ozacod/nbuild/internal/app/cli"
	"github.com/spf13/cobra"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nbuild",
		Short: "Ninja build files for C and C++ targets",
		Long: `nbuild - Ninja build files for C and C++ targets

Declare static libraries, shared libraries and executables in nbuild.yaml or
nbuild.toml, and nbuild writes a build.ninja for Linux, the BSDs, macOS, MinGW
or MSVC.`,
		Version: cli.Version,
		// Don't show usage on errors by default
		SilenceUsage:  true,
		SilenceErrors: true, // handle printing ourselves in Execute
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			v, _ := cmd.Flags().GetBool("verbose")
			cli.SetVerbose(v)
			cli.InitColors()
		},
	}
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Print each step")
	return cmd
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		cli.PrintError("%v", err)
		os.Exit(1)
	}
}

// GetRootCmd returns the root command (for testing or extending)
func GetRootCmd() *cobra.Command {
	return rootCmd
}

// Register adds the nbuild commands to cmd.
func Register(cmd *cobra.Command) {
	cmd.AddCommand(cli.ConfigureCmd())
	cmd.AddCommand(cli.TargetsCmd())
	cmd.AddCommand(cli.InfoCmd())
	cmd.AddCommand(cli.CleanCmd())
	cmd.AddCommand(cli.ConfigCmd())
}

// New returns a fresh root command with every command registered.
func New() *cobra.Command {
	cmd := newRootCmd()
	Register(cmd)
	return cmd
}
