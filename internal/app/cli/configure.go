package cli

import (
	usercfg "github.com/ozacod/nbuild/internal/config"
	"github.com/ozacod/nbuild/internal/pkg/generate"
	"github.com/spf13/cobra"
)

type configureOptions struct {
	envFlags
	dryRun bool
}

func ConfigureCmd() *cobra.Command {
	opts := &configureOptions{}
	cmd := &cobra.Command{
		Use:   "configure [targets-file]",
		Short: "Generate build.ninja from a targets file",
		Long: `Generate a Ninja build file for the targets declared in a targets file.

When no file is given, nbuild.yaml, nbuild.yml or nbuild.toml is looked up in
the current directory. The build file is written to <builddir>/build.ninja and
is regenerated by ninja itself whenever the targets file changes.

Tool and flag overrides are read from CC, CXX, LD, AR, CFLAGS, CPPFLAGS,
CXXFLAGS, LDFLAGS and LIBFLAGS.`,
		Example: `  nbuild configure                       # Configure for the host
  nbuild configure -b release            # Release build
  nbuild configure --platform mingw      # Cross-configure for MinGW
  nbuild configure --dry-run             # Print the build file instead`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigure(cmd, opts, args)
		},
	}

	opts.envFlags.register(cmd)
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print the build file to stdout instead of writing it")

	return cmd
}

func runConfigure(cmd *cobra.Command, opts *configureOptions, args []string) error {
	steps := newStepper(3, !opts.dryRun)
	defer steps.Finish()

	steps.Step("Loading targets")
	proj, err := loadProject(opts.envFlags, args)
	if err != nil {
		return err
	}
	env := proj.env

	steps.Step("Emitting build graph")
	plan, err := generate.Emit(env)
	if err != nil {
		return err
	}

	if opts.dryRun {
		return generate.WritePlan(cmd.OutOrStdout(), plan)
	}

	steps.Step("Writing " + env.BuildFilePath())
	if err := generate.WriteFile(env.BuildFilePath(), plan); err != nil {
		return err
	}
	steps.Finish()

	state := &usercfg.ProjectState{
		Root:         proj.root,
		TargetsFile:  proj.targetsFile,
		Platform:     env.Platform().Name(),
		Host:         env.Host().Name(),
		BuildType:    env.BuildType().String(),
		Toolchain:    env.Toolchain().String(),
		BuildDir:     env.BuildDir(),
		NinjaVersion: plan.RequiredVersion,
	}
	if err := usercfg.SaveState(state); err != nil {
		PrintWarning("could not record project state: %v", err)
	}

	PrintSuccess("Configured %d targets for %s (%s, %s)",
		len(env.Targets()), env.Platform(), env.Toolchain(), env.BuildType())
	PrintVerbose("Build file: %s", env.BuildFilePath())
	return nil
}
