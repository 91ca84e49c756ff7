package cli

import (
	"fmt"
	"os"
	"path/filepath"

	usercfg "github.com/ozacod/nbuild/internal/config"
	"github.com/ozacod/nbuild/internal/pkg/buildenv"
	"github.com/spf13/cobra"
)

func CleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the build directory",
		Long: `Remove the build directory of the project in the current directory.

The directory recorded by the last configure is used when there is one,
otherwise --builddir, the user default or "build".

Use --all to also forget the recorded configuration.`,
		Example: `  nbuild clean         # Remove build/
  nbuild clean --all   # Also remove the recorded configuration`,
		Args: cobra.NoArgs,
		RunE: runClean,
	}

	cmd.Flags().Bool("all", false, "Also remove the recorded project configuration")
	cmd.Flags().StringP("builddir", "B", "", "Build directory, relative to the project root")

	return cmd
}

func runClean(cmd *cobra.Command, _ []string) error {
	all, _ := cmd.Flags().GetBool("all")
	buildDirFlag, _ := cmd.Flags().GetString("builddir")

	root, err := os.Getwd()
	if err != nil {
		return err
	}
	root, err = filepath.Abs(root)
	if err != nil {
		return err
	}

	buildDir, err := cleanTarget(root, buildDirFlag)
	if err != nil {
		return err
	}
	if err := buildenv.CheckBuildDir(root, buildDir); err != nil {
		return fmt.Errorf("refusing to remove %s: %w", buildDir, err)
	}

	if CheckFileExists(buildDir) {
		PrintVerbose("Removing %s", buildDir)
		if err := os.RemoveAll(buildDir); err != nil {
			return fmt.Errorf("failed to remove %s: %w", buildDir, err)
		}
		PrintSuccess("Removed %s", buildDir)
	} else {
		PrintVerbose("Nothing to clean in %s", buildDir)
	}

	if all {
		if err := usercfg.RemoveState(root); err != nil {
			return err
		}
		PrintVerbose("Removed recorded configuration for %s", root)
	}
	return nil
}

// cleanTarget picks the build directory to remove: the flag, then the
// recorded state, then the user default.
func cleanTarget(root, flag string) (string, error) {
	dir := flag
	if dir == "" {
		state, err := usercfg.LoadState(root)
		if err != nil {
			return "", err
		}
		if state != nil && state.BuildDir != "" {
			return filepath.Clean(state.BuildDir), nil
		}
	}
	if dir == "" {
		if cfg, err := usercfg.LoadGlobal(); err == nil {
			dir = cfg.BuildDir
		}
	}
	if dir == "" {
		dir = buildenv.DefaultBuildDir
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}
	return filepath.Clean(dir), nil
}
