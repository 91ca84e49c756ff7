package cli

import (
	"fmt"
	"os"
	"path/filepath"

	usercfg "github.com/ozacod/nbuild/internal/config"
	"github.com/ozacod/nbuild/internal/pkg/buildenv"
	"github.com/ozacod/nbuild/pkg/config"
	"github.com/spf13/cobra"
)

// generatorName is the executable the regeneration edge invokes.
const generatorName = "nbuild"

// envFlags are the options shared by every command that resolves a build
// environment.
type envFlags struct {
	platform     string
	host         string
	buildType    string
	toolchain    string
	buildDir     string
	ninjaVersion string
}

func (f *envFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.platform, "platform", "", "Target platform (linux, darwin, freebsd, openbsd, netbsd, mingw, msvc)")
	cmd.Flags().StringVar(&f.host, "host", "", "Host platform the build file runs on (default: detected)")
	cmd.Flags().StringVarP(&f.buildType, "buildtype", "b", "", "Build type (debug, debugoptimized, release, minsize)")
	cmd.Flags().StringVar(&f.toolchain, "toolchain", "", "Toolchain (clang, clang-cl)")
	cmd.Flags().StringVarP(&f.buildDir, "builddir", "B", "", "Build directory, relative to the project root")
	cmd.Flags().StringVar(&f.ninjaVersion, "ninja-version", "", "Value of ninja_required_version (default 1.6)")
}

// merge fills unset flags from the user defaults. Flags always win.
func (f envFlags) merge(cfg *usercfg.GlobalConfig) envFlags {
	if cfg == nil {
		return f
	}
	pick := func(flag, def string) string {
		if flag != "" {
			return flag
		}
		return def
	}
	f.platform = pick(f.platform, cfg.Platform)
	f.buildType = pick(f.buildType, cfg.BuildType)
	f.toolchain = pick(f.toolchain, cfg.Toolchain)
	f.buildDir = pick(f.buildDir, cfg.BuildDir)
	f.ninjaVersion = pick(f.ninjaVersion, cfg.NinjaVersion)
	return f
}

// project is a loaded targets file together with its resolved environment.
type project struct {
	root        string
	targetsFile string
	targets     *config.Targets
	env         *buildenv.Env
}

// locateTargetsFile returns the targets file named in args, or the one found
// in the current directory.
func locateTargetsFile(args []string) (string, error) {
	if len(args) > 0 {
		return filepath.Abs(args[0])
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return config.FindTargetsFile(wd)
}

// newEnv resolves the build environment for a project rooted at root.
func newEnv(flags envFlags, root, targetsFile string) (*buildenv.Env, error) {
	cfg, err := usercfg.LoadGlobal()
	if err != nil {
		PrintWarning("ignoring user config: %v", err)
		cfg = nil
	}
	flags = flags.merge(cfg)

	env, err := config.CaptureEnvironment()
	if err != nil {
		return nil, err
	}

	opts := buildenv.Options{
		Platform:     flags.platform,
		Host:         flags.host,
		BuildType:    flags.buildType,
		Toolchain:    flags.toolchain,
		RootDir:      root,
		BuildDir:     flags.buildDir,
		TargetsFile:  targetsFile,
		NinjaVersion: flags.ninjaVersion,
		Env:          env,
	}
	resolved, err := buildenv.New(opts)
	if err != nil {
		return nil, err
	}

	// Regeneration must reproduce this exact configuration.
	opts.Generator = generatorArgs(resolved, root, targetsFile, flags)
	return buildenv.New(opts)
}

func generatorArgs(env *buildenv.Env, root, targetsFile string, flags envFlags) []string {
	args := []string{generatorName, "configure"}
	if targetsFile != "" {
		if rel, err := filepath.Rel(root, targetsFile); err == nil {
			targetsFile = filepath.ToSlash(rel)
		}
		args = append(args, targetsFile)
	}
	args = append(args,
		"--platform", env.Platform().Name(),
		"--host", env.Host().Name(),
		"--buildtype", env.BuildType().String(),
		"--toolchain", env.Toolchain().String(),
	)
	if flags.buildDir != "" {
		args = append(args, "--builddir", flags.buildDir)
	}
	if flags.ninjaVersion != "" {
		args = append(args, "--ninja-version", flags.ninjaVersion)
	}
	return args
}

// loadProject reads the targets file and declares its targets.
func loadProject(flags envFlags, args []string) (*project, error) {
	path, err := locateTargetsFile(args)
	if err != nil {
		return nil, err
	}
	root := filepath.Dir(path)

	targets, err := config.LoadTargets(path)
	if err != nil {
		return nil, err
	}
	PrintVerbose("Loaded %d target declarations from %s", len(targets.Declarations), path)

	env, err := newEnv(flags, root, path)
	if err != nil {
		return nil, err
	}
	if err := env.Declare(targets.Declarations); err != nil {
		return nil, fmt.Errorf("invalid target declaration: %w", err)
	}
	env.Seal()

	return &project{root: root, targetsFile: path, targets: targets, env: env}, nil
}
