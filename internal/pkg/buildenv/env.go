// Package buildenv holds the resolved build environment of a generator run:
// platform, toolchain, flags, output layout and the registry of declared
// targets. Everything that differs between platform families is delegated to
// a per-family strategy.
package buildenv

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/ozacod/nbuild/internal/pkg/platform"
	"github.com/ozacod/nbuild/internal/pkg/target"
	"github.com/ozacod/nbuild/internal/pkg/toolchain"
	"github.com/ozacod/nbuild/pkg/config"
	nberr "github.com/ozacod/nbuild/pkg/errors"
)

// Env is the build environment. It is mutable only until Seal is called.
type Env struct {
	opts Options

	platform  platform.Platform
	host      platform.Platform
	buildType toolchain.BuildType
	toolchain toolchain.Toolchain
	profile   toolchain.Profile
	tools     toolchain.Tools
	strategy  strategy

	rootDir  string
	buildDir string

	targets []target.Target
	byName  map[string]target.Target
	sealed  bool
}

// New resolves opts into a build environment.
func New(opts Options) (*Env, error) {
	hostID := opts.HostID
	if hostID == "" {
		hostID = platform.HostIdentifier()
	}

	host, err := platform.Resolve(opts.Host, hostID)
	if err != nil {
		return nil, fmt.Errorf("resolving host platform: %w", err)
	}

	// The target defaults to the machine nbuild runs on. --host only
	// changes the shell syntax of generated commands.
	tgt, err := platform.Resolve(opts.Platform, hostID)
	if err != nil {
		return nil, fmt.Errorf("resolving target platform: %w", err)
	}

	bt, err := toolchain.ParseBuildType(opts.BuildType)
	if err != nil {
		return nil, err
	}

	tc, err := toolchain.ParseToolchain(opts.Toolchain, tgt)
	if err != nil {
		return nil, err
	}
	if tc.IsMSVCCompatible() != tgt.IsMSVC() {
		return nil, nberr.NewConfigError("toolchain",
			fmt.Sprintf("toolchain %s cannot target platform %s", tc, tgt),
			fmt.Sprintf("use %s or omit --toolchain", toolchain.DefaultFor(tgt)))
	}

	strat, ok := strategies[tgt.Family()]
	if !ok {
		return nil, nberr.NewPlatformError(tgt.Name(), "no build strategy for family "+string(tgt.Family()))
	}

	root, buildDir, err := resolveDirs(opts.RootDir, opts.BuildDir)
	if err != nil {
		return nil, err
	}

	return &Env{
		opts:      opts,
		platform:  tgt,
		host:      host,
		buildType: bt,
		toolchain: tc,
		profile:   toolchain.ProfileFor(tc, bt, tgt),
		tools:     toolchain.ToolsFor(tc, opts.Env),
		strategy:  strat,
		rootDir:   root,
		buildDir:  buildDir,
		byName:    make(map[string]target.Target),
	}, nil
}

func resolveDirs(rootDir, buildDir string) (string, string, error) {
	if rootDir == "" {
		rootDir = "."
	}
	root, err := filepath.Abs(rootDir)
	if err != nil {
		return "", "", nberr.NewConfigError("root", err.Error(), "")
	}

	if buildDir == "" {
		buildDir = DefaultBuildDir
	}
	if !filepath.IsAbs(buildDir) {
		buildDir = filepath.Join(root, buildDir)
	}
	buildDir = filepath.Clean(buildDir)
	if err := CheckBuildDir(root, buildDir); err != nil {
		return "", "", err
	}
	return root, buildDir, nil
}

// CheckBuildDir rejects a build directory that is the project root or one of
// its ancestors. Both paths must be absolute.
func CheckBuildDir(root, buildDir string) error {
	rel, err := filepath.Rel(buildDir, root)
	if err != nil {
		// Different volumes.
		return nil
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil
	}
	return nberr.NewConfigError("builddir",
		fmt.Sprintf("build directory %s contains the project root %s", buildDir, root),
		"use a subdirectory of the project, such as "+DefaultBuildDir)
}

// Options returns the options the environment was built from.
func (e *Env) Options() Options { return e.opts }

// Platform returns the target platform.
func (e *Env) Platform() platform.Platform { return e.platform }

// Host returns the platform the build file will be executed on.
func (e *Env) Host() platform.Platform { return e.host }

func (e *Env) BuildType() toolchain.BuildType { return e.buildType }
func (e *Env) Toolchain() toolchain.Toolchain { return e.toolchain }
func (e *Env) Profile() toolchain.Profile     { return e.profile }
func (e *Env) Tools() toolchain.Tools         { return e.tools }
func (e *Env) Environment() config.Environment {
	return e.opts.Env
}

// RootDir is the absolute project root.
func (e *Env) RootDir() string { return e.rootDir }

// BuildDir is the absolute build directory.
func (e *Env) BuildDir() string { return e.buildDir }

// BuildFilePath is the absolute path of the generated build file.
func (e *Env) BuildFilePath() string {
	return filepath.Join(e.buildDir, BuildFile)
}

// TargetContext is what targets need to compute their file names.
func (e *Env) TargetContext() target.Context {
	return target.Context{
		Platform:     e.platform,
		ObjectSuffix: e.toolchain.ObjectSuffix(),
		ObjectDir:    ObjDir,
	}
}

// Add registers a target. Names are unique across all kinds.
func (e *Env) Add(t target.Target) error {
	if e.sealed {
		return nberr.ErrSealed
	}
	if prev, ok := e.byName[t.Name()]; ok {
		return nberr.NewConfigError(t.Name(),
			fmt.Sprintf("target already declared as a %s", prev.Kind().Label()),
			"target names must be unique across static libraries, shared libraries and executables")
	}
	e.byName[t.Name()] = t
	e.targets = append(e.targets, t)
	return nil
}

// Seal ends registration. It is safe to call more than once.
func (e *Env) Seal() { e.sealed = true }

// Sealed reports whether Seal was called.
func (e *Env) Sealed() bool { return e.sealed }

// Targets returns the targets in declaration order.
func (e *Env) Targets() []target.Target {
	out := make([]target.Target, len(e.targets))
	copy(out, e.targets)
	return out
}

// Lookup returns the target named name.
func (e *Env) Lookup(name string) (target.Target, bool) {
	t, ok := e.byName[name]
	return t, ok
}

// OutputPath is the primary artifact path, relative to the build directory.
func (e *Env) OutputPath(t target.Target) string {
	if t.Kind() == target.StaticLibrary {
		return path.Join(LibDir, t.Filename())
	}
	return path.Join(BinDir, t.Filename())
}

// ImportPath is the import library path of a shared library on families
// that have one, otherwise "".
func (e *Env) ImportPath(t target.Target) string {
	lib, ok := t.(*target.SharedLib)
	if !ok || lib.ImportLibrary() == "" {
		return ""
	}
	return path.Join(LibDir, lib.ImportLibrary())
}

// ObjectPaths returns the object file paths of t, relative to the build
// directory.
func (e *Env) ObjectPaths(t target.Target) []string {
	return t.Objects()
}

// RelToBuildDir rewrites a path relative to the project root into one
// relative to the build directory, using forward slashes.
func (e *Env) RelToBuildDir(p string) string {
	if !filepath.IsAbs(p) {
		p = filepath.Join(e.rootDir, p)
	}
	rel, err := filepath.Rel(e.buildDir, p)
	if err != nil {
		return filepath.ToSlash(p)
	}
	return filepath.ToSlash(rel)
}

// linkPath is the file another target links against: the import library
// where one exists, otherwise the artifact itself.
func (e *Env) linkPath(t target.Target) string {
	if imp := e.ImportPath(t); imp != "" && e.strategy.linksImportLibrary() {
		return imp
	}
	return e.OutputPath(t)
}

// Dependencies returns the artifacts of declared targets that t links
// against, in libs order. Libraries that are not declared targets are
// external and skipped.
func (e *Env) Dependencies(t target.Target) ([]string, error) {
	var deps []string
	for _, name := range t.Libs() {
		dep, err := e.declaredLib(t, name)
		if err != nil {
			return nil, err
		}
		if dep != nil {
			deps = append(deps, e.linkPath(dep))
		}
	}
	return deps, nil
}

func (e *Env) declaredLib(t target.Target, name string) (target.Target, error) {
	dep, ok := e.byName[name]
	if !ok {
		return nil, nil
	}
	switch {
	case name == t.Name():
		return nil, nberr.NewDependencyError(t.Name(), name, "a target cannot link against itself", "")
	case dep.Kind() == target.Executable:
		return nil, nberr.NewDependencyError(t.Name(), name, "cannot link against an executable",
			"declare "+name+" as a static or shared library")
	}
	return dep, nil
}
