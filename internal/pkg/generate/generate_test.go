package generate

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ozacod/nbuild/internal/pkg/buildenv"
	"github.com/ozacod/nbuild/internal/pkg/target"
	"github.com/ozacod/nbuild/pkg/config"
	nberr "github.com/ozacod/nbuild/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type decl struct {
	kind     target.Kind
	name     string
	settings target.Settings
}

func sampleProject() []decl {
	return []decl{
		{target.StaticLibrary, "http", target.Settings{
			"tool":     "cc",
			"sources":  []any{"deps/http-parser/http_parser.c"},
			"includes": []any{"deps"},
		}},
		{target.SharedLibrary, "orion", target.Settings{
			"tool":          "cxx",
			"sources":       []any{"lib/core.cpp", "lib/net/socket.cpp"},
			"sources-linux": []any{"lib/linux/epoll.cpp"},
			"includes":      []any{"include", "lib"},
			"libs":          []any{"http", "pthread"},
			"version":       "0.1.0",
		}},
		{target.Executable, "basic", target.Settings{
			"tool":     "cxx",
			"sources":  []any{"examples/basic.cpp"},
			"includes": []any{"include"},
			"libs":     []any{"orion"},
		}},
	}
}

func buildEnv(t *testing.T, root, plat string, decls []decl, opts ...func(*buildenv.Options)) *buildenv.Env {
	t.Helper()
	o := buildenv.Options{
		Platform:    plat,
		HostID:      "linux",
		RootDir:     root,
		TargetsFile: "nbuild.yaml",
		Generator:   []string{"nbuild", "configure", "nbuild.yaml"},
	}
	for _, fn := range opts {
		fn(&o)
	}
	env, err := buildenv.New(o)
	require.NoError(t, err)
	for _, d := range decls {
		tgt, err := target.New(d.kind, d.name, d.settings, env.TargetContext())
		require.NoError(t, err)
		require.NoError(t, env.Add(tgt))
	}
	return env
}

func render(t *testing.T, plan *Plan) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, WritePlan(&buf, plan))
	return buf.String()
}

func TestEmitLinux(t *testing.T) {
	env := buildEnv(t, t.TempDir(), "linux", sampleProject())
	plan, err := Emit(env)
	require.NoError(t, err)
	assert.True(t, env.Sealed())

	assert.Equal(t, "1.6", plan.RequiredVersion)
	assert.Equal(t, "debug", plan.BuildType)
	assert.Equal(t, "linux", plan.Platform)
	require.Len(t, plan.Targets, 3)

	orion := plan.Targets[1]
	assert.Equal(t, "Building Shared library orion", orion.Title)
	require.Len(t, orion.Edges, 4)
	assert.Equal(t, []string{"obj/lib_core.o"}, orion.Edges[0].Outputs)
	assert.Equal(t, []string{"../lib/core.cpp"}, orion.Edges[0].Inputs)
	assert.Equal(t, "cxx", orion.Edges[0].Rule)
	assert.Equal(t, []string{"obj/lib_linux_epoll.o"}, orion.Edges[2].Outputs)

	link := orion.Edges[3]
	assert.Equal(t, "link", link.Rule)
	assert.Equal(t, []string{"bin/liborion.so.0.1.0"}, link.Outputs)
	assert.Empty(t, link.ImplicitOutputs)
	assert.Equal(t, []string{"obj/lib_core.o", "obj/lib_net_socket.o", "obj/lib_linux_epoll.o"}, link.Inputs)
	assert.Equal(t, []string{"lib/libhttp.a"}, link.Implicit)

	out := render(t, plan)
	for _, want := range []string{
		"ninja_required_version = 1.6\n",
		"# Configuration: debug\n# Platform:      linux\n",
		"gbl_defines = -DDEBUG\n",
		"gbl_includes = \n",
		"gbl_cflags = -Wall -Wshadow -Wundef -Wnon-virtual-dtor -O0 -g -pipe -fcolor-diagnostics\n",
		"cc = clang\ncxx = clang++\nar = ar\nld = clang++\n",
		"rule cc\n    command = $cc -MMD -MF $out.d $defines $includes $cppflags $cflags -c $in -o $out\n    depfile = $out.d\n    deps = gcc\n    description = CC $out\n",
		"build obj/deps_http-parser_http_parser.o: cc ../deps/http-parser/http_parser.c\n    defines = $gbl_defines\n    includes = $gbl_includes -I../deps\n",
		"build lib/libhttp.a: ar obj/deps_http-parser_http_parser.o\n",
		"    ldflags = -shared -Wl,-soname,liborion.so.0.1.0\n    libs = lib/libhttp.a -lpthread\n",
		"build bin/basic: link obj/examples_basic.o | bin/liborion.so.0.1.0\n    ldflags = -Wl,-rpath,\\$$ORIGIN\n    libs = bin/liborion.so.0.1.0\n",
		"build clean: CUSTOM_COMMAND\n    cmd = ninja -t clean\n",
		"build targets: CUSTOM_COMMAND\n    cmd = ninja -t targets depth 2\n",
		"build all: phony lib/libhttp.a bin/liborion.so.0.1.0 bin/basic\n",
		"default all\n",
		"build build.ninja: REGENERATE_BUILD ../nbuild.yaml\n",
		"rule REGENERATE_BUILD\n    command = cd ",
		"    pool = console\n    generator = 1\n",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "\n\n\n")
}

func TestEmitMinGWUsesImportLibraries(t *testing.T) {
	env := buildEnv(t, t.TempDir(), "mingw", sampleProject())
	plan, err := Emit(env)
	require.NoError(t, err)

	assert.Equal(t, implicitOutputsVersion, plan.RequiredVersion)

	link := plan.Targets[1].Edges[len(plan.Targets[1].Edges)-1]
	assert.Equal(t, []string{"bin/liborion.dll"}, link.Outputs)
	assert.Equal(t, []string{"lib/liborion.dll.a"}, link.ImplicitOutputs)
	// no -linux sources on mingw
	assert.Len(t, plan.Targets[1].Edges, 3)

	exe := plan.Targets[2].Edges[1]
	assert.Equal(t, []string{"bin/basic.exe"}, exe.Outputs)
	assert.Equal(t, []string{"lib/liborion.dll.a"}, exe.Implicit)

	out := render(t, plan)
	assert.Contains(t, out, "build bin/liborion.dll | lib/liborion.dll.a: link ")
	assert.Contains(t, out, "-DUNICODE")
	assert.Contains(t, out, "-femulated-tls")
}

func TestEmitMSVC(t *testing.T) {
	env := buildEnv(t, t.TempDir(), "msvc", sampleProject(), func(o *buildenv.Options) {
		o.NinjaVersion = "1.10"
	})
	plan, err := Emit(env)
	require.NoError(t, err)
	assert.Equal(t, "1.10", plan.RequiredVersion)

	out := render(t, plan)
	assert.Contains(t, out, "build obj/lib_core.obj: cxx ../lib/core.cpp\n")
	assert.Contains(t, out, "build lib/libhttp.lib: ar obj/deps_http-parser_http_parser.obj\n")
	assert.Contains(t, out, "build bin/orion.dll | lib/orion.lib: link ")
	assert.Contains(t, out, "    deps = msvc\n")
	assert.Contains(t, out, "gbl_ldflags = /debug\n")
	assert.Contains(t, out, "/libpath:lib")
	assert.Contains(t, out, "mincore.lib")
}

func TestEmitIsDeterministic(t *testing.T) {
	root := t.TempDir()
	first := render(t, mustEmit(t, buildEnv(t, root, "linux", sampleProject())))
	second := render(t, mustEmit(t, buildEnv(t, root, "linux", sampleProject())))
	assert.Equal(t, first, second)
}

func mustEmit(t *testing.T, env *buildenv.Env) *Plan {
	t.Helper()
	plan, err := Emit(env)
	require.NoError(t, err)
	return plan
}

func TestEmitDeclarationOrderIndependentDependencies(t *testing.T) {
	decls := sampleProject()
	reversed := []decl{decls[2], decls[1], decls[0]}

	plan := mustEmit(t, buildEnv(t, t.TempDir(), "linux", reversed))
	assert.Equal(t, "Building Executable basic", plan.Targets[0].Title)
	exe := plan.Targets[0].Edges[1]
	assert.Equal(t, []string{"bin/liborion.so.0.1.0"}, exe.Implicit)
}

func TestEmitObjectCollision(t *testing.T) {
	decls := []decl{
		{target.StaticLibrary, "a", target.Settings{"tool": "cc", "sources": []any{"x/y.c"}}},
		{target.StaticLibrary, "b", target.Settings{"tool": "cc", "sources": []any{"x_y.c"}}},
	}
	_, err := Emit(buildEnv(t, t.TempDir(), "linux", decls))
	require.Error(t, err)
	assert.True(t, nberr.IsConfigError(err))
	assert.Contains(t, err.Error(), "obj/x_y.o")
}

func TestEmitDependencyError(t *testing.T) {
	decls := []decl{
		{target.Executable, "tool", target.Settings{"tool": "cc", "sources": []any{"tool.c"}}},
		{target.StaticLibrary, "lib", target.Settings{"tool": "cc", "sources": []any{"lib.c"}, "libs": []any{"tool"}}},
	}
	_, err := Emit(buildEnv(t, t.TempDir(), "linux", decls))
	require.Error(t, err)
	assert.True(t, nberr.IsDependencyError(err))
}

func TestNinjaVersion(t *testing.T) {
	tests := []struct {
		version string
		valid   bool
	}{
		{"", true},
		{"1.5", true},
		{"1.6", true},
		{"1.10.2", true},
		{"1.4", false},
		{"1.x", false},
		{"1.7-rc1", false},
	}
	for _, tt := range tests {
		err := ValidateNinjaVersion(tt.version)
		if tt.valid {
			assert.NoError(t, err, tt.version)
		} else {
			assert.True(t, nberr.IsConfigError(err), tt.version)
		}
	}

	assert.Equal(t, "1.6", requiredVersion("", ""))
	assert.Equal(t, "1.7", requiredVersion("1.6", "1.7"))
	assert.Equal(t, "1.10", requiredVersion("1.10", "1.7"))
}

func TestEmitRejectsOldNinja(t *testing.T) {
	env := buildEnv(t, t.TempDir(), "linux", sampleProject(), func(o *buildenv.Options) { o.NinjaVersion = "1.3" })
	_, err := Emit(env)
	require.Error(t, err)
	assert.True(t, nberr.IsConfigError(err))
}

func TestWriteFile(t *testing.T) {
	root := t.TempDir()
	env := buildEnv(t, root, "linux", sampleProject())
	plan, err := Generate(env)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, "build", "build.ninja"))
	require.NoError(t, err)
	assert.Equal(t, render(t, plan), string(data))

	entries, err := os.ReadDir(filepath.Join(root, "build"))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestGenerateLeavesNoFileOnError(t *testing.T) {
	root := t.TempDir()
	decls := []decl{
		{target.StaticLibrary, "a", target.Settings{"tool": "cc", "sources": []any{"a.c", "a.c"}}},
	}
	_, err := Generate(buildEnv(t, root, "linux", decls))
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(root, "build", "build.ninja"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestWriteFileKeepsOldFileOnFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "build.ninja")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

	// A directory in place of the temp file target makes rename fail.
	bad := filepath.Join(dir, "sub")
	require.NoError(t, os.MkdirAll(filepath.Join(bad, "build.ninja", "x"), 0755))
	err := WriteFile(filepath.Join(bad, "build.ninja"), &Plan{RequiredVersion: "1.6"})
	require.Error(t, err)
	assert.True(t, nberr.IsBuildError(err))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))

	entries, err := os.ReadDir(bad)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"), e.Name())
	}
}

func globalValue(t *testing.T, out, name string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if v, ok := strings.CutPrefix(line, name+" = "); ok {
			return v
		}
	}
	t.Fatalf("variable %s not found", name)
	return ""
}

func TestGlobalsKeepQuotedEnvironmentFlags(t *testing.T) {
	env := buildEnv(t, t.TempDir(), "linux", sampleProject(), func(o *buildenv.Options) {
		o.Env = config.Environment{
			CFlags:   []string{"-DMSG=hello world"},
			CPPFlags: []string{"-DPREFIX=/opt/my app"},
			LibFlags: []string{"-L/opt/my app/lib", "-lz"},
		}
	})
	out := render(t, mustEmit(t, env))

	cflags := globalValue(t, out, "gbl_cflags")
	assert.True(t, strings.HasPrefix(cflags, "'-DMSG=hello world' -Wall "), cflags)
	assert.Equal(t, "'-DPREFIX=/opt/my app'", globalValue(t, out, "gbl_cppflags"))
	assert.Equal(t, "'-L/opt/my app/lib' -lz", globalValue(t, out, "gbl_libs"))

	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	value := strings.ReplaceAll(globalValue(t, out, "gbl_libs"), "$$", "$")
	got, err := exec.Command(sh, "-c", `printf '%s\n' `+value).Output()
	require.NoError(t, err)
	assert.Equal(t, "-L/opt/my app/lib\n-lz\n", string(got))
}

func TestGlobalsQuoteForWindowsHosts(t *testing.T) {
	env := buildEnv(t, t.TempDir(), "msvc", sampleProject(), func(o *buildenv.Options) {
		o.Host = "msvc"
		o.Env = config.Environment{CFlags: []string{"-DMSG=hello world"}}
	})
	out := render(t, mustEmit(t, env))

	assert.True(t, strings.HasPrefix(globalValue(t, out, "gbl_cflags"), `"-DMSG=hello world" `))
}
