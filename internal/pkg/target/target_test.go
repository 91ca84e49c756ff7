package target

import (
	"testing"

	"github.com/ozacod/nbuild/internal/pkg/platform"
	nberr "github.com/ozacod/nbuild/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ctxFor(t *testing.T, name string) Context {
	t.Helper()
	p, err := platform.New(name)
	require.NoError(t, err)
	suffix := ".o"
	if p.IsMSVC() {
		suffix = ".obj"
	}
	return Context{Platform: p, ObjectSuffix: suffix, ObjectDir: "obj"}
}

func TestSettingsMergeOrder(t *testing.T) {
	s := Settings{
		"tool":            "cc",
		"sources":         []any{"a.c"},
		"sources-windows": []any{"w.c"},
		"sources-mingw":   []any{"m.c"},
		"sources-linux":   []any{"l.c"},
		"defines":         []any{"-DX", "-DX"},
	}

	tests := []struct {
		platform string
		want     []string
	}{
		{"linux", []string{"a.c", "l.c"}},
		{"darwin", []string{"a.c"}},
		{"mingw", []string{"a.c", "w.c", "m.c"}},
		{"msvc", []string{"a.c", "w.c"}},
	}

	for _, tt := range tests {
		t.Run(tt.platform, func(t *testing.T) {
			lib, err := NewStaticLibrary("core", s, ctxFor(t, tt.platform))
			require.NoError(t, err)
			assert.Equal(t, tt.want, lib.Sources())
			// duplicates are kept
			assert.Equal(t, []string{"-DX", "-DX"}, lib.Defines())
		})
	}
}

func TestSettingsValidation(t *testing.T) {
	tests := []struct {
		name     string
		kind     Kind
		settings Settings
	}{
		{"missing tool", StaticLibrary, Settings{"sources": []any{"a.c"}}},
		{"unknown tool", StaticLibrary, Settings{"tool": "fortran", "sources": []any{"a.c"}}},
		{"tool not a string", StaticLibrary, Settings{"tool": 3, "sources": []any{"a.c"}}},
		{"missing sources", Executable, Settings{"tool": "cc"}},
		{"sources not a list", Executable, Settings{"tool": "cc", "sources": "a.c"}},
		{"non-string item", Executable, Settings{"tool": "cc", "sources": []any{"a.c", 4}}},
		{"unknown key", Executable, Settings{"tool": "cc", "sources": []any{}, "linkflags": []any{}}},
		{"unknown suffix", Executable, Settings{"tool": "cc", "sources": []any{}, "libs-haiku": []any{}}},
		{"version on static", StaticLibrary, Settings{"tool": "cc", "sources": []any{}, "version": "1.0"}},
		{"soversion on exe", Executable, Settings{"tool": "cc", "sources": []any{}, "soversion": 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.kind, "t", tt.settings, ctxFor(t, "linux"))
			require.Error(t, err)
			assert.True(t, nberr.IsConfigError(err), err.Error())
		})
	}
}

func TestSharedLibraryVersions(t *testing.T) {
	tests := []struct {
		name          string
		settings      Settings
		wantVersion   string
		wantSOVersion string
		wantErr       bool
	}{
		{"none", Settings{}, "", "", false},
		{"derived soversion", Settings{"version": "2.1.0"}, "2.1.0", "2", false},
		{"major only", Settings{"version": "7"}, "7", "7", false},
		{"explicit soversion", Settings{"version": "2.1.0", "soversion": "5"}, "2.1.0", "5", false},
		{"integer soversion", Settings{"soversion": 3}, "", "3", false},
		{"int64 soversion", Settings{"soversion": int64(4)}, "", "4", false},
		{"uint64 soversion", Settings{"soversion": uint64(9)}, "", "9", false},
		{"bad version", Settings{"version": "1.bad"}, "", "", true},
		{"too many components", Settings{"version": "1.2.3.4"}, "", "", true},
		{"numeric version", Settings{"version": 1.2}, "", "", true},
		{"float soversion", Settings{"soversion": 1.5}, "", "", true},
		{"negative soversion", Settings{"soversion": -1}, "", "", true},
		{"empty soversion", Settings{"soversion": ""}, "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Settings{"tool": "cxx", "sources": []any{"foo.cpp"}}
			for k, v := range tt.settings {
				s[k] = v
			}
			lib, err := NewSharedLibrary("foo", s, ctxFor(t, "linux"))
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, nberr.IsConfigError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantVersion, lib.Version())
			assert.Equal(t, tt.wantSOVersion, lib.SOVersion())
		})
	}
}

func TestSharedLibraryFilename(t *testing.T) {
	tests := []struct {
		platform   string
		settings   Settings
		wantFile   string
		wantImport string
	}{
		{"linux", Settings{"version": "3.0.1"}, "libfoo.so.3.0.1", ""},
		{"linux", Settings{"soversion": 3}, "libfoo.so.3", ""},
		{"linux", Settings{}, "libfoo.so", ""},
		{"freebsd", Settings{"version": "1.2"}, "libfoo.so.1.2", ""},
		{"darwin", Settings{"soversion": 3}, "libfoo.3.dylib", ""},
		{"darwin", Settings{"version": "3.0.1"}, "libfoo.3.dylib", ""},
		{"darwin", Settings{}, "libfoo.dylib", ""},
		{"mingw", Settings{"soversion": "2"}, "libfoo-2.dll", "libfoo.dll.a"},
		{"mingw", Settings{}, "libfoo.dll", "libfoo.dll.a"},
		{"msvc", Settings{"version": "4.1"}, "foo-4.dll", "foo.lib"},
		{"msvc", Settings{}, "foo.dll", "foo.lib"},
	}

	for _, tt := range tests {
		t.Run(tt.platform+"/"+tt.wantFile, func(t *testing.T) {
			s := Settings{"tool": "cc", "sources": []any{"foo.c"}}
			for k, v := range tt.settings {
				s[k] = v
			}
			lib, err := NewSharedLibrary("foo", s, ctxFor(t, tt.platform))
			require.NoError(t, err)
			assert.Equal(t, tt.wantFile, lib.Filename())
			assert.Equal(t, tt.wantImport, lib.ImportLibrary())
		})
	}
}

func TestStaticAndExecutableFilenames(t *testing.T) {
	tests := []struct {
		platform   string
		wantStatic string
		wantExe    string
	}{
		{"linux", "libfoo.a", "foo"},
		{"openbsd", "libfoo.a", "foo"},
		{"darwin", "libfoo.a", "foo"},
		{"mingw", "libfoo.a", "foo.exe"},
		{"msvc", "libfoo.lib", "foo.exe"},
	}

	s := Settings{"tool": "cc", "sources": []any{"foo.c"}}
	for _, tt := range tests {
		t.Run(tt.platform, func(t *testing.T) {
			ctx := ctxFor(t, tt.platform)
			lib, err := New(StaticLibrary, "foo", s, ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatic, lib.Filename())

			exe, err := New(Executable, "foo", s, ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.wantExe, exe.Filename())
		})
	}
}

func TestObjects(t *testing.T) {
	s := Settings{"tool": "cxx", "sources": []any{"src/a.cpp", `src\win\b.cc`, "c.c"}}

	exe, err := NewExecutable("app", s, ctxFor(t, "linux"))
	require.NoError(t, err)
	assert.Equal(t, []string{"obj/src_a.o", "obj/src_win_b.o", "obj/c.o"}, exe.Objects())

	exe, err = NewExecutable("app", s, ctxFor(t, "msvc"))
	require.NoError(t, err)
	assert.Equal(t, []string{"obj/src_a.obj", "obj/src_win_b.obj", "obj/c.obj"}, exe.Objects())
}

func TestCompileFlagsPerTool(t *testing.T) {
	s := Settings{
		"tool":     "cc",
		"sources":  []any{"a.c"},
		"cflags":   []any{"-std=c99"},
		"cxxflags": []any{"-fno-rtti"},
	}
	lib, err := NewStaticLibrary("a", s, ctxFor(t, "linux"))
	require.NoError(t, err)
	assert.Equal(t, []string{"-std=c99"}, lib.CompileFlags(ToolCC))
	assert.Equal(t, []string{"-fno-rtti"}, lib.CompileFlags(ToolCXX))
	assert.Nil(t, lib.CompileFlags("ld"))
}

func TestAccessorsReturnCopies(t *testing.T) {
	s := Settings{"tool": "cc", "sources": []any{"a.c"}, "libs": []string{"m"}}
	lib, err := NewStaticLibrary("a", s, ctxFor(t, "linux"))
	require.NoError(t, err)

	libs := lib.Libs()
	libs[0] = "changed"
	assert.Equal(t, []string{"m"}, lib.Libs())
}

func TestKindLabel(t *testing.T) {
	assert.Equal(t, "Shared library", SharedLibrary.Label())
	assert.Equal(t, []Kind{StaticLibrary, SharedLibrary, Executable}, Kinds())

	exe, err := NewExecutable("tool", Settings{"tool": "cc", "sources": []any{}}, ctxFor(t, "linux"))
	require.NoError(t, err)
	assert.Equal(t, "Executable tool", exe.String())
}
