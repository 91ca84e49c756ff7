package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const sampleTargets = `static_libraries:
  http:
    tool: cc
    sources: [deps/http-parser/http_parser.c]
    includes: [deps]
shared_libraries:
  orion:
    tool: cxx
    sources: [lib/core.cpp, lib/net/socket.cpp]
    sources-linux: [lib/linux/epoll.cpp]
    includes: [include, lib]
    libs: [http, pthread]
    version: "0.1.0"
executables:
  basic:
    tool: cxx
    sources: [examples/basic.cpp]
    includes: [include]
    libs: [orion]
`

// isolate points the user config at a temporary home and clears the tool
// overrides so results do not depend on the calling environment.
func isolate(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("APPDATA", home)
	for _, key := range []string{"CC", "CXX", "LD", "AR", "CFLAGS", "CPPFLAGS", "CXXFLAGS", "LDFLAGS", "LIBFLAGS"} {
		t.Setenv(key, "")
	}
}

// newProject writes a targets file into a fresh directory and returns the
// directory and the file path.
func newProject(t *testing.T, name, content string) (string, string) {
	t.Helper()
	isolate(t)
	root := t.TempDir()
	path := filepath.Join(root, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return root, path
}

// execute runs cmd with args and returns what it wrote to stdout.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// chdir changes the working directory to dir for the duration of the test,
// restoring it on cleanup. It mirrors testing.T.Chdir, which needs Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	abs, err := filepath.Abs(dir)
	require.NoError(t, err)
	oldwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(abs))
	t.Setenv("PWD", abs)
	t.Cleanup(func() {
		if err := os.Chdir(oldwd); err != nil {
			panic("testing.Chdir: " + err.Error())
		}
	})
}
