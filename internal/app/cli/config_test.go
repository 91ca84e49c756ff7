package cli

import (
	"testing"

	usercfg "github.com/ozacod/nbuild/internal/config"
	"github.com/ozacod/nbuild/internal/pkg/utils/colors"
	nberr "github.com/ozacod/nbuild/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigSetGet(t *testing.T) {
	isolate(t)

	_, err := execute(t, ConfigCmd(), "set", "buildtype", "release")
	require.NoError(t, err)

	out, err := execute(t, ConfigCmd(), "get", "buildtype")
	require.NoError(t, err)
	assert.Equal(t, "release\n", out)

	cfg, err := usercfg.LoadGlobal()
	require.NoError(t, err)
	assert.Equal(t, "release", cfg.BuildType)

	_, err = execute(t, ConfigCmd(), "set", "buildtype", "")
	require.NoError(t, err)
	out, err = execute(t, ConfigCmd(), "get", "buildtype")
	require.NoError(t, err)
	assert.Equal(t, "\n", out)
}

func TestConfigSetValidates(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		wantErr bool
	}{
		{"platform", "mingw", false},
		{"platform", "haiku", true},
		{"buildtype", "debugoptimized", false},
		{"buildtype", "fast", true},
		{"toolchain", "clang-cl", false},
		{"toolchain", "icc", true},
		{"ninja_version", "1.10", false},
		{"ninja_version", "1.2", true},
		{"builddir", "out", false},
		{"colour", "red", true},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			isolate(t)
			err := setConfig(tt.key, tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			cfg, err := usercfg.LoadGlobal()
			require.NoError(t, err)
			got, err := cfg.Get(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.value, got)
		})
	}
}

func TestConfigSetRejectsBeforeWriting(t *testing.T) {
	isolate(t)

	err := setConfig("platform", "plan9")
	require.Error(t, err)
	assert.True(t, nberr.IsConfigError(err))

	path, err := usercfg.GetConfigPath()
	require.NoError(t, err)
	assert.NoFileExists(t, path)
}

func TestConfigList(t *testing.T) {
	isolate(t)
	colors.Disable()
	require.NoError(t, usercfg.SaveGlobal(&usercfg.GlobalConfig{Platform: "msvc", NinjaVersion: "1.7"}))

	out, err := execute(t, ConfigCmd(), "list")
	require.NoError(t, err)

	for _, want := range []string{
		"buildtype      (unset)\n",
		"ninja_version  1.7\n",
		"platform       msvc\n",
	} {
		assert.Contains(t, out, want)
	}
}
