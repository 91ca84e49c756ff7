package buildenv

import (
	"testing"

	"github.com/ozacod/nbuild/pkg/config"
	nberr "github.com/ozacod/nbuild/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeclare(t *testing.T) {
	env := newEnv(t, "linux")
	err := env.Declare([]config.Declaration{
		{Section: config.SectionStaticLibraries, Name: "a", Settings: map[string]any{"tool": "cc", "sources": []any{"a.c"}}},
		{Section: config.SectionExecutables, Name: "b", Settings: map[string]any{"tool": "cc", "sources": []any{"b.c"}, "libs": []any{"a"}}},
	})
	require.NoError(t, err)
	require.Len(t, env.Targets(), 2)

	b, ok := env.Lookup("b")
	require.True(t, ok)
	deps, err := env.Dependencies(b)
	require.NoError(t, err)
	assert.Equal(t, []string{"lib/liba.a"}, deps)
}

func TestDeclareErrors(t *testing.T) {
	env := newEnv(t, "linux")
	err := env.Declare([]config.Declaration{
		{Section: config.SectionSharedLibraries, Name: "x", Settings: map[string]any{"tool": "cc", "sources": []any{}, "version": "one"}},
	})
	require.Error(t, err)
	assert.True(t, nberr.IsConfigError(err))
	assert.Contains(t, err.Error(), "Shared library x")

	err = env.Declare([]config.Declaration{{Section: "tests", Name: "t"}})
	assert.True(t, nberr.IsConfigError(err))
}
