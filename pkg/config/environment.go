package config

import (
	"os"

	"github.com/kballard/go-shellquote"
	nberr "github.com/ozacod/nbuild/pkg/errors"
)

// Environment holds the tool and flag overrides read from the process
// environment. It is captured once at startup and never re-read.
type Environment struct {
	CC  string
	CXX string
	LD  string
	AR  string

	CFlags   []string
	CPPFlags []string
	CXXFlags []string
	LDFlags  []string
	LibFlags []string
}

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// CaptureEnvironment reads the overrides from the current process.
func CaptureEnvironment() (Environment, error) {
	return EnvironmentFrom(os.LookupEnv)
}

// EnvironmentFrom reads the overrides through lookup. Flag variables are split
// with shell quoting rules into one element per argument, so a quoted
// argument containing spaces stays a single element.
func EnvironmentFrom(lookup LookupFunc) (Environment, error) {
	get := func(key string) string {
		v, _ := lookup(key)
		return v
	}

	env := Environment{
		CC:  get("CC"),
		CXX: get("CXX"),
		LD:  get("LD"),
		AR:  get("AR"),
	}

	flags := []struct {
		key string
		dst *[]string
	}{
		{"CFLAGS", &env.CFlags},
		{"CPPFLAGS", &env.CPPFlags},
		{"CXXFLAGS", &env.CXXFlags},
		{"LDFLAGS", &env.LDFlags},
		{"LIBFLAGS", &env.LibFlags},
	}
	for _, f := range flags {
		words, err := shellquote.Split(get(f.key))
		if err != nil {
			return Environment{}, nberr.NewConfigError(f.key, err.Error(), "check the quoting of the environment variable")
		}
		*f.dst = words
	}

	return env, nil
}
