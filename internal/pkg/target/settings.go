package target

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ozacod/nbuild/internal/pkg/platform"
	nberr "github.com/ozacod/nbuild/pkg/errors"
)

// Settings is the raw declarative settings bag of one target, as decoded from
// the targets file.
type Settings map[string]any

// List setting keys. Each may also appear with a platform suffix, e.g.
// "sources-darwin" or "libs-windows".
const (
	KeySources  = "sources"
	KeyIncludes = "includes"
	KeyDefines  = "defines"
	KeyCPPFlags = "cppflags"
	KeyCFlags   = "cflags"
	KeyCXXFlags = "cxxflags"
	KeyLDFlags  = "ldflags"
	KeyLibs     = "libs"

	KeyTool      = "tool"
	KeyVersion   = "version"
	KeySOVersion = "soversion"
)

var listKeys = []string{
	KeySources, KeyIncludes, KeyDefines, KeyCPPFlags,
	KeyCFlags, KeyCXXFlags, KeyLDFlags, KeyLibs,
}

// settingSuffixes are all suffixes a list key may carry, including the ones
// for platforms other than the active one.
var settingSuffixes = []string{
	"linux", "darwin", "freebsd", "openbsd", "netbsd",
	platform.WindowsSystem, "mingw", "msvc",
}

func isListKey(key string) bool {
	for _, k := range listKeys {
		if key == k {
			return true
		}
		for _, sfx := range settingSuffixes {
			if key == k+"-"+sfx {
				return true
			}
		}
	}
	return false
}

// validateKeys rejects settings no target kind understands, so a misspelled
// key fails generation instead of being silently ignored.
func (s Settings) validateKeys(name string, kind Kind) error {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch {
		case k == KeyTool, isListKey(k):
		case k == KeyVersion || k == KeySOVersion:
			if kind != SharedLibrary {
				return nberr.NewConfigError(name+"."+k,
					fmt.Sprintf("%q is only valid for shared libraries", k), "")
			}
		default:
			return nberr.NewConfigError(name+"."+k, "unknown setting",
				"valid settings: tool, version, soversion, "+strings.Join(listKeys, ", ")+
					" (list settings accept a -<platform> suffix)")
		}
	}
	return nil
}

// stringList returns the list stored under key, or nil when it is absent.
func (s Settings) stringList(name, key string) ([]string, error) {
	raw, ok := s[key]
	if !ok || raw == nil {
		return nil, nil
	}

	switch v := raw.(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out, nil
	case []any:
		out := make([]string, 0, len(v))
		for i, item := range v {
			str, ok := item.(string)
			if !ok {
				return nil, nberr.NewConfigError(fmt.Sprintf("%s.%s[%d]", name, key, i),
					fmt.Sprintf("expected a string, got %s", typeName(item)), "quote the value")
			}
			out = append(out, str)
		}
		return out, nil
	}
	return nil, nberr.NewConfigError(name+"."+key,
		fmt.Sprintf("expected a list of strings, got %s", typeName(raw)), "")
}

// mergedList returns the base list followed by every platform-suffixed list
// that applies on p, in order and without deduplication.
func (s Settings) mergedList(name, key string, p platform.Platform) ([]string, error) {
	merged, err := s.stringList(name, key)
	if err != nil {
		return nil, err
	}
	for _, sfx := range p.Suffixes() {
		extra, err := s.stringList(name, key+"-"+sfx)
		if err != nil {
			return nil, err
		}
		merged = append(merged, extra...)
	}
	return merged, nil
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "integer"
	case float32, float64:
		return "float"
	case []any, []string:
		return "list"
	case map[string]any:
		return "mapping"
	}
	return fmt.Sprintf("%T", v)
}
