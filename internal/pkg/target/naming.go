package target

import (
	"strings"

	"github.com/ozacod/nbuild/internal/pkg/platform"
)

// Fields are the target attributes a naming pattern may reference.
type Fields struct {
	Name      string
	Version   string
	SOVersion string
}

// Template is the output naming convention for one (family, kind) pair.
// Patterns may reference {prefix}, {suffix}, {name}, {version} and
// {soversion}. Empty patterns are not applicable.
type Template struct {
	Prefix        string
	Suffix        string
	Plain         string
	WithSOVersion string
	WithVersion   string
	Import        string
}

var templates = map[platform.Family]map[Kind]Template{
	platform.FamilyPosix: {
		SharedLibrary: {
			Prefix:        "lib",
			Suffix:        "so",
			Plain:         "{prefix}{name}.{suffix}",
			WithSOVersion: "{prefix}{name}.{suffix}.{soversion}",
			WithVersion:   "{prefix}{name}.{suffix}.{version}",
		},
		StaticLibrary: {Prefix: "lib", Suffix: "a", Plain: "{prefix}{name}.{suffix}"},
		Executable:    {Plain: "{name}"},
	},
	platform.FamilyDarwin: {
		SharedLibrary: {
			Prefix:        "lib",
			Suffix:        "dylib",
			Plain:         "{prefix}{name}.{suffix}",
			WithSOVersion: "{prefix}{name}.{soversion}.{suffix}",
		},
		StaticLibrary: {Prefix: "lib", Suffix: "a", Plain: "{prefix}{name}.{suffix}"},
		Executable:    {Plain: "{name}"},
	},
	platform.FamilyMinGW: {
		SharedLibrary: {
			Prefix:        "lib",
			Suffix:        "dll",
			Plain:         "{prefix}{name}.{suffix}",
			WithSOVersion: "{prefix}{name}-{soversion}.{suffix}",
			Import:        "lib{name}.dll.a",
		},
		StaticLibrary: {Prefix: "lib", Suffix: "a", Plain: "{prefix}{name}.{suffix}"},
		Executable:    {Suffix: "exe", Plain: "{name}.{suffix}"},
	},
	platform.FamilyMSVC: {
		SharedLibrary: {
			Suffix:        "dll",
			Plain:         "{name}.{suffix}",
			WithSOVersion: "{name}-{soversion}.{suffix}",
			Import:        "{name}.lib",
		},
		StaticLibrary: {Prefix: "lib", Suffix: "lib", Plain: "{prefix}{name}.{suffix}"},
		Executable:    {Suffix: "exe", Plain: "{name}.{suffix}"},
	},
}

// TemplateFor returns the naming template for family and kind.
func TemplateFor(family platform.Family, kind Kind) Template {
	return templates[family][kind]
}

func (t Template) expand(pattern string, f Fields) string {
	if pattern == "" {
		return ""
	}
	r := strings.NewReplacer(
		"{prefix}", t.Prefix,
		"{suffix}", t.Suffix,
		"{name}", f.Name,
		"{version}", f.Version,
		"{soversion}", f.SOVersion,
	)
	return r.Replace(pattern)
}

// Filename returns the on-disk file name of a target. A full version is used
// where the family has a pattern for it, then an SO-version, then the plain
// pattern.
func Filename(family platform.Family, kind Kind, f Fields) string {
	t := TemplateFor(family, kind)
	switch {
	case f.Version != "" && t.WithVersion != "":
		return t.expand(t.WithVersion, f)
	case f.SOVersion != "" && t.WithSOVersion != "":
		return t.expand(t.WithSOVersion, f)
	}
	return t.expand(t.Plain, f)
}

// ImportLibrary returns the import library file name, or "" when the family
// links shared libraries directly.
func ImportLibrary(family platform.Family, kind Kind, f Fields) string {
	t := TemplateFor(family, kind)
	return t.expand(t.Import, f)
}
