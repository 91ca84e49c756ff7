// Package target models the buildable artifacts declared in a targets file.
//
// A target is built once from its raw settings and the active platform, and
// is immutable afterwards. Platform-suffixed list settings are appended to the
// base list at construction time.
package target

import (
	"fmt"
	"path"
	"regexp"
	"strconv"

	"github.com/ozacod/nbuild/internal/pkg/platform"
	nberr "github.com/ozacod/nbuild/pkg/errors"
)

// Kind is the artifact type of a target.
type Kind string

const (
	StaticLibrary Kind = "static_library"
	SharedLibrary Kind = "shared_library"
	Executable    Kind = "executable"
)

// Kinds lists the target kinds in emission order.
func Kinds() []Kind {
	return []Kind{StaticLibrary, SharedLibrary, Executable}
}

// Label is a human-readable name for the kind.
func (k Kind) Label() string {
	switch k {
	case StaticLibrary:
		return "Static library"
	case SharedLibrary:
		return "Shared library"
	case Executable:
		return "Executable"
	}
	return string(k)
}

func (k Kind) String() string { return string(k) }

// Compile tools a target may name.
const (
	ToolCC  = "cc"
	ToolCXX = "cxx"
)

// Context carries what a target needs from the active build environment.
type Context struct {
	Platform     platform.Platform
	ObjectSuffix string
	ObjectDir    string
}

// Target is one declared buildable artifact.
type Target interface {
	Name() string
	Kind() Kind
	Tool() string

	Sources() []string
	Includes() []string
	Defines() []string
	CPPFlags() []string
	CompileFlags(tool string) []string
	LDFlags() []string
	Libs() []string

	// Objects returns one object path per source, in source order.
	Objects() []string
	// Filename is the artifact file name without directory.
	Filename() string

	String() string
}

type buildTarget struct {
	name  string
	kind  Kind
	tool  string
	lists map[string][]string
	ctx   Context
}

func newBuildTarget(kind Kind, name string, s Settings, ctx Context) (*buildTarget, error) {
	if name == "" {
		return nil, nberr.NewConfigError("name", "target name must not be empty", "")
	}
	if err := s.validateKeys(name, kind); err != nil {
		return nil, err
	}

	tool, ok := s[KeyTool].(string)
	switch {
	case s[KeyTool] == nil:
		return nil, nberr.NewConfigError(name+"."+KeyTool, "required setting is missing", "set tool to cc or cxx")
	case !ok:
		return nil, nberr.NewConfigError(name+"."+KeyTool, "expected a string, got "+typeName(s[KeyTool]), "")
	case tool != ToolCC && tool != ToolCXX:
		return nil, nberr.NewConfigError(name+"."+KeyTool, fmt.Sprintf("unknown tool %q", tool), "set tool to cc or cxx")
	}

	if _, ok := s[KeySources]; !ok {
		return nil, nberr.NewConfigError(name+"."+KeySources, "required setting is missing", "")
	}

	t := &buildTarget{
		name:  name,
		kind:  kind,
		tool:  tool,
		lists: make(map[string][]string, len(listKeys)),
		ctx:   ctx,
	}
	for _, key := range listKeys {
		merged, err := s.mergedList(name, key, ctx.Platform)
		if err != nil {
			return nil, err
		}
		t.lists[key] = merged
	}
	return t, nil
}

func (t *buildTarget) list(key string) []string {
	l := t.lists[key]
	out := make([]string, len(l))
	copy(out, l)
	return out
}

func (t *buildTarget) Name() string       { return t.name }
func (t *buildTarget) Kind() Kind         { return t.kind }
func (t *buildTarget) Tool() string       { return t.tool }
func (t *buildTarget) Sources() []string  { return t.list(KeySources) }
func (t *buildTarget) Includes() []string { return t.list(KeyIncludes) }
func (t *buildTarget) Defines() []string  { return t.list(KeyDefines) }
func (t *buildTarget) CPPFlags() []string { return t.list(KeyCPPFlags) }
func (t *buildTarget) LDFlags() []string  { return t.list(KeyLDFlags) }
func (t *buildTarget) Libs() []string     { return t.list(KeyLibs) }

// CompileFlags returns the per-tool flags: cflags for cc, cxxflags for cxx.
func (t *buildTarget) CompileFlags(tool string) []string {
	switch tool {
	case ToolCC:
		return t.list(KeyCFlags)
	case ToolCXX:
		return t.list(KeyCXXFlags)
	}
	return nil
}

func (t *buildTarget) Objects() []string {
	srcs := t.lists[KeySources]
	objs := make([]string, 0, len(srcs))
	for _, src := range srcs {
		objs = append(objs, path.Join(t.ctx.ObjectDir, ObjectName(src, t.ctx.ObjectSuffix)))
	}
	return objs
}

func (t *buildTarget) fields() Fields {
	return Fields{Name: t.name}
}

func (t *buildTarget) Filename() string {
	return Filename(t.ctx.Platform.Family(), t.kind, t.fields())
}

func (t *buildTarget) String() string {
	return t.kind.Label() + " " + t.name
}

// StaticLib is an archive of object files.
type StaticLib struct {
	*buildTarget
}

// NewStaticLibrary builds a static library target.
func NewStaticLibrary(name string, s Settings, ctx Context) (*StaticLib, error) {
	bt, err := newBuildTarget(StaticLibrary, name, s, ctx)
	if err != nil {
		return nil, err
	}
	return &StaticLib{bt}, nil
}

// Exe is a linked program.
type Exe struct {
	*buildTarget
}

// NewExecutable builds an executable target.
func NewExecutable(name string, s Settings, ctx Context) (*Exe, error) {
	bt, err := newBuildTarget(Executable, name, s, ctx)
	if err != nil {
		return nil, err
	}
	return &Exe{bt}, nil
}

var versionRe = regexp.MustCompile(`^[0-9]+(\.[0-9]+){0,2}$`)

// SharedLib is a dynamically linked library with optional versioning.
type SharedLib struct {
	*buildTarget
	version   string
	soversion string
}

// NewSharedLibrary builds a shared library target. The version must look
// like X[.Y[.Z]]; when no soversion is given it defaults to X.
func NewSharedLibrary(name string, s Settings, ctx Context) (*SharedLib, error) {
	bt, err := newBuildTarget(SharedLibrary, name, s, ctx)
	if err != nil {
		return nil, err
	}
	lib := &SharedLib{buildTarget: bt}

	if raw, ok := s[KeyVersion]; ok {
		v, isStr := raw.(string)
		if !isStr {
			return nil, nberr.NewConfigError(name+"."+KeyVersion,
				"shared library version needs to be a string, not "+typeName(raw),
				`quote the version, e.g. version: "1.2.0"`)
		}
		if !versionRe.MatchString(v) {
			return nil, nberr.NewConfigError(name+"."+KeyVersion,
				fmt.Sprintf("invalid shared library version %q", v),
				"must be of the form X.Y.Z where all three are numbers; Y and Z are optional")
		}
		lib.version = v
	}

	if raw, ok := s[KeySOVersion]; ok {
		so, err := soversionString(raw)
		if err != nil {
			return nil, nberr.NewConfigError(name+"."+KeySOVersion, err.Error(), "")
		}
		lib.soversion = so
	} else if lib.version != "" {
		// Same default as libtool: the first component of the version.
		lib.soversion = firstComponent(lib.version)
	}

	return lib, nil
}

func soversionString(raw any) (string, error) {
	switch v := raw.(type) {
	case string:
		if v == "" {
			return "", fmt.Errorf("shared library soversion must not be empty")
		}
		return v, nil
	case int:
		return nonNegative(int64(v))
	case int64:
		return nonNegative(v)
	case uint64:
		return strconv.FormatUint(v, 10), nil
	}
	return "", fmt.Errorf("shared library soversion is not a string or integer (got %s)", typeName(raw))
}

func nonNegative(v int64) (string, error) {
	if v < 0 {
		return "", fmt.Errorf("shared library soversion must not be negative")
	}
	return strconv.FormatInt(v, 10), nil
}

func firstComponent(version string) string {
	for i := 0; i < len(version); i++ {
		if version[i] == '.' {
			return version[:i]
		}
	}
	return version
}

// Version returns the full semantic version, or "".
func (l *SharedLib) Version() string { return l.version }

// SOVersion returns the ABI version, explicit or derived, or "".
func (l *SharedLib) SOVersion() string { return l.soversion }

func (l *SharedLib) fields() Fields {
	return Fields{Name: l.name, Version: l.version, SOVersion: l.soversion}
}

// Filename overrides the base to take versions into account.
func (l *SharedLib) Filename() string {
	return Filename(l.ctx.Platform.Family(), SharedLibrary, l.fields())
}

// ImportLibrary returns the import library file name on Windows families,
// "" elsewhere.
func (l *SharedLib) ImportLibrary() string {
	return ImportLibrary(l.ctx.Platform.Family(), SharedLibrary, l.fields())
}

// New builds a target of the given kind.
func New(kind Kind, name string, s Settings, ctx Context) (Target, error) {
	switch kind {
	case StaticLibrary:
		return NewStaticLibrary(name, s, ctx)
	case SharedLibrary:
		return NewSharedLibrary(name, s, ctx)
	case Executable:
		return NewExecutable(name, s, ctx)
	}
	return nil, nberr.NewConfigError(name, fmt.Sprintf("unknown target kind %q", kind), "")
}
