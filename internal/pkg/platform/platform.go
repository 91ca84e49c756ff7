// Package platform normalizes host and target platform identifiers into the
// closed set of platform families the generator knows how to target.
package platform

import (
	"strings"

	nberr "github.com/ozacod/nbuild/pkg/errors"
)

// Family is the naming/linking convention group a platform belongs to.
type Family string

const (
	FamilyPosix  Family = "posix"
	FamilyDarwin Family = "darwin"
	FamilyMinGW  Family = "mingw"
	FamilyMSVC   Family = "msvc"
)

// WindowsSystem is the system name shared by the mingw and msvc platforms.
const WindowsSystem = "windows"

// Platform is an immutable, resolved platform identity.
type Platform struct {
	name   string
	family Family
}

var families = map[string]Family{
	"linux":   FamilyPosix,
	"freebsd": FamilyPosix,
	"openbsd": FamilyPosix,
	"netbsd":  FamilyPosix,
	"darwin":  FamilyDarwin,
	"mingw":   FamilyMinGW,
	"msvc":    FamilyMSVC,
}

// hostPrefixes is checked in order; the first matching prefix wins.
var hostPrefixes = []struct {
	prefix string
	name   string
}{
	{"linux", "linux"},
	{"freebsd", "freebsd"},
	{"openbsd", "openbsd"},
	{"netbsd", "netbsd"},
	{"darwin", "darwin"},
	{"mingw", "mingw"},
	{"msys", "mingw"},
	{"cygwin", "mingw"},
	{"win", "msvc"},
}

// KnownPlatforms returns the platform names accepted as explicit overrides.
func KnownPlatforms() []string {
	return []string{"linux", "darwin", "freebsd", "openbsd", "netbsd", "mingw", "msvc"}
}

// New returns the platform for a known platform name.
func New(name string) (Platform, error) {
	family, ok := families[name]
	if !ok {
		return Platform{}, nberr.NewConfigError("platform",
			"unknown platform "+quote(name),
			"use one of: "+strings.Join(KnownPlatforms(), ", "))
	}
	return Platform{name: name, family: family}, nil
}

// Resolve returns the explicit platform when one is given, otherwise the
// platform matching hostID.
func Resolve(explicit, hostID string) (Platform, error) {
	if explicit != "" {
		return New(explicit)
	}
	return Detect(hostID)
}

// Detect maps a host-reported system identifier onto a platform.
func Detect(hostID string) (Platform, error) {
	id := strings.ToLower(strings.TrimSpace(hostID))
	for _, hp := range hostPrefixes {
		if strings.HasPrefix(id, hp.prefix) {
			return Platform{name: hp.name, family: families[hp.name]}, nil
		}
	}
	return Platform{}, nberr.NewPlatformError(hostID,
		"no naming conventions are known for this host; pass --platform explicitly")
}

// Name returns the normalized platform name (linux, darwin, mingw, ...).
func (p Platform) Name() string { return p.name }

// Family returns the platform family.
func (p Platform) Family() Family { return p.family }

// SystemName is the coarse name used to look up platform-suffixed settings.
// Both Windows platforms collapse to "windows".
func (p Platform) SystemName() string {
	if p.IsWindows() {
		return WindowsSystem
	}
	return p.name
}

// Suffixes returns the setting suffixes that apply on this platform, most
// general first.
func (p Platform) Suffixes() []string {
	if p.SystemName() == p.name {
		return []string{p.name}
	}
	return []string{p.SystemName(), p.name}
}

func (p Platform) IsDarwin() bool  { return p.family == FamilyDarwin }
func (p Platform) IsLinux() bool   { return p.name == "linux" }
func (p Platform) IsPosix() bool   { return p.family == FamilyPosix }
func (p Platform) IsMinGW() bool   { return p.family == FamilyMinGW }
func (p Platform) IsMSVC() bool    { return p.family == FamilyMSVC }
func (p Platform) IsWindows() bool { return p.IsMinGW() || p.IsMSVC() }

// IsZero reports whether p was never resolved.
func (p Platform) IsZero() bool { return p.name == "" }

func (p Platform) String() string { return p.name }

func quote(s string) string { return `"` + s + `"` }
