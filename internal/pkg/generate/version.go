package generate

import (
	"strings"

	nberr "github.com/ozacod/nbuild/pkg/errors"
	"golang.org/x/mod/semver"
)

const (
	// DefaultNinjaVersion is written when no version is requested.
	DefaultNinjaVersion = "1.6"
	// minNinjaVersion is the first release with the console pool, which the
	// regeneration edge uses.
	minNinjaVersion = "1.5"
	// implicitOutputsVersion is the first release that understands implicit
	// outputs, used for Windows import libraries.
	implicitOutputsVersion = "1.7"
)

func canonical(v string) string {
	return "v" + strings.TrimPrefix(strings.TrimSpace(v), "v")
}

// ValidateNinjaVersion checks that v is a version number Ninja accepts for
// ninja_required_version and that it is recent enough for the generated file.
func ValidateNinjaVersion(v string) error {
	if v == "" {
		return nil
	}
	sv := canonical(v)
	if !semver.IsValid(sv) || semver.Prerelease(sv) != "" || semver.Build(sv) != "" {
		return nberr.NewConfigError("ninja-version", "invalid version \""+v+"\"", "use a dotted version such as 1.10")
	}
	if semver.Compare(sv, canonical(minNinjaVersion)) < 0 {
		return nberr.NewConfigError("ninja-version",
			"ninja "+v+" is too old", "the generated file needs ninja "+minNinjaVersion+" or newer")
	}
	return nil
}

// requiredVersion returns the larger of the requested version and floor.
func requiredVersion(requested, floor string) string {
	if requested == "" {
		requested = DefaultNinjaVersion
	}
	requested = strings.TrimPrefix(strings.TrimSpace(requested), "v")
	if floor != "" && semver.Compare(canonical(requested), canonical(floor)) < 0 {
		return floor
	}
	return requested
}
