// Package toolchain derives compiler and linker defaults from the chosen
// toolchain, build type and platform.
package toolchain

import (
	"strings"

	"github.com/ozacod/nbuild/internal/pkg/platform"
	"github.com/ozacod/nbuild/pkg/config"
	nberr "github.com/ozacod/nbuild/pkg/errors"
)

// Toolchain identifies a compiler command-line dialect.
type Toolchain string

const (
	// Clang is the GNU/Clang style command line.
	Clang Toolchain = "clang"
	// ClangCL is the MSVC-compatible command line.
	ClangCL Toolchain = "clang-cl"
)

// Toolchains lists the accepted toolchain names.
func Toolchains() []string {
	return []string{string(Clang), string(ClangCL)}
}

// ParseToolchain parses a toolchain name. The empty string selects the
// platform default.
func ParseToolchain(s string, p platform.Platform) (Toolchain, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultFor(p), nil
	case "clang", "gcc", "gnu":
		return Clang, nil
	case "clang-cl", "msvc", "cl":
		return ClangCL, nil
	}
	return "", nberr.NewConfigError("toolchain", "unknown toolchain \""+s+"\"",
		"use one of: "+strings.Join(Toolchains(), ", "))
}

// DefaultFor returns the toolchain used when none is requested.
func DefaultFor(p platform.Platform) Toolchain {
	if p.IsMSVC() {
		return ClangCL
	}
	return Clang
}

// IsMSVCCompatible reports whether the toolchain takes cl.exe style flags.
func (tc Toolchain) IsMSVCCompatible() bool { return tc == ClangCL }

// ObjectSuffix returns the object file extension, including the dot.
func (tc Toolchain) ObjectSuffix() string {
	if tc.IsMSVCCompatible() {
		return ".obj"
	}
	return ".o"
}

func (tc Toolchain) String() string { return string(tc) }

// Tools holds the executables written into the build file.
type Tools struct {
	CC  string
	CXX string
	LD  string
	AR  string
}

// ToolsFor returns the default executables for tc, overridden by env.
func ToolsFor(tc Toolchain, env config.Environment) Tools {
	var t Tools
	if tc.IsMSVCCompatible() {
		t = Tools{CC: "clang-cl.exe", CXX: "clang-cl.exe", LD: "lld-link.exe", AR: "llvm-lib.exe"}
	} else {
		t = Tools{CC: "clang", CXX: "clang++", AR: "ar"}
	}

	if env.CC != "" {
		t.CC = env.CC
	}
	if env.CXX != "" {
		t.CXX = env.CXX
	}
	if env.AR != "" {
		t.AR = env.AR
	}
	switch {
	case env.LD != "":
		t.LD = env.LD
	case t.LD == "":
		// GNU-style links go through the C++ driver.
		t.LD = t.CXX
	}
	return t
}
