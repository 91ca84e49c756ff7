//go:build windows

package platform

import (
	"os"
	"strings"
)

// HostIdentifier reports "mingw" when running under an MSYS2/MinGW shell and
// "win32" otherwise.
func HostIdentifier() string {
	if msystem := os.Getenv("MSYSTEM"); msystem != "" {
		return "mingw-" + strings.ToLower(msystem)
	}
	return "win32"
}
