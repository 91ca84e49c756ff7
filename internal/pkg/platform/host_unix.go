//go:build unix

package platform

import (
	"runtime"
	"strings"

	"golang.org/x/sys/unix"
)

// HostIdentifier returns the system name the running kernel reports.
func HostIdentifier() string {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return runtime.GOOS
	}
	return strings.ToLower(unix.ByteSliceToString(uts.Sysname[:]))
}
