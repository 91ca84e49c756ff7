//go:build !unix && !windows

package platform

import "runtime"

// HostIdentifier falls back to the Go target OS.
func HostIdentifier() string {
	return runtime.GOOS
}
