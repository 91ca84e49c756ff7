package target

import (
	"path"
	"strings"
)

// ObjectName flattens a source path into an object file name: the extension
// is dropped, path separators become underscores and suffix is appended.
// Distinct sources can flatten to the same name ("a/b.c" and "a_b.c"); callers
// that place objects in a shared directory must check for collisions.
func ObjectName(src, suffix string) string {
	p := path.Clean(strings.ReplaceAll(src, `\`, "/"))
	p = strings.TrimSuffix(p, path.Ext(p))
	return strings.ReplaceAll(p, "/", "_") + suffix
}
