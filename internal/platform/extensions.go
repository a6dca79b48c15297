package platform

import "strings"

// HasExtension reports whether name appears as a whole token in the
// space-separated extension string.
func HasExtension(extensions, name string) bool {
	if name == "" {
		return false
	}
	for _, ext := range strings.Fields(extensions) {
		if ext == name {
			return true
		}
	}
	return false
}
