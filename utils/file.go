package utils

import (
	"path/filepath"
	"strings"
)

// FileNameWithoutExt strips the directory and extension from a path.
func FileNameWithoutExt(path string) string {
	base := filepath.Base(path)
	if idx := strings.LastIndex(base, "."); idx != -1 {
		base = base[:idx]
	}
	return base
}

// SanitizeFileName replaces characters outside [a-zA-Z0-9-_.] so the
// name is safe to use in Content-Disposition headers and on disk.
func SanitizeFileName(name string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' {
			return r
		}
		return '_'
	}, name)
}
