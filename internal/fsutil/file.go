package fsutil

import (
	"os"
	"regexp"
	"strings"
)

var (
	invalidChars  = regexp.MustCompile(`[<>:"/\\|?*]`)
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// SanitizeName transforms arbitrary text into a filesystem-safe name.
//
// The following transformations are applied, in order:
//   - The characters < > : " / \ | ? * are removed
//   - Runs of whitespace are collapsed to a single space
//   - Leading and trailing whitespace is trimmed
//
// The transform is pure, deterministic and idempotent. No length limit or
// reserved-name handling is applied here.
//
// Example:
//
//	SanitizeName("Song: Part 1/2")       // Returns "Song Part 12"
//	SanitizeName("  Name   with  gaps ") // Returns "Name with gaps"
func SanitizeName(name string) string {
	name = invalidChars.ReplaceAllString(name, "")
	name = whitespaceRun.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// WriteFile writes data to a file with mode 0644, creating it if necessary
// and truncating it if it exists.
func WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0644)
}

// EnsureDir creates a directory and all parent directories if they don't
// exist. Directories are created with mode 0755.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
