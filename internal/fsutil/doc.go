// Package fsutil provides file system utilities for the downloader.
//
// This package contains functions for:
//   - Filename sanitization
//   - File writing and directory creation
//   - Cover art image processing
//
// SanitizeName is deliberately minimal: it strips characters that are
// invalid on common file systems, collapses whitespace and trims the
// result. Length limits and reserved-name handling are left to the
// operating system.
package fsutil
