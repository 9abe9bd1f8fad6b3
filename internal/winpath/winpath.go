// Package winpath handles Windows-style paths independently of the host OS,
// so composition behaves the same when exercised from Linux tests.
package winpath

import (
	"path"
	"path/filepath"
	"strings"
)

// IsAbs reports whether p is a drive-absolute ("C:\x"), UNC ("\\srv\share")
// or host-absolute path.
func IsAbs(p string) bool {
	if hasDrive(p) && len(p) >= 3 && (p[2] == '\\' || p[2] == '/') {
		return true
	}
	if strings.HasPrefix(p, `\\`) || strings.HasPrefix(p, "//") {
		return true
	}
	return filepath.IsAbs(p)
}

func hasDrive(p string) bool {
	if len(p) < 2 || p[1] != ':' {
		return false
	}
	c := p[0]
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// Canonical normalises p to backslash form: forward slashes become
// backslashes, "." and ".." elements are resolved, repeated separators are
// collapsed and trailing separators dropped, except after a drive root.
// Leading ".." elements of a relative path are kept; above a root they
// are dropped, as Windows does.
func Canonical(p string) string {
	if p == "" {
		return ""
	}
	s := strings.ReplaceAll(p, `\`, "/")

	prefix := ""
	switch {
	case strings.HasPrefix(s, "//"):
		prefix = `\\`
		s = strings.TrimLeft(s, "/")
	case hasDrive(s):
		prefix = strings.ToUpper(s[:1]) + ":"
		s = s[2:]
	}

	switch {
	case prefix == `\\`:
		s = strings.TrimPrefix(path.Clean("/"+s), "/")
	case strings.HasPrefix(s, "/"):
		s = path.Clean(s)
	default:
		s = path.Clean(s)
		if s == "." && prefix != "" {
			return prefix
		}
	}
	return prefix + strings.ReplaceAll(s, "/", `\`)
}

// WithTrailingSlash returns the canonical form of dir ending in a backslash,
// the way vcvarsall writes directory variables.
func WithTrailingSlash(dir string) string {
	c := Canonical(dir)
	if strings.HasSuffix(c, `\`) {
		return c
	}
	return c + `\`
}

// Native converts a canonical path back to the host's separator so it can be
// passed to os functions.
func Native(p string) string {
	return filepath.FromSlash(strings.ReplaceAll(p, `\`, "/"))
}

// ToMSYS converts "C:\x\y" to the MSYS2 / Git Bash form "/c/x/y".
func ToMSYS(p string) string {
	s := strings.ReplaceAll(p, `\`, "/")
	if hasDrive(s) {
		return "/" + strings.ToLower(s[:1]) + s[2:]
	}
	return s
}
