// Package version compares dotted numeric versions such as Windows SDK
// directory names ("10.0.22621.0") and toolset versions ("14.38.33130").
// Components are compared as integers, never as strings.
package version

import (
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// parse accepts plain dotted numbers only; pre-release and build metadata
// suffixes never name an installed SDK or toolset.
func parse(v string) (*goversion.Version, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, false
	}
	parsed, err := goversion.NewVersion(v)
	if err != nil || parsed.Prerelease() != "" || parsed.Metadata() != "" {
		return nil, false
	}
	return parsed, true
}

// Parse splits v into its numeric components. It reports false if any
// component is empty or not a non-negative integer.
func Parse(v string) ([]int, bool) {
	parsed, ok := parse(v)
	if !ok {
		return nil, false
	}
	// Segments pads to three components; keep the ones actually written.
	n := strings.Count(strings.TrimSpace(v), ".") + 1
	segs := parsed.Segments()
	if len(segs) > n {
		segs = segs[:n]
	}
	return segs, true
}

// Valid reports whether v parses as a dotted numeric version.
func Valid(v string) bool {
	_, ok := parse(v)
	return ok
}

// Compare returns -1, 0 or 1 as a is older than, equal to or newer than b.
// Missing trailing components count as zero. Unparseable versions sort
// before every valid one and compare lexically among themselves.
func Compare(a, b string) int {
	va, okA := parse(a)
	vb, okB := parse(b)
	switch {
	case !okA && !okB:
		return strings.Compare(a, b)
	case !okA:
		return -1
	case !okB:
		return 1
	}
	return va.Compare(vb)
}

// IsNewer reports whether latest is strictly newer than current.
func IsNewer(latest, current string) bool {
	return Compare(latest, current) > 0
}

// Highest returns the newest valid version among candidates that satisfies
// keep (nil keeps everything), or "" if none does.
func Highest(candidates []string, keep func(string) bool) string {
	var (
		best    string
		bestVer *goversion.Version
	)
	for _, c := range candidates {
		v, ok := parse(c)
		if !ok || (keep != nil && !keep(c)) {
			continue
		}
		if bestVer == nil || v.GreaterThan(bestVer) {
			best, bestVer = c, v
		}
	}
	return best
}
