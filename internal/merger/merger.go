// Package merger prepends a composed delta onto the inherited environment.
package merger

import (
	"strings"

	"github.com/vcv-app/vcv/internal/models"
)

// Merge returns the variables to set in the activated shell. For list
// variables the delta segments come first, followed by the inherited
// segments in their original order; exact duplicates are dropped keeping
// the first occurrence. Scalars from the delta overwrite inherited values.
//
// The snapshot is never modified. Merging a delta into an environment that
// already went through Merge with the same delta yields the same result.
func Merge(delta models.EnvironmentDelta, current models.EnvSnapshot) models.ResolvedEnvironment {
	env := make(models.ResolvedEnvironment, len(delta.Lists)+len(delta.Scalars))

	for name, segs := range delta.Lists {
		inherited, _ := current.Get(name)
		merged := dedup(append(append([]string(nil), segs...), models.SplitList(inherited)...))
		env[name] = strings.Join(merged, models.ListSeparator)
	}
	for name, value := range delta.Scalars {
		env[name] = value
	}
	return env
}

func dedup(segs []string) []string {
	seen := make(map[string]struct{}, len(segs))
	out := segs[:0]
	for _, s := range segs {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
