// Package selector picks one installation from the discovered candidates.
package selector

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vcv-app/vcv/internal/models"
	"github.com/vcv-app/vcv/internal/version"
)

// Any requests the newest installed version year.
const Any = 0

// Select returns the best candidate for the requested year (Any for no
// constraint).
//
// Without a constraint the highest year wins. Within a year, complete
// installations beat incomplete ones, then the numerically highest
// installation version wins, then the lexicographically greatest root path,
// so the result is stable for a given candidate set.
//
// An empty candidate set fails with ErrNoInstallationFound; a year that
// filters the set to empty fails with ErrVersionNotFound.
func Select(candidates []models.Installation, requested int) (models.Installation, error) {
	if len(candidates) == 0 {
		return models.Installation{}, &models.Error{Op: "select", Kind: models.ErrNoInstallationFound}
	}

	ranked := Rank(candidates)
	if requested == Any {
		return ranked[0], nil
	}
	for _, inst := range ranked {
		if inst.Year == requested {
			return inst, nil
		}
	}
	return models.Installation{}, &models.Error{
		Op:   "select",
		Kind: models.ErrVersionNotFound,
		Err:  fmt.Errorf("Visual Studio %d is not installed (available: %s)", requested, strings.Join(Years(candidates), ", ")),
	}
}

// Rank returns a copy of candidates ordered best first.
func Rank(candidates []models.Installation) []models.Installation {
	ranked := make([]models.Installation, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return better(ranked[i], ranked[j])
	})
	return ranked
}

// better reports whether a ranks strictly before b.
func better(a, b models.Installation) bool {
	if a.Year != b.Year {
		return a.Year > b.Year
	}
	if a.IsComplete != b.IsComplete {
		return a.IsComplete
	}
	if c := version.Compare(a.Version, b.Version); c != 0 {
		return c > 0
	}
	return a.RootPath > b.RootPath
}

// Years lists the distinct version years among candidates, newest first.
func Years(candidates []models.Installation) []string {
	seen := make(map[int]bool)
	var years []int
	for _, c := range candidates {
		if !seen[c.Year] {
			seen[c.Year] = true
			years = append(years, c.Year)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	out := make([]string, len(years))
	for i, y := range years {
		out[i] = fmt.Sprint(y)
	}
	return out
}
