// Package models defines the data passed between the resolution stages.
// Every value is produced by one stage and only read by the next.
package models

import (
	"fmt"
	"strings"
)

// Supported Visual Studio version years.
const (
	VS2017 = 2017
	VS2019 = 2019
	VS2022 = 2022
)

// yearInfo describes what differs between Visual Studio releases.
type yearInfo struct {
	major    string // installationVersion major component
	toolset  string // platform toolset, names the versioned marker file
	vsVer    string // VisualStudioVersion
	armHosts bool   // ships Hostarm64 binaries
}

var years = map[int]yearInfo{
	VS2017: {major: "15", toolset: "v141", vsVer: "15.0"},
	VS2019: {major: "16", toolset: "v142", vsVer: "16.0"},
	VS2022: {major: "17", toolset: "v143", vsVer: "17.0", armHosts: true},
}

// Installation is one Visual Studio instance reported by discovery.
type Installation struct {
	Year       int    `json:"year" yaml:"year"`
	RootPath   string `json:"path" yaml:"path"`
	Version    string `json:"version,omitempty" yaml:"version,omitempty"` // e.g. 17.9.34607.119
	ProductID  string `json:"product,omitempty" yaml:"product,omitempty"`
	Name       string `json:"name,omitempty" yaml:"name,omitempty"`
	IsComplete bool   `json:"complete" yaml:"complete"`
}

func (i Installation) String() string {
	if i.Version != "" {
		return fmt.Sprintf("VS %d (%s) at %s", i.Year, i.Version, i.RootPath)
	}
	return fmt.Sprintf("VS %d at %s", i.Year, i.RootPath)
}

// ValidYear reports whether year is a supported Visual Studio version year.
func ValidYear(year int) bool {
	_, ok := years[year]
	return ok
}

// YearFromVersion maps an installation version such as "16.11.5.0" to its
// release year. It returns 0 for unknown majors.
func YearFromVersion(version string) int {
	major, _, _ := strings.Cut(strings.TrimSpace(version), ".")
	for year, info := range years {
		if info.major == major {
			return year
		}
	}
	return 0
}

// PlatformToolset returns the platform toolset name (v141, v142, v143).
func PlatformToolset(year int) string {
	return years[year].toolset
}

// VisualStudioVersion returns the VisualStudioVersion value for year.
func VisualStudioVersion(year int) string {
	return years[year].vsVer
}

// SupportsHost reports whether installations of year ship tools for host.
func SupportsHost(year int, host Arch) bool {
	if host != ArchARM64 {
		return true
	}
	return years[year].armHosts
}
