package models

import (
	"fmt"
	"strings"
)

// Arch is a Visual C++ host or target architecture.
type Arch int

const (
	ArchX86 Arch = iota
	ArchX64
	ArchARM64

	archCount
)

// AllArchs lists every supported architecture in table order.
var AllArchs = []Arch{ArchX86, ArchX64, ArchARM64}

// archNames holds the directory names used by the toolset and the SDK.
var archNames = [archCount]string{
	ArchX86:   "x86",
	ArchX64:   "x64",
	ArchARM64: "arm64",
}

// archAliases maps user and OS spellings to architectures.
var archAliases = map[string]Arch{
	"x86":     ArchX86,
	"i386":    ArchX86,
	"i486":    ArchX86,
	"i586":    ArchX86,
	"i686":    ArchX86,
	"386":     ArchX86,
	"win32":   ArchX86,
	"x64":     ArchX64,
	"amd64":   ArchX64,
	"x86_64":  ArchX64,
	"arm64":   ArchARM64,
	"aarch64": ArchARM64,
}

// hostDirs is the (host, target) bin directory table. The array shape keeps
// the set of combinations closed: every valid Arch pair has an entry.
var hostDirs = [archCount][archCount][2]string{
	ArchX86: {
		ArchX86:   {"Hostx86", "x86"},
		ArchX64:   {"Hostx86", "x64"},
		ArchARM64: {"Hostx86", "arm64"},
	},
	ArchX64: {
		ArchX86:   {"Hostx64", "x86"},
		ArchX64:   {"Hostx64", "x64"},
		ArchARM64: {"Hostx64", "arm64"},
	},
	ArchARM64: {
		ArchX86:   {"Hostarm64", "x86"},
		ArchX64:   {"Hostarm64", "x64"},
		ArchARM64: {"Hostarm64", "arm64"},
	},
}

// String returns the directory name of the architecture.
func (a Arch) String() string {
	if !a.Valid() {
		return fmt.Sprintf("arch(%d)", int(a))
	}
	return archNames[a]
}

// Valid reports whether a is one of the known architectures.
func (a Arch) Valid() bool {
	return a >= 0 && a < archCount
}

// ParseArch converts a user-supplied architecture name.
func ParseArch(s string) (Arch, error) {
	if a, ok := archAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return a, nil
	}
	return 0, &Error{
		Op:   "parse architecture",
		Kind: ErrUnsupportedArchitecture,
		Err:  fmt.Errorf("unknown architecture %q (expected x86, x64 or arm64)", s),
	}
}

// BinDirParts returns the path components of the compiler binary directory
// below the VC root, e.g. ["bin", "Hostx64", "arm64"].
func BinDirParts(host, target Arch) ([]string, error) {
	if !host.Valid() || !target.Valid() {
		return nil, &Error{
			Op:   "bin directory",
			Kind: ErrUnsupportedArchitecture,
			Err:  fmt.Errorf("no bin directory for host %v, target %v", host, target),
		}
	}
	dirs := hostDirs[host][target]
	return []string{"bin", dirs[0], dirs[1]}, nil
}
