package models

import (
	"sort"
	"strings"
)

// ListSeparator joins segments of list-valued variables.
const ListSeparator = ";"

// List-valued variables, in rendering order.
const (
	VarPath    = "PATH"
	VarInclude = "INCLUDE"
	VarLib     = "LIB"
	VarLibPath = "LIBPATH"
)

// ListVars are the prepend-only variables.
var ListVars = []string{VarPath, VarInclude, VarLib, VarLibPath}

// Scalar variables produced by composition.
const (
	VarVCToolsInstallDir   = "VCToolsInstallDir"
	VarWindowsSdkDir       = "WindowsSdkDir"
	VarUCRTVersion         = "UCRTVersion"
	VarVSInstallDir        = "VSINSTALLDIR"
	VarVCInstallDir        = "VCINSTALLDIR"
	VarVCToolsVersion      = "VCToolsVersion"
	VarVisualStudioVersion = "VisualStudioVersion"
	VarPlatform            = "Platform"
	VarWindowsSDKVersion   = "WindowsSDKVersion"
	VarUniversalCRTSdkDir  = "UniversalCRTSdkDir"
	VarHostArch            = "VSCMD_ARG_HOST_ARCH"
	VarTargetArch          = "VSCMD_ARG_TGT_ARCH"
)

// IsListVar reports whether name is one of the list-valued variables.
func IsListVar(name string) bool {
	for _, v := range ListVars {
		if strings.EqualFold(v, name) {
			return true
		}
	}
	return false
}

// EnvironmentDelta holds the composed mutations: segments to prepend to list
// variables and values to assign to scalar variables. Segments within one
// list are unique.
type EnvironmentDelta struct {
	Lists   map[string][]string
	Scalars map[string]string
}

// NewEnvironmentDelta returns an empty delta.
func NewEnvironmentDelta() EnvironmentDelta {
	return EnvironmentDelta{
		Lists:   make(map[string][]string),
		Scalars: make(map[string]string),
	}
}

// ResolvedEnvironment is the final variable -> value mapping.
type ResolvedEnvironment map[string]string

// Keys returns list variables first, in ListVars order, then the remaining
// names sorted.
func (e ResolvedEnvironment) Keys() []string {
	keys := make([]string, 0, len(e))
	for _, v := range ListVars {
		if _, ok := e[v]; ok {
			keys = append(keys, v)
		}
	}
	rest := make([]string, 0, len(e))
	for k := range e {
		if !IsListVar(k) {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

// Segments splits a list variable into its non-empty segments.
func (e ResolvedEnvironment) Segments(name string) []string {
	return SplitList(e[name])
}

// SplitList splits a separator-joined value, dropping empty segments.
func SplitList(value string) []string {
	var out []string
	for _, s := range strings.Split(value, ListSeparator) {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// EnvSnapshot is a read-only copy of the inherited process environment.
// Lookups ignore case, as they do on Windows.
type EnvSnapshot struct {
	vars map[string]string
}

// SnapshotFromEnviron builds a snapshot from KEY=VALUE pairs such as
// os.Environ. Later duplicates win.
func SnapshotFromEnviron(environ []string) EnvSnapshot {
	vars := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			// Windows keeps per-drive cwd entries such as "=C:=C:\x".
			continue
		}
		vars[strings.ToUpper(k)] = v
	}
	return EnvSnapshot{vars: vars}
}

// SnapshotFromMap builds a snapshot from a map.
func SnapshotFromMap(m map[string]string) EnvSnapshot {
	vars := make(map[string]string, len(m))
	for k, v := range m {
		vars[strings.ToUpper(k)] = v
	}
	return EnvSnapshot{vars: vars}
}

// Get returns the value of name, ignoring case.
func (s EnvSnapshot) Get(name string) (string, bool) {
	v, ok := s.vars[strings.ToUpper(name)]
	return v, ok
}

// With returns a copy of the snapshot overlaid with env.
func (s EnvSnapshot) With(env ResolvedEnvironment) EnvSnapshot {
	vars := make(map[string]string, len(s.vars)+len(env))
	for k, v := range s.vars {
		vars[k] = v
	}
	for k, v := range env {
		vars[strings.ToUpper(k)] = v
	}
	return EnvSnapshot{vars: vars}
}
