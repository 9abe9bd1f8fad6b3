//go:build !windows

// Stub Platform implementation for non-Windows builds.
// There is no registry; lookups fail and callers use the standard
// Windows Kits location. Used during development on macOS/Linux.
package platform

import (
	"errors"
	"os"
)

// errNoRegistry is returned by every registry lookup on non-Windows hosts.
var errNoRegistry = errors.New("registry not available on this platform")

// StubPlatform is a no-op Platform for non-Windows operating systems.
type StubPlatform struct{}

// New creates a stub platform instance for non-Windows systems.
func New() Platform {
	return &StubPlatform{}
}

// Name returns the platform identifier.
func (p *StubPlatform) Name() string { return "stub" }

// RegistryString always fails on non-Windows platforms.
func (p *StubPlatform) RegistryString(subkey, name string) (string, error) {
	return "", errNoRegistry
}

// ProgramFilesX86 honours %ProgramFiles(x86)% when set, e.g. under Wine.
func (p *StubPlatform) ProgramFilesX86() string {
	if dir := os.Getenv("ProgramFiles(x86)"); dir != "" {
		return dir
	}
	return `C:\Program Files (x86)`
}
