// Package platform provides the host facts the resolver cannot derive from
// the filesystem alone: registry lookups, the 32-bit Program Files location,
// the native host architecture and the calling shell.
// Each supported OS implements the Platform interface.
package platform

import (
	"path/filepath"
)

const (
	// sdkRegistryKey holds the Windows 10/11 SDK installation folder.
	sdkRegistryKey   = `Microsoft\Microsoft SDKs\Windows\v10.0`
	sdkRegistryValue = "InstallationFolder"

	// kitsRegistryKey holds the Windows Kits root used by the UCRT.
	kitsRegistryKey   = `Microsoft\Windows Kits\Installed Roots`
	kitsRegistryValue = "KitsRoot10"
)

// Platform provides OS-specific lookups.
type Platform interface {
	// RegistryString reads a string value below SOFTWARE, searching
	// HKLM before HKCU and the Wow6432Node view before the native one.
	RegistryString(subkey, name string) (string, error)

	// ProgramFilesX86 returns the 32-bit Program Files directory.
	ProgramFilesX86() string

	// Name returns the platform name (windows, stub).
	Name() string
}

// DefaultVsWherePath returns the location the Visual Studio installer
// places vswhere.exe in.
func DefaultVsWherePath(p Platform) string {
	return filepath.Join(p.ProgramFilesX86(), "Microsoft Visual Studio", "Installer", "vswhere.exe")
}

// DefaultKitsRoot returns the standard Windows Kits 10 directory.
func DefaultKitsRoot(p Platform) string {
	return filepath.Join(p.ProgramFilesX86(), "Windows Kits", "10")
}

// SDKRoot returns the Windows SDK root from the registry, falling back to
// the standard Windows Kits location.
func SDKRoot(p Platform) string {
	if root, err := p.RegistryString(sdkRegistryKey, sdkRegistryValue); err == nil {
		return root
	}
	return DefaultKitsRoot(p)
}

// UCRTRoot returns the Universal CRT root from the registry, falling back to
// the standard Windows Kits location.
func UCRTRoot(p Platform) string {
	if root, err := p.RegistryString(kitsRegistryKey, kitsRegistryValue); err == nil {
		return root
	}
	return DefaultKitsRoot(p)
}
