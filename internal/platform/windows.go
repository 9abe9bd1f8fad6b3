//go:build windows

// Windows-specific Platform implementation.
// Uses the registry for Windows Kits locations.
package platform

import (
	"fmt"
	"os"

	"golang.org/x/sys/windows/registry"
)

// WindowsPlatform implements Platform for Windows systems.
type WindowsPlatform struct{}

// New creates a new Windows platform instance.
func New() Platform {
	return &WindowsPlatform{}
}

// Name returns the platform identifier.
func (p *WindowsPlatform) Name() string { return "windows" }

// RegistryString searches HKLM and HKCU, Wow6432Node first, for a non-empty
// string value.
func (p *WindowsPlatform) RegistryString(subkey, name string) (string, error) {
	roots := []registry.Key{registry.LOCAL_MACHINE, registry.CURRENT_USER}
	prefixes := []string{`SOFTWARE\Wow6432Node`, `SOFTWARE`}

	lastErr := error(registry.ErrNotExist)
	for _, root := range roots {
		for _, prefix := range prefixes {
			k, err := registry.OpenKey(root, prefix+`\`+subkey, registry.QUERY_VALUE)
			if err != nil {
				lastErr = err
				continue
			}
			val, _, err := k.GetStringValue(name)
			k.Close()
			if err != nil {
				lastErr = err
				continue
			}
			if val != "" {
				return val, nil
			}
		}
	}
	return "", fmt.Errorf("registry value %s\\%s: %w", subkey, name, lastErr)
}

// ProgramFilesX86 returns %ProgramFiles(x86)%, or the stock location.
func (p *WindowsPlatform) ProgramFilesX86() string {
	if dir := os.Getenv("ProgramFiles(x86)"); dir != "" {
		return dir
	}
	return `C:\Program Files (x86)`
}
