// Package toolset derives the VC++ toolset and Windows SDK directories for a
// selected installation. It is the only stage that inspects the filesystem;
// everything it returns has been checked to exist where the check matters.
package toolset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/vcv-app/vcv/internal/models"
	"github.com/vcv-app/vcv/internal/version"
)

const defaultMarker = "Microsoft.VCToolsVersion.default.txt"

// Resolver resolves the VC++ toolset of an installation.
type Resolver struct {
	pinned string
	logger *zap.Logger
}

// NewResolver creates a Resolver. A non-empty pinned version is used instead
// of the installation's default toolset marker.
func NewResolver(pinned string, logger *zap.Logger) *Resolver {
	return &Resolver{
		pinned: strings.TrimSpace(pinned),
		logger: logger.Named("toolset"),
	}
}

// Resolve returns the toolset of inst for the (host, target) pair.
func (r *Resolver) Resolve(inst models.Installation, host, target models.Arch) (models.ToolsetInfo, error) {
	binParts, err := models.BinDirParts(host, target)
	if err != nil {
		return models.ToolsetInfo{}, err
	}
	if !models.SupportsHost(inst.Year, host) {
		return models.ToolsetInfo{}, &models.Error{
			Op:   "resolve toolset",
			Kind: models.ErrUnsupportedArchitecture,
			Err:  fmt.Errorf("Visual Studio %d has no %v-hosted tools", inst.Year, host),
		}
	}

	toolsVersion, err := r.toolsVersion(inst)
	if err != nil {
		return models.ToolsetInfo{}, err
	}

	vcRoot := filepath.Join(inst.RootPath, "VC", "Tools", "MSVC", toolsVersion)
	if !isDir(vcRoot) {
		return models.ToolsetInfo{}, &models.Error{
			Op:   "resolve toolset",
			Kind: models.ErrToolsetMissing,
			Path: vcRoot,
			Err:  fmt.Errorf("toolset %s is not installed", toolsVersion),
		}
	}

	binDir := filepath.Join(append([]string{vcRoot}, binParts...)...)
	if !isDir(binDir) {
		return models.ToolsetInfo{}, &models.Error{
			Op:   "resolve toolset",
			Kind: models.ErrToolsetMissing,
			Path: binDir,
			Err:  fmt.Errorf("no %v-hosted tools for %v", host, target),
		}
	}

	var aux []string
	if host != target {
		// Cross linkers load mspdb and friends from the host-native directory.
		aux = append(aux, existing(filepath.Join(vcRoot, "bin", binParts[1], host.String()))...)
	}
	aux = append(aux, existing(
		filepath.Join(inst.RootPath, "Common7", "IDE"),
		filepath.Join(inst.RootPath, "Common7", "Tools"),
	)...)

	includeDirs := []string{filepath.Join(vcRoot, "include")}
	includeDirs = append(includeDirs, existing(filepath.Join(vcRoot, "ATLMFC", "include"))...)

	libDirs := []string{filepath.Join(vcRoot, "lib", target.String())}
	libDirs = append(libDirs, existing(filepath.Join(vcRoot, "ATLMFC", "lib", target.String()))...)

	r.logger.Debug("Resolved toolset",
		zap.String("version", toolsVersion),
		zap.String("bin", binDir))

	return models.ToolsetInfo{
		Installation: inst,
		Host:         host,
		Target:       target,
		ToolsVersion: toolsVersion,
		VCRoot:       vcRoot,
		BinDir:       binDir,
		AuxBinDirs:   aux,
		IncludeDirs:  includeDirs,
		LibDirs:      libDirs,
	}, nil
}

// toolsVersion reads the toolset version marker. The versioned marker
// (e.g. Microsoft.VCToolsVersion.v143.default.txt) is preferred when the
// installation has one.
func (r *Resolver) toolsVersion(inst models.Installation) (string, error) {
	if r.pinned != "" {
		if !version.Valid(r.pinned) {
			return "", &models.Error{
				Op:   "resolve toolset",
				Kind: models.ErrToolsetMissing,
				Err:  fmt.Errorf("invalid toolset version %q", r.pinned),
			}
		}
		return r.pinned, nil
	}

	auxDir := filepath.Join(inst.RootPath, "VC", "Auxiliary", "Build")
	markers := []string{defaultMarker}
	if ts := models.PlatformToolset(inst.Year); ts != "" {
		markers = []string{"Microsoft.VCToolsVersion." + ts + ".default.txt", defaultMarker}
	}

	var lastErr error
	for _, name := range markers {
		path := filepath.Join(auxDir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			lastErr = err
			continue
		}
		v := strings.TrimSpace(string(data))
		if !version.Valid(v) {
			return "", &models.Error{
				Op:   "resolve toolset",
				Kind: models.ErrToolsetMissing,
				Path: path,
				Err:  fmt.Errorf("malformed toolset version %q", v),
			}
		}
		r.logger.Debug("Read toolset marker", zap.String("path", path), zap.String("version", v))
		return v, nil
	}
	return "", &models.Error{
		Op:   "resolve toolset",
		Kind: models.ErrToolsetMissing,
		Path: filepath.Join(auxDir, defaultMarker),
		Err:  lastErr,
	}
}
