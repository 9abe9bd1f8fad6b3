package toolset

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/vcv-app/vcv/internal/models"
	"github.com/vcv-app/vcv/internal/version"
)

// SdkResolver picks the Windows SDK and Universal CRT versions. The two live
// in separate version namespaces and are resolved independently.
type SdkResolver struct {
	sdkRoot  string
	ucrtRoot string
	pinned   string
	logger   *zap.Logger
}

// NewSdkResolver creates an SdkResolver over the given Windows Kits roots.
// A non-empty pinned version replaces the highest-version scan for the SDK.
func NewSdkResolver(sdkRoot, ucrtRoot, pinned string, logger *zap.Logger) *SdkResolver {
	return &SdkResolver{
		sdkRoot:  sdkRoot,
		ucrtRoot: ucrtRoot,
		pinned:   strings.TrimSpace(pinned),
		logger:   logger.Named("sdk"),
	}
}

// Resolve returns the SDK layout for the (host, target) pair.
func (r *SdkResolver) Resolve(host, target models.Arch) (models.SdkInfo, error) {
	if !host.Valid() || !target.Valid() {
		return models.SdkInfo{}, &models.Error{
			Op:   "resolve sdk",
			Kind: models.ErrUnsupportedArchitecture,
			Err:  fmt.Errorf("host %v, target %v", host, target),
		}
	}

	hasHeaders := func(v string) bool {
		return isFile(filepath.Join(r.sdkRoot, "Include", v, "um", "winsdkver.h"))
	}
	sdkVersion, err := r.pick(r.sdkRoot, "Include", r.pinned, hasHeaders)
	if err != nil {
		return models.SdkInfo{}, err
	}

	hasCRT := func(v string) bool {
		return isFile(filepath.Join(r.ucrtRoot, "Lib", v, "ucrt", target.String(), "ucrt.lib"))
	}
	ucrtVersion, err := r.pick(r.ucrtRoot, "Lib", "", hasCRT)
	if err != nil {
		return models.SdkInfo{}, err
	}

	inc := filepath.Join(r.sdkRoot, "Include", sdkVersion)
	includeDirs := []string{
		filepath.Join(r.ucrtRoot, "Include", ucrtVersion, "ucrt"),
		filepath.Join(inc, "shared"),
		filepath.Join(inc, "um"),
		filepath.Join(inc, "winrt"),
	}
	includeDirs = append(includeDirs, existing(filepath.Join(inc, "cppwinrt"))...)

	libDirs := []string{
		filepath.Join(r.sdkRoot, "Lib", sdkVersion, "um", target.String()),
		filepath.Join(r.ucrtRoot, "Lib", ucrtVersion, "ucrt", target.String()),
	}

	binDirs := []string{filepath.Join(r.sdkRoot, "bin", sdkVersion, host.String())}
	binDirs = append(binDirs, existing(filepath.Join(r.sdkRoot, "bin", host.String()))...)

	metadataDirs := existing(
		filepath.Join(r.sdkRoot, "UnionMetadata", sdkVersion),
		filepath.Join(r.sdkRoot, "References", sdkVersion),
	)

	r.logger.Debug("Resolved SDK",
		zap.String("sdk", sdkVersion),
		zap.String("ucrt", ucrtVersion))

	return models.SdkInfo{
		SdkRoot:      r.sdkRoot,
		SdkVersion:   sdkVersion,
		UcrtRoot:     r.ucrtRoot,
		UcrtVersion:  ucrtVersion,
		IncludeDirs:  includeDirs,
		LibDirs:      libDirs,
		BinDirs:      binDirs,
		MetadataDirs: metadataDirs,
	}, nil
}

// pick returns the highest 10.x version directory below root\sub accepted
// by usable, or pinned when it is set and usable.
func (r *SdkResolver) pick(root, sub, pinned string, usable func(string) bool) (string, error) {
	if root == "" {
		return "", &models.Error{
			Op:   "resolve sdk",
			Kind: models.ErrSdkMissing,
			Err:  fmt.Errorf("Windows Kits root is not known"),
		}
	}
	dir := filepath.Join(root, sub)

	if pinned != "" {
		if !version.Valid(pinned) || !usable(pinned) {
			return "", &models.Error{
				Op:   "resolve sdk",
				Kind: models.ErrSdkMissing,
				Path: filepath.Join(dir, pinned),
				Err:  fmt.Errorf("version %s is not installed", pinned),
			}
		}
		return pinned, nil
	}

	names, err := subdirs(dir)
	if err != nil {
		return "", &models.Error{Op: "resolve sdk", Kind: models.ErrSdkMissing, Path: dir, Err: err}
	}
	best := version.Highest(names, func(v string) bool {
		if !strings.HasPrefix(v, "10.") {
			return false
		}
		if !usable(v) {
			r.logger.Debug("Ignoring incomplete SDK version", zap.String("dir", filepath.Join(dir, v)))
			return false
		}
		return true
	})
	if best == "" {
		return "", &models.Error{
			Op:   "resolve sdk",
			Kind: models.ErrSdkMissing,
			Path: dir,
			Err:  fmt.Errorf("no usable 10.x version"),
		}
	}
	return best, nil
}
