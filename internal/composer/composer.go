// Package composer turns a resolved toolset and SDK into the environment
// mutations that activate them. Composition is pure: it never touches the
// filesystem and depends only on its arguments.
package composer

import (
	"fmt"

	"github.com/vcv-app/vcv/internal/models"
	"github.com/vcv-app/vcv/internal/winpath"
)

// Compose builds the delta for the (host, target) pair. Segments are
// canonicalised and de-duplicated within each list, first occurrence wins.
//
// Precedence, highest first:
//
//	PATH     toolset bin, SDK bins, auxiliary VS bins
//	INCLUDE  toolset includes, SDK includes (ucrt, shared, um, winrt, cppwinrt)
//	LIB      toolset libs, SDK libs (um, ucrt)
//	LIBPATH  toolset libs, SDK libs, WinRT metadata
func Compose(ts models.ToolsetInfo, sdk models.SdkInfo, host, target models.Arch) (models.EnvironmentDelta, error) {
	if !host.Valid() || !target.Valid() {
		return models.EnvironmentDelta{}, &models.Error{
			Op:   "compose",
			Kind: models.ErrUnsupportedArchitecture,
			Err:  fmt.Errorf("host %v, target %v", host, target),
		}
	}

	d := models.NewEnvironmentDelta()

	var path list
	path.add(ts.BinDir)
	path.add(sdk.BinDirs...)
	path.add(ts.AuxBinDirs...)

	var include list
	include.add(ts.IncludeDirs...)
	include.add(sdk.IncludeDirs...)

	var lib list
	lib.add(ts.LibDirs...)
	lib.add(sdk.LibDirs...)

	var libPath list
	libPath.add(ts.LibDirs...)
	libPath.add(sdk.LibDirs...)
	libPath.add(sdk.MetadataDirs...)

	d.Lists[models.VarPath] = path.segs
	d.Lists[models.VarInclude] = include.segs
	d.Lists[models.VarLib] = lib.segs
	d.Lists[models.VarLibPath] = libPath.segs

	inst := ts.Installation
	set := func(name, value string) {
		if value != "" {
			d.Scalars[name] = value
		}
	}
	set(models.VarVCToolsInstallDir, dirValue(ts.VCRoot))
	set(models.VarWindowsSdkDir, dirValue(sdk.SdkRoot))
	set(models.VarUCRTVersion, sdk.UcrtVersion)
	set(models.VarVSInstallDir, dirValue(inst.RootPath))
	if inst.RootPath != "" {
		set(models.VarVCInstallDir, winpath.WithTrailingSlash(inst.RootPath+`\VC`))
	}
	set(models.VarVCToolsVersion, ts.ToolsVersion)
	set(models.VarVisualStudioVersion, models.VisualStudioVersion(inst.Year))
	set(models.VarPlatform, target.String())
	if sdk.SdkVersion != "" {
		set(models.VarWindowsSDKVersion, sdk.SdkVersion+`\`)
	}
	set(models.VarUniversalCRTSdkDir, dirValue(sdk.UcrtRoot))
	set(models.VarHostArch, host.String())
	set(models.VarTargetArch, target.String())

	return d, nil
}

func dirValue(dir string) string {
	if dir == "" {
		return ""
	}
	return winpath.WithTrailingSlash(dir)
}

// list collects canonical, unique segments in insertion order.
type list struct {
	segs []string
	seen map[string]struct{}
}

func (l *list) add(dirs ...string) {
	if l.seen == nil {
		l.seen = make(map[string]struct{})
	}
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		c := winpath.Canonical(dir)
		if _, dup := l.seen[c]; dup {
			continue
		}
		l.seen[c] = struct{}{}
		l.segs = append(l.segs, c)
	}
}
