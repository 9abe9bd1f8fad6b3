package composer

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vcv-app/vcv/internal/models"
)

const (
	vsRoot  = `C:\Program Files\Microsoft Visual Studio\2022\Community`
	vcRoot  = vsRoot + `\VC\Tools\MSVC\14.38.33130`
	kitRoot = `C:\Program Files (x86)\Windows Kits\10`
	sdkVer  = "10.0.22621.0"
)

// fixture returns toolset and SDK records laid out the way the resolvers
// produce them for the pair.
func fixture(host, target models.Arch) (models.ToolsetInfo, models.SdkInfo) {
	parts, _ := models.BinDirParts(host, target)
	ts := models.ToolsetInfo{
		Installation: models.Installation{Year: models.VS2022, RootPath: vsRoot, Version: "17.8.34330.188"},
		Host:         host,
		Target:       target,
		ToolsVersion: "14.38.33130",
		VCRoot:       vcRoot,
		BinDir:       vcRoot + `\` + strings.Join(parts, `\`),
		AuxBinDirs:   []string{vsRoot + `\Common7\IDE`},
		IncludeDirs:  []string{vcRoot + `\include`, vcRoot + `\ATLMFC\include`},
		LibDirs:      []string{vcRoot + `\lib\` + target.String()},
	}
	sdk := models.SdkInfo{
		SdkRoot:     kitRoot,
		SdkVersion:  sdkVer,
		UcrtRoot:    kitRoot,
		UcrtVersion: sdkVer,
		IncludeDirs: []string{
			kitRoot + `\Include\` + sdkVer + `\ucrt`,
			kitRoot + `\Include\` + sdkVer + `\shared`,
			kitRoot + `\Include\` + sdkVer + `\um`,
			kitRoot + `\Include\` + sdkVer + `\winrt`,
		},
		LibDirs: []string{
			kitRoot + `\Lib\` + sdkVer + `\um\` + target.String(),
			kitRoot + `\Lib\` + sdkVer + `\ucrt\` + target.String(),
		},
		BinDirs:      []string{kitRoot + `\bin\` + sdkVer + `\` + host.String()},
		MetadataDirs: []string{kitRoot + `\UnionMetadata\` + sdkVer},
	}
	return ts, sdk
}

func TestComposeAllPairs(t *testing.T) {
	for _, host := range models.AllArchs {
		for _, target := range models.AllArchs {
			t.Run(host.String()+"_"+target.String(), func(t *testing.T) {
				ts, sdk := fixture(host, target)
				d, err := Compose(ts, sdk, host, target)
				if err != nil {
					t.Fatalf("Compose() error: %v", err)
				}
				for _, name := range []string{models.VarPath, models.VarInclude, models.VarLib, models.VarLibPath} {
					if len(d.Lists[name]) == 0 {
						t.Errorf("%s is empty", name)
					}
				}
				for _, name := range []string{models.VarVCToolsInstallDir, models.VarWindowsSdkDir, models.VarUCRTVersion} {
					if d.Scalars[name] == "" {
						t.Errorf("scalar %s is empty", name)
					}
				}
				if got := d.Lists[models.VarPath][0]; got != ts.BinDir {
					t.Errorf("PATH[0] = %q, want toolset bin %q", got, ts.BinDir)
				}
				if got := d.Scalars[models.VarTargetArch]; got != target.String() {
					t.Errorf("%s = %q, want %q", models.VarTargetArch, got, target)
				}
			})
		}
	}
}

func TestComposeOrder(t *testing.T) {
	ts, sdk := fixture(models.ArchX64, models.ArchARM64)
	d, err := Compose(ts, sdk, models.ArchX64, models.ArchARM64)
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}

	want := map[string][]string{
		models.VarPath: {
			vcRoot + `\bin\Hostx64\arm64`,
			kitRoot + `\bin\10.0.22621.0\x64`,
			vsRoot + `\Common7\IDE`,
		},
		models.VarInclude: {
			vcRoot + `\include`,
			vcRoot + `\ATLMFC\include`,
			kitRoot + `\Include\10.0.22621.0\ucrt`,
			kitRoot + `\Include\10.0.22621.0\shared`,
			kitRoot + `\Include\10.0.22621.0\um`,
			kitRoot + `\Include\10.0.22621.0\winrt`,
		},
		models.VarLib: {
			vcRoot + `\lib\arm64`,
			kitRoot + `\Lib\10.0.22621.0\um\arm64`,
			kitRoot + `\Lib\10.0.22621.0\ucrt\arm64`,
		},
		models.VarLibPath: {
			vcRoot + `\lib\arm64`,
			kitRoot + `\Lib\10.0.22621.0\um\arm64`,
			kitRoot + `\Lib\10.0.22621.0\ucrt\arm64`,
			kitRoot + `\UnionMetadata\10.0.22621.0`,
		},
	}
	if diff := cmp.Diff(want, d.Lists); diff != "" {
		t.Errorf("lists mismatch (-want +got):\n%s", diff)
	}

	wantScalars := map[string]string{
		models.VarVCToolsInstallDir:   vcRoot + `\`,
		models.VarWindowsSdkDir:       kitRoot + `\`,
		models.VarUCRTVersion:         sdkVer,
		models.VarVSInstallDir:        vsRoot + `\`,
		models.VarVCInstallDir:        vsRoot + `\VC\`,
		models.VarVCToolsVersion:      "14.38.33130",
		models.VarVisualStudioVersion: "17.0",
		models.VarPlatform:            "arm64",
		models.VarWindowsSDKVersion:   sdkVer + `\`,
		models.VarUniversalCRTSdkDir:  kitRoot + `\`,
		models.VarHostArch:            "x64",
		models.VarTargetArch:          "arm64",
	}
	if diff := cmp.Diff(wantScalars, d.Scalars); diff != "" {
		t.Errorf("scalars mismatch (-want +got):\n%s", diff)
	}
}

func TestComposeDedup(t *testing.T) {
	ts, sdk := fixture(models.ArchX64, models.ArchX64)
	// The same directory reached through different spellings.
	sdk.BinDirs = append(sdk.BinDirs, ts.BinDir, strings.ReplaceAll(ts.BinDir, `\`, "/")+"/", ts.BinDir+`\.`)
	ts.AuxBinDirs = append(ts.AuxBinDirs, sdk.BinDirs[0], "")

	d, err := Compose(ts, sdk, models.ArchX64, models.ArchX64)
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}
	path := d.Lists[models.VarPath]
	counts := make(map[string]int)
	for _, seg := range path {
		counts[seg]++
		if seg == "" {
			t.Error("empty PATH segment")
		}
	}
	for seg, n := range counts {
		if n != 1 {
			t.Errorf("PATH segment %q appears %d times", seg, n)
		}
	}
	if len(path) != 3 {
		t.Errorf("PATH = %v, want 3 segments", path)
	}
}

func TestComposeCanonicalises(t *testing.T) {
	ts, sdk := fixture(models.ArchX64, models.ArchX64)
	ts.BinDir = `c:/Program Files/Microsoft Visual Studio/2022/Community/VC/Tools/MSVC/14.38.33130/bin/Hostx64/x64/`

	d, err := Compose(ts, sdk, models.ArchX64, models.ArchX64)
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}
	if got, want := d.Lists[models.VarPath][0], vcRoot+`\bin\Hostx64\x64`; got != want {
		t.Errorf("PATH[0] = %q, want %q", got, want)
	}
}

func TestComposeInvalidArch(t *testing.T) {
	ts, sdk := fixture(models.ArchX64, models.ArchX64)
	_, err := Compose(ts, sdk, models.Arch(-1), models.ArchX64)
	if !errors.Is(err, models.ErrUnsupportedArchitecture) {
		t.Errorf("Compose() error = %v, want ErrUnsupportedArchitecture", err)
	}
}
