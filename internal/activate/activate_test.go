package activate

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vcv-app/vcv/internal/locator"
	"github.com/vcv-app/vcv/internal/models"
	"github.com/vcv-app/vcv/internal/selector"
	"github.com/vcv-app/vcv/internal/toolset"
	"github.com/vcv-app/vcv/internal/winpath"
)

func mkfile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("14.38.33130"), 0o644); err != nil {
		t.Fatal(err)
	}
}

type fixture struct {
	vs   string
	kits string
}

// newFixture lays out a VS 2022 installation and a Windows Kits root.
// withCompiler controls whether cl.exe exists in the x64 bin directory.
func newFixture(t *testing.T, withCompiler bool) fixture {
	t.Helper()
	f := fixture{vs: t.TempDir(), kits: t.TempDir()}

	mkfile(t, filepath.Join(f.vs, "VC", "Auxiliary", "Build", "Microsoft.VCToolsVersion.default.txt"))
	bin := filepath.Join(f.vs, "VC", "Tools", "MSVC", "14.38.33130", "bin", "Hostx64", "x64")
	if err := os.MkdirAll(bin, 0o755); err != nil {
		t.Fatal(err)
	}
	if withCompiler {
		mkfile(t, filepath.Join(bin, "cl.exe"))
	}

	v := "10.0.22621.0"
	mkfile(t, filepath.Join(f.kits, "Include", v, "um", "winsdkver.h"))
	mkfile(t, filepath.Join(f.kits, "Lib", v, "ucrt", "x64", "ucrt.lib"))
	return f
}

func (f fixture) pipeline(logger *zap.Logger, installs ...models.Installation) *Pipeline {
	if installs == nil {
		installs = []models.Installation{{Year: models.VS2022, RootPath: f.vs, Version: "17.8.34330.188", IsComplete: true}}
	}
	return New(
		locator.NewStatic(installs, logger),
		toolset.NewResolver("", logger),
		toolset.NewSdkResolver(f.kits, f.kits, "", logger),
		logger,
	)
}

func nativeRequest() Request {
	return Request{Host: models.ArchX64, Target: models.ArchX64, Year: selector.Any, Validate: true}
}

func TestRun(t *testing.T) {
	f := newFixture(t, true)
	core, logs := observer.New(zapcore.InfoLevel)
	p := f.pipeline(zap.New(core))

	current := models.SnapshotFromMap(map[string]string{"PATH": `C:\Windows\system32`})
	res, err := p.Run(context.Background(), nativeRequest(), current)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if res.Installation.Year != models.VS2022 {
		t.Errorf("Installation.Year = %d", res.Installation.Year)
	}
	if res.Toolset.ToolsVersion != "14.38.33130" {
		t.Errorf("ToolsVersion = %q", res.Toolset.ToolsVersion)
	}
	if res.Sdk.SdkVersion != "10.0.22621.0" {
		t.Errorf("SdkVersion = %q", res.Sdk.SdkVersion)
	}
	if res.Warning != nil {
		t.Errorf("Warning = %v, want nil", res.Warning)
	}
	if !strings.HasSuffix(res.Compiler, `\cl.exe`) {
		t.Errorf("Compiler = %q", res.Compiler)
	}

	path := res.Env.Segments(models.VarPath)
	if want := winpath.Canonical(res.Toolset.BinDir); path[0] != want {
		t.Errorf("PATH[0] = %q, want %q", path[0], want)
	}
	if last := path[len(path)-1]; last != `C:\Windows\system32` {
		t.Errorf("inherited PATH not last: %q", last)
	}
	for _, name := range []string{models.VarVCToolsInstallDir, models.VarWindowsSdkDir, models.VarUCRTVersion} {
		if res.Env[name] == "" {
			t.Errorf("%s not set", name)
		}
	}

	var msgs []string
	for _, e := range logs.All() {
		msgs = append(msgs, e.Message)
	}
	want := []string{"VS 2022 (17.8.34330.188) | VC 14.38.33130", "SDK 10.0.22621.0 | UCRT 10.0.22621.0"}
	if strings.Join(msgs, "\n") != strings.Join(want, "\n") {
		t.Errorf("info logs = %q, want %q", msgs, want)
	}
}

func TestRunValidation(t *testing.T) {
	tests := []struct {
		name        string
		validate    bool
		strict      bool
		wantErr     bool
		wantWarning bool
	}{
		{"skipped", false, false, false, false},
		{"warns", true, false, false, true},
		{"strict fails", true, true, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, false)
			core, logs := observer.New(zapcore.WarnLevel)
			req := nativeRequest()
			req.Validate, req.Strict = tt.validate, tt.strict

			res, err := f.pipeline(zap.New(core)).Run(context.Background(), req, models.SnapshotFromMap(nil))
			if tt.wantErr {
				if !errors.Is(err, models.ErrCompilerUnreachable) {
					t.Fatalf("Run() error = %v, want ErrCompilerUnreachable", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Run() error: %v", err)
			}
			if got := res.Warning != nil; got != tt.wantWarning {
				t.Errorf("Warning = %v, want warning %v", res.Warning, tt.wantWarning)
			}
			if got := logs.FilterMessage("Compiler not found on PATH").Len() == 1; got != tt.wantWarning {
				t.Errorf("warning logged = %v, want %v", got, tt.wantWarning)
			}
			if res.Compiler != "" {
				t.Errorf("Compiler = %q, want empty", res.Compiler)
			}
		})
	}
}

func TestRunFailures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, f fixture) (*Pipeline, Request)
		want  error
	}{
		{
			name: "no installations",
			setup: func(t *testing.T, f fixture) (*Pipeline, Request) {
				p := New(locator.NewStatic(nil, zap.NewNop()), toolset.NewResolver("", zap.NewNop()),
					toolset.NewSdkResolver(f.kits, f.kits, "", zap.NewNop()), zap.NewNop())
				return p, nativeRequest()
			},
			want: models.ErrNoInstallationFound,
		},
		{
			name: "requested year missing",
			setup: func(t *testing.T, f fixture) (*Pipeline, Request) {
				req := nativeRequest()
				req.Year = models.VS2019
				return f.pipeline(zap.NewNop()), req
			},
			want: models.ErrVersionNotFound,
		},
		{
			name: "toolset missing for pair",
			setup: func(t *testing.T, f fixture) (*Pipeline, Request) {
				req := nativeRequest()
				req.Target = models.ArchARM64
				return f.pipeline(zap.NewNop()), req
			},
			want: models.ErrToolsetMissing,
		},
		{
			name: "sdk missing",
			setup: func(t *testing.T, f fixture) (*Pipeline, Request) {
				if err := os.RemoveAll(filepath.Join(f.kits, "Include")); err != nil {
					t.Fatal(err)
				}
				return f.pipeline(zap.NewNop()), nativeRequest()
			},
			want: models.ErrSdkMissing,
		},
		{
			name: "arm64 host on 2019",
			setup: func(t *testing.T, f fixture) (*Pipeline, Request) {
				req := nativeRequest()
				req.Host, req.Target = models.ArchARM64, models.ArchARM64
				inst := models.Installation{Year: models.VS2019, RootPath: f.vs}
				return f.pipeline(zap.NewNop(), inst), req
			},
			want: models.ErrUnsupportedArchitecture,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, true)
			p, req := tt.setup(t, f)
			res, err := p.Run(context.Background(), req, models.SnapshotFromMap(nil))
			if !errors.Is(err, tt.want) {
				t.Fatalf("Run() error = %v, want %v", err, tt.want)
			}
			if res != nil {
				t.Errorf("Run() returned a partial result: %+v", res)
			}
		})
	}
}

func TestRunCancelled(t *testing.T) {
	f := newFixture(t, true)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.pipeline(zap.NewNop()).Run(ctx, nativeRequest(), models.SnapshotFromMap(nil))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}
