package models

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResolvedEnvironmentKeys(t *testing.T) {
	env := ResolvedEnvironment{
		"WindowsSdkDir":     `C:\Kits\10\`,
		"LIB":               `C:\a`,
		"PATH":              `C:\b`,
		"UCRTVersion":       "10.0.22621.0",
		"VCToolsInstallDir": `C:\VC\`,
	}
	want := []string{"PATH", "LIB", "UCRTVersion", "VCToolsInstallDir", "WindowsSdkDir"}
	if d := cmp.Diff(want, env.Keys()); d != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", d)
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList(`C:\a;;C:\b;`)
	want := []string{`C:\a`, `C:\b`}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("SplitList mismatch (-want +got):\n%s", d)
	}
	if got := SplitList(""); len(got) != 0 {
		t.Errorf("SplitList(\"\") = %v, want empty", got)
	}
}

func TestSnapshotFromEnviron(t *testing.T) {
	snap := SnapshotFromEnviron([]string{
		`Path=C:\Windows`,
		`=C:=C:\work`,
		`lib=C:\lib`,
		"EMPTY=",
	})

	if v, ok := snap.Get("PATH"); !ok || v != `C:\Windows` {
		t.Errorf("Get(PATH) = %q, %v", v, ok)
	}
	if v, ok := snap.Get("Lib"); !ok || v != `C:\lib` {
		t.Errorf("Get(Lib) = %q, %v", v, ok)
	}
	if v, ok := snap.Get("EMPTY"); !ok || v != "" {
		t.Errorf("Get(EMPTY) = %q, %v", v, ok)
	}
	if _, ok := snap.Get("INCLUDE"); ok {
		t.Error("Get(INCLUDE) should be absent")
	}

	overlaid := snap.With(ResolvedEnvironment{"PATH": `C:\new;C:\Windows`})
	if v, _ := overlaid.Get("path"); v != `C:\new;C:\Windows` {
		t.Errorf("With: Get(path) = %q", v)
	}
	if v, _ := snap.Get("PATH"); v != `C:\Windows` {
		t.Errorf("With mutated the original snapshot: %q", v)
	}
}
