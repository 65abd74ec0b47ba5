package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/matsim/internal/sim"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadEmptyPathIsDefaults(t *testing.T) {
	got, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") = %v", err)
	}
	if got != sim.Defaults() {
		t.Errorf("Load(\"\") = %+v, want defaults", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.cfg")); err == nil {
		t.Fatal("Load of missing file should fail")
	}
}

func TestLoadKeyValue(t *testing.T) {
	path := writeFile(t, "run.cfg", `
# argon quench
dt = 2e-15
end_time = 1e-12   # one picosecond
max_steps = 5000
temperature = 120
cutoff = 8.5e-10
neighbor_skin = 1.5e-10
use_neighbor_list = false
`)
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := sim.Defaults()
	want.Dt = 2e-15
	want.EndTime = 1e-12
	want.MaxSteps = 5000
	want.Temperature = 120
	want.Cutoff = 8.5e-10
	want.NeighborSkin = 1.5e-10
	want.UseNeighborList = false
	if got != want {
		t.Errorf("Load = %+v, want %+v", got, want)
	}
}

func TestLoadKeyValueErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown key", "dt = 1e-15\nvelocity = 3\n", ":2: unknown key"},
		{"missing equals", "dt 1e-15\n", "expected key=value"},
		{"bad float", "dt = fast\n", "invalid number"},
		{"bad int", "max_steps = 1.5\n", "invalid integer"},
		{"bad bool", "use_neighbor_list = maybe\n", "invalid boolean"},
		{"invalid after parse", "dt = -1\n", "dt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "bad.cfg", tt.content)
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "run.yaml", `
dt: 5e-15
temperature: 94.4
use_neighbor_list: true
`)
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Dt != 5e-15 || got.Temperature != 94.4 {
		t.Errorf("Load = %+v, want yaml overrides applied", got)
	}
	// Untouched keys keep their defaults.
	if got.MaxSteps != sim.Defaults().MaxSteps {
		t.Errorf("MaxSteps = %d, want default", got.MaxSteps)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	want := sim.Defaults()
	want.Temperature = 77.0
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestPresetsValidate(t *testing.T) {
	for _, name := range ListPresets() {
		p, ok := GetPreset(name)
		if !ok {
			t.Fatalf("ListPresets returned unknown name %q", name)
		}
		if err := p.Validate(); err != nil {
			t.Errorf("preset %q invalid: %v", name, err)
		}
	}
	if _, ok := GetPreset("plasma"); ok {
		t.Error("GetPreset(plasma) should not exist")
	}
}
