package store

import (
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}

	series := &Series{Columns: []string{"ekin", "epot", "etot", "temperature"}}
	series.Append(0, 1.5e-21, -3.0e-21, -1.5e-21, 72.4)
	series.Append(1e-15, 1.6e-21, -3.1e-21, -1.5e-21, 77.2)

	meta := RunMetadata{
		Mode:      "md",
		Dt:        1e-15,
		EndTime:   1e-12,
		Steps:     1000,
		FinalTime: 1e-12,
		Particles: 64,
		Summary:   map[string]float64{"temperature": 77.2},
	}
	runID, err := s.Save(meta, series)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if runID == "" {
		t.Fatal("empty run ID")
	}

	loaded, err := s.Load(runID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.ID != runID || loaded.Mode != "md" || loaded.Particles != 64 {
		t.Errorf("Load = %+v", loaded)
	}
	if loaded.Summary["temperature"] != 77.2 {
		t.Errorf("summary temperature = %g, want 77.2", loaded.Summary["temperature"])
	}

	got, err := s.LoadSeries(runID)
	if err != nil {
		t.Fatalf("LoadSeries: %v", err)
	}
	if got.Len() != 2 {
		t.Fatalf("series length = %d, want 2", got.Len())
	}
	if len(got.Columns) != 4 || got.Columns[0] != "ekin" {
		t.Errorf("columns = %v", got.Columns)
	}
	// 'g'/-1 formatting must round-trip exactly.
	if got.Times[1] != 1e-15 || got.Rows[0][1] != -3.0e-21 {
		t.Errorf("values did not round-trip: %v %v", got.Times, got.Rows)
	}
}

func TestListSkipsCorruptRuns(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Save(RunMetadata{Mode: "heat1d", Steps: 10}, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Save(RunMetadata{Mode: "md", Steps: 20}, nil); err != nil {
		t.Fatal(err)
	}

	runs, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("List returned %d runs, want 2", len(runs))
	}
}

func TestListEmptyBaseDir(t *testing.T) {
	s := New(t.TempDir() + "/never-created")
	runs, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("List = %v, want empty", runs)
	}
}

func TestSaveWithoutSeries(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	runID, err := s.Save(RunMetadata{Mode: "heat2d", Grid: "80x80"}, nil)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := s.LoadSeries(runID); err == nil {
		t.Error("LoadSeries should fail when no series was written")
	}
	meta, err := s.Load(runID)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Grid != "80x80" {
		t.Errorf("grid = %q", meta.Grid)
	}
}
