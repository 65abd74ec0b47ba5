// Package store persists finished runs under a base directory, one
// subdirectory per run holding metadata.json and a series.csv of sampled
// observables.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes one completed run. Summary holds scalar
// observables at completion (final energies, temperatures).
type RunMetadata struct {
	ID        string             `json:"id"`
	Mode      string             `json:"mode"`
	Timestamp time.Time          `json:"timestamp"`
	Dt        float64            `json:"dt"`
	EndTime   float64            `json:"end_time"`
	Steps     int                `json:"steps"`
	FinalTime float64            `json:"final_time"`
	Particles int                `json:"particles,omitempty"`
	Grid      string             `json:"grid,omitempty"`
	Summary   map[string]float64 `json:"summary,omitempty"`
}

// Series is a sampled time series: one row of observables per sample
// time. Columns names the row entries; every row must match its length.
type Series struct {
	Columns []string
	Times   []float64
	Rows    [][]float64
}

// Append adds one sample.
func (sr *Series) Append(t float64, values ...float64) {
	sr.Times = append(sr.Times, t)
	sr.Rows = append(sr.Rows, values)
}

func (sr *Series) Len() int { return len(sr.Times) }

// Save writes the run directory. The run ID combines the mode and a
// Unix timestamp; meta.ID and meta.Timestamp are filled in here.
func (s *Store) Save(meta RunMetadata, series *Series) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Mode, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if series == nil || series.Len() == 0 {
		return runID, nil
	}

	csvFile, err := os.Create(filepath.Join(runDir, "series.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := append([]string{"time"}, series.Columns...)
	if err := w.Write(header); err != nil {
		return "", err
	}
	for i, t := range series.Times {
		// 'g'/-1 keeps full precision; the values span ~40 orders of
		// magnitude in SI units.
		row := make([]string, 0, 1+len(series.Rows[i]))
		row = append(row, strconv.FormatFloat(t, 'g', -1, 64))
		for _, v := range series.Rows[i] {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	return runID, w.Error()
}

// List returns metadata for every readable run, skipping entries with
// missing or corrupt metadata.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}
	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

// Load reads one run's metadata.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSeries reads a run's sampled observables back.
func (s *Store) LoadSeries(runID string) (*Series, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "series.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return &Series{}, nil
	}

	series := &Series{Columns: records[0][1:]}
	for _, record := range records[1:] {
		if len(record) != len(records[0]) {
			return nil, fmt.Errorf("series row has %d fields, want %d", len(record), len(records[0]))
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("parse time %q: %w", record[0], err)
		}
		row := make([]float64, len(record)-1)
		for j, field := range record[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("parse value %q: %w", field, err)
			}
			row[j] = v
		}
		series.Times = append(series.Times, t)
		series.Rows = append(series.Rows, row)
	}
	return series, nil
}
