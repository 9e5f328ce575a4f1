// Package storage records streaming runs: one directory per run holding
// the scenario metadata and the emitted load samples as CSV.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rconan/windloading/internal/source"
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

// RunMetadata describes one recorded run.
type RunMetadata struct {
	ID          string    `json:"id"`
	Bundle      string    `json:"bundle"`
	Timestamp   time.Time `json:"timestamp"`
	SamplingHz  float64   `json:"sampling_hz"`
	Decimate    int       `json:"decimate"`
	SampleCount int       `json:"sample_count"`
	Steps       int       `json:"steps"`
	Tags        []string  `json:"tags"`
}

// Run is an open recording. It implements runner.Observer; write failures
// are latched and surfaced by Close.
type Run struct {
	dir  string
	f    *os.File
	w    *csv.Writer
	meta RunMetadata
	err  error
}

// Begin creates the run directory and opens the CSV sink. The metadata
// file is written at Close, once the step count is known.
func (s *Store) Begin(meta RunMetadata) (*Run, error) {
	if meta.ID == "" {
		meta.ID = fmt.Sprintf("run_%d", time.Now().Unix())
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	dir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	f, err := os.Create(filepath.Join(dir, "loads.csv"))
	if err != nil {
		return nil, err
	}
	return &Run{dir: dir, f: f, w: csv.NewWriter(f), meta: meta}, nil
}

// OnStep appends one tick to the CSV sink, writing the header lazily from
// the first tick's tags and widths.
func (r *Run) OnStep(step int, t float64, outs []source.Output) {
	if r.err != nil {
		return
	}
	if r.meta.Steps == 0 {
		header := []string{"time"}
		for _, out := range outs {
			for i := range out.Data {
				header = append(header, fmt.Sprintf("%s[%d]", out.Tag, i))
			}
		}
		if r.err = r.w.Write(header); r.err != nil {
			return
		}
	}
	row := []string{strconv.FormatFloat(t, 'f', 6, 64)}
	for _, out := range outs {
		for _, v := range out.Data {
			row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
		}
	}
	if r.err = r.w.Write(row); r.err != nil {
		return
	}
	r.meta.Steps = step + 1
}

// Close flushes the CSV sink and writes metadata.json. It reports the
// first error encountered during the recording.
func (r *Run) Close() error {
	r.w.Flush()
	if err := r.w.Error(); err != nil && r.err == nil {
		r.err = err
	}
	if err := r.f.Close(); err != nil && r.err == nil {
		r.err = err
	}
	if r.err != nil {
		return r.err
	}

	f, err := os.Create(filepath.Join(r.dir, "metadata.json"))
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(r.meta)
}

// Dir returns the run directory.
func (r *Run) Dir() string { return r.dir }

// List returns the metadata of every recorded run under the store.
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
