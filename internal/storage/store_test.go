package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/rconan/windloading/internal/source"
)

func TestRecordRun(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	run, err := store.Begin(RunMetadata{
		ID:          "truss_test",
		Bundle:      "loads.bin",
		SamplingHz:  20,
		Decimate:    2,
		SampleCount: 3,
		Tags:        []string{"OSS_Truss_6F"},
	})
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		run.OnStep(i, float64(i)*0.1, []source.Output{
			{Tag: source.OSSTruss6F, Data: []float64{float64(i), 1, 2, 3, 4, 5}},
		})
	}
	if err := run.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	f, err := os.Open(filepath.Join(run.Dir(), "loads.csv"))
	if err != nil {
		t.Fatalf("open csv: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}

	if len(rows) != 4 {
		t.Fatalf("expected header + 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "time" || rows[0][1] != "OSS_Truss_6F[0]" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if len(rows[1]) != 7 {
		t.Errorf("expected 7 columns, got %d", len(rows[1]))
	}

	runs, err := store.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].ID != "truss_test" || runs[0].Steps != 3 {
		t.Errorf("unexpected metadata: %+v", runs[0])
	}
}

func TestListEmptyStore(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "does-not-exist"))
	runs, err := store.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}
