package bundle

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func testBundle() *Bundle {
	return &Bundle{
		Channels: map[string][][]float64{
			"OSS_Truss_6F": {{1, 2, 3, 4, 5, 6}, {7, 8, 9, 10, 11, 12}},
			"OSS_GIR_6F":   {{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}, {1.1, 1.2, 1.3, 1.4, 1.5, 1.6}},
		},
		Time: []float64{0, 0.05},
	}
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loads.bin")
	want := testBundle()

	if err := Write(path, want); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	if len(got.Channels) != len(want.Channels) {
		t.Fatalf("expected %d channels, got %d", len(want.Channels), len(got.Channels))
	}
	for name, data := range want.Channels {
		gotData, ok := got.Channels[name]
		if !ok {
			t.Fatalf("channel %s missing after round trip", name)
		}
		if len(gotData) != len(data) {
			t.Fatalf("channel %s: expected %d samples, got %d", name, len(data), len(gotData))
		}
		for i := range data {
			for j := range data[i] {
				if gotData[i][j] != data[i][j] {
					t.Errorf("channel %s sample %d[%d]: expected %v, got %v",
						name, i, j, data[i][j], gotData[i][j])
				}
			}
		}
	}
	if len(got.Time) != len(want.Time) {
		t.Errorf("expected %d time samples, got %d", len(want.Time), len(got.Time))
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.bin"))
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestReadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.bin")
	if err := os.WriteFile(path, []byte("not a gob stream"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Read(path)
	if !errors.Is(err, ErrDecode) {
		t.Errorf("expected ErrDecode, got %v", err)
	}
}
