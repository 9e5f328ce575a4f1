package loads

import (
	"errors"
	"testing"
)

func makeChannel(t *testing.T, kind Kind, n, width int) *Channel {
	t.Helper()
	samples := make([]Sample, n)
	for i := range samples {
		s := make(Sample, width)
		for j := range s {
			s[j] = float64(i)
		}
		samples[i] = s
	}
	return New(kind, samples)
}

func TestKindNames(t *testing.T) {
	for _, kind := range Kinds() {
		got, ok := KindFromName(kind.String())
		if !ok {
			t.Fatalf("KindFromName(%q) not found", kind.String())
		}
		if got != kind {
			t.Errorf("KindFromName(%q) = %v, want %v", kind.String(), got, kind)
		}
	}

	if _, ok := KindFromName("OSS_Unknown_6F"); ok {
		t.Error("expected unknown name to fail")
	}
}

func TestDecimate(t *testing.T) {
	tests := []struct {
		name string
		n    int
		rate int
		want int
	}{
		{"identity", 10, 1, 10},
		{"even", 10, 2, 5},
		{"odd", 9, 2, 5},
		{"coarse", 10, 3, 4},
		{"beyond length", 3, 10, 1},
		{"empty", 0, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch := makeChannel(t, Truss, tt.n, 6)
			if err := ch.Decimate(tt.rate); err != nil {
				t.Fatalf("decimate failed: %v", err)
			}
			if ch.Len() != tt.want {
				t.Errorf("expected %d samples, got %d", tt.want, ch.Len())
			}
		})
	}
}

func TestDecimateKeepsEveryRateTh(t *testing.T) {
	ch := makeChannel(t, GIR, 10, 6)
	if err := ch.Decimate(3); err != nil {
		t.Fatalf("decimate failed: %v", err)
	}
	for i, s := range ch.Samples() {
		if s[0] != float64(3*i) {
			t.Errorf("sample %d: expected value %d, got %v", i, 3*i, s[0])
		}
	}
}

func TestDecimateInvalidRate(t *testing.T) {
	ch := makeChannel(t, Truss, 10, 6)
	for _, rate := range []int{0, -1} {
		if err := ch.Decimate(rate); !errors.Is(err, ErrDecimationRate) {
			t.Errorf("rate %d: expected ErrDecimationRate, got %v", rate, err)
		}
	}
	if ch.Len() != 10 {
		t.Errorf("channel mutated by rejected decimation: %d samples", ch.Len())
	}
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name     string
		min, max int
		want     int
		first    float64
	}{
		{"interior", 2, 7, 5, 2},
		{"full", 0, 10, 10, 0},
		{"clamped high", 5, 100, 5, 5},
		{"clamped low", -3, 4, 4, 0},
		{"inverted", 7, 2, 0, 0},
		{"empty range", 4, 4, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch := makeChannel(t, CRing, 10, 6)
			ch.Window(tt.min, tt.max)
			if ch.Len() != tt.want {
				t.Fatalf("expected %d samples, got %d", tt.want, ch.Len())
			}
			if tt.want > 0 {
				if got := ch.Samples()[0][0]; got != tt.first {
					t.Errorf("expected first sample %v, got %v", tt.first, got)
				}
			}
		})
	}
}

func TestSamplesConsumes(t *testing.T) {
	ch := makeChannel(t, M1Cell, 5, 6)
	s := ch.Samples()
	if len(s) != 5 {
		t.Fatalf("expected 5 samples, got %d", len(s))
	}
	if ch.Len() != 0 {
		t.Errorf("channel should be empty after Samples, has %d", ch.Len())
	}
}

func TestDataCopiesIndependently(t *testing.T) {
	ch := makeChannel(t, M2Segments, 10, 6)
	all := ch.Data()
	first := ch.NData(4)

	if err := ch.Decimate(2); err != nil {
		t.Fatalf("decimate failed: %v", err)
	}

	if len(all) != 10 {
		t.Errorf("Data copy changed by later decimation: %d", len(all))
	}
	for i, s := range all {
		if s[0] != float64(i) {
			t.Fatalf("Data copy corrupted at %d: %v", i, s[0])
		}
	}
	if len(first) != 4 {
		t.Errorf("expected 4 samples from NData, got %d", len(first))
	}
}
