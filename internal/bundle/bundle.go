// Package bundle reads and writes the serialized output of a CFD run: the
// per-channel force/moment time series plus the shared time axis, stored as
// a single self-describing gob stream.
package bundle

import (
	"bufio"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
)

// Bulk load data is read once and held in memory for the whole run, so the
// reader gets a large buffer up front.
const readBufferSize = 1 << 24

var (
	// ErrUnavailable indicates the bundle file could not be opened.
	ErrUnavailable = errors.New("bundle: load data file not found")

	// ErrDecode indicates the bundle file could not be decoded.
	ErrDecode = errors.New("bundle: cannot read load data file")
)

// Bundle is the decoded form of one CFD scenario: a mapping from channel
// name to its sample series, and the time axis shared by every channel.
// Channels absent from a scenario are simply missing from the map.
type Bundle struct {
	Channels map[string][][]float64
	Time     []float64
}

// Read decodes the bundle at path.
func Read(path string) (*Bundle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer f.Close()

	var b Bundle
	dec := gob.NewDecoder(bufio.NewReaderSize(f, readBufferSize))
	if err := dec.Decode(&b); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return &b, nil
}

// Write encodes the bundle to path, truncating any existing file.
func Write(path string, b *Bundle) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("bundle: create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	if err := gob.NewEncoder(w).Encode(b); err != nil {
		f.Close()
		return fmt.Errorf("bundle: encode %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("bundle: flush %s: %w", path, err)
	}
	return f.Close()
}
