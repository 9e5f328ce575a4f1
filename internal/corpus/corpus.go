// Package corpus turns a decoded CFD bundle into a streaming load source.
//
// The Builder carries the per-channel time series and the shared time axis,
// applies corpus-wide windowing and decimation, resolves named channel
// selections into tagged series, and finally produces the immutable
// source.Source consumed by the simulation loop. Every fallible operation
// latches the first error and turns the remaining chain into no-ops, so a
// failed chain never exposes a partially selected source.
package corpus

import (
	"fmt"

	"github.com/rconan/windloading/internal/bundle"
	"github.com/rconan/windloading/internal/loads"
	"github.com/rconan/windloading/internal/source"
)

// Builder accumulates transforms and selections over one scenario's load
// corpus. Methods return the receiver so calls chain; after the first
// failure every later call is a no-op and Finalize reports the error.
type Builder struct {
	channels map[loads.Kind]*loads.Channel
	time     []float64
	nSample  int
	selected []source.Series
	err      error
}

// Open reads and decodes the bundle at path into a fresh builder.
func Open(path string) (*Builder, error) {
	b, err := bundle.Read(path)
	if err != nil {
		return nil, err
	}
	return FromBundle(b), nil
}

// FromBundle builds a corpus from an already decoded bundle. Unknown
// channel names are ignored; known names missing from the bundle stay
// absent and fail only if selected.
func FromBundle(b *bundle.Bundle) *Builder {
	channels := make(map[loads.Kind]*loads.Channel, len(b.Channels))
	for name, data := range b.Channels {
		kind, ok := loads.KindFromName(name)
		if !ok {
			continue
		}
		samples := make([]loads.Sample, len(data))
		for i, v := range data {
			samples[i] = loads.Sample(v)
		}
		channels[kind] = loads.New(kind, samples)
	}
	return &Builder{
		channels: channels,
		time:     append([]float64(nil), b.Time...),
	}
}

// Err returns the first error latched by the chain, if any.
func (b *Builder) Err() error { return b.err }

// Time returns the shared time axis. The axis is never cut by TimeWindow or
// Decimate; window bounds always resolve against the original axis.
func (b *Builder) Time() []float64 { return b.time }

// Channel returns the channel for kind, or false if the scenario does not
// carry it.
func (b *Builder) Channel(kind loads.Kind) (*loads.Channel, bool) {
	ch, ok := b.channels[kind]
	return ch, ok
}

// TimeWindow keeps the samples whose timestamps fall in [tMin, tMax). The
// bounds are resolved once against the original time axis, then applied to
// every present channel, so all channels stay aligned.
func (b *Builder) TimeWindow(tMin, tMax float64) *Builder {
	if b.err != nil {
		return b
	}
	minIndex := 0
	for i, t := range b.time {
		if t >= tMin {
			minIndex = i
			break
		}
	}
	maxIndex := len(b.time)
	for i, t := range b.time {
		if t >= tMax {
			maxIndex = i
			break
		}
	}
	for _, ch := range b.channels {
		ch.Window(minIndex, maxIndex)
	}
	return b
}

// Decimate keeps every rate-th sample of every present channel.
func (b *Builder) Decimate(rate int) *Builder {
	if b.err != nil {
		return b
	}
	if rate < 1 {
		b.err = loads.ErrDecimationRate
		return b
	}
	for _, ch := range b.channels {
		ch.Decimate(rate)
	}
	return b
}

// WithSampleCount records n as the truncation length applied at selection
// time and used as the source's agreed sample count. n must be positive and
// no larger than the shortest populated channel after any windowing and
// decimation already applied.
func (b *Builder) WithSampleCount(n int) *Builder {
	if b.err != nil {
		return b
	}
	if n <= 0 {
		b.err = fmt.Errorf("%w: sample count must be positive", ErrSampleCount)
		return b
	}
	shortest, err := b.minLen()
	if err != nil {
		b.err = err
		return b
	}
	if n > shortest {
		b.err = fmt.Errorf("%w: %d exceeds the %d available samples", ErrSampleCount, n, shortest)
		return b
	}
	b.nSample = n
	return b
}

// minLen returns the shortest populated channel length.
func (b *Builder) minLen() (int, error) {
	shortest, found := 0, false
	for _, kind := range loads.Kinds() {
		ch, ok := b.channels[kind]
		if !ok {
			continue
		}
		if !found || ch.Len() < shortest {
			shortest = ch.Len()
			found = true
		}
	}
	if !found {
		return 0, ErrEmptyCorpus
	}
	return shortest, nil
}

// inferredLen returns the first populated channel length in bundle order,
// used as the agreed sample count when no override was set.
func (b *Builder) inferredLen() (int, error) {
	for _, kind := range loads.Kinds() {
		if ch, ok := b.channels[kind]; ok {
			return ch.Len(), nil
		}
	}
	return 0, ErrEmptyCorpus
}

// SelectAs appends the channel for kind to the selection under an
// externally supplied tag. The sample-count override, when set, bounds
// externally tagged selections exactly as it bounds the named ones.
func (b *Builder) SelectAs(tag source.Tag, kind loads.Kind) *Builder {
	if b.err != nil {
		return b
	}
	ch, ok := b.channels[kind]
	if !ok {
		b.err = fmt.Errorf("%w: %s", ErrMissingChannel, kind)
		return b
	}
	var samples []loads.Sample
	if b.nSample > 0 {
		if b.nSample > ch.Len() {
			b.err = fmt.Errorf("%w: %d exceeds %s length %d", ErrSampleCount, b.nSample, kind, ch.Len())
			return b
		}
		samples = ch.NData(b.nSample)
	} else {
		samples = ch.Data()
	}
	b.selected = append(b.selected, source.NewSeries(tag, samples))
	return b
}

// Select appends the channel for kind under its own tag.
func (b *Builder) Select(kind loads.Kind) *Builder {
	return b.SelectAs(source.TagFor(kind), kind)
}

// TopEnd selects the loads on the top-end.
func (b *Builder) TopEnd() *Builder { return b.Select(loads.TopEnd) }

// Truss selects the loads on the trusses.
func (b *Builder) Truss() *Builder { return b.Select(loads.Truss) }

// GIR selects the loads on the GIR.
func (b *Builder) GIR() *Builder { return b.Select(loads.GIR) }

// CRing selects the loads on the C-rings.
func (b *Builder) CRing() *Builder { return b.Select(loads.CRing) }

// M1Cell selects the loads on the M1 cells.
func (b *Builder) M1Cell() *Builder { return b.Select(loads.M1Cell) }

// M1Segments selects the loads on the M1 segments.
func (b *Builder) M1Segments() *Builder { return b.Select(loads.M1Segments) }

// M2Segments selects the loads on the M2 segments.
func (b *Builder) M2Segments() *Builder { return b.Select(loads.M2Segments) }

// MirrorCovers selects the loads on the M1 mirror covers.
func (b *Builder) MirrorCovers() *Builder { return b.Select(loads.MirrorCovers) }

// M2ASMTopEnd routes the top-end loads to the ASM top-end input.
func (b *Builder) M2ASMTopEnd() *Builder {
	return b.SelectAs(source.MCM2TE6F, loads.TopEnd)
}

// M2ASMReferenceBodies routes the M2 segment loads to the ASM reference
// body input.
func (b *Builder) M2ASMReferenceBodies() *Builder {
	return b.SelectAs(source.MCM2RB6F, loads.M2Segments)
}

// SelectAll selects every load channel of the baseline configuration. The
// sequence fixes the emission order of the source outputs.
func (b *Builder) SelectAll() *Builder {
	return b.TopEnd().
		M2Segments().
		Truss().
		M1Segments().
		M1Cell().
		GIR().
		CRing()
}

// SelectAllWithASM selects every load channel of the ASM configuration,
// with the top-end and M2 loads routed to the ASM inputs.
func (b *Builder) SelectAllWithASM() *Builder {
	return b.M2ASMTopEnd().
		M2ASMReferenceBodies().
		Truss().
		M1Segments().
		M1Cell().
		GIR().
		CRing()
}

// Finalize consumes the builder and produces the immutable streaming
// source. The agreed sample count is the override when one was set, else
// the first populated channel's length.
func (b *Builder) Finalize() (*source.Source, error) {
	if b.err != nil {
		return nil, b.err
	}
	n := b.nSample
	if n == 0 {
		var err error
		if n, err = b.inferredLen(); err != nil {
			return nil, err
		}
	}
	s := source.New(b.selected, n)
	b.selected = nil
	b.channels = nil
	return s, nil
}
