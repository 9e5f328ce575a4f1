// Package source holds the finalized load source stepped by the simulation
// loop: an ordered set of tagged, single-pass sample series advanced in
// lock-step, one tick at a time.
package source

import (
	"errors"

	"github.com/rconan/windloading/internal/loads"
)

// ErrNoInputs is returned when a caller tries to feed data into the source;
// the source is pure, it only produces.
var ErrNoInputs = errors.New("source: load source takes no inputs")

// Tag identifies the downstream solver input a series is routed to. Most
// tags match the bundle channel names; the ASM tags route existing channel
// data to alternate solver inputs.
type Tag string

const (
	OSSTopEnd6F       Tag = "OSS_TopEnd_6F"
	OSSTruss6F        Tag = "OSS_Truss_6F"
	OSSGIR6F          Tag = "OSS_GIR_6F"
	OSSCRING6F        Tag = "OSS_CRING_6F"
	OSSCellLcl6F      Tag = "OSS_Cell_lcl_6F"
	OSSM1Lcl6F        Tag = "OSS_M1_lcl_6F"
	MCM2LclForce6F    Tag = "MC_M2_lcl_force_6F"
	OSSMirrorCovers6F Tag = "OSS_mirrorCovers_6F"
	MCM2TE6F          Tag = "MC_M2_TE_6F"
	MCM2RB6F          Tag = "MC_M2_RB_6F"
)

// TagFor returns the default tag for a channel kind.
func TagFor(kind loads.Kind) Tag { return Tag(kind.String()) }

// Series is one tagged, single-pass sample sequence. Once exhausted it can
// only be restarted by rebuilding the source from the corpus.
type Series struct {
	tag     Tag
	samples []loads.Sample
	next    int
}

func NewSeries(tag Tag, samples []loads.Sample) Series {
	return Series{tag: tag, samples: samples}
}

func (s *Series) Tag() Tag { return s.tag }

// Remaining returns the number of samples not yet consumed.
func (s *Series) Remaining() int { return len(s.samples) - s.next }

func (s *Series) advance() (loads.Sample, bool) {
	if s.next >= len(s.samples) {
		return nil, false
	}
	v := s.samples[s.next]
	s.next++
	return v, true
}

// Output is one tick's worth of data for one tag: the flat force/moment
// vector routed to the matching solver input.
type Output struct {
	Tag  Tag
	Data []float64
}

// Source is the immutable streaming view built from a finalized corpus
// selection. It is exclusively owned by the loop driving it and is not safe
// for concurrent stepping.
type Source struct {
	series  []Series
	nSample int
}

func New(series []Series, nSample int) *Source {
	return &Source{series: series, nSample: nSample}
}

// SampleCount returns the agreed number of ticks the source serves.
func (s *Source) SampleCount() int { return s.nSample }

// Tags returns the selected tags in emission order.
func (s *Source) Tags() []Tag {
	tags := make([]Tag, len(s.series))
	for i := range s.series {
		tags[i] = s.series[i].tag
	}
	return tags
}

// Advance steps every series by one sample and returns the tick's outputs
// in selection order.
//
// Termination is all-or-nothing: as soon as any single series is exhausted
// the whole tick reports no data, even if other series still hold samples.
// The selected channels are expected to share the agreed length, so a
// ragged end signals a data or configuration bug; emitting a partial tick
// would desynchronize the load applied to different structural points.
// This is a correctness guarantee, not an accident — do not relax it to
// per-series partial output.
func (s *Source) Advance() ([]Output, bool) {
	outs := make([]Output, len(s.series))
	for i := range s.series {
		sample, ok := s.series[i].advance()
		if !ok {
			return nil, false
		}
		outs[i] = Output{Tag: s.series[i].tag, Data: sample}
	}
	return outs, true
}

// Inputs rejects any attempt to push data into the source.
func (s *Source) Inputs(_ ...Output) error {
	return ErrNoInputs
}
