package loads

// Sample is one time step of a load channel: forces and moments for every
// node group of the attachment point, flattened (Fx, Fy, Fz, Mx, My, Mz per
// group).
type Sample []float64

// Clone returns an independent copy of the sample.
func (s Sample) Clone() Sample {
	c := make(Sample, len(s))
	copy(c, s)
	return c
}

// Channel is the ordered time series of load samples for one attachment
// point. Its length changes only through Window and Decimate.
type Channel struct {
	kind    Kind
	samples []Sample
}

func New(kind Kind, samples []Sample) *Channel {
	return &Channel{kind: kind, samples: samples}
}

func (c *Channel) Kind() Kind { return c.kind }

// Len returns the number of samples in the time series.
func (c *Channel) Len() int { return len(c.samples) }

// Width returns the number of components per sample.
func (c *Channel) Width() int {
	if len(c.samples) == 0 {
		return 0
	}
	return len(c.samples[0])
}

// Decimate keeps every rate-th sample starting at index 0, in place.
// A rate of 1 leaves the channel unchanged.
func (c *Channel) Decimate(rate int) error {
	if rate < 1 {
		return ErrDecimationRate
	}
	if rate == 1 {
		return nil
	}
	kept := c.samples[:0]
	for i := 0; i < len(c.samples); i += rate {
		kept = append(kept, c.samples[i])
	}
	c.samples = kept
	return nil
}

// Window keeps the samples in [min, max), in place. Indices are clamped to
// the channel bounds; max < min yields an empty channel.
func (c *Channel) Window(min, max int) {
	if min < 0 {
		min = 0
	}
	if max > len(c.samples) {
		max = len(c.samples)
	}
	if max < min {
		max = min
	}
	c.samples = c.samples[min:max]
}

// Data returns a copy of the sample list. The copy shares the sample
// vectors themselves, which are never mutated after load, so a channel can
// feed several tagged selections without aliasing later transforms.
func (c *Channel) Data() []Sample {
	return append([]Sample(nil), c.samples...)
}

// NData returns a copy of the first n samples.
func (c *Channel) NData(n int) []Sample {
	return append([]Sample(nil), c.samples[:n]...)
}

// Samples consumes the channel, returning its samples in original order.
func (c *Channel) Samples() []Sample {
	s := c.samples
	c.samples = nil
	return s
}
