package corpus

import "errors"

// Construction and selection errors. All abort the build attempt that
// raised them; none require unwinding anything beyond the builder.
var (
	// ErrEmptyCorpus indicates no populated channel was found when the
	// sample count had to be inferred or validated.
	ErrEmptyCorpus = errors.New("corpus: no populated load channel")

	// ErrMissingChannel indicates a selector requested a channel absent
	// from the scenario.
	ErrMissingChannel = errors.New("corpus: load channel not available")

	// ErrSampleCount indicates a sample-count override of zero or one
	// larger than an available channel.
	ErrSampleCount = errors.New("corpus: invalid sample count")
)
