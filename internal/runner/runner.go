// Package runner drives a load source in lock-step with a simulation
// clock: one Advance per tick, outputs routed to the consumer, until the
// source reports no data.
package runner

import (
	"context"
	"fmt"

	"github.com/rconan/windloading/internal/source"
)

// Consumer receives one tagged load vector per tick and routes it to the
// matching solver input.
type Consumer interface {
	Apply(tag source.Tag, data []float64) error
}

// Observer is notified after every completed tick.
type Observer interface {
	OnStep(step int, t float64, outs []source.Output)
}

// Runner owns the source for the duration of a run. The consumer may be
// nil when a run only records.
type Runner struct {
	src       *source.Source
	consumer  Consumer
	dt        float64
	observers []Observer
}

func New(src *source.Source, consumer Consumer, dt float64) *Runner {
	return &Runner{src: src, consumer: consumer, dt: dt}
}

func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run steps the source until it is exhausted or the context is canceled,
// returning the number of completed ticks. A "no data" tick is the
// ordinary end of the run, not an error.
func (r *Runner) Run(ctx context.Context) (int, error) {
	steps := 0
	for {
		select {
		case <-ctx.Done():
			return steps, ctx.Err()
		default:
		}

		outs, ok := r.src.Advance()
		if !ok {
			return steps, nil
		}

		t := float64(steps) * r.dt
		if r.consumer != nil {
			for _, out := range outs {
				if err := r.consumer.Apply(out.Tag, out.Data); err != nil {
					return steps, fmt.Errorf("apply %s at t=%.4f: %w", out.Tag, t, err)
				}
			}
		}
		for _, obs := range r.observers {
			obs.OnStep(steps, t, outs)
		}
		steps++
	}
}
