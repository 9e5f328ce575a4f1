package runner

import (
	"context"
	"errors"
	"testing"

	"github.com/rconan/windloading/internal/loads"
	"github.com/rconan/windloading/internal/source"
)

func makeSource(n int, tags ...source.Tag) *source.Source {
	series := make([]source.Series, len(tags))
	for i, tag := range tags {
		samples := make([]loads.Sample, n)
		for j := range samples {
			samples[j] = loads.Sample{float64(j), 0, 0, 0, 0, 0}
		}
		series[i] = source.NewSeries(tag, samples)
	}
	return source.New(series, n)
}

type recordingConsumer struct {
	applied map[source.Tag]int
	fail    error
}

func (c *recordingConsumer) Apply(tag source.Tag, data []float64) error {
	if c.fail != nil {
		return c.fail
	}
	if c.applied == nil {
		c.applied = make(map[source.Tag]int)
	}
	c.applied[tag]++
	return nil
}

type countingObserver struct {
	steps int
	lastT float64
}

func (o *countingObserver) OnStep(step int, t float64, outs []source.Output) {
	o.steps++
	o.lastT = t
}

func TestRunUntilExhausted(t *testing.T) {
	src := makeSource(5, source.OSSTruss6F, source.OSSGIR6F)
	consumer := &recordingConsumer{}
	obs := &countingObserver{}

	r := New(src, consumer, 0.1)
	r.AddObserver(obs)

	steps, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if steps != 5 {
		t.Errorf("expected 5 steps, got %d", steps)
	}
	for _, tag := range []source.Tag{source.OSSTruss6F, source.OSSGIR6F} {
		if consumer.applied[tag] != 5 {
			t.Errorf("tag %s: expected 5 applications, got %d", tag, consumer.applied[tag])
		}
	}
	if obs.steps != 5 {
		t.Errorf("expected 5 observations, got %d", obs.steps)
	}
	if want := 0.4; obs.lastT != want {
		t.Errorf("expected final tick at t=%v, got %v", want, obs.lastT)
	}
}

func TestRunNilConsumer(t *testing.T) {
	r := New(makeSource(3, source.OSSTruss6F), nil, 0.05)
	steps, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if steps != 3 {
		t.Errorf("expected 3 steps, got %d", steps)
	}
}

func TestRunConsumerError(t *testing.T) {
	boom := errors.New("solver rejected input")
	r := New(makeSource(5, source.OSSTruss6F), &recordingConsumer{fail: boom}, 0.1)

	steps, err := r.Run(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected consumer error, got %v", err)
	}
	if steps != 0 {
		t.Errorf("expected failure on the first step, got %d", steps)
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := New(makeSource(5, source.OSSTruss6F), nil, 0.1)
	steps, err := r.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if steps != 0 {
		t.Errorf("expected 0 steps, got %d", steps)
	}
}
