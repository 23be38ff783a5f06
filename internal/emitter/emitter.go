// Package emitter pushes fixed-size chunks of generator output to a sink,
// optionally throttled to a chunk rate. It is the only place in the module
// that schedules time, and it does so through a quartz.Clock so tests can
// drive it with a mock.
package emitter

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/xoshiro/rng"
)

// Emitter streams chunks from a single generator. It owns the generator for
// the duration of Run; the generator must not be drawn from elsewhere while
// the emitter is running.
type Emitter struct {
	rng       *rng.Rng
	chunkSize int
	rate      int // chunks per second, 0 means unthrottled
	clock     quartz.Clock
	logger    *log.Logger
}

// New creates an emitter. A nil clock means the real clock.
func New(r *rng.Rng, chunkSize, rate int, clock quartz.Clock, logger *log.Logger) *Emitter {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Emitter{
		rng:       r,
		chunkSize: chunkSize,
		rate:      rate,
		clock:     clock,
		logger:    logger.WithPrefix("emitter"),
	}
}

// Run delivers chunks to sink until the context is canceled or the sink
// returns an error. The chunk buffer is reused between calls; sinks must not
// retain it.
func (e *Emitter) Run(ctx context.Context, sink func([]byte) error) error {
	buf := make([]byte, e.chunkSize)
	e.logger.Debug("Starting emitter", "chunk_size", e.chunkSize, "rate", e.rate)

	if e.rate <= 0 {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			e.rng.FillBytes(buf)
			if err := sink(buf); err != nil {
				return err
			}
		}
	}

	interval := time.Second / time.Duration(e.rate)
	ticker := e.clock.TickerFunc(ctx, interval, func() error {
		e.rng.FillBytes(buf)
		return sink(buf)
	}, "emitter")
	return ticker.Wait()
}
