package main

import (
	"context"
	"os"
	"sync"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/lox/xoshiro/internal/stattest"
	"github.com/lox/xoshiro/rng"
	"golang.org/x/sync/errgroup"
)

var CLI struct {
	Seed    uint64 `help:"Base generator seed (0 seeds from entropy)" default:"0"`
	Samples int    `short:"n" default:"1000000" help:"Draws per range"`
	Workers int    `short:"w" default:"4" help:"Concurrent workers"`
	Verbose bool   `short:"v" help:"Verbose logging"`
}

// battery is the set of ranges put through the Kolmogorov-Smirnov test. Each
// entry builds its sampler up front so construction errors surface before any
// draws happen.
type batteryRange struct {
	name   string
	size   int
	sample func(*rng.Rng) uint64
}

func buildBattery() ([]batteryRange, error) {
	var battery []batteryRange

	u8, err := rng.NewUniformInt(rng.Incl[uint8](0), rng.Excl[uint8](17))
	if err != nil {
		return nil, err
	}
	battery = append(battery, batteryRange{
		name:   "u8 [0,17)",
		size:   17,
		sample: func(r *rng.Rng) uint64 { return uint64(u8.Sample(r)) },
	})

	u8off, err := rng.NewUniformInt(rng.Incl[uint8](13), rng.Excl[uint8](30))
	if err != nil {
		return nil, err
	}
	battery = append(battery, batteryRange{
		name:   "u8 [13,30)",
		size:   17,
		sample: func(r *rng.Rng) uint64 { return uint64(u8off.Sample(r) - 13) },
	})

	i16, err := rng.NewUniformInt(rng.Incl[int16](-1000), rng.Excl[int16](1000))
	if err != nil {
		return nil, err
	}
	battery = append(battery, batteryRange{
		name:   "i16 [-1000,1000)",
		size:   2000,
		sample: func(r *rng.Rng) uint64 { return uint64(int64(i16.Sample(r)) + 1000) },
	})

	u16, err := rng.NewUniformInt(rng.Incl[uint16](0), rng.Excl[uint16](1<<16-1))
	if err != nil {
		return nil, err
	}
	battery = append(battery, batteryRange{
		name:   "u16 [0,65535)",
		size:   1<<16 - 1,
		sample: func(r *rng.Rng) uint64 { return uint64(u16.Sample(r)) },
	})

	i64, err := rng.NewUniformInt(rng.Incl[int64](-32768), rng.Excl[int64](32768))
	if err != nil {
		return nil, err
	}
	battery = append(battery, batteryRange{
		name:   "i64 [-32768,32768)",
		size:   1 << 16,
		sample: func(r *rng.Rng) uint64 { return uint64(i64.Sample(r) + 32768) },
	})

	return battery, nil
}

func main() {
	ctx := kong.Parse(&CLI)

	logger := log.New(os.Stderr)
	if CLI.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	battery, err := buildBattery()
	if err != nil {
		logger.Error("Failed to build battery", "error", err)
		ctx.Exit(1)
	}

	base := rng.FromEntropy()
	if CLI.Seed != 0 {
		base = rng.SeedFromUint64(CLI.Seed)
	}

	workers := CLI.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(battery) {
		workers = len(battery)
	}

	// One non-overlapping substream per worker: clone the base and apply a
	// distinct number of jumps before handing it to the goroutine.
	jobs := make(chan batteryRange)
	var mu sync.Mutex
	rejected := 0

	g, gctx := errgroup.WithContext(context.Background())
	for w := 0; w < workers; w++ {
		worker := base.Clone()
		for j := 0; j < w; j++ {
			worker.Jump()
		}
		g.Go(func() error {
			for br := range jobs {
				statistic := runRange(worker, br)
				critical := stattest.CriticalValue(CLI.Samples)
				passed := statistic < critical
				logger.Info("Range tested", "range", br.name,
					"statistic", statistic, "critical", critical, "passed", passed)
				if !passed {
					mu.Lock()
					rejected++
					mu.Unlock()
				}
			}
			return nil
		})
	}

	for _, br := range battery {
		select {
		case jobs <- br:
		case <-gctx.Done():
		}
	}
	close(jobs)
	if err := g.Wait(); err != nil {
		logger.Error("Battery failed", "error", err)
		ctx.Exit(1)
	}

	if rejected > 0 {
		logger.Error("Uniformity rejected", "ranges", rejected)
		ctx.Exit(1)
	}
	logger.Info("All ranges passed", "ranges", len(battery), "samples", CLI.Samples)
}

func runRange(r *rng.Rng, br batteryRange) float64 {
	sample := make([]uint64, CLI.Samples)
	for i := range sample {
		sample[i] = br.sample(r)
	}
	return stattest.Statistic(sample, br.size)
}
