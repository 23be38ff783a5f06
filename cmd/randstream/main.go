package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/lox/xoshiro/rng"
)

var CLI struct {
	Seed    uint64 `help:"Generator seed (0 seeds from entropy)" default:"0"`
	Count   int    `short:"n" default:"1024" help:"Number of values to emit"`
	Format  string `short:"f" default:"bytes" enum:"bytes,u64,float" help:"Output format: bytes, u64 or float"`
	Jumps   int    `short:"j" default:"0" help:"Number of 2^128 jumps to apply before emitting"`
	Out     string `short:"o" help:"Write to a file instead of stdout"`
	Verbose bool   `short:"v" help:"Verbose logging"`
}

func main() {
	ctx := kong.Parse(&CLI)

	logger := log.New(os.Stderr)
	if CLI.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	var out io.Writer = os.Stdout
	if CLI.Out != "" {
		f, err := os.Create(CLI.Out)
		if err != nil {
			logger.Error("Failed to create output file", "error", err)
			ctx.Exit(1)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	r := rng.FromEntropy()
	if CLI.Seed != 0 {
		r = rng.SeedFromUint64(CLI.Seed)
	}
	for i := 0; i < CLI.Jumps; i++ {
		r.Jump()
	}
	logger.Debug("Emitting", "format", CLI.Format, "count", CLI.Count, "seed", CLI.Seed, "jumps", CLI.Jumps)

	w := bufio.NewWriter(out)
	if err := emit(w, r); err != nil {
		logger.Error("Write failed", "error", err)
		ctx.Exit(1)
	}
	if err := w.Flush(); err != nil {
		logger.Error("Flush failed", "error", err)
		ctx.Exit(1)
	}
}

func emit(w *bufio.Writer, r *rng.Rng) error {
	switch CLI.Format {
	case "bytes":
		buf := make([]byte, 8192)
		remaining := CLI.Count
		for remaining > 0 {
			chunk := buf
			if remaining < len(chunk) {
				chunk = chunk[:remaining]
			}
			r.FillBytes(chunk)
			if _, err := w.Write(chunk); err != nil {
				return err
			}
			remaining -= len(chunk)
		}
	case "u64":
		for i := 0; i < CLI.Count; i++ {
			if _, err := fmt.Fprintln(w, r.Uint64()); err != nil {
				return err
			}
		}
	case "float":
		for i := 0; i < CLI.Count; i++ {
			if _, err := fmt.Fprintln(w, r.Float64()); err != nil {
				return err
			}
		}
	}
	return nil
}
