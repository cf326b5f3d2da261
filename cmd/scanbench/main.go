// Command scanbench contrasts the sequential prefix scan with the parallel
// two-pass scan over identical input, reporting the elapsed wall time of
// each together with both totals for cross-validation.
//
// The input is filled with x[i] = i & 0x7fffffff and scanned with integer
// addition. Size, threshold, and repetition count can be set with flags or
// with a TOML configuration file; explicitly set flags override the file.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/exascience/parray/parallel"
	"github.com/exascience/parray/sequential"
)

type config struct {
	Size       int `toml:"size"`
	Threshold  int `toml:"threshold"`
	Iterations int `toml:"iterations"`
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "scanbench",
	})

	configPath := flag.String("config", "", "path to a TOML configuration file")
	size := flag.Int("size", 1000000, "number of elements to scan")
	threshold := flag.Int("threshold", 0, "grain-size threshold designator (see parray.ComputeEffectiveThreshold)")
	iterations := flag.Int("iterations", 1, "number of timed repetitions")
	flag.Parse()

	cfg := config{Size: *size, Threshold: *threshold, Iterations: *iterations}
	if *configPath != "" {
		if _, err := toml.DecodeFile(*configPath, &cfg); err != nil {
			logger.Fatal("cannot read configuration", "path", *configPath, "err", err)
		}
		flag.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "size":
				cfg.Size = *size
			case "threshold":
				cfg.Threshold = *threshold
			case "iterations":
				cfg.Iterations = *iterations
			}
		})
	}
	if cfg.Size < 0 || cfg.Iterations < 1 {
		logger.Fatal("invalid configuration", "size", cfg.Size, "iterations", cfg.Iterations)
	}

	in := make([]int, cfg.Size)
	for i := range in {
		in[i] = i & 0x7fffffff
	}
	out := make([]int, cfg.Size)
	plus := func(x, y int) int { return x + y }

	logger.Info("scanning", "size", cfg.Size, "threshold", cfg.Threshold, "iterations", cfg.Iterations)
	for it := 0; it < cfg.Iterations; it++ {
		start := time.Now()
		serialTotal := sequential.Scan(out, in, 0, plus, cfg.Threshold)
		serialElapsed := time.Since(start)
		logger.Info("serial scan", "elapsed", serialElapsed, "total", serialTotal)

		start = time.Now()
		parallelTotal := parallel.Scan(out, in, 0, plus, cfg.Threshold)
		parallelElapsed := time.Since(start)
		logger.Info("parallel scan", "elapsed", parallelElapsed, "total", parallelTotal)

		if serialTotal != parallelTotal {
			logger.Fatal("totals disagree", "serial", serialTotal, "parallel", parallelTotal)
		}
	}
}
