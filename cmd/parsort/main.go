// Copyright 2025 go-forkjoin Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command parsort generates a pseudo-random array, sorts it with the
// fork-join parallel sorter and prints every k-th element.
//
// Usage:
//
//	echo "5 3 1 100 1" | parsort              # prints "3 10 31 83 94"
//	echo "1000000 48271 11 2147483647 1000" | parsort --mode spawn --max-depth 8
//	echo "5 3 1 100" | parsort gen            # prints the unsorted array
//	parsort info                              # detected mode and CPUs
//
// Standard input holds the array parameters N a b p followed by the stride
// k, separated by whitespace. Sampled values are written to standard output
// separated by spaces and terminated by a newline. Diagnostics go to
// standard error.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ajroetker/go-forkjoin/fj"
	"github.com/ajroetker/go-forkjoin/fj/contrib/lcg"
	"github.com/ajroetker/go-forkjoin/fj/contrib/sort"
	"github.com/ajroetker/go-forkjoin/fj/contrib/workerpool"
	"github.com/ajroetker/go-forkjoin/internal/config"
	"github.com/ajroetker/go-forkjoin/internal/logging"
)

// app holds the state shared by all subcommands of one invocation.
type app struct {
	configPath  string
	verbose     bool
	mode        string
	threshold   int
	workers     int
	maxDepth    int
	merge       string
	parallelGen bool
	verify      bool

	cfg    *config.Config
	logger *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newApp returns an app with the default config and a discarding logger,
// both replaced by setup once flags are parsed.
func newApp() *app {
	return &app{
		cfg:    config.DefaultConfig(),
		logger: logging.Nop(),
	}
}

func newRootCmd() *cobra.Command {
	a := newApp()

	root := &cobra.Command{
		Use:   "parsort",
		Short: "Sort a generated array with a fork-join parallel merge sort",
		Long: `parsort reads "N a b p" and then "k" from standard input, generates
x[0] = a mod p, x[i] = (x[i-1]*a + b) mod p for i < N, sorts the array with
a fork-join parallel merge sort and prints the elements at 1-indexed
positions k, 2k, 3k, ...`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
		RunE: a.runSort,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "YAML config file")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	flags.StringVar(&a.mode, "mode", "", "Execution mode: spawn, pool or sequential")
	flags.IntVar(&a.threshold, "threshold", 0, "Granularity threshold (default from config)")
	flags.IntVar(&a.workers, "workers", 0, "Worker pool size (default: available CPUs)")
	flags.IntVar(&a.maxDepth, "max-depth", 0, "Fork only in the top N recursion levels (0: no limit)")
	flags.StringVar(&a.merge, "merge", "", "Merge strategy: inplace or buffered")
	flags.BoolVar(&a.parallelGen, "parallel-gen", true, "Generate the input array on the worker pool")
	flags.BoolVar(&a.verify, "verify", false, "Check the sorted array on the worker pool before sampling")

	root.AddCommand(
		&cobra.Command{
			Use:   "sort",
			Short: "Generate, sort and sample (the default action)",
			Args:  cobra.NoArgs,
			RunE:  a.runSort,
		},
		&cobra.Command{
			Use:   "gen",
			Short: "Generate the array from N a b p and print it unsorted",
			Args:  cobra.NoArgs,
			RunE:  a.runGen,
		},
		&cobra.Command{
			Use:   "info",
			Short: "Show detected execution mode, worker count and CPU features",
			Args:  cobra.NoArgs,
			RunE:  a.runInfo,
		},
	)
	return root
}

// setup loads the config, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("mode") {
		cfg.Sort.Mode = a.mode
	}
	if flags.Changed("threshold") {
		cfg.Sort.Threshold = a.threshold
	}
	if flags.Changed("workers") {
		cfg.Pool.Workers = a.workers
	}
	if flags.Changed("max-depth") {
		cfg.Sort.MaxDepth = a.maxDepth
	}
	if flags.Changed("merge") {
		cfg.Sort.Merge = a.merge
	}
	if flags.Changed("parallel-gen") {
		cfg.Generate.Parallel = a.parallelGen
	}
	if a.verbose {
		cfg.Logging.Level = zapcore.DebugLevel.String()
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.cfg = cfg

	a.logger, err = logging.New(cfg.Logging.Level, cfg.Logging.Format, zapcore.AddSync(cmd.ErrOrStderr()))
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

func (a *app) runSort(cmd *cobra.Command, args []string) error {
	in := newWordReader(cmd.InOrStdin())
	params, err := readParams(in)
	if err != nil {
		return err
	}
	k, err := in.Int()
	if err != nil {
		return fmt.Errorf("reading stride k: %w", err)
	}
	// Reject a bad stride before spending time on the sort.
	if k <= 0 {
		return fmt.Errorf("stride %d must be positive: %w", k, fj.ErrInvalidInput)
	}

	mode, err := a.cfg.SortMode()
	if err != nil {
		return err
	}
	pool := workerpool.New(a.cfg.Workers())
	defer pool.Close()

	data, err := a.generate(pool, params)
	if err != nil {
		return err
	}

	sorter := sort.NewSorter(
		sort.WithMode(mode),
		sort.WithPool(pool),
		sort.WithThreshold(a.cfg.Sort.Threshold),
		sort.WithMaxDepth(a.cfg.Sort.MaxDepth),
		sort.WithScratch(a.cfg.Sort.Merge == config.MergeBuffered),
	)
	start := time.Now()
	sort.SortWith(sorter, data)
	a.logger.Debug("sorted",
		zap.Int("n", len(data)),
		zap.Stringer("mode", sorter.Mode()),
		zap.Int("threshold", sorter.Threshold()),
		zap.Int("max_depth", sorter.MaxDepth()),
		zap.Int("workers", pool.NumWorkers()),
		zap.String("merge", a.cfg.Sort.Merge),
		zap.Duration("elapsed", time.Since(start)),
	)

	if a.verify {
		if !sort.IsSortedParallel(pool, data) {
			return fmt.Errorf("sorted array of %d elements is out of order", len(data))
		}
		a.logger.Debug("verified", zap.Int("n", len(data)))
	}

	sampled, err := sort.Sample(data, k)
	if err != nil {
		return err
	}
	return writeValues(cmd.OutOrStdout(), sampled)
}

func (a *app) runGen(cmd *cobra.Command, args []string) error {
	params, err := readParams(newWordReader(cmd.InOrStdin()))
	if err != nil {
		return err
	}

	pool := workerpool.New(a.cfg.Workers())
	defer pool.Close()

	data, err := a.generate(pool, params)
	if err != nil {
		return err
	}
	return writeValues(cmd.OutOrStdout(), data)
}

func (a *app) runInfo(cmd *cobra.Command, args []string) error {
	mode, err := a.cfg.SortMode()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "detected mode: %s\n", fj.CurrentMode())
	fmt.Fprintf(out, "configured mode: %s\n", mode)
	fmt.Fprintf(out, "workers: %d\n", a.cfg.Workers())
	fmt.Fprintf(out, "threshold: %d\n", a.cfg.Sort.Threshold)
	fmt.Fprintf(out, "max depth: %d\n", a.cfg.Sort.MaxDepth)
	fmt.Fprintf(out, "merge: %s\n", a.cfg.Sort.Merge)
	fmt.Fprintf(out, "cpu: %s\n", fj.CPUName())
	return nil
}

func (a *app) generate(pool *workerpool.Pool, p lcg.Params) ([]uint64, error) {
	start := time.Now()
	var (
		data []uint64
		err  error
	)
	if a.cfg.Generate.Parallel {
		data, err = lcg.GenerateParallel(pool, p)
	} else {
		data, err = lcg.Generate(p)
	}
	if err != nil {
		return nil, err
	}
	a.logger.Debug("generated",
		zap.Int("n", p.Length),
		zap.Bool("parallel", a.cfg.Generate.Parallel),
		zap.Duration("elapsed", time.Since(start)),
	)
	return data, nil
}
