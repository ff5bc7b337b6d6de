// Copyright 2025 go-highway Authors
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

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/ajroetker/go-membench/internal/affinity"
	"github.com/ajroetker/go-membench/membench"
	"github.com/ajroetker/go-membench/membench/alloc"
	"github.com/ajroetker/go-membench/membench/bandwidth"
	"github.com/ajroetker/go-membench/membench/kernel"
	"github.com/ajroetker/go-membench/membench/latency"
	"github.com/ajroetker/go-membench/membench/report"
)

type options struct {
	configPath    string
	verbose       bool
	cpu           int
	skipBandwidth bool
	skipLatency   bool
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:          "membench",
		Short:        "Simple benchmark for memory throughput and latency",
		Version:      membench.Version,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, &opts)
			if err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr(), opts.verbose)
			slog.SetDefault(logger)
			return run(cmd, cfg, &opts, logger)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "YAML file overriding the default run parameters")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log every sampling trial to stderr")
	f.IntVar(&opts.cpu, "cpu", -1, "pin the benchmark thread to this CPU (-1 leaves scheduling alone)")
	f.BoolVar(&opts.skipBandwidth, "skip-bandwidth", false, "do not run the bandwidth suite")
	f.BoolVar(&opts.skipLatency, "skip-latency", false, "do not run the latency sweep")

	cmd.AddCommand(newKernelsCmd())
	return cmd
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadConfig reads the optional config file and applies flags on top.
func loadConfig(cmd *cobra.Command, opts *options) (*membench.Config, error) {
	cfg := membench.DefaultConfig()
	if opts.configPath != "" {
		var err error
		if cfg, err = membench.LoadConfig(opts.configPath); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("cpu") {
		cfg.CPU = opts.cpu
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(cmd *cobra.Command, cfg *membench.Config, opts *options, logger *slog.Logger) error {
	// Keep every measurement on one OS thread so pinning and caches stay put.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if cfg.CPU >= 0 {
		if err := affinity.Pin(cfg.CPU); err != nil {
			logger.Warn("running unpinned", "cpu", cfg.CPU, "err", err)
		} else {
			logger.Debug("pinned benchmark thread", "cpu", cfg.CPU)
		}
	}

	out := cmd.OutOrStdout()
	p := report.New(out, cfg.Indent)
	p.Title(membench.Version)

	host, err := report.DetectHost(cmd.Context(), kernel.CurrentName())
	if err != nil {
		logger.Debug("incomplete host details", "err", err)
	}
	p.Host(host)

	if !opts.skipBandwidth {
		if err := runBandwidth(cfg, p, out, logger); err != nil {
			return err
		}
	}
	if !opts.skipLatency {
		if err := runLatency(cmd, cfg, p, out, logger); err != nil {
			return err
		}
	}
	return nil
}

func runBandwidth(cfg *membench.Config, p *report.Printer, out io.Writer, logger *slog.Logger) error {
	pool, err := alloc.NonAliased(cfg.Size, cfg.Size, cfg.BlockSize)
	if err != nil {
		return fmt.Errorf("bandwidth buffers: %w", err)
	}
	defer pool.Free()

	p.Banner("Memory bandwidth tests", report.BandwidthNotes...)

	registry := kernel.Registry()
	if len(registry) == 0 {
		logger.Debug("no accelerated kernels", "dispatch", kernel.CurrentName(), "no_asm", kernel.NoAsmEnv())
	}
	suite := bandwidth.NewSuite(cfg, registry, out)
	suite.Sampler.Logger = logger
	suite.Run(bandwidth.Buffers{
		Dst: pool.Int64s(0),
		Src: pool.Int64s(1),
		Tmp: pool.Int64s(2),
	})
	return nil
}

func runLatency(cmd *cobra.Command, cfg *membench.Config, p *report.Printer, out io.Writer, logger *slog.Logger) error {
	if avail, err := report.AvailableMemory(cmd.Context()); err == nil && avail < uint64(cfg.LatencySize) {
		logger.Warn("latency buffer exceeds available memory", "size", cfg.LatencySize, "available", avail)
	}

	p.Banner("Memory latency test", report.LatencyNotes...)

	engine := latency.NewEngine(cfg, out)
	engine.Logger = logger
	if _, err := engine.Sweep(cfg.LatencySize); err != nil {
		if errors.Is(err, alloc.ErrAllocation) {
			logger.Warn("skipping latency test", "err", err)
			return nil
		}
		return err
	}
	return nil
}
