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

// Package membench measures the sustained bandwidth and random-access latency
// of the memory subsystem of the machine it runs on.
//
// # Packages
//
// The measurement engine is split the same way the report is:
//   - kernel: the registry of copy/fill kernels, generic Go variants plus
//     assembly variants selected by CPU feature detection
//   - bandwidth: the adaptive Sampler and the Suite that drives it over every kernel
//   - latency: pointer-chasing generators and the working-set size sweep
//   - alloc: page-aligned, non-aliasing buffer allocation
//   - report: plain-text output of one run
//
// This package holds what they share: the Clock, running sample statistics
// and the run configuration.
//
// # Sampling
//
// Every measurement is repeated up to MaxRepeats times. Bandwidth keeps the
// maximum observed throughput and latency keeps the minimum observed net time,
// since noise only ever slows a run down. Sampling stops early once the sample
// standard deviation drops below 0.1% of that extreme.
//
// # Example Usage
//
//	cfg := membench.DefaultConfig()
//	pool, err := alloc.NonAliased(cfg.Size, cfg.Size, cfg.BlockSize)
//	if err != nil {
//	    return err
//	}
//	defer pool.Free()
//
//	suite := bandwidth.NewSuite(cfg, kernel.Registry(), os.Stdout)
//	suite.Run(bandwidth.Buffers{Src: pool.Int64s(0), Dst: pool.Int64s(1), Tmp: pool.Int64s(2)})
package membench
