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

package bandwidth

import (
	"io"

	"github.com/ajroetker/go-membench/membench"
	"github.com/ajroetker/go-membench/membench/kernel"
	"github.com/ajroetker/go-membench/membench/report"
)

// Suite measures a fixed, ordered list of kernels and prints each result as
// it completes. Rows are never sorted or ranked.
type Suite struct {
	Sampler  *Sampler
	Size     int
	Generic  []kernel.Kernel
	Builtin  []kernel.Kernel
	Registry []kernel.Kernel
	Out      *report.Printer
}

// NewSuite returns a Suite over the generic and builtin kernels followed by
// registry.
func NewSuite(cfg *membench.Config, registry []kernel.Kernel, w io.Writer) *Suite {
	return &Suite{
		Sampler:  NewSampler(cfg),
		Size:     cfg.Size,
		Generic:  kernel.Generic(),
		Builtin:  kernel.Builtin(),
		Registry: registry,
		Out:      report.New(w, cfg.Indent),
	}
}

// Run measures every kernel in report order and returns the results in the
// same order.
func (s *Suite) Run(bufs Buffers) []Result {
	bufs.Prefault()
	results := make([]Result, 0, len(s.Generic)+len(s.Builtin)+len(s.Registry))
	measure := func(ks []kernel.Kernel) {
		for _, k := range ks {
			r := s.Sampler.Measure(bufs, s.Size, k)
			s.Out.BandwidthRow(r.Label, r.MaxSpeed, r.DeviationPercent(), r.ShowDeviation())
			results = append(results, r)
		}
	}

	measure(s.Generic)
	s.Out.Separator()
	measure(s.Builtin)
	if len(s.Registry) > 0 {
		s.Out.Separator()
		measure(s.Registry)
	}
	return results
}
