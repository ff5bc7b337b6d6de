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

package membench

import "math"

// Stats accumulates running aggregates over the trials of one measurement.
// The zero value is ready to use.
type Stats struct {
	N     int
	Sum   float64
	SumSq float64
	Max   float64
	Min   float64
}

// Add records one sample.
func (s *Stats) Add(x float64) {
	if s.N == 0 || x > s.Max {
		s.Max = x
	}
	if s.N == 0 || x < s.Min {
		s.Min = x
	}
	s.N++
	s.Sum += x
	s.SumSq += x * x
}

// Mean returns the arithmetic mean, or 0 without samples.
func (s *Stats) Mean() float64 {
	if s.N == 0 {
		return 0
	}
	return s.Sum / float64(s.N)
}

// StdDev returns the sample standard deviation
//
//	sqrt((n·Σx² − (Σx)²) / (n·(n−1)))
//
// It is 0 for fewer than two samples. Rounding can push the radicand slightly
// below zero for near-identical samples; that is reported as 0.
func (s *Stats) StdDev() float64 {
	if s.N < 2 {
		return 0
	}
	n := float64(s.N)
	v := (n*s.SumSq - s.Sum*s.Sum) / (n * (n - 1))
	if v <= 0 {
		return 0
	}
	return math.Sqrt(v)
}

// Converged reports whether more than two samples were taken and the standard
// deviation is below 0.1% of ref.
func (s *Stats) Converged(ref float64) bool {
	return s.N > 2 && s.StdDev() < ref/1000
}
