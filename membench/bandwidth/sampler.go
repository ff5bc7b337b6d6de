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

// Package bandwidth measures the sustained throughput of copy and fill kernels.
//
// A Sampler times one kernel until its peak rate is stable. A Suite runs the
// Sampler over the generic, builtin and registry kernels and prints one row per
// kernel as soon as it is measured.
package bandwidth

import (
	"log/slog"
	"time"

	"github.com/ajroetker/go-membench/membench"
	"github.com/ajroetker/go-membench/membench/kernel"
)

// Buffers are the caller-owned regions a kernel runs on. Src and Dst must hold
// at least the measured size and Tmp at least the block size. None may alias.
type Buffers struct {
	Dst []int64
	Src []int64
	Tmp []int64
}

// Prefault writes every word of the buffers so freshly mapped pages are
// backed by real memory before timing starts. Src gets a non-zero pattern.
func (b Buffers) Prefault() {
	for i := range b.Src {
		b.Src[i] = int64(i)
	}
	clear(b.Dst)
	clear(b.Tmp)
}

// Trial records the raw timing of one sampling round.
type Trial struct {
	LoopCount int
	Elapsed   time.Duration
	// Speed is Size*Count*LoopCount/Elapsed in MB/s.
	Speed float64
}

// Result is the outcome of sampling one kernel.
type Result struct {
	Label    string
	Size     int
	Count    int
	MaxSpeed float64
	StdDev   float64
	Trials   []Trial
}

// DeviationPercent returns the standard deviation relative to the peak.
func (r Result) DeviationPercent() float64 {
	if r.MaxSpeed == 0 {
		return 0
	}
	return r.StdDev / r.MaxSpeed * 100
}

// ShowDeviation reports whether the deviation is large enough to print.
func (r Result) ShowDeviation() bool {
	return r.DeviationPercent() >= 0.1
}

// Sampler repeats a kernel until its throughput converges.
type Sampler struct {
	BlockSize    int
	Count        int
	MaxRepeats   int
	MinTrialTime time.Duration
	Clock        membench.Clock
	Logger       *slog.Logger
}

// NewSampler returns a Sampler using cfg and the monotonic clock.
func NewSampler(cfg *membench.Config) *Sampler {
	return &Sampler{
		BlockSize:    cfg.BlockSize,
		Count:        cfg.Count,
		MaxRepeats:   cfg.MaxRepeats,
		MinTrialTime: cfg.MinTrialTime,
		Clock:        membench.NewMonotonicClock(),
		Logger:       slog.Default(),
	}
}

// Measure samples k over size bytes of bufs and returns its peak throughput.
//
// Each trial first runs the kernel once untimed, then keeps running Count
// invocations per loop until MinTrialTime has passed. Sampling stops after
// MaxRepeats trials, or earlier once more than two trials are in and their
// standard deviation is under 0.1% of the best rate.
func (s *Sampler) Measure(bufs Buffers, size int, k kernel.Kernel) Result {
	var st membench.Stats
	res := Result{Label: k.Name, Size: size, Count: s.Count}

	for n := 0; n < s.MaxRepeats; n++ {
		k.Func(bufs.Dst, bufs.Src, size)

		loopCount := 0
		t1 := s.Clock.Now()
		var t2 time.Duration
		for {
			loopCount++
			if k.TwoPass {
				s.twoPass(bufs, size, k.Func)
			} else {
				for i := 0; i < s.Count; i++ {
					k.Func(bufs.Dst, bufs.Src, size)
				}
			}
			t2 = s.Clock.Now()
			if t2-t1 >= s.MinTrialTime {
				break
			}
		}

		tr := Trial{LoopCount: loopCount, Elapsed: t2 - t1}
		tr.Speed = Throughput(size, s.Count, loopCount, tr.Elapsed)
		res.Trials = append(res.Trials, tr)
		st.Add(tr.Speed)

		s.logger().Debug("bandwidth trial",
			"kernel", k.Name,
			"trial", n+1,
			"loopcount", loopCount,
			"elapsed", tr.Elapsed,
			"mbps", tr.Speed)

		if st.Converged(st.Max) {
			break
		}
	}

	res.MaxSpeed = st.Max
	res.StdDev = st.StdDev()
	return res
}

// twoPass runs Count rounds of the staged protocol: every BlockSize chunk is
// copied from Src into Tmp and from Tmp into Dst.
func (s *Sampler) twoPass(bufs Buffers, size int, f kernel.Func) {
	words := s.BlockSize / 8
	for i := 0; i < s.Count; i++ {
		for j := 0; j < size; j += s.BlockSize {
			w := j / 8
			f(bufs.Tmp, bufs.Src[w:w+words], s.BlockSize)
			f(bufs.Dst[w:w+words], bufs.Tmp, s.BlockSize)
		}
	}
}

func (s *Sampler) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

// Throughput converts a timed loop into MB/s, with 1 MB = 1,000,000 bytes.
func Throughput(size, count, loopCount int, elapsed time.Duration) float64 {
	return float64(size) * float64(count) * float64(loopCount) / elapsed.Seconds() / 1e6
}
