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
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ajroetker/go-membench/membench"
	"github.com/ajroetker/go-membench/membench/kernel"
	"github.com/ajroetker/go-membench/membench/report"
)

// fakeClock only moves when a stub kernel advances it.
type fakeClock struct {
	now time.Duration
}

func (c *fakeClock) Now() time.Duration { return c.now }

// fixedRate returns a kernel that takes exactly the time needed to move size
// bytes at mbps megabytes per second.
func fixedRate(c *fakeClock, mbps float64) kernel.Func {
	return func(dst, src []int64, size int) {
		c.now += time.Duration(float64(size) / (mbps * 1e6) * float64(time.Second))
	}
}

// slowingDown returns a kernel that gets slower on every call, so trials
// never agree with each other.
func slowingDown(c *fakeClock) kernel.Func {
	calls := 0
	return func(dst, src []int64, size int) {
		calls++
		c.now += time.Duration(calls) * time.Millisecond
	}
}

func newTestSampler(c membench.Clock) *Sampler {
	cfg := membench.DefaultConfig()
	s := NewSampler(cfg)
	s.Clock = c
	return s
}

func TestMeasureSyntheticRate(t *testing.T) {
	for _, mbps := range []float64{800, 5000, 23456.7} {
		c := &fakeClock{}
		s := newTestSampler(c)
		k := kernel.Kernel{Name: "synthetic", Func: fixedRate(c, mbps)}

		res := s.Measure(Buffers{}, membench.DefaultSize, k)

		if math.Abs(res.MaxSpeed-mbps)/mbps > 0.01 {
			t.Errorf("MaxSpeed = %.3f, want %.3f within 1%%", res.MaxSpeed, mbps)
		}
		// Identical trials converge as soon as the third one is in.
		if len(res.Trials) != 3 {
			t.Errorf("%v MB/s: len(Trials) = %d, want 3", mbps, len(res.Trials))
		}
		if res.ShowDeviation() {
			t.Errorf("%v MB/s: ShowDeviation() = true for identical trials (s=%g)", mbps, res.StdDev)
		}
	}
}

func TestMeasureTrialFloor(t *testing.T) {
	c := &fakeClock{}
	s := newTestSampler(c)
	res := s.Measure(Buffers{}, membench.DefaultSize, kernel.Kernel{Name: "x", Func: fixedRate(c, 5000)})

	for i, tr := range res.Trials {
		if tr.Elapsed < s.MinTrialTime {
			t.Errorf("trial %d elapsed %v, below floor %v", i, tr.Elapsed, s.MinTrialTime)
		}
		// One more loop would have been unnecessary.
		perLoop := tr.Elapsed / time.Duration(tr.LoopCount)
		if tr.Elapsed-perLoop >= s.MinTrialTime {
			t.Errorf("trial %d ran %d loops, one too many", i, tr.LoopCount)
		}
	}
}

func TestMeasureRoundTrip(t *testing.T) {
	c := &fakeClock{}
	s := newTestSampler(c)
	res := s.Measure(Buffers{}, membench.DefaultSize, kernel.Kernel{Name: "noisy", Func: slowingDown(c)})

	require.NotEmpty(t, res.Trials)
	best := 0.0
	for i, tr := range res.Trials {
		want := float64(res.Size) * float64(res.Count) * float64(tr.LoopCount) / tr.Elapsed.Seconds() / 1e6
		assert.InDelta(t, want, tr.Speed, want*1e-12, "trial %d", i)
		best = max(best, tr.Speed)
	}
	assert.Equal(t, best, res.MaxSpeed)
}

func TestMeasureBoundedWithoutConvergence(t *testing.T) {
	for _, repeats := range []int{1, 2, 3, 10} {
		c := &fakeClock{}
		s := newTestSampler(c)
		s.MaxRepeats = repeats
		res := s.Measure(Buffers{}, 4096, kernel.Kernel{Name: "noisy", Func: slowingDown(c)})
		if len(res.Trials) != repeats {
			t.Errorf("MaxRepeats %d: len(Trials) = %d", repeats, len(res.Trials))
		}
	}
}

func TestMeasureTwoPass(t *testing.T) {
	const size = 64 * 1024
	s := newTestSampler(membench.NewMonotonicClock())
	s.MinTrialTime = time.Millisecond
	s.MaxRepeats = 3

	bufs := Buffers{
		Src: make([]int64, size/8),
		Dst: make([]int64, size/8),
		Tmp: make([]int64, s.BlockSize/8),
	}
	for i := range bufs.Src {
		bufs.Src[i] = int64(i) + 1
	}

	var calls, stagedIn, stagedOut int
	k := kernel.Kernel{
		Name:    "counting 2-pass copy",
		TwoPass: true,
		Func: func(dst, src []int64, n int) {
			calls++
			if n == s.BlockSize {
				if &dst[0] == &bufs.Tmp[0] {
					stagedIn++
				}
				if &src[0] == &bufs.Tmp[0] {
					stagedOut++
				}
			}
			kernel.Copy(dst, src, n)
		},
	}
	res := s.Measure(bufs, size, k)

	require.NotEmpty(t, res.Trials)
	assert.Equal(t, stagedIn, stagedOut, "every staged block must be written back")
	assert.Positive(t, stagedIn)
	// Warm-up runs one full-size call per trial, outside the staged protocol.
	assert.Equal(t, calls, stagedIn+stagedOut+len(res.Trials))
	assert.Equal(t, bufs.Src, bufs.Dst)
}

func TestShowDeviation(t *testing.T) {
	tests := []struct {
		max, s float64
		want   bool
	}{
		{1000, 0, false},
		{1000, 0.99, false},
		{1000, 1, true},
		{1000, 1.01, true},
		{1000, 250, true},
		{0, 0, false},
	}
	for _, tt := range tests {
		r := Result{MaxSpeed: tt.max, StdDev: tt.s}
		if got := r.ShowDeviation(); got != tt.want {
			t.Errorf("ShowDeviation(max=%v, s=%v) = %v, want %v (%.4f%%)", tt.max, tt.s, got, tt.want, r.DeviationPercent())
		}
	}
}

func newTestSuite(t *testing.T, c *fakeClock, registry []kernel.Kernel, f kernel.Func) (*Suite, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	s := NewSuite(membench.DefaultConfig(), registry, &out)
	s.Sampler.Clock = c
	s.Generic = []kernel.Kernel{{Name: "stub copy", Func: f}, {Name: "stub fill", Func: f}}
	s.Builtin = []kernel.Kernel{{Name: "stub builtin", Func: f}}
	return s, &out
}

func TestSuiteEmptyRegistry(t *testing.T) {
	c := &fakeClock{}
	s, out := newTestSuite(t, c, nil, fixedRate(c, 4000))
	results := s.Run(Buffers{})

	require.Len(t, results, 3)
	assert.Equal(t, 1, strings.Count(out.String(), "---\n"), "only the builtin separator")
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "stub copy")
	assert.Contains(t, lines[1], "stub fill")
	assert.Equal(t, " ---", lines[2])
	assert.Contains(t, lines[3], "stub builtin")
}

func TestSuiteRegistryOrder(t *testing.T) {
	c := &fakeClock{}
	reg := []kernel.Kernel{
		{Name: "reg b", Func: fixedRate(c, 100)},
		{Name: "reg a", Func: fixedRate(c, 9000)},
	}
	s, out := newTestSuite(t, c, reg, fixedRate(c, 4000))
	results := s.Run(Buffers{})

	require.Len(t, results, 5)
	assert.Equal(t, 2, strings.Count(out.String(), "---\n"))
	// Printed in registry order, not by speed.
	assert.Equal(t, "reg b", results[3].Label)
	assert.Equal(t, "reg a", results[4].Label)
	assert.Less(t, strings.Index(out.String(), "reg b"), strings.Index(out.String(), "reg a"))
	assert.InDelta(t, 100, results[3].MaxSpeed, 1)
}

func TestSuitePrintsDeviation(t *testing.T) {
	c := &fakeClock{}
	s, out := newTestSuite(t, c, nil, slowingDown(c))
	s.Sampler.MaxRepeats = 4
	results := s.Run(Buffers{})

	for _, r := range results {
		require.True(t, r.ShowDeviation(), "%s: s=%g max=%g", r.Label, r.StdDev, r.MaxSpeed)
	}
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if strings.HasSuffix(line, "---") {
			continue
		}
		assert.Regexp(t, `MB/s \(\d+\.\d%\)$`, line)
	}
}

func TestBandwidthRowFormat(t *testing.T) {
	var out bytes.Buffer
	p := report.New(&out, " ")
	p.BandwidthRow("Go copy", 1234.56, 0.05, false)
	p.BandwidthRow("Go fill", 98.7, 2.34, true)

	num := message.NewPrinter(language.English)
	want := " Go copy" + strings.Repeat(" ", 52-len("Go copy")) + " : " + num.Sprintf("%8.1f", 1234.56) + " MB/s\n" +
		" Go fill" + strings.Repeat(" ", 52-len("Go fill")) + " :     98.7 MB/s (2.3%)\n"
	assert.Equal(t, want, out.String())
}

func TestMeasureRealCopy(t *testing.T) {
	const size = 1 << 20
	s := NewSampler(membench.DefaultConfig())
	s.MinTrialTime = 2 * time.Millisecond
	s.MaxRepeats = 4
	bufs := Buffers{Src: make([]int64, size/8), Dst: make([]int64, size/8), Tmp: make([]int64, s.BlockSize/8)}

	for _, k := range kernel.Generic() {
		res := s.Measure(bufs, size, k)
		if res.MaxSpeed <= 0 || math.IsInf(res.MaxSpeed, 0) {
			t.Errorf("%s: MaxSpeed = %v", k.Name, res.MaxSpeed)
		}
		if n := len(res.Trials); n < 1 || n > s.MaxRepeats {
			t.Errorf("%s: %d trials, want 1..%d", k.Name, n, s.MaxRepeats)
		}
	}
}
