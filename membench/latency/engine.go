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

package latency

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ajroetker/go-membench/membench"
	"github.com/ajroetker/go-membench/membench/alloc"
	"github.com/ajroetker/go-membench/membench/report"
)

// Baseline is the generator overhead measured without meaningful memory
// traffic.
type Baseline struct {
	Single time.Duration
	Dual   time.Duration
}

// Point is the latency measured for one working-set size.
type Point struct {
	Size int
	// Single and Dual are the minimum net times of one generator call.
	Single time.Duration
	Dual   time.Duration
	// SingleNs and DualNs are per-access latencies in nanoseconds.
	SingleNs float64
	DualNs   float64
	Trials   int
}

// Engine runs the latency sweep.
type Engine struct {
	Count      int
	MaxRepeats int
	Clock      membench.Clock
	Logger     *slog.Logger
	Single     Generator
	Dual       Generator
	// Alloc provides the private scratch buffer of a sweep.
	Alloc func(size int) (*alloc.Pool, error)
	// Out receives the table; nil disables printing.
	Out *report.Printer
}

// NewEngine returns an Engine configured from cfg that prints to w.
func NewEngine(cfg *membench.Config, w io.Writer) *Engine {
	return &Engine{
		Count:      cfg.LatencyCount,
		MaxRepeats: cfg.MaxRepeats,
		Clock:      membench.NewMonotonicClock(),
		Logger:     slog.Default(),
		Single:     RandomRead,
		Dual:       RandomDualRead,
		Alloc:      alloc.Scratch,
		Out:        report.New(w, ""),
	}
}

// Sweep allocates a zeroed scratch buffer of size bytes, calibrates the
// baseline and measures every power-of-two working set up to size. Each row
// is printed as soon as it is measured. The buffer is released before Sweep
// returns. An allocation failure aborts the sweep before anything is printed.
func (e *Engine) Sweep(size int) ([]Point, error) {
	pool, err := e.Alloc(size)
	if err != nil {
		return nil, fmt.Errorf("latency scratch buffer: %w", err)
	}
	defer pool.Free()

	buf := pool.Bytes(0)
	// Write every page so reads do not all hit the shared zero page.
	clear(buf)

	base := e.Calibrate(buf)
	if e.Out != nil {
		e.Out.LatencyHeader()
	}

	var points []Point
	for nbits := uint(1); 1<<nbits <= len(buf); nbits++ {
		p := e.Measure(buf, nbits, base)
		if e.Out != nil {
			e.Out.LatencyRow(p.Size, p.SingleNs, p.DualNs)
		}
		points = append(points, p)
	}
	return points, nil
}

// Calibrate times both generators over the smallest working set MaxRepeats
// times and keeps the fastest run of each.
func (e *Engine) Calibrate(buf []byte) Baseline {
	var b Baseline
	for n := 0; n < e.MaxRepeats; n++ {
		t := e.time(e.Single, buf, 1)
		if n == 0 || t < b.Single {
			b.Single = t
		}
		t = e.time(e.Dual, buf, 1)
		if n == 0 || t < b.Dual {
			b.Dual = t
		}
	}
	e.logger().Debug("latency baseline", "single", b.Single, "dual", b.Dual)
	return b
}

// Measure times both generators over a working set of 1<<nbits bytes and
// returns the minimum time net of base.
func (e *Engine) Measure(buf []byte, nbits uint, base Baseline) Point {
	var xs, ys membench.Stats
	for n := 0; n < e.MaxRepeats; n++ {
		xs.Add(net(e.time(e.Single, buf, nbits), base.Single).Seconds())
		ys.Add(net(e.time(e.Dual, buf, nbits), base.Dual).Seconds())
		if xs.Converged(xs.Min) && ys.Converged(ys.Min) {
			break
		}
	}

	p := Point{
		Size:   1 << nbits,
		Single: secondsToDuration(xs.Min),
		Dual:   secondsToDuration(ys.Min),
		Trials: xs.N,
	}
	p.SingleNs = xs.Min * 1e9 / float64(e.Count)
	p.DualNs = ys.Min * 1e9 / float64(e.Count)

	e.logger().Debug("latency point",
		"size", p.Size,
		"trials", p.Trials,
		"single_stddev", xs.StdDev(),
		"dual_stddev", ys.StdDev())
	return p
}

func (e *Engine) time(g Generator, buf []byte, nbits uint) time.Duration {
	t0 := e.Clock.Now()
	seed := g(buf, e.Count, nbits)
	t1 := e.Clock.Now()
	Sink.Store(seed)
	return t1 - t0
}

func (e *Engine) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.Default()
	}
	return e.Logger
}

// net subtracts the baseline, clamping at zero.
func net(t, base time.Duration) time.Duration {
	return max(t-base, 0)
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
