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

// Package report writes the plain-text report of a membench run.
//
// Numbers are printed through golang.org/x/text/message so large values carry
// digit grouping. Nothing is written anywhere but the supplied io.Writer.
package report

import (
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const bannerWidth = 74

// Printer formats report lines.
type Printer struct {
	w      io.Writer
	p      *message.Printer
	indent string
}

// New returns a Printer writing to w. Bandwidth rows and separators are
// prefixed with indent.
func New(w io.Writer, indent string) *Printer {
	return &Printer{
		w:      w,
		p:      message.NewPrinter(language.English),
		indent: indent,
	}
}

// Printf writes a formatted, localized line fragment.
func (r *Printer) Printf(format string, args ...any) {
	r.p.Fprintf(r.w, format, args...)
}

// Title prints the program line.
func (r *Printer) Title(version string) {
	r.Printf("membench v%s (simple benchmark for memory throughput and latency)\n", version)
}

// Banner prints a boxed section heading followed by its notes. Notes longer
// than the box are wrapped on word boundaries.
func (r *Printer) Banner(title string, notes ...string) {
	rule := strings.Repeat("=", bannerWidth)
	r.Printf("\n%s\n", rule)
	r.boxLine(title)
	for _, note := range notes {
		r.boxLine("")
		for _, line := range wrap(note, bannerWidth-6) {
			r.boxLine(line)
		}
	}
	r.Printf("%s\n\n", rule)
}

func (r *Printer) boxLine(s string) {
	// Banner text is printed verbatim, not through the localizing printer.
	io.WriteString(r.w, "== "+s+strings.Repeat(" ", max(0, bannerWidth-6-len(s)))+" ==\n")
}

// BandwidthRow prints one kernel result. The deviation is shown only when
// showDev is set.
func (r *Printer) BandwidthRow(label string, mbps, devPercent float64, showDev bool) {
	if showDev {
		r.Printf("%s%-52s : %8.1f MB/s (%.1f%%)\n", r.indent, label, mbps, devPercent)
		return
	}
	r.Printf("%s%-52s : %8.1f MB/s\n", r.indent, label, mbps)
}

// Separator prints the divider between kernel groups.
func (r *Printer) Separator() {
	r.Printf("%s---\n", r.indent)
}

// LatencyHeader prints the column legend of the latency table.
func (r *Printer) LatencyHeader() {
	r.Printf("block size : read access time (single random read / dual random read)\n")
}

// LatencyRow prints the per-access latency for one working-set size.
func (r *Printer) LatencyRow(size int, singleNs, dualNs float64) {
	r.Printf("%10d : %6.1f ns  /  %6.1f ns\n", size, singleNs, dualNs)
}

func wrap(s string, width int) []string {
	var lines []string
	var cur strings.Builder
	for _, word := range strings.Fields(s) {
		if cur.Len() > 0 && cur.Len()+1+len(word) > width {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(word)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
