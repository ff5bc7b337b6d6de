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

//go:build amd64 && !noasm

package kernel

import (
	"golang.org/x/sys/cpu"

	"github.com/ajroetker/go-membench/membench/kernel/asm"
)

var currentName = detectName()

func detectName() string {
	switch {
	case cpu.X86.HasAVX2:
		return "avx2"
	case cpu.X86.HasAVX:
		return "avx"
	default:
		// SSE2 is baseline for amd64.
		return "sse2"
	}
}

func candidates() []candidate {
	return []candidate{
		{Kernel{Name: "x86 REP MOVSB copy", Func: asm.CopyERMS}, func() bool { return cpu.X86.HasERMS }},
		{Kernel{Name: "x86 REP MOVSB 2-pass copy", Func: asm.CopyERMS, TwoPass: true}, func() bool { return cpu.X86.HasERMS }},
		{Kernel{Name: "SSE2 copy prefetched (PREFETCHNTA)", Func: asm.CopySSE2Prefetch}, always},
		{Kernel{Name: "SSE2 2-pass copy prefetched (PREFETCHNTA)", Func: asm.CopySSE2Prefetch, TwoPass: true}, always},
		{Kernel{Name: "AVX nontemporal copy", Func: asm.CopyAVXNT}, func() bool { return cpu.X86.HasAVX }},
		{Kernel{Name: "x86 REP STOSQ fill", Func: asm.FillSTOSQ}, always},
		{Kernel{Name: "AVX2 nontemporal fill", Func: asm.FillAVX2NT}, func() bool { return cpu.X86.HasAVX2 }},
	}
}
