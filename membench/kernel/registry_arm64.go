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

//go:build arm64 && !noasm

package kernel

import (
	"runtime"

	"golang.org/x/sys/cpu"

	"github.com/ajroetker/go-membench/membench/kernel/asm"
)

var currentName = detectName()

func hasASIMD() bool {
	// Feature registers are not readable on darwin; every Apple core has NEON.
	return cpu.ARM64.HasASIMD || runtime.GOOS == "darwin"
}

func detectName() string {
	switch {
	case cpu.ARM64.HasSVE:
		// No SVE kernels yet; SVE parts still run the NEON ones.
		return "neon (sve)"
	case hasASIMD():
		return "neon"
	default:
		return "arm64"
	}
}

func candidates() []candidate {
	return []candidate{
		{Kernel{Name: "ARM LDP/STP copy", Func: asm.CopyLDP}, always},
		{Kernel{Name: "ARM LDP/STP 2-pass copy", Func: asm.CopyLDP, TwoPass: true}, always},
		{Kernel{Name: "NEON LD1/ST1 copy", Func: asm.CopyNEON}, hasASIMD},
		{Kernel{Name: "NEON LD1/ST1 2-pass copy", Func: asm.CopyNEON, TwoPass: true}, hasASIMD},
		{Kernel{Name: "ARM STP fill", Func: asm.FillSTP}, always},
	}
}
