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

// Package main prints the CPU features that decide which membench kernels
// are available on this machine.
package main

import (
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sys/cpu"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ajroetker/go-membench/membench/kernel"
)

func main() {
	fmt.Printf("GOOS: %s\n", runtime.GOOS)
	fmt.Printf("GOARCH: %s\n", runtime.GOARCH)
	fmt.Printf("NumCPU: %d\n", runtime.NumCPU())
	fmt.Printf("Page size: %d bytes\n", os.Getpagesize())
	fmt.Println()

	fmt.Printf("Kernel dispatch: %s\n", kernel.CurrentName())
	fmt.Printf("%s set: %v\n", kernel.NoAsmEnvVar, kernel.NoAsmEnv())
	fmt.Println()

	switch runtime.GOARCH {
	case "arm64":
		printARM64Features()
	case "amd64":
		printAMD64Features()
	}
	fmt.Println()

	title := cases.Title(language.English)
	for _, g := range []struct {
		name    string
		kernels []kernel.Kernel
	}{
		{"portable kernels", append(kernel.Generic(), kernel.Builtin()...)},
		{"accelerated kernels", kernel.Registry()},
	} {
		fmt.Printf("=== %s (%d) ===\n", title.String(g.name), len(g.kernels))
		for _, k := range g.kernels {
			fmt.Printf("  %s\n", k.Name)
		}
	}
}

func printARM64Features() {
	fmt.Println("=== golang.org/x/sys/cpu.ARM64 ===")
	fmt.Printf("  HasASIMD:   %v (LD1/ST1 copy)\n", cpu.ARM64.HasASIMD)
	fmt.Printf("  HasFP:      %v\n", cpu.ARM64.HasFP)
	fmt.Printf("  HasSVE:     %v (not used)\n", cpu.ARM64.HasSVE)
	fmt.Printf("  HasDCPOP:   %v\n", cpu.ARM64.HasDCPOP)
	fmt.Printf("  HasATOMICS: %v\n", cpu.ARM64.HasATOMICS)
}

func printAMD64Features() {
	fmt.Println("=== golang.org/x/sys/cpu.X86 ===")
	fmt.Printf("  HasERMS:     %v (REP MOVSB copy)\n", cpu.X86.HasERMS)
	fmt.Printf("  HasSSE2:     %v (PREFETCHNTA copy)\n", cpu.X86.HasSSE2)
	fmt.Printf("  HasAVX:      %v (nontemporal copy)\n", cpu.X86.HasAVX)
	fmt.Printf("  HasAVX2:     %v (nontemporal fill)\n", cpu.X86.HasAVX2)
	fmt.Printf("  HasAVX512F:  %v (not used)\n", cpu.X86.HasAVX512F)
}
