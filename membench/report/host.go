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

package report

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// Host describes the machine a run executes on.
type Host struct {
	CPUModel    string
	LogicalCPUs int
	Platform    string
	Kernel      string
	Arch        string
	Dispatch    string
	TotalMemory uint64
	AvailMemory uint64
}

// DetectHost gathers host details. Fields that cannot be read are left at
// their zero value and the failures are joined into the returned error.
func DetectHost(ctx context.Context, dispatch string) (Host, error) {
	h := Host{
		Arch:        runtime.GOARCH,
		Dispatch:    dispatch,
		LogicalCPUs: runtime.NumCPU(),
	}
	var errs []error

	if infos, err := cpu.InfoWithContext(ctx); err != nil {
		errs = append(errs, fmt.Errorf("cpu info: %w", err))
	} else if len(infos) > 0 {
		h.CPUModel = infos[0].ModelName
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err != nil {
		errs = append(errs, fmt.Errorf("virtual memory: %w", err))
	} else {
		h.TotalMemory = vm.Total
		h.AvailMemory = vm.Available
	}

	if hi, err := host.InfoWithContext(ctx); err != nil {
		errs = append(errs, fmt.Errorf("host info: %w", err))
	} else {
		h.Platform = hi.Platform + " " + hi.PlatformVersion
		h.Kernel = hi.KernelVersion
	}

	return h, errors.Join(errs...)
}

// AvailableMemory returns the memory the OS reports as available to new
// allocations.
func AvailableMemory(ctx context.Context) (uint64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, err
	}
	return vm.Available, nil
}

// Host prints the machine summary.
func (r *Printer) Host(h Host) {
	model := h.CPUModel
	if model == "" {
		model = "unknown"
	}
	r.Printf("CPU      : %s (%d logical, %s, kernels: %s)\n", model, h.LogicalCPUs, h.Arch, h.Dispatch)
	if h.Platform != "" {
		r.Printf("OS       : %s (kernel %s)\n", h.Platform, h.Kernel)
	}
	if h.TotalMemory > 0 {
		r.Printf("Memory   : %d MiB total, %d MiB available\n", h.TotalMemory>>20, h.AvailMemory>>20)
	}
}
