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

package kernel

import "github.com/samber/lo"

// candidate is a registry entry guarded by a CPU capability check.
type candidate struct {
	Kernel
	supported func() bool
}

func always() bool { return true }

// Registry returns the assembly kernels usable on the running CPU, in report
// order. The slice is freshly built on every call and may be empty.
func Registry() []Kernel {
	if NoAsmEnv() {
		return nil
	}
	return fromCandidates(candidates())
}

func fromCandidates(cs []candidate) []Kernel {
	usable := lo.Filter(cs, func(c candidate, _ int) bool {
		return c.supported != nil && c.supported()
	})
	return lo.Map(usable, func(c candidate, _ int) Kernel {
		return c.Kernel
	})
}

// CurrentName returns the name of the widest instruction set the registry
// draws kernels from, or "generic" when only portable code runs.
func CurrentName() string {
	if NoAsmEnv() {
		return "generic"
	}
	return currentName
}
