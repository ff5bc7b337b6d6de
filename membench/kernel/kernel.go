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

import (
	"os"
	"strconv"
)

// Func copies or fills size bytes. dst and src must be 8-byte aligned, hold at
// least size bytes, and must not overlap.
type Func func(dst, src []int64, size int)

// Kernel describes one measurable routine.
type Kernel struct {
	// Name is the row label printed in the report.
	Name string
	// Func is the routine itself.
	Func Func
	// TwoPass selects the staged protocol: every block is first copied from
	// the source into a small staging buffer and from there to the destination.
	TwoPass bool
}

// NoAsmEnvVar names the environment variable that disables the accelerated
// kernels when set to a true value.
const NoAsmEnvVar = "MEMBENCH_NO_ASM"

// NoAsmEnv reports whether NoAsmEnvVar requests portable kernels only.
func NoAsmEnv() bool {
	v, ok := os.LookupEnv(NoAsmEnvVar)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}
