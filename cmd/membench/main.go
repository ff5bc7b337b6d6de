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

// Command membench measures memory throughput of a set of copy and fill
// kernels, then random-access latency over a sweep of working-set sizes.
//
// Usage:
//
//	membench [--config FILE] [--cpu N] [--verbose] [--skip-bandwidth] [--skip-latency]
//	membench kernels
//
// Setting MEMBENCH_NO_ASM=1 restricts the run to the portable kernels.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
