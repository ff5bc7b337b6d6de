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

// Notes printed under the section banners.
var (
	BandwidthNotes = []string{
		"Note 1: 1MB = 1000000 bytes",
		"Note 2: Results for 'copy' tests show how many bytes can be copied per second (adding together read and written bytes would have provided twice higher numbers)",
		"Note 3: 2-pass copy means that we are using a small temporary buffer to first fetch data into it, and only then write it to the destination (source -> L1 cache, L1 cache -> destination)",
		"Note 4: If sample standard deviation exceeds 0.1%, it is shown in brackets",
	}

	LatencyNotes = []string{
		"Average time is measured for random memory accesses in the buffers of different sizes. The larger is the buffer, the more significant are relative contributions of TLB, L1/L2 cache misses and SDRAM accesses. For extremely large buffer sizes we are expecting to see page table walk with several requests to SDRAM for almost every memory access.",
		"Note 1: All the numbers are representing extra time, which needs to be added to L1 cache latency. The cycle timings for L1 cache latency can be usually found in the processor documentation.",
		"Note 2: Dual random read means that we are simultaneously performing two independent memory accesses at a time. In the case if the memory subsystem can't handle multiple outstanding requests, dual random read has the same timings as two single reads performed one after another.",
	}
)
