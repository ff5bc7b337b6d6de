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

// Package kernel provides the copy and fill routines whose throughput the
// bandwidth suite measures.
//
// Every kernel shares one calling convention, Func. Copy kernels transfer
// size bytes from src to dst. Fill kernels write size bytes of dst using
// src[0] as the infill value and ignore the rest of src.
//
// # Kernel Sets
//
//   - Generic: portable Go reference kernels, available everywhere
//   - Builtin: the runtime's own memmove and a byte fill
//   - Registry: assembly kernels for the running CPU, chosen with
//     golang.org/x/sys/cpu feature flags
//
// Setting MEMBENCH_NO_ASM=1, or building with the noasm tag, empties the
// registry so only portable code is measured.
package kernel
