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

// Package latency measures random-access read latency across working-set
// sizes.
//
// The generators chase pseudo-random addresses through a zeroed buffer. Every
// byte read is folded back into the generator state, so the next address
// depends on the previous load and the CPU can neither prefetch it nor
// overlap it with the one before. Because the buffer is all zeros the address
// sequence itself is unaffected by the loads.
package latency

import "sync/atomic"

// Sink receives the final state of every generator run the Engine times.
// Publishing it keeps the whole chain of reads observable.
var Sink atomic.Uint32

// Generator performs count dependent reads from buf, restricted to the first
// 1<<nbits bytes, and returns the final generator state.
type Generator func(buf []byte, count int, nbits uint) uint32

func lcg(seed uint32) uint32 {
	return seed*1103515245 + 12345
}

// nextSingle advances seed by three draws and assembles an address from
// overlapping bit ranges of them, spreading entropy over 31 address bits.
func nextSingle(seed uint32) (uint32, uint32) {
	seed = lcg(seed)
	v := (seed >> 16) & 0xFF
	seed = lcg(seed)
	v |= (seed >> 8) & 0xFF00
	seed = lcg(seed)
	v |= seed & 0x7FFF0000
	return seed, v
}

// nextDual advances seed by five draws and returns two masked addresses. v1
// is xored with v2 so the pair is not correlated.
func nextDual(seed, mask uint32) (uint32, uint32, uint32) {
	seed = lcg(seed)
	v1 := (seed >> 8) & 0xFF00
	seed = lcg(seed)
	v2 := (seed >> 8) & 0xFF00
	seed = lcg(seed)
	v1 |= seed & 0x7FFF0000
	seed = lcg(seed)
	v2 |= seed & 0x7FFF0000
	seed = lcg(seed)
	v1 |= (seed >> 16) & 0xFF
	v2 |= seed >> 24
	v2 &= mask
	v1 ^= v2
	return seed, v1 & mask, v2
}

// RandomRead performs count single dependent reads. 1<<nbits must not exceed
// len(buf).
//
//go:noinline
func RandomRead(buf []byte, count int, nbits uint) uint32 {
	mask := uint32(1)<<nbits - 1
	_ = buf[mask]
	var seed, v uint32
	for ; count > 0; count-- {
		seed, v = nextSingle(seed)
		seed |= uint32(buf[v&mask])
	}
	return seed
}

// RandomDualRead performs count iterations of two independent reads each.
// Both results feed the next iteration's state. 1<<nbits must not exceed
// len(buf).
//
//go:noinline
func RandomDualRead(buf []byte, count int, nbits uint) uint32 {
	mask := uint32(1)<<nbits - 1
	_ = buf[mask]
	var seed, v1, v2 uint32
	for ; count > 0; count-- {
		seed, v1, v2 = nextDual(seed, mask)
		seed |= uint32(buf[v2])
		seed += uint32(buf[v1])
	}
	return seed
}
