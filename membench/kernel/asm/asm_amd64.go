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

package asm

import "unsafe"

//go:noescape
func copyERMS(dst, src *int64, n int)

//go:noescape
func fillSTOSQ(dst *int64, v int64, n int)

//go:noescape
func copySSE2Prefetch(dst, src *int64, blocks int)

//go:noescape
func copyAVXNT(dst, src *int64, blocks int)

//go:noescape
func fillAVX2NT(dst *int64, v int64, blocks int)

// CopyERMS copies with REP MOVSB. Fast on CPUs advertising ERMS.
func CopyERMS(dst, src []int64, size int) {
	n := size &^ 7
	if n == 0 {
		return
	}
	_, _ = dst[n/8-1], src[n/8-1]
	copyERMS(&dst[0], &src[0], n)
}

// FillSTOSQ fills with REP STOSQ.
func FillSTOSQ(dst, src []int64, size int) {
	n := size &^ 7
	if n == 0 {
		return
	}
	_ = dst[n/8-1]
	fillSTOSQ(&dst[0], src[0], n)
}

// CopySSE2Prefetch copies with 16-byte unaligned moves and a PREFETCHNTA
// 512 bytes ahead of every 64-byte block.
func CopySSE2Prefetch(dst, src []int64, size int) {
	n := size / 8
	blocks := n / 8
	if blocks > 0 {
		_, _ = dst[n-1], src[n-1]
		copySSE2Prefetch(&dst[0], &src[0], blocks)
	}
	copy(dst[blocks*8:n], src[blocks*8:n])
}

// CopyAVXNT copies with 32-byte loads and non-temporal stores, bypassing the
// cache on the write side.
func CopyAVXNT(dst, src []int64, size int) {
	n := size / 8
	head := alignHead(dst[:n], 32)
	copy(dst[:head], src[:head])
	blocks := (n - head) / 8
	if blocks > 0 {
		copyAVXNT(&dst[head], &src[head], blocks)
	}
	tail := head + blocks*8
	copy(dst[tail:n], src[tail:n])
}

// FillAVX2NT fills with a broadcast of src[0] and non-temporal stores.
func FillAVX2NT(dst, src []int64, size int) {
	n := size / 8
	if n == 0 {
		return
	}
	v := src[0]
	head := alignHead(dst[:n], 32)
	for i := 0; i < head; i++ {
		dst[i] = v
	}
	blocks := (n - head) / 8
	if blocks > 0 {
		fillAVX2NT(&dst[head], v, blocks)
	}
	for i := head + blocks*8; i < n; i++ {
		dst[i] = v
	}
}

// alignHead returns how many leading words of s precede the first
// align-byte boundary, capped at len(s).
func alignHead(s []int64, align uintptr) int {
	if len(s) == 0 {
		return 0
	}
	off := uintptr(unsafe.Pointer(&s[0])) % align
	if off == 0 {
		return 0
	}
	return min(int((align-off)/8), len(s))
}
