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

package asm

//go:noescape
func copyLDP(dst, src *int64, blocks int)

//go:noescape
func copyNEON(dst, src *int64, blocks int)

//go:noescape
func fillSTP(dst *int64, v int64, blocks int)

// CopyLDP copies with post-indexed LDP/STP register pairs.
func CopyLDP(dst, src []int64, size int) {
	n := size / 8
	blocks := n / 8
	if blocks > 0 {
		_, _ = dst[n-1], src[n-1]
		copyLDP(&dst[0], &src[0], blocks)
	}
	copy(dst[blocks*8:n], src[blocks*8:n])
}

// CopyNEON copies with four-register VLD1/VST1.
func CopyNEON(dst, src []int64, size int) {
	n := size / 8
	blocks := n / 8
	if blocks > 0 {
		_, _ = dst[n-1], src[n-1]
		copyNEON(&dst[0], &src[0], blocks)
	}
	copy(dst[blocks*8:n], src[blocks*8:n])
}

// FillSTP fills with STP of src[0] paired with itself.
func FillSTP(dst, src []int64, size int) {
	n := size / 8
	if n == 0 {
		return
	}
	v := src[0]
	blocks := n / 8
	if blocks > 0 {
		_ = dst[n-1]
		fillSTP(&dst[0], v, blocks)
	}
	for i := blocks * 8; i < n; i++ {
		dst[i] = v
	}
}
