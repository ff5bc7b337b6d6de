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
	"sync/atomic"
	"unsafe"
)

// prefetchDistance is how far ahead of the copy cursor the prefetching
// kernels touch the source, in bytes.
const prefetchDistance = 512

// touched keeps the prefetch loads of the generic kernels observable.
var touched atomic.Int64

// Generic returns the portable Go kernels in report order.
func Generic() []Kernel {
	return []Kernel{
		{Name: "Go copy backwards", Func: CopyBackwards},
		{Name: "Go copy", Func: Copy},
		{Name: "Go copy prefetched (32 bytes step)", Func: CopyPrefetched32},
		{Name: "Go copy prefetched (64 bytes step)", Func: CopyPrefetched64},
		{Name: "Go 2-pass copy", Func: Copy, TwoPass: true},
		{Name: "Go 2-pass copy prefetched (32 bytes step)", Func: CopyPrefetched32, TwoPass: true},
		{Name: "Go 2-pass copy prefetched (64 bytes step)", Func: CopyPrefetched64, TwoPass: true},
		{Name: "Go fill", Func: Fill},
	}
}

// Builtin returns the kernels backed by the Go runtime.
func Builtin() []Kernel {
	return []Kernel{
		{Name: "builtin copy", Func: BuiltinCopy},
		{Name: "builtin fill", Func: BuiltinFill},
	}
}

// Copy moves 64-byte blocks front to back.
func Copy(dst, src []int64, size int) {
	n := size / 8
	d, s := dst[:n], src[:n]
	i := 0
	for ; i+8 <= n; i += 8 {
		*(*[8]int64)(d[i:]) = *(*[8]int64)(s[i:])
	}
	for ; i < n; i++ {
		d[i] = s[i]
	}
}

// CopyBackwards moves 64-byte blocks back to front.
func CopyBackwards(dst, src []int64, size int) {
	n := size / 8
	d, s := dst[:n], src[:n]
	i := n
	for ; i%8 != 0; i-- {
		d[i-1] = s[i-1]
	}
	for i -= 8; i >= 0; i -= 8 {
		*(*[8]int64)(d[i:]) = *(*[8]int64)(s[i:])
	}
}

// CopyPrefetched32 is Copy with a source touch every 32 bytes,
// prefetchDistance ahead of the cursor.
func CopyPrefetched32(dst, src []int64, size int) {
	copyPrefetched(dst, src, size, 32)
}

// CopyPrefetched64 is Copy with a source touch every 64 bytes.
func CopyPrefetched64(dst, src []int64, size int) {
	copyPrefetched(dst, src, size, 64)
}

func copyPrefetched(dst, src []int64, size, step int) {
	n := size / 8
	d, s := dst[:n], src[:n]
	stepWords := step / 8
	ahead := prefetchDistance / 8
	var t int64
	i := 0
	for ; i+8 <= n; i += 8 {
		for p := i + ahead; p < i+8+ahead && p < n; p += stepWords {
			t ^= s[p]
		}
		*(*[8]int64)(d[i:]) = *(*[8]int64)(s[i:])
	}
	for ; i < n; i++ {
		d[i] = s[i]
	}
	touched.Store(t)
}

// Fill writes src[0] into every word of dst.
func Fill(dst, src []int64, size int) {
	n := size / 8
	d := dst[:n]
	v := src[0]
	block := [8]int64{v, v, v, v, v, v, v, v}
	i := 0
	for ; i+8 <= n; i += 8 {
		*(*[8]int64)(d[i:]) = block
	}
	for ; i < n; i++ {
		d[i] = v
	}
}

// BuiltinCopy uses the copy builtin, which lowers to runtime.memmove.
func BuiltinCopy(dst, src []int64, size int) {
	n := size / 8
	copy(dst[:n], src[:n])
}

// BuiltinFill fills dst with the low byte of src[0], doubling the filled
// prefix with copy until the buffer is full.
func BuiltinFill(dst, src []int64, size int) {
	if size <= 0 {
		return
	}
	b := bytesOf(dst, size)
	b[0] = byte(src[0])
	for filled := 1; filled < len(b); filled *= 2 {
		copy(b[filled:], b[:filled])
	}
}

// bytesOf views the first size bytes of s.
func bytesOf(s []int64, size int) []byte {
	_ = s[(size-1)/8]
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), size)
}
