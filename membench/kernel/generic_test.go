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
	"fmt"
	"testing"
)

func pattern(n int) []int64 {
	s := make([]int64, n)
	for i := range s {
		s[i] = int64(i)*0x0101010101 + 7
	}
	return s
}

func TestCopyKernels(t *testing.T) {
	kernels := []struct {
		name string
		f    Func
	}{
		{"Copy", Copy},
		{"CopyBackwards", CopyBackwards},
		{"CopyPrefetched32", CopyPrefetched32},
		{"CopyPrefetched64", CopyPrefetched64},
		{"BuiltinCopy", BuiltinCopy},
	}
	sizes := []int{0, 8, 56, 64, 72, 2048, 2048 + 24, 1 << 16}

	for _, k := range kernels {
		for _, size := range sizes {
			t.Run(fmt.Sprintf("%s/%d", k.name, size), func(t *testing.T) {
				src := pattern(size/8 + 4)
				dst := make([]int64, len(src))
				for i := range dst {
					dst[i] = -1
				}
				k.f(dst, src, size)
				for i := 0; i < size/8; i++ {
					if dst[i] != src[i] {
						t.Fatalf("dst[%d] = %d, want %d", i, dst[i], src[i])
					}
				}
				for i := size / 8; i < len(dst); i++ {
					if dst[i] != -1 {
						t.Fatalf("dst[%d] = %d written past size", i, dst[i])
					}
				}
			})
		}
	}
}

func TestFill(t *testing.T) {
	for _, size := range []int{8, 64, 72, 4096 + 40} {
		dst := make([]int64, size/8+1)
		src := []int64{0x1122334455667788, 99}
		Fill(dst, src, size)
		for i := 0; i < size/8; i++ {
			if dst[i] != src[0] {
				t.Fatalf("size %d: dst[%d] = %#x, want %#x", size, i, dst[i], src[0])
			}
		}
		if dst[size/8] != 0 {
			t.Errorf("size %d: fill wrote past size", size)
		}
	}
}

func TestBuiltinFill(t *testing.T) {
	for _, size := range []int{8, 24, 64, 2048, 1<<16 + 8} {
		dst := make([]int64, size/8+1)
		src := []int64{0x1122334455667777}
		BuiltinFill(dst, src, size)
		const want = int64(0x7777777777777777)
		for i := 0; i < size/8; i++ {
			if dst[i] != want {
				t.Fatalf("size %d: dst[%d] = %#x, want %#x", size, i, dst[i], want)
			}
		}
		if dst[size/8] != 0 {
			t.Errorf("size %d: fill wrote past size", size)
		}
	}
}

func TestGenericOrder(t *testing.T) {
	want := []struct {
		name    string
		twoPass bool
	}{
		{"Go copy backwards", false},
		{"Go copy", false},
		{"Go copy prefetched (32 bytes step)", false},
		{"Go copy prefetched (64 bytes step)", false},
		{"Go 2-pass copy", true},
		{"Go 2-pass copy prefetched (32 bytes step)", true},
		{"Go 2-pass copy prefetched (64 bytes step)", true},
		{"Go fill", false},
	}
	got := Generic()
	if len(got) != len(want) {
		t.Fatalf("len(Generic()) = %d, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Name != w.name || got[i].TwoPass != w.twoPass {
			t.Errorf("Generic()[%d] = {%q, %v}, want {%q, %v}", i, got[i].Name, got[i].TwoPass, w.name, w.twoPass)
		}
		if got[i].Func == nil {
			t.Errorf("Generic()[%d].Func is nil", i)
		}
	}
}

func BenchmarkGeneric(b *testing.B) {
	const size = 1 << 20
	src := pattern(size / 8)
	dst := make([]int64, size/8)
	for _, k := range append(Generic(), Builtin()...) {
		if k.TwoPass {
			continue
		}
		b.Run(k.Name, func(b *testing.B) {
			b.SetBytes(size)
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				k.Func(dst, src, size)
			}
		})
	}
}
