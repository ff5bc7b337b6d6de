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

// Package alloc hands out page-aligned buffers that do not alias each other
// in the cache.
//
// All buffers of one request live in a single mapping and are released
// together. Each buffer starts at a different offset within its page, so
// equal indices into two buffers never land in the same cache set or trip
// 4K-aliasing stalls.
package alloc

import (
	"errors"
	"fmt"
	"os"
	"unsafe"

	"github.com/samber/lo"
)

// aliasStagger separates the in-page start offsets of consecutive buffers.
const aliasStagger = 1024 + 64

// ErrAllocation is returned when the backing memory cannot be obtained.
var ErrAllocation = errors.New("alloc: allocation failed")

// Pool is one mapping carved into buffers.
type Pool struct {
	mem  []byte
	bufs [][]byte
}

// NonAliased allocates one buffer per size, each a multiple of 8 bytes, in a
// single mapping. Buffer i is at offset i*aliasStagger modulo the page size.
func NonAliased(sizes ...int) (*Pool, error) {
	for _, sz := range sizes {
		if sz <= 0 || sz%8 != 0 {
			return nil, fmt.Errorf("alloc: buffer size %d is not a positive multiple of 8", sz)
		}
	}
	page := os.Getpagesize()
	offsets := lo.Map(sizes, func(_ int, i int) int { return (i * aliasStagger) % page })
	spans := lo.Map(sizes, func(sz int, i int) int { return roundUp(offsets[i]+sz, page) })

	mem, err := mapAnon(lo.Sum(spans))
	if err != nil {
		return nil, err
	}

	p := &Pool{mem: mem}
	base := 0
	for i, sz := range sizes {
		start := base + offsets[i]
		p.bufs = append(p.bufs, mem[start:start+sz:start+sz])
		base += spans[i]
	}
	return p, nil
}

// Scratch allocates a single page-aligned buffer of size bytes.
func Scratch(size int) (*Pool, error) {
	if size <= 0 {
		return nil, fmt.Errorf("alloc: scratch size %d is not positive", size)
	}
	mem, err := mapAnon(roundUp(size, os.Getpagesize()))
	if err != nil {
		return nil, err
	}
	return &Pool{mem: mem, bufs: [][]byte{mem[:size:size]}}, nil
}

// Len returns the number of buffers in the pool.
func (p *Pool) Len() int { return len(p.bufs) }

// Bytes returns buffer i.
func (p *Pool) Bytes(i int) []byte { return p.bufs[i] }

// Int64s returns buffer i viewed as 64-bit words.
func (p *Pool) Int64s(i int) []int64 {
	b := p.bufs[i]
	if len(b) == 0 {
		return nil
	}
	return unsafe.Slice((*int64)(unsafe.Pointer(&b[0])), len(b)/8)
}

// Free releases the mapping. Buffers must not be used afterwards. Calling
// Free more than once is a no-op.
func (p *Pool) Free() error {
	if p.mem == nil {
		return nil
	}
	mem := p.mem
	p.mem, p.bufs = nil, nil
	return unmap(mem)
}

func roundUp(n, to int) int {
	return (n + to - 1) / to * to
}
