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

//go:build !(linux || darwin)

package alloc

import (
	"os"
	"unsafe"
)

// mapAnon falls back to the Go heap, trimmed to start on a page boundary.
func mapAnon(n int) (b []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			b, err = nil, ErrAllocation
		}
	}()
	page := os.Getpagesize()
	raw := make([]byte, n+page)
	off := int(uintptr(unsafe.Pointer(&raw[0])) % uintptr(page))
	if off != 0 {
		off = page - off
	}
	return raw[off : off+n : off+n], nil
}

func unmap([]byte) error { return nil }
