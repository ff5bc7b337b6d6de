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

//go:build linux

package affinity

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func restore(t *testing.T, cpus []int) {
	t.Helper()
	var set unix.CPUSet
	set.Zero()
	for _, c := range cpus {
		set.Set(c)
	}
	require.NoError(t, unix.SchedSetaffinity(0, &set))
}

func TestPin(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	before, err := Current()
	require.NoError(t, err)
	require.NotEmpty(t, before)
	defer restore(t, before)

	target := before[len(before)-1]
	require.NoError(t, Pin(target))
	after, err := Current()
	require.NoError(t, err)
	assert.Equal(t, []int{target}, after)
}

func TestPinInvalidCPU(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	before, err := Current()
	require.NoError(t, err)
	defer restore(t, before)

	assert.Error(t, Pin(1023))
}
