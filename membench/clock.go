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

package membench

import "time"

// Clock is a monotonic time source.
type Clock interface {
	Now() time.Duration
}

// MonotonicClock reads the runtime's monotonic clock relative to the moment
// it was created.
type MonotonicClock struct {
	origin time.Time
}

// NewMonotonicClock returns a Clock starting at zero.
func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{origin: time.Now()}
}

// Now returns the time elapsed since the clock was created.
func (c *MonotonicClock) Now() time.Duration {
	return time.Since(c.origin)
}
