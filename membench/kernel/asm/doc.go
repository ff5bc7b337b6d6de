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

// Package asm holds hand-written copy and fill loops for the kernel registry.
//
// Every exported function has the kernel.Func signature. The assembly bodies
// work on whole 64-byte blocks; the Go wrappers finish any tail in Go.
// Callers must check CPU features before use; this package does no detection.
package asm
