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

package main

import (
	"github.com/spf13/cobra"

	"github.com/ajroetker/go-membench/membench/kernel"
	"github.com/ajroetker/go-membench/membench/report"
)

func newKernelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kernels",
		Short: "List the kernels the bandwidth suite would run on this machine",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			p := report.New(cmd.OutOrStdout(), "")
			p.Printf("dispatch: %s\n", kernel.CurrentName())
			listKernels(p, "generic", kernel.Generic())
			listKernels(p, "builtin", kernel.Builtin())
			if kernel.NoAsmEnv() {
				p.Printf("accelerated: disabled by %s\n", kernel.NoAsmEnvVar)
				return
			}
			listKernels(p, "accelerated", kernel.Registry())
		},
	}
}

func listKernels(p *report.Printer, group string, ks []kernel.Kernel) {
	p.Printf("%s:\n", group)
	for _, k := range ks {
		protocol := "direct"
		if k.TwoPass {
			protocol = "2-pass"
		}
		p.Printf("  %-52s %s\n", k.Name, protocol)
	}
}
