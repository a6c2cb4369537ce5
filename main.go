// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad
//
// cloneforge - clone-mode amateur radio programmer
//
// Entry point for the cloneforge CLI. Command definitions live in
// package cmd.

package main

import (
	"fmt"
	"os"

	"github.com/kb9vty/cloneforge/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
