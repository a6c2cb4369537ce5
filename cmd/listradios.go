// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kb9vty/cloneforge/pkg/radios"
)

var listRadiosCmd = &cobra.Command{
	Use:   "list-radios",
	Short: "List the supported radio families and their descriptors",
	RunE: func(c *cobra.Command, args []string) error {
		for _, desc := range radios.List() {
			fmt.Printf("%s\t%s %s\t%d channels\t%d-byte image\n",
				desc.ID, desc.Vendor, desc.Model, desc.ChannelCount, desc.ImageLen)
		}
		return nil
	},
}
