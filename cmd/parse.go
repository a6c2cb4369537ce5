// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kb9vty/cloneforge/pkg/driver"
	"github.com/kb9vty/cloneforge/pkg/orchestrator"
	"github.com/kb9vty/cloneforge/pkg/radios"
)

var parseCmd = &cobra.Command{
	Use:   "parse <input-file>",
	Short: "Decode a saved file envelope's channel table and print it as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		image, desc, err := orchestrator.LoadFile(args[0])
		if err != nil {
			return err
		}

		id := driver.RadioID(radioID)
		if id == "" {
			id = desc.ID
		}

		drv, err := radios.Select(id)
		if err != nil {
			return err
		}
		channels, err := drv.DecodeChannels(image)
		if err != nil {
			return fmt.Errorf("cmd: decode channels: %w", err)
		}

		nonEmpty := channels[:0:0]
		for _, ch := range channels {
			if !ch.IsEmpty() {
				nonEmpty = append(nonEmpty, ch)
			}
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(nonEmpty)
	},
}
