// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kb9vty/cloneforge/pkg/driver"
	"github.com/kb9vty/cloneforge/pkg/orchestrator"
	"github.com/kb9vty/cloneforge/pkg/sessionwire"
)

var downloadCmd = &cobra.Command{
	Use:   "download <output-file>",
	Short: "Download the radio's memory image and save it as a file envelope",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		if portName == "" {
			return fmt.Errorf("cmd: download requires --port")
		}
		if radioID == "" {
			return fmt.Errorf("cmd: download requires --radio (radio-k or radio-b)")
		}
		id := driver.RadioID(radioID)
		outPath := args[0]

		events := startEventsServer(eventsAddr)

		var savedErr error
		err := runWithProgress("download", func(ctx context.Context, progress driver.ProgressFunc) error {
			combined := progress
			if events != nil {
				combined = func(done, total int, msg string) {
					progress(done, total, msg)
					events.Progress(sessionwire.ProgressEvent{RadioID: string(id), Done: done, Total: total, Message: msg})
				}
			}
			image, err := orchestrator.Download(ctx, id, portName, combined)
			if err != nil {
				return err
			}
			savedErr = orchestrator.SaveFile(outPath, image, id)
			return savedErr
		})
		if err != nil {
			return err
		}
		fmt.Printf("saved %s\n", outPath)
		return nil
	},
}
