// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kb9vty/cloneforge/pkg/channel"
	"github.com/kb9vty/cloneforge/pkg/driver"
	"github.com/kb9vty/cloneforge/pkg/orchestrator"
	"github.com/kb9vty/cloneforge/pkg/radios"
	"github.com/kb9vty/cloneforge/pkg/sessionwire"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <input-file>",
	Short: "Push a saved file envelope's channels onto the radio",
	Long: `upload reads a file envelope written by download, decodes
its channel table, and writes every non-empty channel back to the radio.

The radio's current image is always downloaded first and edits are
applied to that image before upload, never to a freshly-built empty
one — global settings the channel codec doesn't model would otherwise
be lost.`,
	Args: cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		if portName == "" {
			return fmt.Errorf("cmd: upload requires --port")
		}

		fileImage, desc, err := orchestrator.LoadFile(args[0])
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
		channels, err := drv.DecodeChannels(fileImage)
		if err != nil {
			return fmt.Errorf("cmd: decode source file's channels: %w", err)
		}

		nonEmpty := make([]channel.Channel, 0, len(channels))
		for _, ch := range channels {
			if !ch.IsEmpty() {
				nonEmpty = append(nonEmpty, ch)
			}
		}
		if len(nonEmpty) == 0 {
			return fmt.Errorf("cmd: source file has no non-empty channels to upload")
		}

		events := startEventsServer(eventsAddr)

		return runWithProgress("upload", func(ctx context.Context, progress driver.ProgressFunc) error {
			combined := progress
			if events != nil {
				combined = func(done, total int, msg string) {
					progress(done, total, msg)
					events.Progress(sessionwire.ProgressEvent{RadioID: string(id), Done: done, Total: total, Message: msg})
				}
			}
			return orchestrator.Upload(ctx, id, portName, nonEmpty, combined)
		})
	},
}
