// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kb9vty/cloneforge/pkg/driver"
	"github.com/kb9vty/cloneforge/pkg/radios"
)

var (
	// Serial connection flags, shared by every command that talks to a
	// radio over the wire.
	portName string
	radioID  string

	// filePath is not bound to any flag; parse, download and upload take
	// their file as a positional argument.
	filePath string

	// serve-events flags.
	eventsAddr string
)

var rootCmd = &cobra.Command{
	Use:   "cloneforge",
	Short: "Clone-mode programmer for Radio-K and Radio-B handhelds",
	Long: `cloneforge drives the clone-mode serial protocol amateur radio
handhelds expose for full-memory-image programming: download a radio's
image, edit its channels, and upload the result back.

Two radio families are supported, selected with --radio:
  radio-k   mid-session baud switch, bank-addressed channel table
  radio-b   fixed baud, identity-header file envelope

Progress from a running download/upload can be fanned out over WebSocket
with that command's --events-addr flag for a separate UI to watch.`,
	Version: "1.0.0",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port device")
	rootCmd.PersistentFlags().StringVarP(&radioID, "radio", "r", "", "Radio family: radio-k or radio-b (auto-detected from file size when omitted)")

	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(listRadiosCmd)
	rootCmd.AddCommand(serveEventsCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// resolveRadioID returns the --radio flag's value if set, or falls back
// to fileLen-based detection for commands operating on a saved file.
func resolveRadioID(fileLen int) driver.RadioID {
	if radioID != "" {
		return driver.RadioID(radioID)
	}
	return radios.DetectFromSize(fileLen)
}
