// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/kb9vty/cloneforge/pkg/broadcaster"
)

func init() {
	serveEventsCmd.Flags().StringVar(&eventsAddr, "addr", ":8377", "Address to listen on for WebSocket event subscribers")
	downloadCmd.Flags().StringVar(&eventsAddr, "events-addr", "", "If set, also serve this download's progress events over WebSocket at this address")
	uploadCmd.Flags().StringVar(&eventsAddr, "events-addr", "", "If set, also serve this upload's progress events over WebSocket at this address")
}

var serveEventsCmd = &cobra.Command{
	Use:   "serve-events",
	Short: "Host a standalone WebSocket feed of session events",
	Long: `serve-events starts an HTTP server with a WebSocket endpoint at
ws://<addr>/events. It is a separate broadcaster from the one download and
upload start with --events-addr, and no download or upload publishes to it;
to watch a clone session's progress, pass --events-addr to that command.`,
	RunE: func(c *cobra.Command, args []string) error {
		addr := eventsAddr
		if !c.Flags().Changed("addr") {
			addr = c.Flags().Lookup("addr").DefValue
		}
		b := broadcaster.New()
		mux := http.NewServeMux()
		mux.Handle("/events", b)
		fmt.Printf("serving session events on ws://%s/events\n", addr)
		return http.ListenAndServe(addr, mux)
	},
}

// startEventsServer launches a broadcaster HTTP server on addr in the
// background, returning it so a command can publish to it directly. It
// does nothing and returns nil when addr is empty.
func startEventsServer(addr string) *broadcaster.Broadcaster {
	if addr == "" {
		return nil
	}
	b := broadcaster.New()
	mux := http.NewServeMux()
	mux.Handle("/events", b)
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			fmt.Printf("events server on %s stopped: %v\n", addr, err)
		}
	}()
	return b
}
