// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/momeni/carrental/pkg/core/log"
	"github.com/momeni/carrental/pkg/core/model"
	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Permission events bus actions",
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Log the permission events of the Redis channel",
	Long: `Subscribe to the configured Redis channel and log each
permission event (denied operation, its actor, path, and payload) using
the configured logger until an interrupt signal is received.`,
	RunE: listenEvents,
	Args: cobra.NoArgs,
}

func listenEvents(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(
		cmd.Context(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()
	c, err := load()
	if err != nil {
		return err
	}
	bus := c.Redis.NewBus()
	defer bus.Close()
	log.Info(ctx, "listening for permission events")
	err = bus.Listen(ctx, func(ev *model.PermissionEvent) {
		log.Info(ctx, "permission denied", log.Valuer("event", ev))
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("listening on %q: %w", bus.Channel(), err)
	}
	return nil
}

func init() {
	eventsCmd.AddCommand(listenCmd)
	rootCmd.AddCommand(eventsCmd)
}
