// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands of the rentweb
// car-rental back-office. Commands are organized using the cobra
// library. The root (and serve) command starts the web server itself,
// the "db" sub-command initializes a database or imports a legacy
// export into it, and the "events" sub-command follows the permission
// events bus.
//
//	./rentweb [serve] [-c /path/of/config.yaml]   # start web server
//	./rentweb db init-dev [-c /path/of/config.yaml]
//	./rentweb db init-prod [-c /path/of/config.yaml]
//	./rentweb db import /path/of/dump.json [-c /path/of/config.yaml]
//	./rentweb events listen [-c /path/of/config.yaml]
package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/momeni/carrental/pkg/adapter/config"
	"github.com/momeni/carrental/pkg/adapter/restful/gin/routes"
	"github.com/momeni/carrental/pkg/core/log"
	"github.com/momeni/carrental/pkg/core/repo"
	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "rentweb",
	Short: "A car-rental agency back-office service",
	Long: `A car-rental agency back-office service which manages the
fleet (with maintenance and document alerts), the clients, the rental
contracts and their departure and return inspections, the payments
ledger, and the company settings which are printed on contracts.
It serves a REST API (and a websocket live feed of the committed
changes) for the back-office dashboard, keeps an audit trail of all
mutations, and publishes the permission denials on a Redis channel.`,
	RunE:         startWebServer,
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long: `Start the web server on the configured address and serve
the REST API until an interrupt or terminate signal is received.`,
	RunE: startWebServer,
	Args: cobra.NoArgs,
}

// load reads the configuration file and installs the default logger.
func load() (*config.Config, error) {
	c, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	if err := c.Log.Setup(os.Stderr); err != nil {
		return nil, fmt.Errorf("setting up logger: %w", err)
	}
	return c, nil
}

func startWebServer(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(
		cmd.Context(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()
	c, err := load()
	if err != nil {
		return err
	}
	log.Info(
		ctx, "starting rentweb",
		slog.String("config", cfgPath),
		slog.String("address", c.Gin.Address),
		slog.String("auth", c.Auth.Provider),
		slog.Any("token-ttl", c.Auth.TokenTTL),
	)
	p, err := c.ConnectionPool(ctx, repo.NormalRole)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	bus := c.Redis.NewBus()
	defer bus.Close()
	if bus.Enabled() {
		if err := bus.Ping(ctx); err != nil {
			log.Warn(ctx, "events bus is unreachable", log.Err("err", err))
		}
	}
	m := c.Gin.NewMetrics()
	e := c.Gin.NewEngine(m, bus)
	if err = routes.Register(ctx, e, p, c, m); err != nil {
		return fmt.Errorf("registering routes: %w", err)
	}
	srv := &http.Server{
		Addr:              c.Gin.Address,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errs := make(chan error, 1)
	go func() {
		errs <- srv.ListenAndServe()
	}()
	select {
	case err = <-errs:
		return fmt.Errorf("running Gin engine: %w", err)
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down")
	shutdownCtx, cancel := context.WithTimeout(
		context.Background(), 10*time.Second,
	)
	defer cancel()
	err = srv.Shutdown(shutdownCtx)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

// Execute runs the root command and exits with a non-zero code if it
// fails.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(fixConfigPath)
	rootCmd.PersistentFlags().StringVarP(
		&cfgPath, "config", "c", "", "config file path",
	)
	rootCmd.AddCommand(serveCmd)
}

func fixConfigPath() {
	cfgPath = config.Path(cfgPath)
}
