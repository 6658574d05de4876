// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/momeni/carrental/pkg/core/log"
	"github.com/momeni/carrental/pkg/core/repo"
	"github.com/momeni/carrental/pkg/core/usecase/migrationuc"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import /path/of/dump.json",
	Short: "Import an export of the legacy document store",
	Long: `Import an export of the legacy document store into an
initialized database. The export is a JSON object with one array per
collection (cars, clients, rentals, payments, inspections, and their
archived_* variants) and an optional settings.company object.
Both of the legacy inspection shapes are accepted and stored in the
normalized form. Records which only exist in the archived_* collections
are imported as archived ones and contract totals and paid amounts are
recomputed from the dates and payments.

The whole import runs in one transaction, so a failure leaves no
partial data behind. Importing the same export again is rejected since
the derived record IDs are stable.`,
	RunE: importDump,
	Args: cobra.ExactArgs(1),
}

func importDump(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	c, err := load()
	if err != nil {
		return err
	}
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening dump: %w", err)
	}
	defer f.Close()
	d, err := migrationuc.ParseDump(f)
	if err != nil {
		return err
	}
	p, err := c.ConnectionPool(ctx, repo.NormalRole)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	iuc := c.NewImportUseCase(p, c.NewAuditUseCase(p))
	report, err := iuc.Import(ctx, d)
	if err != nil {
		return fmt.Errorf("importing %q: %w", args[0], err)
	}
	for _, w := range report.Warnings {
		log.Warn(ctx, w)
	}
	log.Info(
		ctx, "import is completed",
		slog.Int("cars", report.Cars),
		slog.Int("clients", report.Clients),
		slog.Int("rentals", report.Rentals),
		slog.Int("inspections", report.Inspections),
		slog.Int("payments", report.Payments),
		slog.Int("archived", report.Archived),
		slog.Int("warnings", len(report.Warnings)),
	)
	return nil
}

func init() {
	dbCmd.AddCommand(importCmd)
}
