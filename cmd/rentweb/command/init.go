// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/momeni/carrental/pkg/core/usecase/migrationuc"
	"github.com/spf13/cobra"
)

var initDevCmd = &cobra.Command{
	Use:   "init-dev",
	Short: "Initialize database contents with development suitable data",
	Long: `Initialize database contents with development suitable data,
i.e., the company settings, a small fleet, a few clients, and the admin
user which is specified in the seed section of the configuration file
(if the local identity provider is used).
` + credsRenewalMessage + `

The rentweb1 schema is dropped (if it exists) and created again, so
all of its previous contents will be lost.`,
	RunE: initDB((*migrationuc.InitDBUseCase).InitDev),
	Args: cobra.NoArgs,
}

var initProdCmd = &cobra.Command{
	Use:   "init-prod",
	Short: "Initialize database contents with production suitable data",
	Long: `Initialize database contents with production suitable data,
i.e., creating the tables and storing the company settings which are
specified in the seed section of the configuration file.
` + credsRenewalMessage + `

The rentweb1 schema is dropped (if it exists) and created again, so
all of its previous contents will be lost.`,
	RunE: initDB((*migrationuc.InitDBUseCase).InitProd),
	Args: cobra.NoArgs,
}

func initDB(
	action func(*migrationuc.InitDBUseCase, context.Context) error,
) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		c, err := load()
		if err != nil {
			return err
		}
		iduc := migrationuc.NewInitDB(c)
		if err := action(iduc, cmd.Context()); err != nil {
			return fmt.Errorf("initializing DB: %w", err)
		}
		return nil
	}
}

func init() {
	dbCmd.AddCommand(initDevCmd)
	dbCmd.AddCommand(initProdCmd)
}
