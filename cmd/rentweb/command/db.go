// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import "github.com/spf13/cobra"

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database management actions",
	Long: `Database management actions can be chosen by sub-commands.
For fresh installation in a development or production environment,
the init-dev or init-prod may be used and for moving the records of
the legacy document store into an initialized database, the import
may be used.`,
}

const credsRenewalMessage = `
The admin role credentials are read from the .pgpass file in the
pass-dir directory. New random passwords are generated for both of the
admin and normal roles and written into the .pgpass.new file, then they
are changed in the database, and finally .pgpass.new is moved over the
.pgpass file. If the command is interrupted in between, running it again
will find the working passwords in either of these two files.`

func init() {
	rootCmd.AddCommand(dbCmd)
}
