// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package migrationuc

import (
	"context"

	"github.com/momeni/carrental/pkg/core/repo"
)

// SchemaMajorVersion is the major version of the database schema which
// is created by the InitDBUseCase. The schema is named after it.
const SchemaMajorVersion = 1

// Pool is a database connection pool which has to be closed after use.
type Pool interface {
	repo.Pool

	Close() error
}

// Settings interface represents the expectations of the database
// initialization use case from the configuration settings. It knows
// the target database connection information, may be used as
// a factory for repo.Schema and repo.SchemaInitializer instances, and
// manages the passwords of the database roles.
type Settings interface {
	// ConnectionPool creates a database connection pool for the `r`
	// role using the connection information which are kept in this
	// Settings instance.
	//
	// Password values are kept in files in a specific password dir.
	// Each non-empty and non-commented line of the passwords file
	// should conform with this format:
	//
	//	host:port:dbname:role:password
	//
	// A second temporary passwords file may hold the new passwords
	// of an interrupted renewal. If it was used for establishment of
	// the connection pool, it replaces the main passwords file before
	// returning.
	ConnectionPool(ctx context.Context, r repo.Role) (Pool, error)

	// NewSchemaRepo instantiates a fresh Schema repository. Role names
	// may be suffixed by the settings and the Schema repository adds
	// the same suffix when it creates roles or grants privileges.
	NewSchemaRepo() repo.Schema

	// SchemaInitializer creates a repo.SchemaInitializer instance
	// which wraps the given transaction argument and can be used to
	// create the tables and fill them with development or production
	// suitable data. Nothing is persisted unless tx commits.
	SchemaInitializer(tx repo.Tx) (repo.SchemaInitializer, error)

	// RenewPasswords generates new secure passwords for the given roles
	// and after recording them in a temporary file, will use the change
	// function in order to update the passwords of those roles in the
	// database too. The change function argument should perform the
	// update operation in a transaction which may or may not be
	// committed when RenewPasswords returns. After a successful commit,
	// the returned finalizer moves the temporary passwords file over
	// the main passwords file.
	RenewPasswords(
		ctx context.Context,
		change func(
			ctx context.Context,
			roles []repo.Role,
			passwords []string,
		) error,
		roles ...repo.Role,
	) (finalizer func() error, err error)
}
