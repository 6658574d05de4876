// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

// SchemaInitializer interface creates the tables of the latest schema
// version in an existing (empty) database schema and fills them with
// the initial data. Each implementation contains the relevant database
// transaction, so its methods do not need to take it as an argument.
type SchemaInitializer interface {
	// InitDevSchema creates tables and fills them with development
	// suitable data, i.e., company settings, a sample fleet, a few
	// clients, and an administrator user.
	InitDevSchema(ctx context.Context) error

	// InitProdSchema creates tables and fills them with production
	// suitable data, i.e., the default company settings alone.
	InitProdSchema(ctx context.Context) error
}

// Schema interface presents expectations from a repository which allows
// database schema and roles management. This repository creates schema
// and grant relevant privileges on them, so they may be filled by
// tables during the initialization or queried during other use cases.
type Schema interface {
	// Conn takes a Conn interface instance, unwraps it as required,
	// and returns a SchemaConnQueryer interface which (with access to
	// the implementation-dependent connection object) can create or
	// drop schema or manage database roles.
	Conn(Conn) SchemaConnQueryer

	// Tx takes a Tx interface instance, unwraps it as required,
	// and returns a SchemaTxQueryer interface which (with access to the
	// implementation-dependent transaction object) can manage database
	// roles, change their passwords, or perform schema-level management
	// operations.
	Tx(Tx) SchemaTxQueryer
}

// SchemaConnQueryer interface lists all operations which may be taken
// with regards to database schema having an open connection with the
// auto-committed transactions.
type SchemaConnQueryer interface {
	SchemaQueryer
}

// SchemaTxQueryer interface lists all operations which may be taken
// with regards to database schema having an ongoing transaction.
type SchemaTxQueryer interface {
	SchemaQueryer

	// ChangePasswords updates the passwords of the given roles
	// in the current transaction. The roles and passwords slices must
	// have the same number of entries, so they can be used in pair.
	// The given roles may be suffixed automatically too, based on
	// this transaction queryer settings.
	ChangePasswords(
		ctx context.Context, roles []Role, passwords []string,
	) error
}

// SchemaQueryer interface lists common operations which may be taken
// with regards to database schema having either a connection or open
// transaction at hand.
type SchemaQueryer interface {
	// DropIfExists drops the `schema` schema with cascading if it
	// exists. If `schema` does not exist, a nil error will be returned
	// without any change.
	//
	// Caller is responsible to pass a trusted schema name string.
	DropIfExists(ctx context.Context, schema string) error

	// CreateSchema tries to create the `schema` schema.
	// There must be no other schema with the `schema` name, otherwise,
	// this operation will fail.
	//
	// Caller is responsible to pass a trusted schema name string.
	CreateSchema(ctx context.Context, schema string) error

	// CreateRoleIfNotExists creates the `role` role with the login
	// option if it does not exist right now. No password is set, the
	// ChangePasswords method may be used for that purpose.
	//
	// The `role` role name may be suffixed automatically based on
	// this schema queryer settings.
	CreateRoleIfNotExists(ctx context.Context, role Role) error

	// GrantPrivileges grants ALL privileges on the `schema` schema
	// to the `role` role, so it may create or access tables in that
	// schema and run relevant queries.
	GrantPrivileges(ctx context.Context, schema string, role Role) error

	// SetSearchPath alters the given database role and sets its default
	// search_path to the given schema name alone.
	SetSearchPath(ctx context.Context, schema string, role Role) error
}
