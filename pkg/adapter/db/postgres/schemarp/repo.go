// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package schemarp provides a reification of the repo.Schema interface
// making it possible to create or drop the application schema and to
// manage database user roles. It also provides the
// repo.SchemaInitializer implementation which creates all tables and
// fills them with the initial development or production data.
package schemarp

import (
	"context"

	"github.com/momeni/carrental/pkg/adapter/db/postgres"
	"github.com/momeni/carrental/pkg/core/repo"
	"github.com/momeni/carrental/pkg/core/scram"
)

// Repo represents a schema management repository.
type Repo struct {
	roleSuffix repo.Role
	hasher     scram.Hasher
}

// New instantiates a schema management Repo struct. The roleSuffix
// is appended to all role names (it may be empty) and hasher is used
// for hashing the role passwords before sending them to the DBMS.
func New(roleSuffix repo.Role, hasher scram.Hasher) *Repo {
	return &Repo{roleSuffix: roleSuffix, hasher: hasher}
}

// queryer runs the schema management queries using a *postgres.Conn
// or a *postgres.Tx instance.
type queryer[Q postgres.Queryer] struct {
	q          Q
	roleSuffix repo.Role
}

// Conn unwraps the given repo.Conn instance, expecting to find an
// instance of *postgres.Conn as created by this adapter layer.
// Otherwise, it will panic. Unwrapped connection will be wrapped and
// returned as an instance of repo.SchemaConnQueryer interface, so
// it can be used in the use cases layer without requiring to type
// assert again and again.
func (schema *Repo) Conn(c repo.Conn) repo.SchemaConnQueryer {
	cc := c.(*postgres.Conn)
	return queryer[*postgres.Conn]{q: cc, roleSuffix: schema.roleSuffix}
}

type txQueryer struct {
	queryer[*postgres.Tx]
	hasher scram.Hasher
}

// Tx unwraps the given repo.Tx instance, expecting to find an instance
// of *postgres.Tx as created by this adapter layer. Otherwise, it will
// panic. The returned querier may also change role passwords which
// should become visible only when the transaction commits.
func (schema *Repo) Tx(tx repo.Tx) repo.SchemaTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{
		queryer: queryer[*postgres.Tx]{
			q: tt, roleSuffix: schema.roleSuffix,
		},
		hasher: schema.hasher,
	}
}

func (sq queryer[Q]) DropIfExists(ctx context.Context, schema string) error {
	return DropIfExists(ctx, sq.q, schema)
}

func (sq queryer[Q]) CreateSchema(ctx context.Context, schema string) error {
	return CreateSchema(ctx, sq.q, schema)
}

func (sq queryer[Q]) CreateRoleIfNotExists(ctx context.Context, role repo.Role) error {
	return CreateRoleIfNotExists(ctx, sq.q, sq.roleSuffix, role)
}

func (sq queryer[Q]) GrantPrivileges(
	ctx context.Context, schema string, role repo.Role,
) error {
	return GrantPrivileges(ctx, sq.q, sq.roleSuffix, schema, role)
}

func (sq queryer[Q]) SetSearchPath(
	ctx context.Context, schema string, role repo.Role,
) error {
	return SetSearchPath(ctx, sq.q, sq.roleSuffix, schema, role)
}

// ChangePasswords updates the passwords of the given roles in the
// current transaction.
func (tq txQueryer) ChangePasswords(
	ctx context.Context, roles []repo.Role, passwords []string,
) error {
	return ChangePasswords(
		ctx, tq.q, tq.roleSuffix, tq.hasher, roles, passwords,
	)
}
