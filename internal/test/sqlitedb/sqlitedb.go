// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package sqlitedb is an internal helper for the test packages.
// It creates an in-memory SQLite database with all application tables
// and wraps it as a *postgres.Pool, so repositories and use cases can
// be tested without a PostgreSQL container. Queries which depend on
// PostgreSQL specific features (e.g., pg_notify or role management)
// still need the dbcontainer package.
package sqlitedb

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/momeni/carrental/pkg/adapter/db/postgres"
	"github.com/momeni/carrental/pkg/adapter/db/postgres/schemarp"
	"github.com/momeni/carrental/pkg/core/repo"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// New creates a fresh database for t and closes it in t.Cleanup.
func New(t *testing.T) *postgres.Pool {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_fk=1"
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err, "opening sqlite database")
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	// the in-memory database lives as long as its only connection
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)
	require.NoError(t, schemarp.CreateTables(gdb), "creating tables")
	pool, err := postgres.Wrap(context.Background(), gdb)
	require.NoError(t, err, "wrapping sqlite database")
	t.Cleanup(func() {
		_ = pool.Close()
	})
	return pool
}

// Tx runs f in a transaction of pool and fails t if it fails.
func Tx(
	t *testing.T, pool *postgres.Pool,
	f func(ctx context.Context, tx *postgres.Tx),
) {
	t.Helper()
	ctx := context.Background()
	err := pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			f(ctx, tx.(*postgres.Tx))
			return nil
		})
	})
	require.NoError(t, err)
}
