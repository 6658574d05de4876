// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres_test

import (
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/momeni/carrental/pkg/adapter/db/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gpostgres "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type photoRow struct {
	ID     uuid.UUID `gorm:"primaryKey;type:uuid"`
	Photos postgres.StringArray
}

func columnType(t *testing.T, gdb *gorm.DB) string {
	t.Helper()
	stmt := &gorm.Statement{DB: gdb}
	require.NoError(t, stmt.Parse(&photoRow{}))
	f := stmt.Schema.LookUpField("Photos")
	require.NotNil(t, f)
	return gdb.Migrator().FullDataTypeOf(f).SQL
}

func TestStringArrayColumnType(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	pgdb, err := gorm.Open(gpostgres.New(gpostgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	typ := columnType(t, pgdb)
	assert.True(t, strings.HasPrefix(typ, "text[]"), typ)

	litedb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	typ = columnType(t, litedb)
	assert.True(t, strings.HasPrefix(typ, "text"), typ)
	assert.False(t, strings.HasPrefix(typ, "text[]"), typ)
}

func TestStringArrayValueAndScan(t *testing.T) {
	v, err := postgres.StringArray{"avant.jpg", "arriere gauche.jpg"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `{"avant.jpg","arriere gauche.jpg"}`, v)

	var a postgres.StringArray
	require.NoError(t, a.Scan(`{"avant.jpg","arriere gauche.jpg"}`))
	assert.Equal(t, postgres.StringArray{"avant.jpg", "arriere gauche.jpg"}, a)
}
