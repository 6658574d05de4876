// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/momeni/carrental/internal/test/dbcontainer"
	"github.com/momeni/carrental/pkg/adapter/db/postgres"
	"github.com/momeni/carrental/pkg/core/model"
	"github.com/momeni/carrental/pkg/core/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var notifySQL = regexp.QuoteMeta("SELECT pg_notify($1, $2)")

func mockPool(t *testing.T) (*postgres.Pool, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	gdb, err := gorm.Open(gpostgres.New(gpostgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	p, err := postgres.Wrap(context.Background(), gdb)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = p.Close()
	})
	return p, mock
}

func notify(p *postgres.Pool, n repo.Notifier, ch model.Change) error {
	ctx := context.Background()
	return p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			return n.Notify(ctx, tx, ch)
		})
	})
}

func TestNotifierSendsChange(t *testing.T) {
	p, mock := mockPool(t)
	id := uuid.MustParse("0b6c1b0e-4f1c-4b8e-9d3a-56a4f3a1c2d7")
	mock.ExpectBegin()
	mock.ExpectExec(notifySQL).
		WithArgs(
			"rentweb_changes",
			`{"entity":"cars","id":"`+id.String()+`","action":"update"}`,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := notify(p, postgres.NewNotifier("rentweb_changes"), model.Change{
		Entity: model.EntityCar, ID: id, Action: model.ActionUpdate,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotifierFailureRollsBack(t *testing.T) {
	p, mock := mockPool(t)
	mock.ExpectBegin()
	mock.ExpectExec(notifySQL).WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := notify(p, postgres.NewNotifier("rentweb_changes"), model.Change{
		Entity: model.EntityRental, ID: uuid.New(), Action: model.ActionCreate,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pg_notify")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIntegrationListen(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pg, pool, dfrs, ok := dbcontainer.New(ctx, 60*time.Second, t)
	for _, f := range dfrs {
		defer f()
	}
	if !ok {
		return // errors are already logged
	}
	changes := make(chan *model.Change, 16)
	done := make(chan error, 1)
	go func() {
		done <- postgres.Listen(
			ctx, pg.ConnectionString(), "rentweb_changes",
			func(_ context.Context, ch *model.Change) {
				changes <- ch
			},
		)
	}()

	want := model.Change{
		Entity: model.EntityPayment, ID: uuid.New(), Action: model.ActionDelete,
	}
	n := postgres.NewNotifier("rentweb_changes")
	require.Eventually(t, func() bool {
		if err := notify(pool, n, want); err != nil {
			return false
		}
		select {
		case got := <-changes:
			return got != nil && *got == want
		case <-time.After(200 * time.Millisecond):
			return false
		}
	}, 10*time.Second, 50*time.Millisecond, "change was not received")

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
