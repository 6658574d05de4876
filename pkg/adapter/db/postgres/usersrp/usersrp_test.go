// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package usersrp_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/momeni/carrental/internal/test/sqlitedb"
	"github.com/momeni/carrental/pkg/adapter/db/postgres"
	"github.com/momeni/carrental/pkg/adapter/db/postgres/usersrp"
	"github.com/momeni/carrental/pkg/core/cerr"
	"github.com/momeni/carrental/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsers(t *testing.T) {
	pool := sqlitedb.New(t)
	rp := usersrp.New()
	sqlitedb.Tx(t, pool, func(ctx context.Context, tx *postgres.Tx) {
		q := rp.Tx(tx)
		u := &model.User{Email: " Admin@Example.com", PasswordHash: "h1"}
		require.NoError(t, q.Create(ctx, u))
		assert.Equal(t, "admin@example.com", u.Email)

		got, err := q.GetByEmail(ctx, "ADMIN@example.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)

		require.NoError(t, q.SetPasswordHash(ctx, u.ID, "h2"))
		got, err = q.Get(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "h2", got.PasswordHash)

		err = q.Create(ctx, &model.User{Email: "admin@example.com"})
		var ce *cerr.Error
		require.True(t, errors.As(err, &ce), err)
		assert.Equal(t, http.StatusConflict, ce.HTTPStatusCode)
	})
}
