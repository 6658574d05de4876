// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package localauth_test

import (
	"context"
	"testing"
	"time"

	"github.com/momeni/carrental/internal/test/sqlitedb"
	"github.com/momeni/carrental/pkg/adapter/auth/localauth"
	"github.com/momeni/carrental/pkg/adapter/db/postgres"
	"github.com/momeni/carrental/pkg/adapter/db/postgres/usersrp"
	"github.com/momeni/carrental/pkg/core/model"
	"github.com/momeni/carrental/pkg/core/usecase/authuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "0123456789abcdef0123"

func TestSignInVerifyAndChangePassword(t *testing.T) {
	ctx := context.Background()
	pool := sqlitedb.New(t)
	users := usersrp.New()
	hash, err := localauth.HashPassword("admin-pass")
	require.NoError(t, err)
	u := &model.User{Email: "admin@rentweb.ma", DisplayName: "Admin", PasswordHash: hash}
	sqlitedb.Tx(t, pool, func(ctx context.Context, tx *postgres.Tx) {
		require.NoError(t, users.Tx(tx).Create(ctx, u))
	})

	_, err = localauth.New(pool, users, "short", time.Hour)
	assert.Error(t, err)
	lp, err := localauth.New(pool, users, secret, time.Hour)
	require.NoError(t, err)

	_, err = lp.SignIn(ctx, "admin@rentweb.ma", "wrong")
	assert.ErrorIs(t, err, authuc.ErrBadCredentials)
	_, err = lp.SignIn(ctx, "nobody@rentweb.ma", "admin-pass")
	assert.ErrorIs(t, err, authuc.ErrBadCredentials)

	token, err := lp.SignIn(ctx, "admin@rentweb.ma", "admin-pass")
	require.NoError(t, err)
	p, err := lp.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), p.UID)
	assert.Equal(t, "admin@rentweb.ma", p.Email)
	assert.Equal(t, []string{model.PasswordProvider}, p.Providers)

	other, err := localauth.New(pool, users, secret+"-other", time.Hour)
	require.NoError(t, err)
	_, err = other.Verify(ctx, token)
	assert.ErrorIs(t, err, localauth.ErrInvalidToken)

	prof, err := lp.Profile(ctx, p.UID)
	require.NoError(t, err)
	assert.Equal(t, "Admin", prof.DisplayName)
	assert.True(t, prof.CanChangePassword)

	err = lp.ChangePassword(ctx, p.UID, "wrong", "new-password")
	assert.ErrorIs(t, err, authuc.ErrBadCredentials)
	require.NoError(t, lp.ChangePassword(ctx, p.UID, "admin-pass", "new-password"))
	_, err = lp.SignIn(ctx, "admin@rentweb.ma", "new-password")
	assert.NoError(t, err)
}

func TestExpiredToken(t *testing.T) {
	ctx := context.Background()
	pool := sqlitedb.New(t)
	users := usersrp.New()
	hash, err := localauth.HashPassword("pw-123456")
	require.NoError(t, err)
	sqlitedb.Tx(t, pool, func(ctx context.Context, tx *postgres.Tx) {
		require.NoError(t, users.Tx(tx).Create(ctx, &model.User{
			Email: "agent@rentweb.ma", PasswordHash: hash,
		}))
	})
	lp, err := localauth.New(pool, users, secret, time.Millisecond)
	require.NoError(t, err)
	token, err := lp.SignIn(ctx, "agent@rentweb.ma", "pw-123456")
	require.NoError(t, err)
	time.Sleep(1100 * time.Millisecond)
	_, err = lp.Verify(ctx, token)
	assert.ErrorIs(t, err, localauth.ErrInvalidToken)
}
