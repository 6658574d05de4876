// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package authuc_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/momeni/carrental/pkg/core/cerr"
	"github.com/momeni/carrental/pkg/core/model"
	"github.com/momeni/carrental/pkg/core/usecase/authuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	providers []string
	password  string
}

func (fp *fakeProvider) Verify(_ context.Context, token string) (*model.Principal, error) {
	if token != "good" {
		return nil, errors.New("bad token")
	}
	return &model.Principal{UID: "u1", Email: "a@b.ma", Providers: fp.providers}, nil
}

func (fp *fakeProvider) Profile(_ context.Context, uid string) (*model.Profile, error) {
	return model.NewProfile(uid, "Admin", "a@b.ma", fp.providers), nil
}

func (fp *fakeProvider) SignIn(context.Context, string, string) (string, error) {
	return "", authuc.ErrUnsupported
}

func (fp *fakeProvider) ChangePassword(_ context.Context, _, old, pw string) error {
	if old != fp.password {
		return authuc.ErrBadCredentials
	}
	fp.password = pw
	return nil
}

func statusOf(err error) int {
	var ce *cerr.Error
	if errors.As(err, &ce) {
		return ce.HTTPStatusCode
	}
	return 0
}

func TestAuthenticateAndChangePassword(t *testing.T) {
	fp := &fakeProvider{
		providers: []string{model.PasswordProvider}, password: "secret-1",
	}
	uc := authuc.New(fp)
	ctx := context.Background()

	_, _, err := uc.Authenticate(ctx, "")
	assert.Equal(t, http.StatusUnauthorized, statusOf(err))
	_, _, err = uc.Authenticate(ctx, "forged")
	assert.Equal(t, http.StatusUnauthorized, statusOf(err))

	ctx, p, err := uc.Authenticate(ctx, " good ")
	require.NoError(t, err)
	assert.Equal(t, "u1", p.UID)
	assert.Equal(t, "a@b.ma", model.Actor(ctx))

	prof, err := uc.Profile(ctx)
	require.NoError(t, err)
	assert.True(t, prof.CanChangePassword)

	err = uc.ChangePassword(ctx, "secret-1", "short")
	assert.Equal(t, http.StatusBadRequest, statusOf(err))
	err = uc.ChangePassword(ctx, "wrong-one", "secret-22")
	assert.Equal(t, http.StatusBadRequest, statusOf(err))
	require.NoError(t, uc.ChangePassword(ctx, "secret-1", "secret-22"))
	assert.Equal(t, "secret-22", fp.password)

	_, err = uc.SignIn(ctx, "a@b.ma", "x")
	assert.Equal(t, http.StatusUnprocessableEntity, statusOf(err))
}

func TestChangePasswordNeedsPasswordProvider(t *testing.T) {
	uc := authuc.New(&fakeProvider{providers: []string{"google.com"}})
	ctx, _, err := uc.Authenticate(context.Background(), "good")
	require.NoError(t, err)
	err = uc.ChangePassword(ctx, "a", "bbbbbbbbb")
	assert.Equal(t, http.StatusUnprocessableEntity, statusOf(err))

	_, err = uc.Profile(context.Background())
	assert.Equal(t, http.StatusUnauthorized, statusOf(err))
}
