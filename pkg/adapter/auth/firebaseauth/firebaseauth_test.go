// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package firebaseauth_test

import (
	"context"
	"errors"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/momeni/carrental/pkg/adapter/auth/firebaseauth"
	"github.com/momeni/carrental/pkg/core/usecase/authuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	updated []string
}

func (fc *fakeClient) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	if idToken != "id-token" {
		return nil, errors.New("invalid id token")
	}
	t := &auth.Token{
		UID:    "fb-1",
		Claims: map[string]any{"email": "agent@rentweb.ma", "name": "Agent"},
	}
	t.Firebase.SignInProvider = "password"
	return t, nil
}

func (fc *fakeClient) GetUser(_ context.Context, uid string) (*auth.UserRecord, error) {
	return &auth.UserRecord{
		UserInfo: &auth.UserInfo{
			UID: uid, DisplayName: "Agent", Email: "agent@rentweb.ma",
		},
		ProviderUserInfo: []*auth.UserInfo{
			{ProviderID: "google.com"}, {ProviderID: "password"},
		},
	}, nil
}

func (fc *fakeClient) UpdateUser(
	_ context.Context, uid string, _ *auth.UserToUpdate,
) (*auth.UserRecord, error) {
	fc.updated = append(fc.updated, uid)
	return &auth.UserRecord{}, nil
}

func TestProvider(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{}
	fp := firebaseauth.NewWithClient(fc)

	_, err := fp.Verify(ctx, "forged")
	assert.Error(t, err)
	p, err := fp.Verify(ctx, "id-token")
	require.NoError(t, err)
	assert.Equal(t, "fb-1", p.UID)
	assert.Equal(t, "agent@rentweb.ma", p.Email)
	assert.Equal(t, []string{"password"}, p.Providers)

	prof, err := fp.Profile(ctx, "fb-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"google.com", "password"}, prof.Providers)
	assert.True(t, prof.CanChangePassword)

	_, err = fp.SignIn(ctx, "agent@rentweb.ma", "pw")
	assert.ErrorIs(t, err, authuc.ErrUnsupported)

	require.NoError(t, fp.ChangePassword(ctx, "fb-1", "", "new-password"))
	assert.Equal(t, []string{"fb-1"}, fc.updated)
}
