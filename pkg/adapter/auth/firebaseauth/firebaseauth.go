// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package firebaseauth implements an identity provider on top of the
// Firebase Authentication admin API. Users sign in on the client side
// and send their ID tokens as bearer tokens.
package firebaseauth

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/momeni/carrental/pkg/core/cerr"
	"github.com/momeni/carrental/pkg/core/model"
	"github.com/momeni/carrental/pkg/core/usecase/authuc"
	"google.golang.org/api/option"
)

// Client is the subset of the Firebase auth client which is used by
// the Provider.
type Client interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
	GetUser(ctx context.Context, uid string) (*auth.UserRecord, error)
	UpdateUser(ctx context.Context, uid string, user *auth.UserToUpdate) (*auth.UserRecord, error)
}

// Provider is the Firebase identity provider.
type Provider struct {
	client Client
}

// New creates a Firebase app for the projectID project and returns
// a provider which uses its auth client. An empty credentialsFile
// selects the application default credentials.
func New(ctx context.Context, projectID, credentialsFile string) (*Provider, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating firebase app: %w", err)
	}
	c, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating firebase auth client: %w", err)
	}
	return NewWithClient(c), nil
}

// NewWithClient returns a provider which uses c.
func NewWithClient(c Client) *Provider {
	return &Provider{client: c}
}

// Verify checks a Firebase ID token.
func (fp *Provider) Verify(ctx context.Context, token string) (*model.Principal, error) {
	t, err := fp.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("verifying id token: %w", err)
	}
	p := &model.Principal{UID: t.UID}
	if email, ok := t.Claims["email"].(string); ok {
		p.Email = email
	}
	if name, ok := t.Claims["name"].(string); ok {
		p.DisplayName = name
	}
	if t.Firebase.SignInProvider != "" {
		p.Providers = []string{t.Firebase.SignInProvider}
	}
	return p, nil
}

// Profile fetches the uid user record.
func (fp *Provider) Profile(ctx context.Context, uid string) (*model.Profile, error) {
	u, err := fp.client.GetUser(ctx, uid)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return nil, cerr.NotFound(err)
		}
		return nil, fmt.Errorf("fetching user: %w", err)
	}
	providers := make([]string, 0, len(u.ProviderUserInfo))
	for _, info := range u.ProviderUserInfo {
		providers = append(providers, info.ProviderID)
	}
	var name, email string
	if u.UserInfo != nil {
		name, email = u.DisplayName, u.Email
	}
	return model.NewProfile(uid, name, email, providers), nil
}

// SignIn is not supported, since Firebase users sign in on the client
// side.
func (fp *Provider) SignIn(context.Context, string, string) (string, error) {
	return "", fmt.Errorf("firebase sign-in: %w", authuc.ErrUnsupported)
}

// ChangePassword sets a new password for the uid user. The old
// password cannot be checked with the admin API, so clients must
// re-authenticate the user before calling it.
func (fp *Provider) ChangePassword(ctx context.Context, uid, _, newPassword string) error {
	_, err := fp.client.UpdateUser(
		ctx, uid, (&auth.UserToUpdate{}).Password(newPassword),
	)
	switch {
	case err == nil:
		return nil
	case auth.IsUserNotFound(err):
		return cerr.NotFound(err)
	default:
		return fmt.Errorf("updating password: %w", err)
	}
}
