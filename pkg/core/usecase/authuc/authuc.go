// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package authuc contains the authentication UseCase. The identities
// are managed by a Provider (see the localauth and firebaseauth
// adapters) and this package only adds the checks which do not depend
// on the selected provider.
package authuc

import (
	"context"
	"errors"
	"strings"

	"github.com/momeni/carrental/pkg/core/cerr"
	"github.com/momeni/carrental/pkg/core/model"
)

// ErrUnsupported is returned by providers which do not support an
// operation, e.g., a provider whose sign-in happens on the client
// side.
var ErrUnsupported = errors.New("operation is not supported by the identity provider")

// ErrBadCredentials is returned for a wrong email or password.
var ErrBadCredentials = errors.New("invalid email or password")

// MinPasswordLength is the shortest accepted new password.
const MinPasswordLength = 8

// Provider is an identity provider.
type Provider interface {
	// Verify checks a bearer token and returns its principal.
	Verify(ctx context.Context, token string) (*model.Principal, error)

	// Profile returns the profile of the uid user.
	Profile(ctx context.Context, uid string) (*model.Profile, error)

	// SignIn checks an email and password and returns a new token.
	SignIn(ctx context.Context, email, password string) (string, error)

	// ChangePassword replaces the password of the uid user after
	// checking its old password (if the provider can check it).
	ChangePassword(ctx context.Context, uid, oldPassword, newPassword string) error
}

// UseCase represents the authentication use case.
type UseCase struct {
	provider Provider
}

// New instantiates an authentication use case.
func New(p Provider) *UseCase {
	return &UseCase{provider: p}
}

// Authenticate verifies a bearer token and returns a child of ctx
// which carries its principal.
func (auth *UseCase) Authenticate(
	ctx context.Context, token string,
) (context.Context, *model.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, nil, cerr.Authentication(errors.New("missing token"))
	}
	p, err := auth.provider.Verify(ctx, token)
	if err != nil {
		return nil, nil, asAuthentication(err)
	}
	return model.WithPrincipal(ctx, p), p, nil
}

// SignIn use case exchanges an email and password with a token.
func (auth *UseCase) SignIn(ctx context.Context, email, password string) (string, error) {
	fe := cerr.FieldErrors{}
	email = strings.TrimSpace(email)
	fe.Assert(email != "", "email", "email is required")
	fe.Assert(password != "", "password", "password is required")
	if err := fe.Err(); err != nil {
		return "", err
	}
	token, err := auth.provider.SignIn(ctx, email, password)
	if err != nil {
		return "", asAuthentication(err)
	}
	return token, nil
}

// Profile use case returns the profile of the principal of ctx.
func (auth *UseCase) Profile(ctx context.Context) (*model.Profile, error) {
	p, ok := model.PrincipalFrom(ctx)
	if !ok {
		return nil, cerr.Authentication(errors.New("not signed in"))
	}
	return auth.provider.Profile(ctx, p.UID)
}

// ChangePassword use case replaces the password of the principal of
// ctx. It is only offered to users who sign in with a password.
func (auth *UseCase) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	prof, err := auth.Profile(ctx)
	if err != nil {
		return err
	}
	if !prof.CanChangePassword {
		return cerr.Unprocessable(errors.New(
			"password sign-in is not enabled for this account",
		))
	}
	fe := cerr.FieldErrors{}
	fe.Assert(oldPassword != "", "oldPassword", "old password is required")
	fe.Assert(
		len(newPassword) >= MinPasswordLength, "newPassword",
		"new password is too short",
	)
	fe.Assert(
		newPassword != oldPassword, "newPassword",
		"new password must differ from the old one",
	)
	if err := fe.Err(); err != nil {
		return err
	}
	err = auth.provider.ChangePassword(ctx, prof.UID, oldPassword, newPassword)
	if errors.Is(err, ErrBadCredentials) {
		return cerr.Invalid("oldPassword", "old password is wrong")
	}
	return err
}

func asAuthentication(err error) error {
	var ce *cerr.Error
	switch {
	case errors.Is(err, ErrUnsupported):
		return cerr.Unprocessable(err)
	case errors.As(err, &ce):
		return err
	default:
		return cerr.Authentication(err)
	}
}
