// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"context"
	"slices"
)

// PasswordProvider is the provider identifier of the email/password
// sign-in method.
const PasswordProvider = "password"

// Principal is the authenticated user of a request.
type Principal struct {
	UID         string   `json:"uid"`
	Email       string   `json:"email"`
	DisplayName string   `json:"displayName"`
	Providers   []string `json:"providers"`
}

// Profile is the session information which is shown to a user.
// The password change form is offered only if CanChangePassword.
type Profile struct {
	UID               string   `json:"uid"`
	DisplayName       string   `json:"displayName"`
	Email             string   `json:"email"`
	Providers         []string `json:"providers"`
	CanChangePassword bool     `json:"canChangePassword"`
}

// NewProfile computes the CanChangePassword flag from providers.
func NewProfile(uid, name, email string, providers []string) *Profile {
	return &Profile{
		UID:               uid,
		DisplayName:       name,
		Email:             email,
		Providers:         providers,
		CanChangePassword: slices.Contains(providers, PasswordProvider),
	}
}

type principalKey struct{}

// WithPrincipal returns a child of ctx which carries p.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the principal which is carried by ctx, if any.
func PrincipalFrom(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}

// Actor identifies the author of mutations which are made with ctx.
func Actor(ctx context.Context) string {
	p, ok := PrincipalFrom(ctx)
	switch {
	case !ok:
		return "system"
	case p.Email != "":
		return p.Email
	default:
		return p.UID
	}
}
