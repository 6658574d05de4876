// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"context"
	"fmt"
	"time"

	"github.com/momeni/carrental/pkg/adapter/auth/firebaseauth"
	"github.com/momeni/carrental/pkg/adapter/auth/localauth"
	"github.com/momeni/carrental/pkg/adapter/config/settings"
	"github.com/momeni/carrental/pkg/adapter/db/postgres/usersrp"
	"github.com/momeni/carrental/pkg/core/repo"
	"github.com/momeni/carrental/pkg/core/usecase/authuc"
)

// Supported identity providers.
const (
	ProviderLocal    = "local"
	ProviderFirebase = "firebase"
)

var (
	minTokenTTL = settings.Duration(time.Minute)
	maxTokenTTL = settings.Duration(30 * 24 * time.Hour)
)

// Auth contains the identity provider settings.
type Auth struct {
	// Provider is local (users table and HS256 tokens) or firebase.
	Provider string

	JWTSecret string             `yaml:"jwt-secret"`
	TokenTTL  *settings.Duration `yaml:"token-ttl"`

	Firebase Firebase
}

// Firebase contains the Firebase project settings. An empty
// CredentialsFile selects the application default credentials.
type Firebase struct {
	ProjectID       string `yaml:"project-id"`
	CredentialsFile string `yaml:"credentials-file"`
}

// ValidateAndNormalize fills the defaults of the auth settings and
// checks the settings of the selected provider.
func (a *Auth) ValidateAndNormalize() error {
	switch a.Provider {
	case "":
		a.Provider = ProviderLocal
		fallthrough
	case ProviderLocal:
		if len(a.JWTSecret) < 16 {
			return fmt.Errorf("jwt-secret must have at least 16 bytes")
		}
		ttl := settings.Duration(12 * time.Hour)
		settings.OverwriteNil(&a.TokenTTL, &ttl)
		if err := settings.VerifyRange(
			&a.TokenTTL, &minTokenTTL, &maxTokenTTL,
		); err != nil {
			return fmt.Errorf("token-ttl: %w", err)
		}
	case ProviderFirebase:
		if a.Firebase.ProjectID == "" {
			return fmt.Errorf("firebase project-id is required")
		}
	default:
		return fmt.Errorf("unknown auth provider: %q", a.Provider)
	}
	return nil
}

// NewAuthUseCase instantiates the authentication use case with the
// configured identity provider. The local provider keeps its users
// in the p database.
func (c *Config) NewAuthUseCase(
	ctx context.Context, p repo.Pool,
) (*authuc.UseCase, error) {
	a := c.Auth
	switch a.Provider {
	case ProviderFirebase:
		fp, err := firebaseauth.New(
			ctx, a.Firebase.ProjectID, a.Firebase.CredentialsFile,
		)
		if err != nil {
			return nil, err
		}
		return authuc.New(fp), nil
	default:
		lp, err := localauth.New(
			p, usersrp.New(), a.JWTSecret, time.Duration(*a.TokenTTL),
		)
		if err != nil {
			return nil, err
		}
		return authuc.New(lp), nil
	}
}
