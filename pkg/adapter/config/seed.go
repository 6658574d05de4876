// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"errors"
	"fmt"
	"net/mail"

	"github.com/google/uuid"
	"github.com/momeni/carrental/pkg/adapter/auth/localauth"
	"github.com/momeni/carrental/pkg/adapter/db/postgres/schemarp"
	"github.com/momeni/carrental/pkg/core/model"
	"github.com/momeni/carrental/pkg/core/repo"
)

// Seed contains the rows which are inserted in a freshly initialized
// database. The admin user is only created by the db init-dev command
// and only if the local identity provider is used.
type Seed struct {
	Company Company

	AdminEmail    string `yaml:"admin-email"`
	AdminPassword string `yaml:"admin-password"`
}

// Company contains the initial company settings.
type Company struct {
	Name     string
	Address  string
	Phone    string
	Email    string
	Currency string
}

// ValidateAndNormalize fills the seed defaults and validates them.
func (s *Seed) ValidateAndNormalize() error {
	if s.Company.Name == "" {
		s.Company.Name = "Rentweb"
	}
	if s.Company.Currency == "" {
		s.Company.Currency = "MAD"
	}
	if len(s.Company.Currency) != 3 {
		return fmt.Errorf("invalid currency code %q", s.Company.Currency)
	}
	if s.AdminEmail == "" {
		return nil
	}
	if _, err := mail.ParseAddress(s.AdminEmail); err != nil {
		return fmt.Errorf("admin-email: %w", err)
	}
	if len(s.AdminPassword) < 8 {
		return errors.New("admin-password must have at least 8 chars")
	}
	return nil
}

// SchemaInitializer instantiates a repo.SchemaInitializer which fills
// the tables using the tx transaction.
func (c *Config) SchemaInitializer(tx repo.Tx) (repo.SchemaInitializer, error) {
	seed := schemarp.Seed{
		Company: model.CompanySettings{
			Name:     c.Seed.Company.Name,
			Address:  c.Seed.Company.Address,
			Phone:    c.Seed.Company.Phone,
			Email:    c.Seed.Company.Email,
			Currency: c.Seed.Company.Currency,
		},
	}
	if c.Auth.Provider == ProviderLocal && c.Seed.AdminEmail != "" {
		h, err := localauth.HashPassword(c.Seed.AdminPassword)
		if err != nil {
			return nil, err
		}
		seed.Admin = &model.User{
			ID:           uuid.New(),
			Email:        c.Seed.AdminEmail,
			DisplayName:  "Administrator",
			PasswordHash: h,
		}
	}
	return schemarp.NewInitializer(tx, seed), nil
}
