// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config is an adapter which accepts yaml formatted config
// files from its users and allows the rentweb to instantiate different
// components, from the adapter or use cases layers, using those loaded
// configuration settings.
// The parsed and validated configurations are passed to their
// ultimate components as a series of individual params (for the
// mandatory items) and a series of functional options (for the
// optional items), so they may be validated again by the relevant
// end-component such as a UseCase instance.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/momeni/carrental/pkg/core/repo"
	"github.com/momeni/carrental/pkg/core/usecase/migrationuc"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file which is used when neither
// the -c flag nor the CONFIG_FILE environment variable is given.
const DefaultPath = "configs/sample-config.yaml"

// Config contains all settings which are required by different parts
// of the project, such as adapters or use cases. It is implemented
// with primitive fields or structs which are defined locally, so the
// configuration file format stays intact while other layers change.
type Config struct {
	Database Database // PostgreSQL database connection settings
	Gin      Gin      // Gin-Gonic instantiation settings
	Log      Log      // default slog logger settings
	Auth     Auth     // identity provider settings
	Redis    Redis    // permission events bus settings
	Live     Live     // live feed settings
	Usecases Usecases // use cases settings
	Seed     Seed     // initial rows of a new database
}

var _ migrationuc.Settings = (*Config)(nil)

// Path returns the configuration file path. The flag value wins over
// the CONFIG_FILE environment variable, which wins over DefaultPath.
func Path(flag string) string {
	if flag != "" {
		return flag
	}
	if p := os.Getenv("CONFIG_FILE"); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads the .env file of the working directory (if any) into the
// environment, then reads the path configuration file, overrides its
// settings with the environment variables, and finally validates and
// normalizes the result.
func Load(path string) (*Config, error) {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env file: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data, os.LookupEnv)
}

// Parse unmarshals data, applies the environment variables which are
// reported by lookup, and validates the result. Extra items in data
// are ignored and missing items take their default values.
func Parse(
	data []byte, lookup func(name string) (string, bool),
) (*Config, error) {
	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}
	if err := c.overrideWithEnv(lookup); err != nil {
		return nil, fmt.Errorf("applying environment variables: %w", err)
	}
	if err := c.ValidateAndNormalize(); err != nil {
		return nil, fmt.Errorf("validating configs: %w", err)
	}
	return c, nil
}

func (c *Config) overrideWithEnv(lookup func(string) (string, bool)) error {
	for name, dst := range map[string]*string{
		"DATABASE_HOST":     &c.Database.Host,
		"DATABASE_NAME":     &c.Database.Name,
		"DATABASE_PASS_DIR": &c.Database.PassDir,
		"AUTH_JWT_SECRET":   &c.Auth.JWTSecret,
		"REDIS_ADDR":        &c.Redis.Addr,
		"LOG_LEVEL":         &c.Log.Level,
		"LOG_FORMAT":        &c.Log.Format,
		"HTTP_ADDR":         &c.Gin.Address,
	} {
		if v, ok := lookup(name); ok && v != "" {
			*dst = v
		}
	}
	if v, ok := lookup("DATABASE_PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("DATABASE_PORT: %w", err)
		}
		c.Database.Port = port
	}
	return nil
}

// ValidateAndNormalize validates the configuration settings and
// returns an error if they were not acceptable. It also replaces
// the missing settings with their default values.
func (c *Config) ValidateAndNormalize() error {
	if err := c.Database.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating database settings: %w", err)
	}
	if err := c.Gin.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating gin settings: %w", err)
	}
	if err := c.Log.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating log settings: %w", err)
	}
	if err := c.Auth.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating auth settings: %w", err)
	}
	c.Redis.normalize()
	c.Live.normalize()
	if err := c.Usecases.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating use cases settings: %w", err)
	}
	if err := c.Seed.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating seed settings: %w", err)
	}
	return nil
}

// ConnectionPool creates a database connection pool for the r role.
func (c *Config) ConnectionPool(
	ctx context.Context, r repo.Role,
) (migrationuc.Pool, error) {
	p, err := c.Database.ConnectionPool(ctx, r)
	if err != nil {
		return nil, fmt.Errorf(
			"connecting to %s:%d/%s as %s: %w",
			c.Database.Host, c.Database.Port, c.Database.Name, r, err,
		)
	}
	return p, nil
}

// NewSchemaRepo instantiates a fresh Schema repository.
func (c *Config) NewSchemaRepo() repo.Schema {
	return c.Database.NewSchemaRepo()
}

// RenewPasswords renews the roles passwords, see the Database struct.
func (c *Config) RenewPasswords(
	ctx context.Context,
	change func(
		ctx context.Context, roles []repo.Role, passwords []string,
	) error,
	roles ...repo.Role,
) (finalizer func() error, err error) {
	return c.Database.RenewPasswords(ctx, change, roles...)
}
