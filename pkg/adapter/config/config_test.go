// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/momeni/carrental/pkg/adapter/config"
	"github.com/momeni/carrental/pkg/adapter/events/redisev"
	"github.com/momeni/carrental/pkg/core/alert"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimal = `
database:
  host: db.local
  name: rentweb
auth:
  jwt-secret: 0123456789abcdef
`

func noEnv(string) (string, bool) {
	return "", false
}

func TestParseDefaults(t *testing.T) {
	c, err := config.Parse([]byte(minimal), noEnv)
	require.NoError(t, err)

	assert.Equal(t, 5432, c.Database.Port)
	assert.Equal(t, ".", c.Database.PassDir)
	assert.Equal(t, "scram-sha-256", c.Database.AuthMethod)
	assert.True(t, *c.Gin.Logger)
	assert.True(t, *c.Gin.Recovery)
	assert.True(t, *c.Gin.Metrics)
	assert.Equal(t, ":8080", c.Gin.Address)
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, "text", c.Log.Format)
	assert.Equal(t, config.ProviderLocal, c.Auth.Provider)
	assert.Equal(t, 12*time.Hour, time.Duration(*c.Auth.TokenTTL))
	assert.Equal(t, redisev.DefaultChannel, c.Redis.Channel)
	assert.True(t, *c.Live.Enabled)
	assert.Equal(t, config.DefaultLiveChannel, c.Live.Channel)
	assert.Equal(t, alert.DefaultWindows(), c.Usecases.Alerts.Windows())
	assert.Equal(t, "MAD", c.Seed.Company.Currency)
}

func TestParseEnvironmentOverrides(t *testing.T) {
	env := map[string]string{
		"DATABASE_HOST":   "pg.internal",
		"DATABASE_PORT":   "6543",
		"AUTH_JWT_SECRET": "fedcba9876543210fedcba",
		"LOG_FORMAT":      "json",
		"HTTP_ADDR":       "127.0.0.1:9090",
	}
	lookup := func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	}
	c, err := config.Parse([]byte(minimal), lookup)
	require.NoError(t, err)
	assert.Equal(t, "pg.internal", c.Database.Host)
	assert.Equal(t, 6543, c.Database.Port)
	assert.Equal(t, "fedcba9876543210fedcba", c.Auth.JWTSecret)
	assert.Equal(t, "json", c.Log.Format)
	assert.Equal(t, "127.0.0.1:9090", c.Gin.Address)

	env["DATABASE_PORT"] = "port"
	_, err = config.Parse([]byte(minimal), lookup)
	assert.Error(t, err)
}

func TestParseRejects(t *testing.T) {
	cases := map[string]string{
		"no host": `
database: {name: rentweb}
auth: {jwt-secret: 0123456789abcdef}`,
		"short secret": `
database: {host: h, name: rentweb}
auth: {jwt-secret: short}`,
		"unknown provider": `
database: {host: h, name: rentweb}
auth: {provider: ldap}`,
		"firebase without project": `
database: {host: h, name: rentweb}
auth: {provider: firebase}`,
		"bad auth method": `
database: {host: h, name: rentweb, auth-method: md5}
auth: {jwt-secret: 0123456789abcdef}`,
		"wildcard origin": `
database: {host: h, name: rentweb}
auth: {jwt-secret: 0123456789abcdef}
gin: {cors-origins: ["*"]}`,
		"dashed prefix": `
database: {host: h, name: rentweb}
auth: {jwt-secret: 0123456789abcdef}
usecases: {rentals: {contract-prefix: A-B}}`,
		"zero window": `
database: {host: h, name: rentweb}
auth: {jwt-secret: 0123456789abcdef}
usecases: {alerts: {oil-change-km: 0}}`,
		"short admin password": `
database: {host: h, name: rentweb}
auth: {jwt-secret: 0123456789abcdef}
seed: {admin-email: admin@example.com, admin-password: short}`,
		"bad log format": `
database: {host: h, name: rentweb}
auth: {jwt-secret: 0123456789abcdef}
log: {format: xml}`,
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Parse([]byte(data), noEnv)
			assert.Error(t, err)
		})
	}
}

func TestParseFirebase(t *testing.T) {
	c, err := config.Parse([]byte(`
database: {host: h, name: rentweb}
auth:
  provider: firebase
  firebase: {project-id: rentweb-prod}
`), noEnv)
	require.NoError(t, err)
	assert.Equal(t, "rentweb-prod", c.Auth.Firebase.ProjectID)
	assert.Nil(t, c.Auth.TokenTTL)
}

func TestSampleConfig(t *testing.T) {
	data, err := os.ReadFile("../../../configs/sample-config.yaml")
	require.NoError(t, err)
	c, err := config.Parse(data, noEnv)
	require.NoError(t, err)
	assert.Equal(t, "C", c.Usecases.Rentals.ContractPrefix)
	assert.Equal(t, []string{"http://localhost:5173"}, c.Gin.CorsOrigins)
	assert.Equal(t, "admin@example.com", c.Seed.AdminEmail)
	assert.Equal(t, alert.DefaultWindows(), c.Usecases.Alerts.Windows())
}
