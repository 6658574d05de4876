// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/momeni/carrental/pkg/adapter/db/postgres"
	"github.com/momeni/carrental/pkg/adapter/db/postgres/schemarp"
	"github.com/momeni/carrental/pkg/adapter/hash/scram"
	"github.com/momeni/carrental/pkg/core/log"
	"github.com/momeni/carrental/pkg/core/repo"
	scrami "github.com/momeni/carrental/pkg/core/scram"
	"github.com/momeni/carrental/pkg/core/usecase/migrationuc"
)

// Database contains the database related configuration settings.
type Database struct {
	Host    string // domain name or IP address of the DBMS server
	Port    int    // port number of the DBMS server
	Name    string // database name, like rentweb
	PassDir string `yaml:"pass-dir"` // path of the passwords dir

	// RoleSuffix specifies a possibly empty suffix for the database
	// role names. Normally, repo.AdminRole and repo.NormalRole roles
	// are used. The parallel test cases create non-colliding roles in
	// the same database cluster by using a unique role suffix.
	RoleSuffix repo.Role `yaml:"role-suffix,omitempty"`

	// AuthMethod specifies how the role passwords are hashed before
	// being sent to the DBMS, scram-sha-1 or scram-sha-256 (default).
	AuthMethod string `yaml:"auth-method,omitempty"`

	hasher scrami.Hasher
}

func (d *Database) passFile() string {
	return filepath.Join(d.PassDir, ".pgpass")
}

func (d *Database) newPassFile() string {
	return filepath.Join(d.PassDir, ".pgpass.new")
}

// ConnectionPool creates a database connection pool for the r role.
// The .pgpass file in the d.PassDir folder is checked first, with
// lines like this:
//
//	host:port:dbname:role:password
//
// If no connection could be established, the passwords may have been
// renewed by an interrupted initialization. So the .pgpass.new file in
// the same folder is tried too and if it works, it is moved over the
// .pgpass file.
//
// The d.RoleSuffix will be appended to the given r role name too.
func (d *Database) ConnectionPool(
	ctx context.Context, r repo.Role,
) (migrationuc.Pool, error) {
	path := d.passFile()
	u, err := d.ConnectionURL(r, path)
	if err != nil {
		return nil, fmt.Errorf("using %q pass-file: %w", path, err)
	}
	p, err := postgres.NewPool(ctx, u)
	if err == nil {
		return p, nil
	}
	newPath := d.newPassFile()
	log.Warn(
		ctx, "connecting with the main pass-file failed, trying the new one",
		log.Err("err", err),
	)
	u, err = d.ConnectionURL(r, newPath)
	if err != nil {
		return nil, fmt.Errorf("using %q pass-file: %w", newPath, err)
	}
	p, err = postgres.NewPool(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("can use neither pass-file: %w", err)
	}
	if err = os.Rename(newPath, path); err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("os.Rename: %w", err)
	}
	return p, nil
}

// ConnectionURL returns the postgresql URL of the r role, reading its
// password from the path pass-file. Empty and #-commented lines of the
// pass-file are ignored.
func (d *Database) ConnectionURL(r repo.Role, path string) (string, error) {
	passLines, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading pass-file: %w", err)
	}
	r = r + d.RoleSuffix
	prfx := fmt.Sprintf("%s:%d:%s:%s:", d.Host, d.Port, d.Name, r)
	var pass string
	for _, line := range strings.Split(string(passLines), "\n") {
		if line == "" || line[0] == '#' {
			continue
		}
		if p, ok := strings.CutPrefix(line, prfx); ok {
			pass = p
			break
		}
	}
	if pass == "" {
		return "", fmt.Errorf("no matching password line for %q", r)
	}
	u := url.URL{
		Scheme: "postgresql",
		User:   url.UserPassword(string(r), pass),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.Name,
	}
	return u.String(), nil
}

// ListenURL returns the connection URL which is used by the change
// notifications listener. It connects with the normal role.
func (d *Database) ListenURL() (string, error) {
	return d.ConnectionURL(repo.NormalRole, d.passFile())
}

// NewSchemaRepo instantiates a fresh Schema repository which adds
// d.RoleSuffix to the role names and hashes their passwords as
// expected by d.AuthMethod.
func (d *Database) NewSchemaRepo() repo.Schema {
	return schemarp.New(d.RoleSuffix, d.hasher)
}

// RenewPasswords generates new random passwords for roles, writes them
// into the .pgpass.new file, and calls change in order to update them
// in the database. The returned finalizer moves .pgpass.new over the
// .pgpass file and must be called after change is committed.
//
// The d.RoleSuffix is appended to the role names in the pass-file.
// The change function must add the same suffix to the roles names.
func (d *Database) RenewPasswords(
	ctx context.Context,
	change func(
		ctx context.Context, roles []repo.Role, passwords []string,
	) error,
	roles ...repo.Role,
) (finalizer func() error, err error) {
	passwords := make([]string, len(roles))
	lines := make([]string, len(roles))
	b := make([]byte, 16) // 128 bits
	prfx := fmt.Sprintf("%s:%d:%s", d.Host, d.Port, d.Name)
	for i, r := range roles {
		if _, err = rand.Read(b); err != nil {
			return nil, fmt.Errorf("rand.Read for i=%d: %w", i, err)
		}
		passwords[i] = base64.RawStdEncoding.EncodeToString(b)
		lines[i] = fmt.Sprintf("%s:%s:%s\n", prfx, r+d.RoleSuffix, passwords[i])
	}
	orgPath, newPath := d.passFile(), d.newPassFile()
	err = os.WriteFile(newPath, []byte(strings.Join(lines, "")), 0o600)
	if err != nil {
		return nil, fmt.Errorf("writing %q file: %w", newPath, err)
	}
	if err = change(ctx, roles, passwords); err != nil {
		return nil, fmt.Errorf("passwords change callback: %w", err)
	}
	return func() error {
		return os.Rename(newPath, orgPath)
	}, nil
}

// ValidateAndNormalize checks the database settings, fills the
// defaults, and instantiates the passwords hasher.
func (d *Database) ValidateAndNormalize() error {
	switch {
	case d.Host == "":
		return fmt.Errorf("database host is required")
	case d.Port == 0:
		d.Port = 5432
	case d.Port < 0 || d.Port > 65535:
		return fmt.Errorf("invalid database port: %d", d.Port)
	}
	if d.Name == "" {
		return fmt.Errorf("database name is required")
	}
	if d.PassDir == "" {
		d.PassDir = "."
	}
	if d.AuthMethod == "" {
		d.AuthMethod = scram.MethodSHA256
	}
	h, err := scram.ForMethod(d.AuthMethod)
	if err != nil {
		return err
	}
	d.hasher = h
	return nil
}
