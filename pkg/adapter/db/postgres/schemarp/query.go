// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package schemarp

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/momeni/carrental/pkg/adapter/db/postgres"
	"github.com/momeni/carrental/pkg/core/repo"
	"github.com/momeni/carrental/pkg/core/scram"
)

// hashIterations is the PBKDF2 iterations count of role passwords,
// as recommended by the RFC 7677.
const hashIterations = 15000

func roleName(roleSuffix, role repo.Role) string {
	return pq.QuoteIdentifier(string(role + roleSuffix))
}

// DropIfExists drops the `schema` schema with cascading if it exists.
// That is, if `schema` does not exist, a nil error will be returned
// without any change. Otherwise, all of its tables are dropped too.
//
// Caller is responsible to pass a trusted schema name string.
func DropIfExists[Q postgres.Queryer](
	ctx context.Context, q Q, schema string,
) error {
	_, err := q.Exec(ctx, fmt.Sprintf(
		"DROP SCHEMA IF EXISTS %s CASCADE", pq.QuoteIdentifier(schema),
	))
	if err != nil {
		return fmt.Errorf("dropping %q schema: %w", schema, err)
	}
	return nil
}

// CreateSchema tries to create the `schema` schema.
// There must be no other schema with the `schema` name, otherwise,
// this operation will fail.
//
// Caller is responsible to pass a trusted schema name string.
func CreateSchema[Q postgres.Queryer](
	ctx context.Context, q Q, schema string,
) error {
	_, err := q.Exec(ctx, fmt.Sprintf(
		"CREATE SCHEMA %s", pq.QuoteIdentifier(schema),
	))
	if err != nil {
		return fmt.Errorf("creating %q schema: %w", schema, err)
	}
	return nil
}

// CreateRoleIfNotExists creates the `role` role if it does not
// exist right now. Although the login option is enabled for the
// created role, but no specific password will be set for it.
// The ChangePasswords method may be used for setting a password if
// desired. Otherwise, that user may not login effectively (but
// using the trust or local identity methods).
//
// The `role` role name may be suffixed by `roleSuffix` if it is not
// empty. This is useful to have distinct role names if repo.Role
// predefined constants are not desirable.
func CreateRoleIfNotExists[Q postgres.Queryer](
	ctx context.Context, q Q, roleSuffix repo.Role, role repo.Role,
) error {
	name := string(role + roleSuffix)
	_, err := q.Exec(ctx, fmt.Sprintf(`DO $$
BEGIN
	IF NOT EXISTS (SELECT FROM pg_roles WHERE rolname = %s) THEN
		CREATE ROLE %s WITH LOGIN;
	END IF;
END
$$`, pq.QuoteLiteral(name), pq.QuoteIdentifier(name)))
	if err != nil {
		return fmt.Errorf("creating %q role: %w", name, err)
	}
	return nil
}

// GrantPrivileges grants ALL privileges on the `schema` schema
// to the `role` role, so it may create or access tables in that schema
// and run relevant queries.
func GrantPrivileges[Q postgres.Queryer](
	ctx context.Context,
	q Q,
	roleSuffix repo.Role,
	schema string,
	role repo.Role,
) error {
	_, err := q.Exec(ctx, fmt.Sprintf(
		"GRANT ALL ON SCHEMA %s TO %s",
		pq.QuoteIdentifier(schema), roleName(roleSuffix, role),
	))
	if err != nil {
		return fmt.Errorf("granting %q privileges: %w", schema, err)
	}
	return nil
}

// SetSearchPath alters the given database role and sets its default
// search_path to the given schema name alone.
func SetSearchPath[Q postgres.Queryer](
	ctx context.Context,
	q Q,
	roleSuffix repo.Role,
	schema string,
	role repo.Role,
) error {
	_, err := q.Exec(ctx, fmt.Sprintf(
		"ALTER ROLE %s SET search_path TO %s",
		roleName(roleSuffix, role), pq.QuoteIdentifier(schema),
	))
	if err != nil {
		return fmt.Errorf("setting search_path: %w", err)
	}
	return nil
}

// ChangePasswords updates the passwords of the given roles in the
// current transaction. The roles and passwords slices must have the
// same number of entries, so they can be used in pair.
//
// The `roles` role names may be suffixed by `roleSuffix` if it is not
// empty. The `hasher` will be used for hashing of the `passwords`
// before sending them to the DBMS (so they may not leak in plaintext).
// This SCRAM hasher format must conform with the DBMS expected format.
func ChangePasswords(
	ctx context.Context,
	tx *postgres.Tx,
	roleSuffix repo.Role,
	hasher scram.Hasher,
	roles []repo.Role,
	passwords []string,
) error {
	if len(roles) != len(passwords) {
		return errors.New("roles and passwords must have the same length")
	}
	for i, role := range roles {
		h, err := hasher.Hash(passwords[i], "", hashIterations)
		if err != nil {
			return fmt.Errorf("hashing %q password: %w", role, err)
		}
		_, err = tx.Exec(ctx, fmt.Sprintf(
			"ALTER ROLE %s WITH PASSWORD %s",
			roleName(roleSuffix, role), pq.QuoteLiteral(h),
		))
		if err != nil {
			return fmt.Errorf("changing %q password: %w", role, err)
		}
	}
	return nil
}
