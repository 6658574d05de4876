// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/momeni/carrental/pkg/core/cerr"
	"gorm.io/gorm"
)

// SQLSTATE codes which are mapped to the core errors.
const (
	InsufficientPrivilege = "42501"
	UniqueViolation       = "23505"
)

// MapErr converts a query error into the core errors taxonomy.
// The op operation (create, update, delete, get, or list) on the path
// record (like rentals/<uuid>) with the attempted payload are kept in
// the permission errors. Missing rows become not-found errors, unique
// violations become conflicts, and other errors are wrapped as they
// are. A nil err is returned as nil.
func MapErr(err error, op, path string, payload any) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return cerr.NotFound(fmt.Errorf("%s was not found", path))
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return cerr.Conflict(fmt.Errorf("%s %s: duplicate key", op, path))
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case InsufficientPrivilege:
			return cerr.Permission(op, path, payload, err)
		case UniqueViolation:
			return cerr.Conflict(
				fmt.Errorf("%s %s: %s", op, path, pgErr.Detail),
			)
		}
	}
	return fmt.Errorf("%s %s: %w", op, path, err)
}
