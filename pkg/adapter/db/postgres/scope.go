// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"github.com/momeni/carrental/pkg/core/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ViewScope returns a GORM scope which filters the archivable rows
// of the current table (having an archived_at column) based on v.
func ViewScope(v model.View) func(*gorm.DB) *gorm.DB {
	return func(gdb *gorm.DB) *gorm.DB {
		switch v {
		case model.ViewArchived:
			return gdb.Where("archived_at IS NOT NULL")
		case model.ViewAll:
			return gdb
		default:
			return gdb.Where("archived_at IS NULL")
		}
	}
}

// ForUpdate locks the selected rows until the end of the ongoing
// transaction. Dialects without row-level locks (SQLite) ignore it.
func ForUpdate(gdb *gorm.DB) *gorm.DB {
	return gdb.Clauses(clause.Locking{Strength: "UPDATE"})
}
