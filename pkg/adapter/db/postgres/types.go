// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"database/sql/driver"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// StringArray is a list of strings which is stored as a text[] column
// in PostgreSQL. Other dialects (i.e., SQLite in tests) store it in
// a text column with the same array literal format.
type StringArray []string

func (a StringArray) Value() (driver.Value, error) {
	return pq.StringArray(a).Value()
}

func (a *StringArray) Scan(src any) error {
	return (*pq.StringArray)(a).Scan(src)
}

// GormDataType implements the schema.GormDataTypeInterface, so the
// schema parser accepts StringArray fields on every dialect.
func (StringArray) GormDataType() string {
	return "text"
}

// GormDBDataType implements the migrator.GormDataTypeInterface in order
// to pick the column type based on the dialect.
func (StringArray) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}
