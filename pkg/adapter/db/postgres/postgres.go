// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package postgres adapts GORM (with the PostgreSQL driver) to the
// repo.Pool, repo.Conn, and repo.Tx interfaces. The *rp sub-packages
// unwrap those interfaces into *Conn and *Tx instances and run their
// queries through the embedded *gorm.DB instances.
// Repositories only use the GORM query builder (and the ? or @name
// placeholders), so the same code can run on an in-memory SQLite
// database in unit tests, see the internal/test/sqlitedb package.
package postgres

