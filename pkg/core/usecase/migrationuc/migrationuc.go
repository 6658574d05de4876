// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package migrationuc provides the database preparation use cases.
// InitDBUseCase initializes the database schema with development or
// production suitable data and ImportUseCase moves the records of
// a legacy document store export into an initialized schema.
// This package also exposes the Settings interface which represents
// the expectations from the configuration settings, so the use cases
// stay independent of the configuration file format.
package migrationuc
