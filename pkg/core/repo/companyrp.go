// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/momeni/carrental/pkg/core/model"
)

type CompanyConnQueryer interface {
	CompanyQueryer
}

type CompanyTxQueryer interface {
	CompanyQueryer

	// Save replaces the singleton company settings row.
	Save(ctx context.Context, s *model.CompanySettings) error
}

type CompanyQueryer interface {
	// Get returns the company settings or a not-found error if they
	// are not initialized yet.
	Get(ctx context.Context) (*model.CompanySettings, error)
}

type Company interface {
	Conn(Conn) CompanyConnQueryer
	Tx(Tx) CompanyTxQueryer
}
