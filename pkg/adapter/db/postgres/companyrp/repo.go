// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package companyrp is the adapter for the company settings
// repository. It exposes the companyrp.Repo type in order to allow
// use cases to update the company settings or query them from the
// database. Settings are kept as a JSON document in a single row.
package companyrp

import (
	"context"

	"github.com/momeni/carrental/pkg/adapter/db/postgres"
	"github.com/momeni/carrental/pkg/core/model"
	"github.com/momeni/carrental/pkg/core/repo"
)

// Repo represents the company settings repository instance.
type Repo struct {
}

// New instantiates a company settings Repo struct.
func New() *Repo {
	return &Repo{}
}

type queryer[Q postgres.Queryer] struct {
	q Q
}

// Conn takes a Conn interface instance, unwraps it as required,
// and returns a CompanyConnQueryer interface which (with access to
// the implementation-dependent connection object) can query the
// company settings.
func (company *Repo) Conn(c repo.Conn) repo.CompanyConnQueryer {
	return queryer[*postgres.Conn]{q: c.(*postgres.Conn)}
}

// Tx takes a Tx interface instance, unwraps it as required,
// and returns a CompanyTxQueryer interface which (with access to the
// implementation-dependent transaction object) can query or update
// the company settings.
func (company *Repo) Tx(tx repo.Tx) repo.CompanyTxQueryer {
	return queryer[*postgres.Tx]{q: tx.(*postgres.Tx)}
}

func (cq queryer[Q]) Get(ctx context.Context) (*model.CompanySettings, error) {
	return Get(ctx, cq.q)
}

func (cq queryer[Q]) Save(ctx context.Context, s *model.CompanySettings) error {
	return Save(ctx, cq.q, s)
}
