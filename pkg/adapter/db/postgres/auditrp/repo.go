// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package auditrp implements the repo.Audit interface. Entries are
// append-only and share the transaction of the change they describe.
package auditrp

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/carrental/pkg/adapter/db/postgres"
	"github.com/momeni/carrental/pkg/core/model"
	"github.com/momeni/carrental/pkg/core/repo"
)

type Repo struct {
}

func New() *Repo {
	return &Repo{}
}

type queryer[Q postgres.Queryer] struct {
	q Q
}

func (audit *Repo) Conn(c repo.Conn) repo.AuditConnQueryer {
	return queryer[*postgres.Conn]{q: c.(*postgres.Conn)}
}

func (audit *Repo) Tx(tx repo.Tx) repo.AuditTxQueryer {
	return queryer[*postgres.Tx]{q: tx.(*postgres.Tx)}
}

func (aq queryer[Q]) List(
	ctx context.Context, entity string, id uuid.UUID,
) ([]model.AuditEntry, error) {
	return List(ctx, aq.q, entity, id)
}

func (aq queryer[Q]) Append(ctx context.Context, e *model.AuditEntry) error {
	return Append(ctx, aq.q, e)
}
