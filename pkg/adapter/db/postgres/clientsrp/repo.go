// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package clientsrp implements the repo.Clients interface.
package clientsrp

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

func (clients *Repo) Conn(c repo.Conn) repo.ClientsConnQueryer {
	return queryer[*postgres.Conn]{q: c.(*postgres.Conn)}
}

func (clients *Repo) Tx(tx repo.Tx) repo.ClientsTxQueryer {
	return queryer[*postgres.Tx]{q: tx.(*postgres.Tx)}
}

func (cq queryer[Q]) Get(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	return Get(ctx, cq.q, id)
}

func (cq queryer[Q]) List(
	ctx context.Context, v model.View, search string,
) ([]model.Client, error) {
	return List(ctx, cq.q, v, search)
}

func (cq queryer[Q]) Create(ctx context.Context, c *model.Client) error {
	return Create(ctx, cq.q, c)
}

func (cq queryer[Q]) Save(ctx context.Context, c *model.Client) error {
	return Save(ctx, cq.q, c)
}
