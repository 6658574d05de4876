// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package paymentsrp implements the repo.Payments interface.
// Payments carry a copy of their contract number and client name,
// so the ledger may be listed without joining the rentals table.
package paymentsrp

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

func (payments *Repo) Conn(c repo.Conn) repo.PaymentsConnQueryer {
	return queryer[*postgres.Conn]{q: c.(*postgres.Conn)}
}

func (payments *Repo) Tx(tx repo.Tx) repo.PaymentsTxQueryer {
	return queryer[*postgres.Tx]{q: tx.(*postgres.Tx)}
}

func (pq queryer[Q]) Get(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	return Get(ctx, pq.q, id)
}

func (pq queryer[Q]) List(ctx context.Context, rentalID uuid.UUID) ([]model.Payment, error) {
	return List(ctx, pq.q, rentalID)
}

func (pq queryer[Q]) Create(ctx context.Context, p *model.Payment) error {
	return Create(ctx, pq.q, p)
}

func (pq queryer[Q]) Delete(ctx context.Context, id uuid.UUID) error {
	return Delete(ctx, pq.q, id)
}
