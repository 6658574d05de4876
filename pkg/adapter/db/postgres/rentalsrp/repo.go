// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package rentalsrp implements the repo.Rentals interface.
// The renter and second driver snapshots are kept as JSON documents,
// while the vehicle snapshot and the contract terms are flattened
// into their own columns.
package rentalsrp

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

func (rentals *Repo) Conn(c repo.Conn) repo.RentalsConnQueryer {
	return queryer[*postgres.Conn]{q: c.(*postgres.Conn)}
}

func (rentals *Repo) Tx(tx repo.Tx) repo.RentalsTxQueryer {
	return queryer[*postgres.Tx]{q: tx.(*postgres.Tx)}
}

func (rq queryer[Q]) Get(ctx context.Context, id uuid.UUID) (*model.Rental, error) {
	return Get(ctx, rq.q, id)
}

func (rq queryer[Q]) GetForUpdate(ctx context.Context, id uuid.UUID) (*model.Rental, error) {
	return GetForUpdate(ctx, rq.q, id)
}

func (rq queryer[Q]) List(ctx context.Context, f repo.RentalFilter) ([]model.Rental, error) {
	return List(ctx, rq.q, f)
}

func (rq queryer[Q]) Create(ctx context.Context, r *model.Rental) error {
	return Create(ctx, rq.q, r)
}

func (rq queryer[Q]) Save(ctx context.Context, r *model.Rental) error {
	return Save(ctx, rq.q, r)
}

func (rq queryer[Q]) ContractNumbers(ctx context.Context, prefix string) ([]string, error) {
	return ContractNumbers(ctx, rq.q, prefix)
}
