// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package carsrp implements the repo.Cars interface. The cars table
// keeps the current maintenance record inline, while the maintenance
// history is kept in the car_maintenance table.
package carsrp

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

// queryer runs the generic query functions on a *postgres.Conn or
// a *postgres.Tx instance.
type queryer[Q postgres.Queryer] struct {
	q Q
}

func (cars *Repo) Conn(c repo.Conn) repo.CarsConnQueryer {
	cc := c.(*postgres.Conn)
	return queryer[*postgres.Conn]{q: cc}
}

func (cars *Repo) Tx(tx repo.Tx) repo.CarsTxQueryer {
	tt := tx.(*postgres.Tx)
	return queryer[*postgres.Tx]{q: tt}
}

func (cq queryer[Q]) Get(ctx context.Context, id uuid.UUID) (*model.Car, error) {
	return Get(ctx, cq.q, id)
}

func (cq queryer[Q]) GetForUpdate(ctx context.Context, id uuid.UUID) (*model.Car, error) {
	return GetForUpdate(ctx, cq.q, id)
}

func (cq queryer[Q]) List(ctx context.Context, v model.View) ([]model.Car, error) {
	return List(ctx, cq.q, v)
}

func (cq queryer[Q]) Create(ctx context.Context, c *model.Car) error {
	return Create(ctx, cq.q, c)
}

func (cq queryer[Q]) Save(ctx context.Context, c *model.Car) error {
	return Save(ctx, cq.q, c)
}

func (cq queryer[Q]) AddHistory(
	ctx context.Context, carID uuid.UUID, rec model.MaintenanceRecord,
) error {
	return AddHistory(ctx, cq.q, carID, rec)
}
