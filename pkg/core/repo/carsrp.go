// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/carrental/pkg/core/model"
)

// CarsConnQueryer lists the cars queries which may run on a connection
// with auto-committed transactions. They are all read-only.
type CarsConnQueryer interface {
	CarsQueryer
}

// CarsTxQueryer lists the cars queries which need a transaction,
// i.e., the read-modify-write operations.
type CarsTxQueryer interface {
	CarsQueryer

	// GetForUpdate fetches a car and locks its row until the end of
	// the ongoing transaction.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*model.Car, error)

	// Create inserts c and its history. A nil c.ID is replaced by
	// a new random UUID.
	Create(ctx context.Context, c *model.Car) error

	// Save updates all columns of c, but its history.
	Save(ctx context.Context, c *model.Car) error

	// AddHistory appends rec to the maintenance history of a car.
	AddHistory(
		ctx context.Context, carID uuid.UUID, rec model.MaintenanceRecord,
	) error
}

type CarsQueryer interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Car, error)
	List(ctx context.Context, v model.View) ([]model.Car, error)
}

type Cars interface {
	Conn(Conn) CarsConnQueryer
	Tx(Tx) CarsTxQueryer
}
