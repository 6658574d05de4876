// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/carrental/pkg/core/model"
)

type RentalsConnQueryer interface {
	RentalsQueryer
}

type RentalsTxQueryer interface {
	RentalsQueryer

	// GetForUpdate fetches a rental and locks its row until the end
	// of the ongoing transaction.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*model.Rental, error)

	// Create inserts r, a nil r.ID is replaced by a new random UUID.
	Create(ctx context.Context, r *model.Rental) error
	Save(ctx context.Context, r *model.Rental) error

	// ContractNumbers returns all contract numbers (archived ones
	// included) which start with the given prefix.
	ContractNumbers(ctx context.Context, prefix string) ([]string, error)
}

// RentalFilter narrows down the listed rentals. Zero fields do not
// filter anything.
type RentalFilter struct {
	View   model.View
	Status model.RentalStatus
	CarID  uuid.UUID
}

type RentalsQueryer interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Rental, error)
	List(ctx context.Context, f RentalFilter) ([]model.Rental, error)
}

type Rentals interface {
	Conn(Conn) RentalsConnQueryer
	Tx(Tx) RentalsTxQueryer
}
