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

type PaymentsConnQueryer interface {
	PaymentsQueryer
}

type PaymentsTxQueryer interface {
	PaymentsQueryer

	// Create inserts p, a nil p.ID is replaced by a new random UUID.
	Create(ctx context.Context, p *model.Payment) error

	// Delete removes a payment for good.
	Delete(ctx context.Context, id uuid.UUID) error
}

type PaymentsQueryer interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Payment, error)

	// List returns payments, newest first. A non-nil rentalID
	// limits them to the payments of that rental.
	List(ctx context.Context, rentalID uuid.UUID) ([]model.Payment, error)
}

type Payments interface {
	Conn(Conn) PaymentsConnQueryer
	Tx(Tx) PaymentsTxQueryer
}
