// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package paymentuc contains the payments UseCase. The paid amount of
// a rental is the sum of its payments, so recording or deleting a
// payment updates the rental in the same transaction.
package paymentuc

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/carrental/pkg/core/cerr"
	"github.com/momeni/carrental/pkg/core/finance"
	"github.com/momeni/carrental/pkg/core/model"
	"github.com/momeni/carrental/pkg/core/repo"
	"github.com/momeni/carrental/pkg/core/usecase/audituc"
	"github.com/shopspring/decimal"
)

// UseCase represents the payments use case.
type UseCase struct {
	pool     repo.Pool
	payments repo.Payments
	rentals  repo.Rentals
	journal  *audituc.UseCase
	now      func() time.Time
}

// New instantiates a payments use case.
func New(
	p repo.Pool, payments repo.Payments, rentals repo.Rentals,
	j *audituc.UseCase,
) *UseCase {
	return &UseCase{
		pool:     p,
		payments: payments,
		rentals:  rentals,
		journal:  j,
		now:      time.Now,
	}
}

// Input describes a new payment. A zero Date means now and an empty
// Status means valide.
type Input struct {
	RentalID uuid.UUID
	Amount   decimal.Decimal
	Date     time.Time
	Method   model.PaymentMethod
	Status   model.PaymentStatus
	Notes    string
}

func (in *Input) check() error {
	fe := cerr.FieldErrors{}
	fe.Assert(in.RentalID != uuid.Nil, "rentalId", "rental is required")
	if err := in.Method.Validate(); err != nil {
		fe.Add("methode", err.Error())
	}
	if in.Status == "" {
		in.Status = model.PaymentValid
	} else if err := in.Status.Validate(); err != nil {
		fe.Add("statut", err.Error())
	}
	return fe.Err()
}

// Record use case adds a payment to a rental. The amount must be
// positive and may not exceed the remaining amount of the rental.
func (payments *UseCase) Record(ctx context.Context, in Input) (p *model.Payment, err error) {
	if err := in.check(); err != nil {
		return nil, err
	}
	if in.Date.IsZero() {
		in.Date = payments.now()
	}
	in.Amount = in.Amount.Round(2)
	err = payments.tx(ctx, func(ctx context.Context, tx repo.Tx) error {
		rq := payments.rentals.Tx(tx)
		r, err := rq.GetForUpdate(ctx, in.RentalID)
		if err != nil {
			return err
		}
		err = finance.CheckPayment(r.Terms.Total, r.Terms.Paid, in.Amount)
		if err != nil {
			return err
		}
		p = &model.Payment{
			RentalID:       r.ID,
			ContractNumber: r.ContractNumber,
			ClientName:     r.Renter.FullName(),
			Amount:         in.Amount,
			Date:           in.Date.UTC(),
			Method:         in.Method,
			Status:         in.Status,
			Notes:          strings.TrimSpace(in.Notes),
		}
		if err := payments.payments.Tx(tx).Create(ctx, p); err != nil {
			return err
		}
		r.Terms.Paid = r.Terms.Paid.Add(p.Amount)
		if err := rq.Save(ctx, r); err != nil {
			return err
		}
		return payments.journal.Record(
			ctx, tx, model.EntityPayment, p.ID, model.ActionCreate, p,
		)
	})
	if err != nil {
		p = nil
	}
	return
}

// Delete use case removes the id payment and subtracts its amount
// from the paid amount of its rental.
func (payments *UseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return payments.tx(ctx, func(ctx context.Context, tx repo.Tx) error {
		pq := payments.payments.Tx(tx)
		p, err := pq.Get(ctx, id)
		if err != nil {
			return err
		}
		rq := payments.rentals.Tx(tx)
		r, err := rq.GetForUpdate(ctx, p.RentalID)
		if err != nil {
			return fmt.Errorf("locking rental of payment: %w", err)
		}
		if err := pq.Delete(ctx, id); err != nil {
			return err
		}
		r.Terms.Paid = r.Terms.Paid.Sub(p.Amount)
		if r.Terms.Paid.IsNegative() {
			r.Terms.Paid = decimal.Zero
		}
		if err := rq.Save(ctx, r); err != nil {
			return err
		}
		return payments.journal.Record(
			ctx, tx, model.EntityPayment, id, model.ActionDelete, p,
		)
	})
}

// List use case returns the payments of the rentalID rental, or all
// payments when rentalID is uuid.Nil, the newest first.
func (payments *UseCase) List(
	ctx context.Context, rentalID uuid.UUID,
) (list []model.Payment, err error) {
	err = payments.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		if rentalID != uuid.Nil {
			_, err := payments.rentals.Conn(c).Get(ctx, rentalID)
			if err != nil {
				return err
			}
		}
		list, err = payments.payments.Conn(c).List(ctx, rentalID)
		return err
	})
	if err != nil {
		list = nil
	}
	return
}

func (payments *UseCase) tx(
	ctx context.Context, f func(ctx context.Context, tx repo.Tx) error,
) error {
	return payments.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, f)
	})
}
