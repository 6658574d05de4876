// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package rentaluc

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/carrental/pkg/core/cerr"
	"github.com/momeni/carrental/pkg/core/finance"
	"github.com/momeni/carrental/pkg/core/model"
	"github.com/momeni/carrental/pkg/core/repo"
)

// Extension describes a contract extension. A nil ReturnLocation
// keeps the current return location.
type Extension struct {
	EndDate        time.Time
	ReturnLocation *string
}

// Extend use case changes the end date (and optionally the return
// location) of the id ongoing rental, recomputing its days count and
// total. The new total may not be lower than the already paid amount.
func (rentals *UseCase) Extend(
	ctx context.Context, id uuid.UUID, ext Extension,
) (r *model.Rental, err error) {
	if ext.EndDate.IsZero() {
		return nil, cerr.Invalid("dateFin", "end date is required")
	}
	err = rentals.tx(ctx, func(ctx context.Context, tx repo.Tx) error {
		q := rentals.repos.Rentals.Tx(tx)
		r, err = lockOngoing(ctx, q, id)
		if err != nil {
			return err
		}
		if model.DateOf(ext.EndDate).Before(model.DateOf(r.Terms.StartDate)) {
			return cerr.Invalid(
				"dateFin", "end date may not be before the start date",
			)
		}
		quote, err := finance.Compute(
			r.Terms.StartDate, ext.EndDate, r.Terms.DailyPrice,
		)
		if err != nil {
			return err
		}
		if quote.Total.LessThan(r.Terms.Paid) {
			return cerr.Invalid("dateFin", fmt.Sprintf(
				"new total %s is lower than the paid amount %s",
				quote.Total.StringFixed(2), r.Terms.Paid.StringFixed(2),
			))
		}
		r.Terms.EndDate = ext.EndDate.UTC()
		r.Terms.Days = quote.Days
		r.Terms.Total = quote.Total.Round(2)
		if ext.ReturnLocation != nil {
			r.Terms.ReturnLocation = *ext.ReturnLocation
		}
		if err := q.Save(ctx, r); err != nil {
			return err
		}
		return rentals.journal.Record(
			ctx, tx, model.EntityRental, id, model.ActionExtend, r.Terms,
		)
	})
	if err != nil {
		r = nil
	}
	return
}

// CheckInInput describes the return of a rented car.
type CheckInInput struct {
	ReturnDate time.Time
	ReturnKm   int64
	Inspection InspectionInput
}

// CheckIn use case closes the id ongoing rental. The returned odometer
// may not be lower than the departure odometer and the return date may
// not be before the start date. In one transaction, it stores the
// return inspection, bills the days from the start date to the actual
// return date, marks the rental as returned, and updates the odometer
// and availability of the car. A missing rental or car aborts the
// whole transaction.
func (rentals *UseCase) CheckIn(
	ctx context.Context, id uuid.UUID, ci CheckInInput,
) (r *model.Rental, err error) {
	if ci.ReturnDate.IsZero() {
		ci.ReturnDate = rentals.now()
	}
	fe := cerr.FieldErrors{}
	ci.Inspection.Odometer = nil
	ci.Inspection.check(fe, "retour")
	if err := fe.Err(); err != nil {
		return nil, err
	}
	err = rentals.tx(ctx, func(ctx context.Context, tx repo.Tx) error {
		q := rentals.repos.Rentals.Tx(tx)
		r, err = lockOngoing(ctx, q, id)
		if err != nil {
			return err
		}
		fe.Assert(
			ci.ReturnKm >= r.DepartureKm, "kilometrageRetour",
			"return odometer cannot be lower than departure odometer",
		)
		fe.Assert(
			!model.DateOf(ci.ReturnDate).Before(
				model.DateOf(r.Terms.StartDate),
			),
			"dateRetour", "return date cannot be before the start date",
		)
		if err := fe.Err(); err != nil {
			return err
		}
		carsQ := rentals.repos.Cars.Tx(tx)
		car, err := carsQ.GetForUpdate(ctx, r.CarID)
		if err != nil {
			return err
		}
		quote, err := finance.Compute(
			r.Terms.StartDate, ci.ReturnDate, r.Terms.DailyPrice,
		)
		if err != nil {
			return err
		}

		if ci.Inspection.Date.IsZero() {
			ci.Inspection.Date = ci.ReturnDate
		}
		in := ci.Inspection.model(
			model.ReturnInspection, r.ID, r.CarID, ci.ReturnKm,
		)
		if err := rentals.repos.Inspections.Tx(tx).Create(ctx, in); err != nil {
			return err
		}
		returnedAt := ci.ReturnDate.UTC()
		returnKm := ci.ReturnKm
		r.Terms.Days = quote.Days
		r.Terms.Total = quote.Total.Round(2)
		r.Status = model.Returned
		r.ReturnKm = &returnKm
		r.ReturnedAt = &returnedAt
		r.ReturnInspectionID = &in.ID
		if err := q.Save(ctx, r); err != nil {
			return err
		}
		car.Odometer = ci.ReturnKm
		car.Availability = model.Available
		if err := carsQ.Save(ctx, car); err != nil {
			return err
		}
		err = rentals.journal.Record(
			ctx, tx, model.EntityRental, id, model.ActionCheckIn, r,
		)
		if err != nil {
			return err
		}
		return rentals.journal.Record(
			ctx, tx, model.EntityCar, car.ID, model.ActionUpdate, car,
		)
	})
	if err != nil {
		r = nil
	}
	return
}
