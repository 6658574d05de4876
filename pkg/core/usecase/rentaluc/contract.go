// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package rentaluc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/carrental/pkg/core/cerr"
	"github.com/momeni/carrental/pkg/core/finance"
	"github.com/momeni/carrental/pkg/core/model"
	"github.com/momeni/carrental/pkg/core/repo"
	"github.com/momeni/carrental/pkg/core/usecase/clientsuc"
	"github.com/shopspring/decimal"
)

// ContractInput describes a new contract. A nil DailyPrice takes the
// current daily price of the car.
type ContractInput struct {
	ClientID       uuid.UUID
	SecondDriver   *model.Person
	CarID          uuid.UUID
	StartDate      time.Time
	EndDate        time.Time
	PickupLocation string
	ReturnLocation string
	DailyPrice     *decimal.Decimal
	Deposit        decimal.Decimal
	Departure      InspectionInput
}

func (ci *ContractInput) check(today time.Time) error {
	fe := cerr.FieldErrors{}
	fe.Assert(ci.ClientID != uuid.Nil, "clientId", "client is required")
	fe.Assert(ci.CarID != uuid.Nil, "carId", "car is required")
	if fe.Assert(!ci.StartDate.IsZero(), "dateDebut", "start date is required") {
		fe.Assert(
			!model.DateOf(ci.StartDate).Before(today), "dateDebut",
			"start date may not be in the past",
		)
	}
	if fe.Assert(!ci.EndDate.IsZero(), "dateFin", "end date is required") {
		fe.Assert(
			!model.DateOf(ci.EndDate).Before(model.DateOf(ci.StartDate)),
			"dateFin", "end date may not be before the start date",
		)
	}
	if ci.DailyPrice != nil {
		fe.Assert(
			!ci.DailyPrice.IsNegative(), "prixParJour",
			"daily price may not be negative",
		)
	}
	fe.Assert(
		!ci.Deposit.IsNegative(), "caution", "deposit may not be negative",
	)
	if ci.SecondDriver != nil {
		var sfe cerr.FieldErrors
		if err := clientsuc.ValidatePerson(
			"deuxiemeConducteur", ci.SecondDriver,
		); errors.As(err, &sfe) {
			for name, msgs := range sfe {
				fe.Add(name, msgs...)
			}
		}
	}
	ci.Departure.check(fe, "depart")
	return fe.Err()
}

// Create use case opens a new contract. It checks the client and the
// car (which must be available), allocates the next contract number of
// the current month, and in one transaction, stores the departure
// inspection and the rental, marks the car as rented, and records
// them in the audit trail.
func (rentals *UseCase) Create(ctx context.Context, ci ContractInput) (r *model.Rental, err error) {
	now := rentals.now()
	if err := ci.check(model.DateOf(now)); err != nil {
		return nil, err
	}
	err = rentals.tx(ctx, func(ctx context.Context, tx repo.Tx) error {
		client, err := rentals.repos.Clients.Tx(tx).Get(ctx, ci.ClientID)
		if err != nil {
			return err
		}
		if client.ArchivedAt != nil {
			return cerr.Unprocessable(errors.New("client is archived"))
		}
		carsQ := rentals.repos.Cars.Tx(tx)
		car, err := carsQ.GetForUpdate(ctx, ci.CarID)
		if err != nil {
			return err
		}
		switch {
		case car.ArchivedAt != nil:
			return cerr.Unprocessable(errors.New("car is archived"))
		case car.Availability != model.Available:
			return cerr.Conflict(fmt.Errorf(
				"car %s is not available (%s)",
				car.Label(), car.Availability,
			))
		}
		price := car.DailyPrice
		if ci.DailyPrice != nil {
			price = *ci.DailyPrice
		}
		quote, err := finance.Compute(ci.StartDate, ci.EndDate, price)
		if err != nil {
			return cerr.Invalid("prixParJour", err.Error())
		}
		departureKm := car.Odometer
		if km := ci.Departure.Odometer; km != nil {
			if *km < car.Odometer {
				return cerr.Invalid(
					"depart.kilometrage",
					"odometer may not be lower than the car odometer",
				)
			}
			departureKm = *km
		}
		q := rentals.repos.Rentals.Tx(tx)
		number, err := rentals.nextContractNumber(ctx, q, now)
		if err != nil {
			return err
		}

		r = &model.Rental{
			ID:             uuid.New(),
			ContractNumber: number,
			ClientID:       client.ID,
			Renter:         client.Person(),
			SecondDriver:   ci.SecondDriver,
			CarID:          car.ID,
			Vehicle:        car.Snapshot(),
			Terms: model.RentalTerms{
				StartDate:      ci.StartDate.UTC(),
				EndDate:        ci.EndDate.UTC(),
				PickupLocation: ci.PickupLocation,
				ReturnLocation: ci.ReturnLocation,
				DailyPrice:     price.Round(2),
				Days:           quote.Days,
				Deposit:        ci.Deposit.Round(2),
				Total:          quote.Total.Round(2),
				Paid:           decimal.Zero,
			},
			Status:      model.Ongoing,
			DepartureKm: departureKm,
		}
		if ci.Departure.Date.IsZero() {
			ci.Departure.Date = now
		}
		in := ci.Departure.model(
			model.DepartureInspection, r.ID, car.ID, departureKm,
		)
		if err := rentals.repos.Inspections.Tx(tx).Create(ctx, in); err != nil {
			return err
		}
		r.DepartureInspectionID = in.ID
		if err := q.Create(ctx, r); err != nil {
			return err
		}
		car.Availability = model.Rented
		car.Odometer = departureKm
		if err := carsQ.Save(ctx, car); err != nil {
			return err
		}
		err = rentals.journal.Record(
			ctx, tx, model.EntityRental, r.ID, model.ActionCreate, r,
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

// nextContractNumber finds the highest sequence number among the
// contracts of the month of now (archived ones included) and returns
// the next contract number. Two concurrent allocations may compute the
// same number, so one of them fails on the unique index of contract
// numbers and is reported as a conflict.
func (rentals *UseCase) nextContractNumber(
	ctx context.Context, q repo.RentalsTxQueryer, now time.Time,
) (string, error) {
	prefix := model.ContractMonthPrefix(rentals.contractPrefix, now)
	numbers, err := q.ContractNumbers(ctx, prefix)
	if err != nil {
		return "", fmt.Errorf("listing contract numbers: %w", err)
	}
	return NextContractNumber(
		rentals.contractPrefix, now, numbers,
	), nil
}

// NextContractNumber returns the contract number which follows the
// given existing numbers in the month of now. Numbers which do not
// belong to that month, or are malformed, are ignored.
func NextContractNumber(prefix string, now time.Time, existing []string) string {
	next := model.ContractNumber{
		Prefix: prefix,
		Year:   now.Year(),
		Month:  now.Month(),
		Seq:    1,
	}
	for _, s := range existing {
		cn, err := model.ParseContractNumber(s)
		if err != nil || cn.Prefix != prefix || cn.Year != next.Year ||
			cn.Month != next.Month {
			continue
		}
		if cn.Seq >= next.Seq {
			next.Seq = cn.Seq + 1
		}
	}
	return next.String()
}
