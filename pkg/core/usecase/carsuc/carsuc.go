// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package carsuc contains the cars UseCase which supports the fleet
// management use cases. Cars may be created, updated, archived, sent
// to and back from a garage, and monitored through their maintenance
// and document alerts. Renting and returning a car belong to the
// rental use cases (see the rentaluc package).
package carsuc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/carrental/pkg/core/alert"
	"github.com/momeni/carrental/pkg/core/cerr"
	"github.com/momeni/carrental/pkg/core/model"
	"github.com/momeni/carrental/pkg/core/repo"
	"github.com/momeni/carrental/pkg/core/usecase/audituc"
)

// UseCase represents a cars use case. It holds a database connection
// pool, the cars repository instance (to be guided with the DB pool),
// the audit use case, and the cars use case specific settings.
type UseCase struct {
	pool    repo.Pool
	carsrp  repo.Cars
	journal *audituc.UseCase

	windows *alert.Windows
	now     func() time.Time
}

// New instantiates a cars use case.
// Required parameters are passed individually, so caller has to
// provision them and whenever they change, caller will notice and fix
// them due to a compilation error.
// Optional parameters are passed as a series of functional options
// in order to facilitate their validation and flexibility.
func New(
	p repo.Pool, c repo.Cars, j *audituc.UseCase, opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{pool: p, carsrp: c, journal: j}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if uc.windows == nil {
		w := alert.DefaultWindows()
		uc.windows = &w
	}
	if uc.now == nil {
		uc.now = time.Now
	}
	return uc, nil
}

// Create use case validates and inserts a new car. New cars are
// always available, with no ongoing maintenance.
func (cars *UseCase) Create(ctx context.Context, car *model.Car) (*model.Car, error) {
	if err := validate(car); err != nil {
		return nil, err
	}
	car.ID = uuid.Nil
	car.Availability = model.Available
	car.Current = nil
	car.ArchivedAt = nil
	normalize(car)
	err := cars.tx(ctx, func(ctx context.Context, tx repo.Tx, q repo.CarsTxQueryer) error {
		if err := q.Create(ctx, car); err != nil {
			return err
		}
		return cars.journal.Record(
			ctx, tx, model.EntityCar, car.ID, model.ActionCreate, car,
		)
	})
	if err != nil {
		return nil, err
	}
	return car, nil
}

// Update use case replaces the descriptive fields, documents dates,
// and maintenance schedule of the id car with the corresponding fields
// of car. The availability, ongoing maintenance, and history of a car
// are managed by their own use cases and are left unchanged.
// The odometer may only grow.
func (cars *UseCase) Update(
	ctx context.Context, id uuid.UUID, car *model.Car,
) (updated *model.Car, err error) {
	if err := validate(car); err != nil {
		return nil, err
	}
	normalize(car)
	err = cars.tx(ctx, func(ctx context.Context, tx repo.Tx, q repo.CarsTxQueryer) error {
		updated, err = q.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if updated.ArchivedAt != nil {
			return cerr.Unprocessable(errors.New("car is archived"))
		}
		if car.Odometer < updated.Odometer {
			return cerr.Invalid(
				"kilometrage",
				"odometer may not be lower than the current odometer",
			)
		}
		updated.Brand = car.Brand
		updated.Model = car.Model
		updated.Year = car.Year
		updated.Color = car.Color
		updated.Plate = car.Plate
		updated.Chassis = car.Chassis
		updated.Condition = car.Condition
		updated.DailyPrice = car.DailyPrice
		updated.Odometer = car.Odometer
		updated.Fuel = car.Fuel
		updated.Transmission = car.Transmission
		updated.InsuranceExpiry = car.InsuranceExpiry
		updated.InspectionExpiry = car.InspectionExpiry
		updated.Schedule = car.Schedule
		updated.Photos = car.Photos
		if err := q.Save(ctx, updated); err != nil {
			return err
		}
		return cars.journal.Record(
			ctx, tx, model.EntityCar, id, model.ActionUpdate, updated,
		)
	})
	if err != nil {
		updated = nil
	}
	return
}

// Get use case fetches the id car (archived or not).
func (cars *UseCase) Get(ctx context.Context, id uuid.UUID) (car *model.Car, err error) {
	err = cars.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		car, err = cars.carsrp.Conn(c).Get(ctx, id)
		return err
	})
	if err != nil {
		car = nil
	}
	return
}

// List use case returns the cars which are visible in the v view.
func (cars *UseCase) List(ctx context.Context, v model.View) (list []model.Car, err error) {
	if err := v.Validate(); err != nil {
		return nil, cerr.BadRequest(err)
	}
	err = cars.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		list, err = cars.carsrp.Conn(c).List(ctx, v)
		return err
	})
	if err != nil {
		list = nil
	}
	return
}

// Archive use case hides the id car from the active view. A rented
// car may not be archived before its return.
func (cars *UseCase) Archive(ctx context.Context, id uuid.UUID) (car *model.Car, err error) {
	err = cars.tx(ctx, func(ctx context.Context, tx repo.Tx, q repo.CarsTxQueryer) error {
		car, err = q.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		switch {
		case car.ArchivedAt != nil:
			return cerr.Conflict(errors.New("car is already archived"))
		case car.Availability == model.Rented:
			return cerr.Unprocessable(errors.New(
				"a rented car may not be archived before its return",
			))
		}
		now := cars.now().UTC()
		car.ArchivedAt = &now
		if err := q.Save(ctx, car); err != nil {
			return err
		}
		return cars.journal.Record(
			ctx, tx, model.EntityCar, id, model.ActionArchive, car,
		)
	})
	if err != nil {
		car = nil
	}
	return
}

// Alerts use case computes the maintenance and document alerts of
// the active cars, the most urgent first.
func (cars *UseCase) Alerts(ctx context.Context) ([]model.Alert, error) {
	list, err := cars.List(ctx, model.ViewActive)
	if err != nil {
		return nil, err
	}
	return alert.Compute(list, cars.now(), *cars.windows), nil
}

func (cars *UseCase) tx(
	ctx context.Context,
	f func(ctx context.Context, tx repo.Tx, q repo.CarsTxQueryer) error,
) error {
	return cars.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			return f(ctx, tx, cars.carsrp.Tx(tx))
		})
	})
}

func normalize(car *model.Car) {
	if car.Photos == nil {
		car.Photos = []string{}
	}
	car.DailyPrice = car.DailyPrice.Round(2)
}

func validate(car *model.Car) error {
	fe := cerr.FieldErrors{}
	fe.Assert(car.Brand != "", "marque", "brand is required")
	fe.Assert(car.Model != "", "modele", "model is required")
	fe.Assert(car.Plate != "", "immatriculation", "plate is required")
	fe.Assert(
		car.Year == 0 || (car.Year >= 1950 && car.Year <= 2100),
		"annee", "year is out of range",
	)
	fe.Assert(
		!car.DailyPrice.IsNegative(),
		"prixParJour", "daily price may not be negative",
	)
	fe.Assert(
		car.Odometer >= 0, "kilometrage", "odometer may not be negative",
	)
	if err := car.Condition.Validate(); err != nil {
		fe.Add("etat", err.Error())
	}
	if err := car.Fuel.Validate(); err != nil {
		fe.Add("carburant", err.Error())
	}
	if err := car.Transmission.Validate(); err != nil {
		fe.Add("transmission", err.Error())
	}
	return fe.Err()
}
