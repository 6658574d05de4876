// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package carsuc

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/carrental/pkg/core/cerr"
	"github.com/momeni/carrental/pkg/core/model"
	"github.com/momeni/carrental/pkg/core/repo"
	"github.com/shopspring/decimal"
)

// Completion describes a finished maintenance. A nil Odometer keeps
// the car odometer, an empty Description reuses the description of
// the ongoing maintenance, and a non-nil Schedule replaces the next
// service thresholds of the car.
type Completion struct {
	Date        time.Time
	Odometer    *int64
	Description string
	Cost        decimal.Decimal
	Schedule    *model.MaintenanceSchedule
}

// StartMaintenance use case sends the id available car to a garage.
func (cars *UseCase) StartMaintenance(
	ctx context.Context, id uuid.UUID, m model.CurrentMaintenance,
) (car *model.Car, err error) {
	m.Description = strings.TrimSpace(m.Description)
	if m.Description == "" {
		return nil, cerr.Invalid("description", "description is required")
	}
	if m.StartedAt.IsZero() {
		m.StartedAt = cars.now()
	}
	m.StartedAt = m.StartedAt.UTC()
	err = cars.tx(ctx, func(ctx context.Context, tx repo.Tx, q repo.CarsTxQueryer) error {
		car, err = q.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		switch {
		case car.ArchivedAt != nil:
			return cerr.Unprocessable(errors.New("car is archived"))
		case car.Availability != model.Available:
			return cerr.Unprocessable(errors.New(
				"only an available car may enter maintenance",
			))
		}
		car.Availability = model.InMaintenance
		car.Current = &m
		if err := q.Save(ctx, car); err != nil {
			return err
		}
		return cars.journal.Record(
			ctx, tx, model.EntityCar, id,
			model.ActionMaintenanceStart, car.Current,
		)
	})
	if err != nil {
		car = nil
	}
	return
}

// CompleteMaintenance use case ends the ongoing maintenance of the id
// car, records it in the maintenance history, and makes the car
// available again.
func (cars *UseCase) CompleteMaintenance(
	ctx context.Context, id uuid.UUID, done Completion,
) (car *model.Car, err error) {
	if done.Cost.IsNegative() {
		return nil, cerr.Invalid("cout", "cost may not be negative")
	}
	if done.Date.IsZero() {
		done.Date = cars.now()
	}
	err = cars.tx(ctx, func(ctx context.Context, tx repo.Tx, q repo.CarsTxQueryer) error {
		car, err = q.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if car.Availability != model.InMaintenance || car.Current == nil {
			return cerr.Unprocessable(errors.New(
				"car is not in maintenance",
			))
		}
		rec := model.MaintenanceRecord{
			Date:        done.Date.UTC(),
			Odometer:    car.Odometer,
			Description: strings.TrimSpace(done.Description),
			Cost:        done.Cost.Round(2),
		}
		if rec.Description == "" {
			rec.Description = car.Current.Description
		}
		if km := done.Odometer; km != nil {
			if *km < car.Odometer {
				return cerr.Invalid(
					"kilometrage",
					"odometer may not be lower than the current odometer",
				)
			}
			rec.Odometer = *km
			car.Odometer = *km
		}
		if done.Schedule != nil {
			car.Schedule = *done.Schedule
		}
		car.Availability = model.Available
		car.Current = nil
		if err := q.Save(ctx, car); err != nil {
			return err
		}
		if err := q.AddHistory(ctx, id, rec); err != nil {
			return err
		}
		car.History = append(car.History, rec)
		return cars.journal.Record(
			ctx, tx, model.EntityCar, id,
			model.ActionMaintenanceComplete, rec,
		)
	})
	if err != nil {
		car = nil
	}
	return
}
