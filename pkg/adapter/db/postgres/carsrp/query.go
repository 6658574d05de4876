// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package carsrp

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/carrental/pkg/adapter/db/postgres"
	"github.com/momeni/carrental/pkg/core/cerr"
	"github.com/momeni/carrental/pkg/core/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type gCar struct {
	ID               uuid.UUID `gorm:"primaryKey;type:uuid"`
	Brand            string
	ModelName        string `gorm:"column:model"`
	Year             int
	Color            string
	Plate            string `gorm:"index"`
	Chassis          string
	Condition        string
	Availability     string          `gorm:"index"`
	DailyPrice       decimal.Decimal `gorm:"type:numeric(12,2)"`
	Odometer         int64
	Fuel             string
	Transmission     string
	InsuranceExpiry  *time.Time
	InspectionExpiry *time.Time

	Schedule model.MaintenanceSchedule `gorm:"embedded"`

	MaintenanceStartedAt   *time.Time
	MaintenanceDescription string
	MaintenanceGarage      string

	Photos postgres.StringArray

	CreatedAt  time.Time
	UpdatedAt  time.Time
	ArchivedAt *time.Time `gorm:"index"`
}

func (gc *gCar) TableName() string {
	return "cars"
}

type gMaintenance struct {
	ID          uint      `gorm:"primaryKey"`
	CarID       uuid.UUID `gorm:"type:uuid;index"`
	Date        time.Time
	Odometer    int64
	Description string
	Cost        decimal.Decimal `gorm:"type:numeric(12,2)"`
}

func (gm *gMaintenance) TableName() string {
	return "car_maintenance"
}

// AutoMigrate creates (or alters) the cars related tables.
func AutoMigrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(&gCar{}, &gMaintenance{})
}

func fromModel(c *model.Car) *gCar {
	gc := &gCar{
		ID:               c.ID,
		Brand:            c.Brand,
		ModelName:        c.Model,
		Year:             c.Year,
		Color:            c.Color,
		Plate:            c.Plate,
		Chassis:          c.Chassis,
		Condition:        string(c.Condition),
		Availability:     string(c.Availability),
		DailyPrice:       c.DailyPrice,
		Odometer:         c.Odometer,
		Fuel:             string(c.Fuel),
		Transmission:     string(c.Transmission),
		InsuranceExpiry:  c.InsuranceExpiry,
		InspectionExpiry: c.InspectionExpiry,
		Schedule:         c.Schedule,
		Photos:           postgres.StringArray(c.Photos),
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
		ArchivedAt:       c.ArchivedAt,
	}
	if m := c.Current; m != nil {
		startedAt := m.StartedAt
		gc.MaintenanceStartedAt = &startedAt
		gc.MaintenanceDescription = m.Description
		gc.MaintenanceGarage = m.Garage
	}
	return gc
}

func (gc *gCar) Model() *model.Car {
	c := &model.Car{
		ID:               gc.ID,
		Brand:            gc.Brand,
		Model:            gc.ModelName,
		Year:             gc.Year,
		Color:            gc.Color,
		Plate:            gc.Plate,
		Chassis:          gc.Chassis,
		Condition:        model.Condition(gc.Condition),
		Availability:     model.Availability(gc.Availability),
		DailyPrice:       gc.DailyPrice,
		Odometer:         gc.Odometer,
		Fuel:             model.FuelType(gc.Fuel),
		Transmission:     model.Transmission(gc.Transmission),
		InsuranceExpiry:  gc.InsuranceExpiry,
		InspectionExpiry: gc.InspectionExpiry,
		Schedule:         gc.Schedule,
		History:          []model.MaintenanceRecord{},
		Photos:           []string(gc.Photos),
		CreatedAt:        gc.CreatedAt,
		UpdatedAt:        gc.UpdatedAt,
		ArchivedAt:       gc.ArchivedAt,
	}
	if c.Photos == nil {
		c.Photos = []string{}
	}
	if gc.MaintenanceStartedAt != nil {
		c.Current = &model.CurrentMaintenance{
			StartedAt:   *gc.MaintenanceStartedAt,
			Description: gc.MaintenanceDescription,
			Garage:      gc.MaintenanceGarage,
		}
	}
	return c
}

func (gm *gMaintenance) Model() model.MaintenanceRecord {
	return model.MaintenanceRecord{
		Date:        gm.Date,
		Odometer:    gm.Odometer,
		Description: gm.Description,
		Cost:        gm.Cost,
	}
}

func path(id uuid.UUID) string {
	return model.EntityCar + "/" + id.String()
}

func Get[Q postgres.Queryer](ctx context.Context, q Q, id uuid.UUID) (*model.Car, error) {
	return get(ctx, q, id, false)
}

func GetForUpdate[Q postgres.Queryer](ctx context.Context, q Q, id uuid.UUID) (*model.Car, error) {
	return get(ctx, q, id, true)
}

// get reads the id car and its maintenance history. The history rows
// are queried on a fresh statement, so the car conditions and the
// locking clause do not leak into them.
func get[Q postgres.Queryer](
	ctx context.Context, q Q, id uuid.UUID, lock bool,
) (*model.Car, error) {
	gdb := q.GORM(ctx)
	if lock {
		gdb = postgres.ForUpdate(gdb)
	}
	gc := &gCar{}
	if err := gdb.Where("id = ?", id).First(gc).Error; err != nil {
		return nil, postgres.MapErr(err, "get", path(id), nil)
	}
	c := gc.Model()
	var gms []gMaintenance
	err := q.GORM(ctx).Where(
		"car_id = ?", id,
	).Order("date, id").Find(&gms).Error
	if err != nil {
		return nil, postgres.MapErr(err, "get", path(id)+"/history", nil)
	}
	for i := range gms {
		c.History = append(c.History, gms[i].Model())
	}
	return c, nil
}

func List[Q postgres.Queryer](ctx context.Context, q Q, v model.View) ([]model.Car, error) {
	gdb := q.GORM(ctx)
	var gcs []gCar
	err := gdb.Scopes(postgres.ViewScope(v)).Order(
		"brand, model, plate",
	).Find(&gcs).Error
	if err != nil {
		return nil, postgres.MapErr(err, "list", model.EntityCar, nil)
	}
	cars := make([]model.Car, 0, len(gcs))
	ids := make([]uuid.UUID, 0, len(gcs))
	idx := make(map[uuid.UUID]int, len(gcs))
	for i := range gcs {
		idx[gcs[i].ID] = i
		ids = append(ids, gcs[i].ID)
		cars = append(cars, *gcs[i].Model())
	}
	if len(ids) == 0 {
		return cars, nil
	}
	var gms []gMaintenance
	err = q.GORM(ctx).Where("car_id IN ?", ids).Order(
		"date, id",
	).Find(&gms).Error
	if err != nil {
		return nil, postgres.MapErr(
			err, "list", model.EntityCar+"/history", nil,
		)
	}
	for i := range gms {
		c := &cars[idx[gms[i].CarID]]
		c.History = append(c.History, gms[i].Model())
	}
	return cars, nil
}

func Create[Q postgres.Queryer](ctx context.Context, q Q, c *model.Car) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	gc := fromModel(c)
	gdb := q.GORM(ctx)
	if err := gdb.Create(gc).Error; err != nil {
		return postgres.MapErr(err, "create", path(c.ID), c)
	}
	c.CreatedAt, c.UpdatedAt = gc.CreatedAt, gc.UpdatedAt
	for _, rec := range c.History {
		if err := AddHistory(ctx, q, c.ID, rec); err != nil {
			return err
		}
	}
	return nil
}

func Save[Q postgres.Queryer](ctx context.Context, q Q, c *model.Car) error {
	gc := fromModel(c)
	gdb := q.GORM(ctx).Model(&gCar{}).Where("id = ?", c.ID).Select(
		"*",
	).Omit("id", "created_at").Updates(gc)
	if err := gdb.Error; err != nil {
		return postgres.MapErr(err, "update", path(c.ID), c)
	}
	if n := gdb.RowsAffected; n != 1 {
		return cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	c.UpdatedAt = gc.UpdatedAt
	return nil
}

func AddHistory[Q postgres.Queryer](
	ctx context.Context, q Q, carID uuid.UUID, rec model.MaintenanceRecord,
) error {
	gm := &gMaintenance{
		CarID:       carID,
		Date:        rec.Date,
		Odometer:    rec.Odometer,
		Description: rec.Description,
		Cost:        rec.Cost,
	}
	if err := q.GORM(ctx).Create(gm).Error; err != nil {
		return postgres.MapErr(err, "create", path(carID)+"/history", rec)
	}
	return nil
}
