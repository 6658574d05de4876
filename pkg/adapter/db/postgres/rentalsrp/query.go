// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package rentalsrp

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/carrental/pkg/adapter/db/postgres"
	"github.com/momeni/carrental/pkg/core/cerr"
	"github.com/momeni/carrental/pkg/core/model"
	"github.com/momeni/carrental/pkg/core/repo"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type gRental struct {
	ID             uuid.UUID     `gorm:"primaryKey;type:uuid"`
	ContractNumber string        `gorm:"uniqueIndex"`
	ClientID       uuid.UUID     `gorm:"type:uuid;index"`
	Renter         model.Person  `gorm:"serializer:json;type:text"`
	SecondDriver   *model.Person `gorm:"serializer:json;type:text"`
	CarID          uuid.UUID     `gorm:"type:uuid;index"`

	VehicleBrand string
	VehicleModel string
	VehiclePlate string
	VehicleColor string
	VehicleFuel  string

	StartDate      time.Time
	EndDate        time.Time
	PickupLocation string
	ReturnLocation string
	DailyPrice     decimal.Decimal `gorm:"type:numeric(12,2)"`
	Days           int
	Deposit        decimal.Decimal `gorm:"type:numeric(12,2)"`
	Total          decimal.Decimal `gorm:"type:numeric(12,2)"`
	Paid           decimal.Decimal `gorm:"type:numeric(12,2)"`

	Status                string `gorm:"index"`
	DepartureKm           int64
	ReturnKm              *int64
	ReturnedAt            *time.Time
	DepartureInspectionID uuid.UUID  `gorm:"type:uuid"`
	ReturnInspectionID    *uuid.UUID `gorm:"type:uuid"`

	CreatedAt  time.Time
	UpdatedAt  time.Time
	ArchivedAt *time.Time `gorm:"index"`
}

func (gr *gRental) TableName() string {
	return "rentals"
}

// AutoMigrate creates (or alters) the rentals table.
func AutoMigrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(&gRental{})
}

func fromModel(r *model.Rental) *gRental {
	return &gRental{
		ID:                    r.ID,
		ContractNumber:        r.ContractNumber,
		ClientID:              r.ClientID,
		Renter:                r.Renter,
		SecondDriver:          r.SecondDriver,
		CarID:                 r.CarID,
		VehicleBrand:          r.Vehicle.Brand,
		VehicleModel:          r.Vehicle.Model,
		VehiclePlate:          r.Vehicle.Plate,
		VehicleColor:          r.Vehicle.Color,
		VehicleFuel:           string(r.Vehicle.Fuel),
		StartDate:             r.Terms.StartDate,
		EndDate:               r.Terms.EndDate,
		PickupLocation:        r.Terms.PickupLocation,
		ReturnLocation:        r.Terms.ReturnLocation,
		DailyPrice:            r.Terms.DailyPrice,
		Days:                  r.Terms.Days,
		Deposit:               r.Terms.Deposit,
		Total:                 r.Terms.Total,
		Paid:                  r.Terms.Paid,
		Status:                string(r.Status),
		DepartureKm:           r.DepartureKm,
		ReturnKm:              r.ReturnKm,
		ReturnedAt:            r.ReturnedAt,
		DepartureInspectionID: r.DepartureInspectionID,
		ReturnInspectionID:    r.ReturnInspectionID,
		CreatedAt:             r.CreatedAt,
		UpdatedAt:             r.UpdatedAt,
		ArchivedAt:            r.ArchivedAt,
	}
}

func (gr *gRental) Model() *model.Rental {
	return &model.Rental{
		ID:             gr.ID,
		ContractNumber: gr.ContractNumber,
		ClientID:       gr.ClientID,
		Renter:         gr.Renter,
		SecondDriver:   gr.SecondDriver,
		CarID:          gr.CarID,
		Vehicle: model.VehicleSnapshot{
			Brand: gr.VehicleBrand,
			Model: gr.VehicleModel,
			Plate: gr.VehiclePlate,
			Color: gr.VehicleColor,
			Fuel:  model.FuelType(gr.VehicleFuel),
		},
		Terms: model.RentalTerms{
			StartDate:      gr.StartDate,
			EndDate:        gr.EndDate,
			PickupLocation: gr.PickupLocation,
			ReturnLocation: gr.ReturnLocation,
			DailyPrice:     gr.DailyPrice,
			Days:           gr.Days,
			Deposit:        gr.Deposit,
			Total:          gr.Total,
			Paid:           gr.Paid,
		},
		Status:                model.RentalStatus(gr.Status),
		DepartureKm:           gr.DepartureKm,
		ReturnKm:              gr.ReturnKm,
		ReturnedAt:            gr.ReturnedAt,
		DepartureInspectionID: gr.DepartureInspectionID,
		ReturnInspectionID:    gr.ReturnInspectionID,
		CreatedAt:             gr.CreatedAt,
		UpdatedAt:             gr.UpdatedAt,
		ArchivedAt:            gr.ArchivedAt,
	}
}

func path(id uuid.UUID) string {
	return model.EntityRental + "/" + id.String()
}

func Get[Q postgres.Queryer](ctx context.Context, q Q, id uuid.UUID) (*model.Rental, error) {
	return get(q.GORM(ctx), id)
}

func GetForUpdate[Q postgres.Queryer](ctx context.Context, q Q, id uuid.UUID) (*model.Rental, error) {
	return get(postgres.ForUpdate(q.GORM(ctx)), id)
}

func get(gdb *gorm.DB, id uuid.UUID) (*model.Rental, error) {
	gr := &gRental{}
	if err := gdb.Where("id = ?", id).First(gr).Error; err != nil {
		return nil, postgres.MapErr(err, "get", path(id), nil)
	}
	return gr.Model(), nil
}

func List[Q postgres.Queryer](
	ctx context.Context, q Q, f repo.RentalFilter,
) ([]model.Rental, error) {
	gdb := q.GORM(ctx).Scopes(postgres.ViewScope(f.View))
	if f.Status != "" {
		gdb = gdb.Where("status = ?", string(f.Status))
	}
	if f.CarID != uuid.Nil {
		gdb = gdb.Where("car_id = ?", f.CarID)
	}
	var grs []gRental
	err := gdb.Order("start_date DESC, contract_number DESC").Find(&grs).Error
	if err != nil {
		return nil, postgres.MapErr(err, "list", model.EntityRental, nil)
	}
	rentals := make([]model.Rental, 0, len(grs))
	for i := range grs {
		rentals = append(rentals, *grs[i].Model())
	}
	return rentals, nil
}

func Create[Q postgres.Queryer](ctx context.Context, q Q, r *model.Rental) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	gr := fromModel(r)
	if err := q.GORM(ctx).Create(gr).Error; err != nil {
		return postgres.MapErr(err, "create", path(r.ID), r)
	}
	r.CreatedAt, r.UpdatedAt = gr.CreatedAt, gr.UpdatedAt
	return nil
}

func Save[Q postgres.Queryer](ctx context.Context, q Q, r *model.Rental) error {
	gr := fromModel(r)
	gdb := q.GORM(ctx).Model(&gRental{}).Where("id = ?", r.ID).Select(
		"*",
	).Omit("id", "created_at").Updates(gr)
	if err := gdb.Error; err != nil {
		return postgres.MapErr(err, "update", path(r.ID), r)
	}
	if n := gdb.RowsAffected; n != 1 {
		return cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	r.UpdatedAt = gr.UpdatedAt
	return nil
}

func ContractNumbers[Q postgres.Queryer](
	ctx context.Context, q Q, prefix string,
) ([]string, error) {
	var numbers []string
	err := q.GORM(ctx).Model(&gRental{}).Where(
		"contract_number LIKE ?", prefix+"%",
	).Pluck("contract_number", &numbers).Error
	if err != nil {
		return nil, postgres.MapErr(
			err, "list", model.EntityRental+"/contract-numbers", nil,
		)
	}
	return numbers, nil
}
