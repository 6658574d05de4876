// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package inspectionsrp

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/carrental/pkg/adapter/db/postgres"
	"github.com/momeni/carrental/pkg/core/model"
	"gorm.io/gorm"
)

type gInspection struct {
	ID          uuid.UUID `gorm:"primaryKey;type:uuid"`
	RentalID    uuid.UUID `gorm:"type:uuid;index"`
	CarID       uuid.UUID `gorm:"type:uuid;index"`
	Kind        string
	Date        time.Time
	Odometer    int64
	FuelLevel   float64
	Accessories model.Accessories `gorm:"embedded;embeddedPrefix:accessory_"`
	Notes       string
	Photos      postgres.StringArray
	CreatedAt   time.Time
}

func (gi *gInspection) TableName() string {
	return "inspections"
}

type gDamage struct {
	ID           uuid.UUID `gorm:"primaryKey;type:uuid"`
	InspectionID uuid.UUID `gorm:"type:uuid;index"`
	Position     int
	Part         string
	Kind         string
	X            float64
	Y            float64
}

func (gd *gDamage) TableName() string {
	return "damages"
}

// AutoMigrate creates (or alters) the inspections and damages tables.
func AutoMigrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(&gInspection{}, &gDamage{})
}

func (gi *gInspection) Model() model.Inspection {
	photos := []string(gi.Photos)
	if photos == nil {
		photos = []string{}
	}
	return model.Inspection{
		ID:          gi.ID,
		RentalID:    gi.RentalID,
		CarID:       gi.CarID,
		Kind:        model.InspectionKind(gi.Kind),
		Date:        gi.Date,
		Odometer:    gi.Odometer,
		FuelLevel:   gi.FuelLevel,
		Accessories: gi.Accessories,
		Notes:       gi.Notes,
		Photos:      photos,
		Damages:     []model.Damage{},
	}
}

func (gd *gDamage) Model() model.Damage {
	return model.Damage{
		ID:   gd.ID,
		Part: gd.Part,
		Kind: model.DamageKind(gd.Kind),
		X:    gd.X,
		Y:    gd.Y,
	}
}

func path(rentalID uuid.UUID) string {
	return model.EntityRental + "/" + rentalID.String() + "/inspections"
}

func ListByRental[Q postgres.Queryer](
	ctx context.Context, q Q, rentalID uuid.UUID,
) ([]model.Inspection, error) {
	var gis []gInspection
	err := q.GORM(ctx).Where("rental_id = ?", rentalID).Order(
		"date, created_at",
	).Find(&gis).Error
	if err != nil {
		return nil, postgres.MapErr(err, "list", path(rentalID), nil)
	}
	ins := make([]model.Inspection, 0, len(gis))
	ids := make([]uuid.UUID, 0, len(gis))
	idx := make(map[uuid.UUID]int, len(gis))
	for i := range gis {
		idx[gis[i].ID] = i
		ids = append(ids, gis[i].ID)
		ins = append(ins, gis[i].Model())
	}
	if len(ids) == 0 {
		return ins, nil
	}
	var gds []gDamage
	err = q.GORM(ctx).Where("inspection_id IN ?", ids).Order(
		"position",
	).Find(&gds).Error
	if err != nil {
		return nil, postgres.MapErr(err, "list", path(rentalID), nil)
	}
	for i := range gds {
		in := &ins[idx[gds[i].InspectionID]]
		in.Damages = append(in.Damages, gds[i].Model())
	}
	return ins, nil
}

func Create[Q postgres.Queryer](ctx context.Context, q Q, in *model.Inspection) error {
	if in.ID == uuid.Nil {
		in.ID = uuid.New()
	}
	gi := &gInspection{
		ID:          in.ID,
		RentalID:    in.RentalID,
		CarID:       in.CarID,
		Kind:        string(in.Kind),
		Date:        in.Date,
		Odometer:    in.Odometer,
		FuelLevel:   in.FuelLevel,
		Accessories: in.Accessories,
		Notes:       in.Notes,
		Photos:      postgres.StringArray(in.Photos),
	}
	if err := q.GORM(ctx).Create(gi).Error; err != nil {
		return postgres.MapErr(err, "create", path(in.RentalID), in)
	}
	if len(in.Damages) == 0 {
		return nil
	}
	gds := make([]gDamage, 0, len(in.Damages))
	for i := range in.Damages {
		d := &in.Damages[i]
		if d.ID == uuid.Nil {
			d.ID = uuid.New()
		}
		gds = append(gds, gDamage{
			ID:           d.ID,
			InspectionID: in.ID,
			Position:     i,
			Part:         d.Part,
			Kind:         string(d.Kind),
			X:            d.X,
			Y:            d.Y,
		})
	}
	if err := q.GORM(ctx).Create(&gds).Error; err != nil {
		return postgres.MapErr(
			err, "create", path(in.RentalID)+"/damages", in.Damages,
		)
	}
	return nil
}
