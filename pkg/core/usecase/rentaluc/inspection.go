// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package rentaluc

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/carrental/pkg/core/cerr"
	"github.com/momeni/carrental/pkg/core/model"
)

// InspectionInput is the vehicle condition which is observed at the
// departure or return of a car. The odometer of a departure inspection
// defaults to the car odometer and the odometer of a return inspection
// is always the returned odometer.
type InspectionInput struct {
	Date        time.Time
	Odometer    *int64
	FuelLevel   float64
	Accessories model.Accessories
	Notes       string
	Photos      []string
	Damages     []model.Damage
}

func (in *InspectionInput) check(fe cerr.FieldErrors, prefix string) {
	fe.Assert(
		in.FuelLevel >= 0 && in.FuelLevel <= 1,
		prefix+".niveauCarburant", "fuel level must be between 0 and 1",
	)
	if in.Odometer != nil {
		fe.Assert(
			*in.Odometer >= 0, prefix+".kilometrage",
			"odometer may not be negative",
		)
	}
	for i, d := range in.Damages {
		name := fmt.Sprintf("%s.dommages[%d]", prefix, i)
		fe.Assert(d.Part != "", name+".partie", "part is required")
		if err := d.Kind.Validate(); err != nil {
			fe.Add(name+".type", err.Error())
		}
	}
}

func (in *InspectionInput) model(
	kind model.InspectionKind, rentalID, carID uuid.UUID, odometer int64,
) *model.Inspection {
	photos := in.Photos
	if photos == nil {
		photos = []string{}
	}
	damages := make([]model.Damage, len(in.Damages))
	copy(damages, in.Damages)
	return &model.Inspection{
		RentalID:    rentalID,
		CarID:       carID,
		Kind:        kind,
		Date:        in.Date.UTC(),
		Odometer:    odometer,
		FuelLevel:   in.FuelLevel,
		Accessories: in.Accessories,
		Notes:       in.Notes,
		Photos:      photos,
		Damages:     damages,
	}
}
