// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package inspectionsrp_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/carrental/internal/test/sqlitedb"
	"github.com/momeni/carrental/pkg/adapter/db/postgres"
	"github.com/momeni/carrental/pkg/adapter/db/postgres/inspectionsrp"
	"github.com/momeni/carrental/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndListByRental(t *testing.T) {
	pool := sqlitedb.New(t)
	rp := inspectionsrp.New()
	rentalID, carID := uuid.New(), uuid.New()
	day := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	sqlitedb.Tx(t, pool, func(ctx context.Context, tx *postgres.Tx) {
		q := rp.Tx(tx)
		ret := &model.Inspection{
			RentalID: rentalID, CarID: carID,
			Kind: model.ReturnInspection, Date: day.AddDate(0, 0, 3),
			Odometer: 10420, FuelLevel: 0.5,
		}
		dep := &model.Inspection{
			RentalID: rentalID, CarID: carID,
			Kind: model.DepartureInspection, Date: day,
			Odometer: 10000, FuelLevel: 1,
			Accessories: model.Accessories{SpareWheel: true, Jack: true},
			Photos:      []string{"avant.jpg", "tableau de bord.jpg"},
			Damages: []model.Damage{
				{Part: "pare-choc avant", Kind: model.Scratch, X: 0.2, Y: 0.1},
				{Part: "portiere gauche", Kind: model.Dent, X: 0.4, Y: 0.6},
			},
		}
		require.NoError(t, q.Create(ctx, ret))
		require.NoError(t, q.Create(ctx, dep))
		require.NoError(t, q.Create(ctx, &model.Inspection{
			RentalID: uuid.New(), CarID: carID,
			Kind: model.DepartureInspection, Date: day,
		}))

		ins, err := q.ListByRental(ctx, rentalID)
		require.NoError(t, err)
		require.Len(t, ins, 2)
		assert.Equal(t, model.DepartureInspection, ins[0].Kind)
		assert.True(t, ins[0].Accessories.Jack)
		assert.False(t, ins[0].Accessories.Triangle)
		assert.Equal(t, []string{"avant.jpg", "tableau de bord.jpg"}, ins[0].Photos)
		require.Len(t, ins[0].Damages, 2)
		assert.Equal(t, "pare-choc avant", ins[0].Damages[0].Part)
		assert.Equal(t, model.Dent, ins[0].Damages[1].Kind)
		assert.Equal(t, model.ReturnInspection, ins[1].Kind)
		assert.Empty(t, ins[1].Damages)
		assert.InDelta(t, 0.5, ins[1].FuelLevel, 1e-9)
	})
}
