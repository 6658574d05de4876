// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package rentalsrp_test

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/carrental/internal/test/sqlitedb"
	"github.com/momeni/carrental/pkg/adapter/db/postgres"
	"github.com/momeni/carrental/pkg/adapter/db/postgres/rentalsrp"
	"github.com/momeni/carrental/pkg/core/cerr"
	"github.com/momeni/carrental/pkg/core/model"
	"github.com/momeni/carrental/pkg/core/repo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRental(number string, carID uuid.UUID, start time.Time) *model.Rental {
	return &model.Rental{
		ContractNumber: number,
		ClientID:       uuid.New(),
		Renter: model.Person{
			LastName: "Alaoui", FirstName: "Yassine", NationalID: "BE1",
		},
		CarID: carID,
		Vehicle: model.VehicleSnapshot{
			Brand: "Dacia", Model: "Logan", Plate: "1-A-1",
			Fuel: model.Diesel,
		},
		Terms: model.RentalTerms{
			StartDate:  start,
			EndDate:    start.AddDate(0, 0, 3),
			DailyPrice: decimal.NewFromInt(250),
			Days:       3,
			Total:      decimal.NewFromInt(750),
			Paid:       decimal.Zero,
			Deposit:    decimal.NewFromInt(2000),
		},
		Status:                model.Ongoing,
		DepartureKm:           10000,
		DepartureInspectionID: uuid.New(),
	}
}

func TestCreateGetAndSave(t *testing.T) {
	pool := sqlitedb.New(t)
	rp := rentalsrp.New()
	start := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	r := newRental("C-2024-05-001", uuid.New(), start)
	r.SecondDriver = &model.Person{LastName: "Benali", FirstName: "Salma"}
	sqlitedb.Tx(t, pool, func(ctx context.Context, tx *postgres.Tx) {
		q := rp.Tx(tx)
		require.NoError(t, q.Create(ctx, r))

		got, err := q.GetForUpdate(ctx, r.ID)
		require.NoError(t, err)
		assert.Equal(t, "C-2024-05-001", got.ContractNumber)
		assert.Equal(t, "Yassine Alaoui", got.Renter.FullName())
		require.NotNil(t, got.SecondDriver)
		assert.Equal(t, "Benali", got.SecondDriver.LastName)
		assert.Equal(t, model.Diesel, got.Vehicle.Fuel)
		assert.True(t, got.Terms.Total.Equal(decimal.NewFromInt(750)))
		assert.Nil(t, got.ReturnKm)

		km := int64(10420)
		got.ReturnKm = &km
		got.Status = model.Returned
		require.NoError(t, q.Save(ctx, got))

		got, err = q.Get(ctx, r.ID)
		require.NoError(t, err)
		assert.Equal(t, model.Returned, got.Status)
		require.NotNil(t, got.ReturnKm)
		assert.Equal(t, int64(10420), *got.ReturnKm)
	})
}

func TestDuplicatedContractNumber(t *testing.T) {
	pool := sqlitedb.New(t)
	rp := rentalsrp.New()
	start := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	sqlitedb.Tx(t, pool, func(ctx context.Context, tx *postgres.Tx) {
		q := rp.Tx(tx)
		require.NoError(t, q.Create(ctx, newRental("C-2024-05-001", uuid.New(), start)))
		err := q.Create(ctx, newRental("C-2024-05-001", uuid.New(), start))
		var ce *cerr.Error
		require.True(t, errors.As(err, &ce), err)
		assert.Equal(t, http.StatusConflict, ce.HTTPStatusCode)
	})
}

func TestContractNumbersAndFilters(t *testing.T) {
	pool := sqlitedb.New(t)
	rp := rentalsrp.New()
	carID := uuid.New()
	may := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	sqlitedb.Tx(t, pool, func(ctx context.Context, tx *postgres.Tx) {
		q := rp.Tx(tx)
		r1 := newRental("C-2024-05-001", carID, may)
		r2 := newRental("C-2024-05-002", uuid.New(), may.AddDate(0, 0, 1))
		r3 := newRental("C-2024-06-001", carID, may.AddDate(0, 1, 0))
		r3.Status = model.Returned
		for _, r := range []*model.Rental{r1, r2, r3} {
			require.NoError(t, q.Create(ctx, r))
		}
		now := time.Now().UTC()
		r2.ArchivedAt = &now
		require.NoError(t, q.Save(ctx, r2))

		numbers, err := q.ContractNumbers(ctx, "C-2024-05-")
		require.NoError(t, err)
		sort.Strings(numbers)
		assert.Equal(t, []string{"C-2024-05-001", "C-2024-05-002"}, numbers)

		list := func(f repo.RentalFilter) []string {
			rs, err := q.List(ctx, f)
			require.NoError(t, err)
			var ns []string
			for _, r := range rs {
				ns = append(ns, r.ContractNumber)
			}
			return ns
		}
		assert.Equal(t, []string{"C-2024-06-001", "C-2024-05-001"},
			list(repo.RentalFilter{}))
		assert.Equal(t, []string{"C-2024-05-002"},
			list(repo.RentalFilter{View: model.ViewArchived}))
		assert.Equal(t, []string{"C-2024-05-001"},
			list(repo.RentalFilter{Status: model.Ongoing}))
		assert.Equal(t, []string{"C-2024-06-001", "C-2024-05-001"},
			list(repo.RentalFilter{View: model.ViewAll, CarID: carID}))
	})
}
