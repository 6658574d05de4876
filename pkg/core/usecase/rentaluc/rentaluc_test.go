// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package rentaluc_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/carrental/internal/test/sqlitedb"
	"github.com/momeni/carrental/pkg/adapter/db/postgres"
	"github.com/momeni/carrental/pkg/adapter/db/postgres/auditrp"
	"github.com/momeni/carrental/pkg/adapter/db/postgres/carsrp"
	"github.com/momeni/carrental/pkg/adapter/db/postgres/clientsrp"
	"github.com/momeni/carrental/pkg/adapter/db/postgres/inspectionsrp"
	"github.com/momeni/carrental/pkg/adapter/db/postgres/rentalsrp"
	"github.com/momeni/carrental/pkg/core/cerr"
	"github.com/momeni/carrental/pkg/core/model"
	"github.com/momeni/carrental/pkg/core/repo"
	"github.com/momeni/carrental/pkg/core/usecase/audituc"
	"github.com/momeni/carrental/pkg/core/usecase/carsuc"
	"github.com/momeni/carrental/pkg/core/usecase/clientsuc"
	"github.com/momeni/carrental/pkg/core/usecase/rentaluc"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

var today = time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)

type RentalsUseCaseTestSuite struct {
	suite.Suite

	Ctx     context.Context
	Pool    *postgres.Pool
	Rentals *rentalsrp.Repo
	Cars    *carsuc.UseCase
	UC      *rentaluc.UseCase

	Client *model.Client
	Car    *model.Car
}

func TestRentalsUseCaseTestSuite(t *testing.T) {
	suite.Run(t, new(RentalsUseCaseTestSuite))
}

func (ruts *RentalsUseCaseTestSuite) SetupTest() {
	ruts.Ctx = context.Background()
	ruts.Pool = sqlitedb.New(ruts.T())
	ruts.Rentals = rentalsrp.New()
	journal := audituc.New(ruts.Pool, auditrp.New(), nil)
	clock := func() time.Time { return today }
	cars, err := carsuc.New(
		ruts.Pool, carsrp.New(), journal, carsuc.WithClock(clock),
	)
	ruts.Require().NoError(err)
	ruts.Cars = cars
	ruts.UC, err = rentaluc.New(ruts.Pool, rentaluc.Repos{
		Rentals:     ruts.Rentals,
		Cars:        carsrp.New(),
		Clients:     clientsrp.New(),
		Inspections: inspectionsrp.New(),
	}, journal, rentaluc.WithClock(clock))
	ruts.Require().NoError(err)

	clients := clientsuc.New(ruts.Pool, clientsrp.New(), journal)
	ruts.Client, err = clients.Create(ruts.Ctx, &model.Client{
		LastName:      "Alaoui",
		FirstName:     "Karim",
		NationalID:    "AB123456",
		LicenseNumber: "11/22334",
	})
	ruts.Require().NoError(err)
	ruts.Car = ruts.newCar("11111-A-1")
}

func (ruts *RentalsUseCaseTestSuite) newCar(plate string) *model.Car {
	car, err := ruts.Cars.Create(ruts.Ctx, &model.Car{
		Brand:        "Dacia",
		Model:        "Logan",
		Plate:        plate,
		Condition:    model.ConditionGood,
		DailyPrice:   decimal.NewFromInt(250),
		Odometer:     12000,
		Fuel:         model.Diesel,
		Transmission: model.Manual,
	})
	ruts.Require().NoError(err)
	return car
}

func (ruts *RentalsUseCaseTestSuite) contract(carID uuid.UUID, days int) rentaluc.ContractInput {
	return rentaluc.ContractInput{
		ClientID:       ruts.Client.ID,
		CarID:          carID,
		StartDate:      today,
		EndDate:        today.AddDate(0, 0, days),
		PickupLocation: "Agence Casablanca",
		ReturnLocation: "Agence Casablanca",
		Deposit:        decimal.NewFromInt(3000),
		Departure: rentaluc.InspectionInput{
			FuelLevel: 0.75,
			Damages: []model.Damage{{
				Part: "pare-choc avant", Kind: model.Scratch, X: 40, Y: 10,
			}},
		},
	}
}

// setPaid stores paid as the paid amount of the id rental.
func (ruts *RentalsUseCaseTestSuite) setPaid(id uuid.UUID, paid int64) {
	sqlitedb.Tx(ruts.T(), ruts.Pool, func(ctx context.Context, tx *postgres.Tx) {
		q := ruts.Rentals.Tx(tx)
		r, err := q.GetForUpdate(ctx, id)
		ruts.Require().NoError(err)
		r.Terms.Paid = decimal.NewFromInt(paid)
		ruts.Require().NoError(q.Save(ctx, r))
	})
}

func (ruts *RentalsUseCaseTestSuite) TestCheckInMissingCar() {
	r, err := ruts.UC.Create(ruts.Ctx, ruts.contract(ruts.Car.ID, 3))
	ruts.Require().NoError(err)
	sqlitedb.Tx(ruts.T(), ruts.Pool, func(ctx context.Context, tx *postgres.Tx) {
		err := tx.GORM(ctx).Exec(
			"DELETE FROM cars WHERE id = ?", ruts.Car.ID,
		).Error
		ruts.Require().NoError(err)
	})

	_, err = ruts.UC.CheckIn(ruts.Ctx, r.ID, rentaluc.CheckInInput{
		ReturnDate: today.AddDate(0, 0, 2),
		ReturnKm:   12400,
	})
	ruts.Equal(http.StatusNotFound, statusOf(err), err)

	got, err := ruts.UC.Get(ruts.Ctx, r.ID)
	ruts.Require().NoError(err)
	ruts.Equal(model.Ongoing, got.Status)
	ruts.Nil(got.ReturnKm)
	ruts.Nil(got.ReturnInspectionID)
	ri, err := ruts.UC.Inspections(ruts.Ctx, r.ID)
	ruts.Require().NoError(err)
	ruts.False(ri.Returned)
}

func statusOf(err error) int {
	var ce *cerr.Error
	if errors.As(err, &ce) {
		return ce.HTTPStatusCode
	}
	return 0
}

func (ruts *RentalsUseCaseTestSuite) TestCreate() {
	r, err := ruts.UC.Create(ruts.Ctx, ruts.contract(ruts.Car.ID, 3))
	ruts.Require().NoError(err)
	ruts.Equal("C-2024-05-001", r.ContractNumber)
	ruts.Equal(model.Ongoing, r.Status)
	ruts.Equal(3, r.Terms.Days)
	ruts.Equal("750.00", r.Terms.Total.StringFixed(2))
	ruts.True(r.Terms.Paid.IsZero())
	ruts.EqualValues(12000, r.DepartureKm)
	ruts.Equal("Alaoui", r.Renter.LastName)
	ruts.Equal("11111-A-1", r.Vehicle.Plate)

	car, err := ruts.Cars.Get(ruts.Ctx, ruts.Car.ID)
	ruts.Require().NoError(err)
	ruts.Equal(model.Rented, car.Availability)

	_, err = ruts.UC.Create(ruts.Ctx, ruts.contract(ruts.Car.ID, 2))
	ruts.Equal(http.StatusConflict, statusOf(err), err)

	other := ruts.newCar("22222-B-2")
	r2, err := ruts.UC.Create(ruts.Ctx, ruts.contract(other.ID, 0))
	ruts.Require().NoError(err)
	ruts.Equal("C-2024-05-002", r2.ContractNumber)
	ruts.Equal(1, r2.Terms.Days, "same-day rentals are billed as one day")

	ri, err := ruts.UC.Inspections(ruts.Ctx, r.ID)
	ruts.Require().NoError(err)
	ruts.False(ri.Returned)
	ruts.Nil(ri.Return)
	ruts.Require().NotNil(ri.Departure)
	ruts.Equal(r.DepartureInspectionID, ri.Departure.ID)
	ruts.Require().Len(ri.Departure.Damages, 1)
	ruts.Equal(model.Scratch, ri.Departure.Damages[0].Kind)

	list, err := ruts.UC.List(ruts.Ctx, repo.RentalFilter{CarID: other.ID})
	ruts.Require().NoError(err)
	ruts.Require().Len(list, 1)
	ruts.Equal(r2.ID, list[0].ID)
}

func (ruts *RentalsUseCaseTestSuite) TestCreateValidation() {
	ci := ruts.contract(ruts.Car.ID, 3)
	ci.StartDate = today.AddDate(0, 0, -1)
	ci.EndDate = today.AddDate(0, 0, -2)
	ci.SecondDriver = &model.Person{LastName: "Idrissi"}
	_, err := ruts.UC.Create(ruts.Ctx, ci)
	ruts.Equal(http.StatusBadRequest, statusOf(err), err)
	var fe cerr.FieldErrors
	ruts.Require().ErrorAs(err, &fe)
	ruts.Contains(fe, "dateDebut")
	ruts.Contains(fe, "dateFin")
	ruts.Contains(fe, "deuxiemeConducteur.cin")

	ci = ruts.contract(ruts.Car.ID, 3)
	km := int64(100)
	ci.Departure.Odometer = &km
	_, err = ruts.UC.Create(ruts.Ctx, ci)
	ruts.Equal(http.StatusBadRequest, statusOf(err), err)

	ci = ruts.contract(uuid.New(), 3)
	_, err = ruts.UC.Create(ruts.Ctx, ci)
	ruts.Equal(http.StatusNotFound, statusOf(err), err)

	list, err := ruts.UC.List(ruts.Ctx, repo.RentalFilter{})
	ruts.Require().NoError(err)
	ruts.Empty(list)
	car, err := ruts.Cars.Get(ruts.Ctx, ruts.Car.ID)
	ruts.Require().NoError(err)
	ruts.Equal(model.Available, car.Availability)
}

func (ruts *RentalsUseCaseTestSuite) TestExtend() {
	r, err := ruts.UC.Create(ruts.Ctx, ruts.contract(ruts.Car.ID, 3))
	ruts.Require().NoError(err)

	loc := "Aeroport Mohammed V"
	r, err = ruts.UC.Extend(ruts.Ctx, r.ID, rentaluc.Extension{
		EndDate:        today.AddDate(0, 0, 5),
		ReturnLocation: &loc,
	})
	ruts.Require().NoError(err)
	ruts.Equal(5, r.Terms.Days)
	ruts.Equal("1250.00", r.Terms.Total.StringFixed(2))
	ruts.Equal(loc, r.Terms.ReturnLocation)

	ruts.setPaid(r.ID, 1000)
	_, err = ruts.UC.Extend(ruts.Ctx, r.ID, rentaluc.Extension{
		EndDate: today.AddDate(0, 0, 3),
	})
	ruts.Equal(http.StatusBadRequest, statusOf(err), err)
	_, err = ruts.UC.Extend(ruts.Ctx, r.ID, rentaluc.Extension{
		EndDate: today.AddDate(0, 0, -1),
	})
	ruts.Equal(http.StatusBadRequest, statusOf(err), err)

	got, err := ruts.UC.Get(ruts.Ctx, r.ID)
	ruts.Require().NoError(err)
	ruts.Equal(5, got.Terms.Days)
}

func (ruts *RentalsUseCaseTestSuite) TestCheckIn() {
	r, err := ruts.UC.Create(ruts.Ctx, ruts.contract(ruts.Car.ID, 3))
	ruts.Require().NoError(err)

	_, err = ruts.UC.CheckIn(ruts.Ctx, r.ID, rentaluc.CheckInInput{
		ReturnDate: today.AddDate(0, 0, 2),
		ReturnKm:   11999,
	})
	ruts.Equal(http.StatusBadRequest, statusOf(err), err)
	var fe cerr.FieldErrors
	ruts.Require().ErrorAs(err, &fe)
	ruts.Contains(fe, "kilometrageRetour")
	got, err := ruts.UC.Get(ruts.Ctx, r.ID)
	ruts.Require().NoError(err)
	ruts.Equal(model.Ongoing, got.Status)
	stillRented, err := ruts.Cars.Get(ruts.Ctx, ruts.Car.ID)
	ruts.Require().NoError(err)
	ruts.Equal(model.Rented, stillRented.Availability)
	ruts.EqualValues(12000, stillRented.Odometer)

	_, err = ruts.UC.Archive(ruts.Ctx, r.ID)
	ruts.Equal(http.StatusUnprocessableEntity, statusOf(err), err)

	r, err = ruts.UC.CheckIn(ruts.Ctx, r.ID, rentaluc.CheckInInput{
		ReturnDate: today.AddDate(0, 0, 2),
		ReturnKm:   12400,
		Inspection: rentaluc.InspectionInput{FuelLevel: 0.5},
	})
	ruts.Require().NoError(err)
	ruts.Equal(model.Returned, r.Status)
	ruts.Equal(2, r.Terms.Days)
	ruts.Equal("500.00", r.Terms.Total.StringFixed(2))
	ruts.Require().NotNil(r.ReturnKm)
	ruts.EqualValues(12400, *r.ReturnKm)

	car, err := ruts.Cars.Get(ruts.Ctx, ruts.Car.ID)
	ruts.Require().NoError(err)
	ruts.Equal(model.Available, car.Availability)
	ruts.EqualValues(12400, car.Odometer)

	ri, err := ruts.UC.Inspections(ruts.Ctx, r.ID)
	ruts.Require().NoError(err)
	ruts.True(ri.Returned)
	ruts.Require().NotNil(ri.Return)
	ruts.EqualValues(12400, ri.Return.Odometer)

	_, err = ruts.UC.CheckIn(ruts.Ctx, r.ID, rentaluc.CheckInInput{
		ReturnKm: 12500,
	})
	ruts.Equal(http.StatusUnprocessableEntity, statusOf(err), err)
	_, err = ruts.UC.Extend(ruts.Ctx, r.ID, rentaluc.Extension{
		EndDate: today.AddDate(0, 0, 9),
	})
	ruts.Equal(http.StatusUnprocessableEntity, statusOf(err), err)

	ruts.setPaid(r.ID, 600)
	b, err := ruts.UC.Summary(ruts.Ctx, r.ID)
	ruts.Require().NoError(err)
	ruts.True(b.Remaining.IsZero())
	ruts.Equal("100.00", b.Overpaid.StringFixed(2))

	_, err = ruts.UC.Archive(ruts.Ctx, r.ID)
	ruts.Require().NoError(err)
	_, err = ruts.UC.Archive(ruts.Ctx, r.ID)
	ruts.Equal(http.StatusConflict, statusOf(err), err)
	list, err := ruts.UC.List(ruts.Ctx, repo.RentalFilter{})
	ruts.Require().NoError(err)
	ruts.Empty(list)
}

func TestNextContractNumber(t *testing.T) {
	existing := []string{
		"C-2024-05-001", "C-2024-05-007", "C-2024-04-010", "garbage",
		"X-2024-05-020",
	}
	may := time.Date(2024, 5, 31, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "C-2024-05-008", rentaluc.NextContractNumber("C", may, existing))
	june := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "C-2024-06-001", rentaluc.NextContractNumber("C", june, existing))
	assert.Equal(t, "C-2024-05-001", rentaluc.NextContractNumber("C", may, nil))
}

func TestOptions(t *testing.T) {
	_, err := rentaluc.New(nil, rentaluc.Repos{}, nil)
	assert.Error(t, err)

	rs := rentaluc.Repos{
		Rentals:     rentalsrp.New(),
		Cars:        carsrp.New(),
		Clients:     clientsrp.New(),
		Inspections: inspectionsrp.New(),
	}
	_, err = rentaluc.New(nil, rs, nil, rentaluc.WithContractPrefix("A-B"))
	assert.Error(t, err)
	_, err = rentaluc.New(
		nil, rs, nil,
		rentaluc.WithContractPrefix("LOC"), rentaluc.WithContractPrefix("X"),
	)
	assert.Error(t, err)
	_, err = rentaluc.New(nil, rs, nil, rentaluc.WithContractPrefix("LOC"))
	assert.NoError(t, err)
}
