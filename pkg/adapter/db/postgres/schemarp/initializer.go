// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package schemarp

import (
	"context"
	"fmt"
	"time"

	"github.com/momeni/carrental/pkg/adapter/db/postgres"
	"github.com/momeni/carrental/pkg/adapter/db/postgres/auditrp"
	"github.com/momeni/carrental/pkg/adapter/db/postgres/carsrp"
	"github.com/momeni/carrental/pkg/adapter/db/postgres/clientsrp"
	"github.com/momeni/carrental/pkg/adapter/db/postgres/companyrp"
	"github.com/momeni/carrental/pkg/adapter/db/postgres/inspectionsrp"
	"github.com/momeni/carrental/pkg/adapter/db/postgres/paymentsrp"
	"github.com/momeni/carrental/pkg/adapter/db/postgres/rentalsrp"
	"github.com/momeni/carrental/pkg/adapter/db/postgres/usersrp"
	"github.com/momeni/carrental/pkg/core/model"
	"github.com/momeni/carrental/pkg/core/repo"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreateTables creates (or alters) all tables of the application in
// the current search_path of gdb.
func CreateTables(gdb *gorm.DB) error {
	migrators := []struct {
		name string
		m    func(*gorm.DB) error
	}{
		{"cars", carsrp.AutoMigrate},
		{"clients", clientsrp.AutoMigrate},
		{"rentals", rentalsrp.AutoMigrate},
		{"inspections", inspectionsrp.AutoMigrate},
		{"payments", paymentsrp.AutoMigrate},
		{"audit", auditrp.AutoMigrate},
		{"company", companyrp.AutoMigrate},
		{"users", usersrp.AutoMigrate},
	}
	for _, mig := range migrators {
		if err := mig.m(gdb); err != nil {
			return fmt.Errorf("creating %s tables: %w", mig.name, err)
		}
	}
	return nil
}

// Seed contains the initial rows which are inserted by an Initializer
// besides the tables. Admin is only created by InitDevSchema and it
// may be nil.
type Seed struct {
	Company model.CompanySettings
	Admin   *model.User
}

// Initializer implements the repo.SchemaInitializer interface.
// It wraps a single transaction and the caller is responsible to
// commit it in order to persist the initialization results.
type Initializer struct {
	tx   *postgres.Tx
	seed Seed
}

// NewInitializer creates an Initializer wrapping the given tx.
func NewInitializer(tx repo.Tx, seed Seed) *Initializer {
	return &Initializer{tx: tx.(*postgres.Tx), seed: seed}
}

// InitProdSchema creates the tables and stores the company settings.
func (si *Initializer) InitProdSchema(ctx context.Context) error {
	if err := CreateTables(si.tx.GORM(ctx)); err != nil {
		return err
	}
	s := si.seed.Company
	if err := companyrp.Save(ctx, si.tx, &s); err != nil {
		return fmt.Errorf("saving company settings: %w", err)
	}
	return nil
}

// InitDevSchema creates the tables and fills them with the company
// settings, a small fleet, a few clients, and the admin user.
func (si *Initializer) InitDevSchema(ctx context.Context) error {
	if err := si.InitProdSchema(ctx); err != nil {
		return err
	}
	for _, c := range devCars(time.Now().UTC()) {
		if err := carsrp.Create(ctx, si.tx, &c); err != nil {
			return fmt.Errorf("creating %s: %w", c.Label(), err)
		}
	}
	for _, c := range devClients() {
		if err := clientsrp.Create(ctx, si.tx, &c); err != nil {
			return fmt.Errorf("creating %s: %w", c.LastName, err)
		}
	}
	if u := si.seed.Admin; u != nil {
		if err := usersrp.Create(ctx, si.tx, u); err != nil {
			return fmt.Errorf("creating admin user: %w", err)
		}
	}
	return nil
}

func devCars(now time.Time) []model.Car {
	date := func(days int) *time.Time {
		t := now.AddDate(0, 0, days).Truncate(24 * time.Hour)
		return &t
	}
	km := func(v int64) *int64 {
		return &v
	}
	return []model.Car{
		{
			Brand: "Dacia", Model: "Logan", Year: 2021, Color: "Blanc",
			Plate: "12345-A-6", Chassis: "UU1LSDA1234567890",
			Condition: model.ConditionGood, Availability: model.Available,
			DailyPrice: decimal.NewFromInt(250), Odometer: 84200,
			Fuel: model.Diesel, Transmission: model.Manual,
			InsuranceExpiry:  date(120),
			InspectionExpiry: date(10),
			Schedule: model.MaintenanceSchedule{
				NextOilChangeKm:  km(85000),
				NextTimingBeltKm: km(120000),
			},
		},
		{
			Brand: "Renault", Model: "Clio", Year: 2022, Color: "Gris",
			Plate: "23456-B-6", Chassis: "VF1RJA00123456789",
			Condition: model.ConditionNew, Availability: model.Available,
			DailyPrice: decimal.NewFromInt(300), Odometer: 31000,
			Fuel: model.Petrol, Transmission: model.Manual,
			InsuranceExpiry:  date(-3),
			InspectionExpiry: date(200),
			Schedule: model.MaintenanceSchedule{
				NextOilChangeKm: km(40000),
				NextServiceDate: date(45),
			},
		},
		{
			Brand: "Peugeot", Model: "3008", Year: 2020, Color: "Noir",
			Plate: "34567-D-1", Chassis: "VF3MCYHZR12345678",
			Condition: model.ConditionFair, Availability: model.Available,
			DailyPrice: decimal.NewFromInt(550), Odometer: 119400,
			Fuel: model.Diesel, Transmission: model.Automatic,
			InsuranceExpiry:  date(60),
			InspectionExpiry: date(90),
			Schedule: model.MaintenanceSchedule{
				NextOilChangeKm:    km(120000),
				NextBrakePadsKm:    km(119000),
				NextFuelFilterKm:   km(130000),
				NextBrakeFluidDate: date(5),
			},
		},
	}
}

func devClients() []model.Client {
	issued := time.Date(2012, time.March, 14, 0, 0, 0, 0, time.UTC)
	return []model.Client{
		{
			LastName: "Alaoui", FirstName: "Yassine",
			NationalID: "BE123456", LicenseNumber: "11/223344",
			LicenseIssued: &issued, Phone: "+212600000001",
			Email: "yassine.alaoui@example.com", Address: "Casablanca",
		},
		{
			LastName: "Benali", FirstName: "Salma",
			NationalID: "AB654321", LicenseNumber: "07/998877",
			Phone: "+212600000002", Address: "Rabat",
		},
	}
}
