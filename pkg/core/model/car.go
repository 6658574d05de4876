// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Car models a fleet vehicle. The Availability field may only be
// changed by the rental lifecycle (Rented while a contract is ongoing)
// and the maintenance operations (InMaintenance while Current is set).
type Car struct {
	ID               uuid.UUID       `json:"id"`
	Brand            string          `json:"marque"`
	Model            string          `json:"modele"`
	Year             int             `json:"annee"`
	Color            string          `json:"couleur"`
	Plate            string          `json:"immatriculation"`
	Chassis          string          `json:"numeroChassis"`
	Condition        Condition       `json:"etat"`
	Availability     Availability    `json:"disponibilite"`
	DailyPrice       decimal.Decimal `json:"prixParJour"`
	Odometer         int64           `json:"kilometrage"`
	Fuel             FuelType        `json:"carburant"`
	Transmission     Transmission    `json:"transmission"`
	InsuranceExpiry  *time.Time      `json:"dateExpirationAssurance,omitempty"`
	InspectionExpiry *time.Time      `json:"dateVisiteTechnique,omitempty"`

	Schedule MaintenanceSchedule `json:"entretien"`
	Current  *CurrentMaintenance `json:"maintenanceEnCours,omitempty"`
	History  []MaintenanceRecord `json:"historiqueMaintenance"`
	Photos   []string            `json:"photos"`

	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	ArchivedAt *time.Time `json:"archivedAt,omitempty"`
}

// Label returns a short human readable identification of c.
func (c *Car) Label() string {
	return c.Brand + " " + c.Model + " (" + c.Plate + ")"
}

// MaintenanceSchedule keeps the next service thresholds of a car.
// Nil fields are not tracked and never produce an alert.
type MaintenanceSchedule struct {
	NextOilChangeKm    *int64     `json:"prochainVidangeKm,omitempty"`
	NextFuelFilterKm   *int64     `json:"prochainFiltreGasoilKm,omitempty"`
	NextTimingBeltKm   *int64     `json:"prochaineCourroieKm,omitempty"`
	NextBrakePadsKm    *int64     `json:"prochainesPlaquettesKm,omitempty"`
	NextServiceDate    *time.Time `json:"prochaineRevisionDate,omitempty"`
	NextBrakeFluidDate *time.Time `json:"prochainLiquideFreinDate,omitempty"`
	NextCoolantDate    *time.Time `json:"prochainLiquideRefroidissementDate,omitempty"`
}

// CurrentMaintenance is set exactly while a car is InMaintenance.
type CurrentMaintenance struct {
	StartedAt   time.Time `json:"dateDebut"`
	Description string    `json:"description"`
	Garage      string    `json:"garage"`
}

// MaintenanceRecord is one past intervention on a car.
type MaintenanceRecord struct {
	Date        time.Time       `json:"date"`
	Odometer    int64           `json:"kilometrage"`
	Description string          `json:"description"`
	Cost        decimal.Decimal `json:"cout"`
}

// Availability is the current rentability state of a car.
type Availability string

// Valid values for the Availability enum.
const (
	Available     Availability = "disponible"
	Rented        Availability = "louee"
	InMaintenance Availability = "maintenance"
)

// Validate returns nil if a is a known availability.
func (a Availability) Validate() error {
	return validateEnum("availability", a, Available, Rented, InMaintenance)
}

// ParseAvailability parses s as an Availability.
func ParseAvailability(s string) (Availability, error) {
	return parseEnum(s, Available, Rented, InMaintenance)
}

// Condition is the overall physical condition of a car.
type Condition string

// Valid values for the Condition enum.
const (
	ConditionNew  Condition = "neuf"
	ConditionGood Condition = "bon"
	ConditionFair Condition = "moyen"
	ConditionPoor Condition = "mauvais"
)

func (c Condition) Validate() error {
	return validateEnum(
		"condition", c,
		ConditionNew, ConditionGood, ConditionFair, ConditionPoor,
	)
}

// FuelType of a car engine.
type FuelType string

// Valid values for the FuelType enum.
const (
	Petrol   FuelType = "essence"
	Diesel   FuelType = "diesel"
	Hybrid   FuelType = "hybride"
	Electric FuelType = "electrique"
)

func (f FuelType) Validate() error {
	return validateEnum("fuel type", f, Petrol, Diesel, Hybrid, Electric)
}

// Transmission of a car gearbox.
type Transmission string

// Valid values for the Transmission enum.
const (
	Manual    Transmission = "manuelle"
	Automatic Transmission = "automatique"
)

func (t Transmission) Validate() error {
	return validateEnum("transmission", t, Manual, Automatic)
}
