// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"time"

	"github.com/google/uuid"
)

// Inspection is the condition snapshot of a car which is taken at the
// departure or the return of a rental.
type Inspection struct {
	ID          uuid.UUID      `json:"id"`
	RentalID    uuid.UUID      `json:"rentalId"`
	CarID       uuid.UUID      `json:"carId"`
	Kind        InspectionKind `json:"type"`
	Date        time.Time      `json:"date"`
	Odometer    int64          `json:"kilometrage"`
	FuelLevel   float64        `json:"niveauCarburant"` // 0 (empty) to 1 (full)
	Accessories Accessories    `json:"accessoires"`
	Notes       string         `json:"notes"`
	Photos      []string       `json:"photos"`
	Damages     []Damage       `json:"dommages"`
}

// Accessories is the checklist of items found in the car.
type Accessories struct {
	SpareWheel   bool `json:"roueSecours"`
	Jack         bool `json:"cric"`
	Triangle     bool `json:"triangle"`
	SafetyVest   bool `json:"gilet"`
	Extinguisher bool `json:"extincteur"`
	FirstAidKit  bool `json:"trousseSecours"`
	Radio        bool `json:"autoradio"`
	Documents    bool `json:"papiers"`
}

// Damage marks one body part on the car diagram, X and Y being the
// percentages of the diagram width and height.
type Damage struct {
	ID   uuid.UUID  `json:"id"`
	Part string     `json:"partie"`
	Kind DamageKind `json:"type"`
	X    float64    `json:"x"`
	Y    float64    `json:"y"`
}

// InspectionKind tells if an inspection belongs to the departure or
// the return of a car.
type InspectionKind string

// Valid values for the InspectionKind enum.
const (
	DepartureInspection InspectionKind = "depart"
	ReturnInspection    InspectionKind = "retour"
)

func (k InspectionKind) Validate() error {
	return validateEnum(
		"inspection type", k, DepartureInspection, ReturnInspection,
	)
}

// DamageKind is the type of a damage.
type DamageKind string

// Valid values for the DamageKind enum.
const (
	Scratch          DamageKind = "scratch"
	Dent             DamageKind = "dent"
	Break            DamageKind = "break"
	NeedsReplacement DamageKind = "needs-replacement"
)

func (k DamageKind) Validate() error {
	return validateEnum(
		"damage type", k, Scratch, Dent, Break, NeedsReplacement,
	)
}

// RentalInspections groups the inspections of a rental. Return is nil
// while the car is not returned yet, which is not an error.
type RentalInspections struct {
	Departure *Inspection `json:"depart"`
	Return    *Inspection `json:"retour"`
	Returned  bool        `json:"returned"`
}
