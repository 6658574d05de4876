// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Rental models a contract covering one car, one renter, and one
// date range. Its Status moves forward only, from Ongoing to Returned.
type Rental struct {
	ID             uuid.UUID       `json:"id"`
	ContractNumber string          `json:"numeroContrat"`
	ClientID       uuid.UUID       `json:"clientId"`
	Renter         Person          `json:"locataire"`
	SecondDriver   *Person         `json:"deuxiemeConducteur,omitempty"`
	CarID          uuid.UUID       `json:"carId"`
	Vehicle        VehicleSnapshot `json:"vehicule"`
	Terms          RentalTerms     `json:"location"`
	Status         RentalStatus    `json:"statut"`

	DepartureKm           int64      `json:"kilometrageDepart"`
	ReturnKm              *int64     `json:"kilometrageRetour,omitempty"`
	ReturnedAt            *time.Time `json:"dateRetour,omitempty"`
	DepartureInspectionID uuid.UUID  `json:"inspectionDepartId"`
	ReturnInspectionID    *uuid.UUID `json:"inspectionRetourId,omitempty"`

	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	ArchivedAt *time.Time `json:"archivedAt,omitempty"`
}

// RentalTerms is the location block of a contract. Total is always
// Days x DailyPrice and Paid is the sum of the recorded payments.
type RentalTerms struct {
	StartDate      time.Time       `json:"dateDebut"`
	EndDate        time.Time       `json:"dateFin"`
	PickupLocation string          `json:"lieuDepart"`
	ReturnLocation string          `json:"lieuRetour"`
	DailyPrice     decimal.Decimal `json:"prixParJour"`
	Days           int             `json:"nombreJours"`
	Deposit        decimal.Decimal `json:"caution"`
	Total          decimal.Decimal `json:"montantTotal"`
	Paid           decimal.Decimal `json:"montantPaye"`
}

// VehicleSnapshot copies the car attributes at contract signing.
type VehicleSnapshot struct {
	Brand string   `json:"marque"`
	Model string   `json:"modele"`
	Plate string   `json:"immatriculation"`
	Color string   `json:"couleur"`
	Fuel  FuelType `json:"carburant"`
}

// Snapshot returns the attributes of c which are copied into rentals.
func (c *Car) Snapshot() VehicleSnapshot {
	return VehicleSnapshot{
		Brand: c.Brand,
		Model: c.Model,
		Plate: c.Plate,
		Color: c.Color,
		Fuel:  c.Fuel,
	}
}

// RentalStatus is the lifecycle state of a contract.
type RentalStatus string

// Valid values for the RentalStatus enum.
const (
	Ongoing  RentalStatus = "en_cours"
	Returned RentalStatus = "terminee"
)

func (s RentalStatus) Validate() error {
	return validateEnum("rental status", s, Ongoing, Returned)
}

// ParseRentalStatus parses s as a RentalStatus.
func ParseRentalStatus(s string) (RentalStatus, error) {
	return parseEnum(s, Ongoing, Returned)
}

// ContractNumber identifies a contract as PREFIX-YYYY-MM-NNN where
// NNN restarts from 001 every month.
type ContractNumber struct {
	Prefix string
	Year   int
	Month  time.Month
	Seq    int
}

// ContractMonthPrefix returns the common prefix of all contract numbers
// which are issued in the month of t, like "C-2024-05-".
func ContractMonthPrefix(prefix string, t time.Time) string {
	return fmt.Sprintf("%s-%04d-%02d-", prefix, t.Year(), int(t.Month()))
}

// String formats cn, padding its sequence number to three digits.
func (cn ContractNumber) String() string {
	return fmt.Sprintf(
		"%s-%04d-%02d-%03d", cn.Prefix, cn.Year, int(cn.Month), cn.Seq,
	)
}

// ParseContractNumber parses s which must be formatted like the
// String method output. The prefix itself may not contain a dash.
func ParseContractNumber(s string) (ContractNumber, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 4 || parts[0] == "" {
		return ContractNumber{}, fmt.Errorf("malformed contract number")
	}
	y, err := strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) != 4 {
		return ContractNumber{}, fmt.Errorf("malformed year")
	}
	m, err := strconv.Atoi(parts[2])
	if err != nil || m < 1 || m > 12 {
		return ContractNumber{}, fmt.Errorf("malformed month")
	}
	seq, err := strconv.Atoi(parts[3])
	if err != nil || seq < 1 || len(parts[3]) < 3 {
		return ContractNumber{}, fmt.Errorf("malformed sequence")
	}
	return ContractNumber{
		Prefix: parts[0],
		Year:   y,
		Month:  time.Month(m),
		Seq:    seq,
	}, nil
}
