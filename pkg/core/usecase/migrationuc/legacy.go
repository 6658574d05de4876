// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package migrationuc

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/momeni/carrental/pkg/core/model"
	"github.com/shopspring/decimal"
)

// Dump is an export of the legacy document store. Each field holds
// the documents of one collection, keeping their document IDs in the
// id fields. Records which are found in an archived_* collection alone
// were removed from the live views and are imported as archived.
type Dump struct {
	Cars             []LegacyCar        `json:"cars"`
	Clients          []LegacyClient     `json:"clients"`
	Rentals          []LegacyRental     `json:"rentals"`
	Payments         []LegacyPayment    `json:"payments"`
	Inspections      []LegacyInspection `json:"inspections"`
	ArchivedCars     []LegacyCar        `json:"archived_cars"`
	ArchivedRentals  []LegacyRental     `json:"archived_rentals"`
	ArchivedPayments []LegacyPayment    `json:"archived_payments"`
	Settings         struct {
		Company *model.CompanySettings `json:"company"`
	} `json:"settings"`
}

// ParseDump decodes a legacy export from r.
func ParseDump(r io.Reader) (*Dump, error) {
	d := &Dump{}
	dec := json.NewDecoder(r)
	if err := dec.Decode(d); err != nil {
		return nil, fmt.Errorf("decoding legacy dump: %w", err)
	}
	return d, nil
}

// LegacyTime is a date which was stored as a YYYY-MM-DD string, an
// RFC 3339 string, or a {seconds, nanoseconds} timestamp object.
// Empty strings and nulls leave it nil.
type LegacyTime struct {
	time.Time
}

func (lt *LegacyTime) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '{' {
		var ts struct {
			Seconds     int64 `json:"seconds"`
			Nanoseconds int64 `json:"nanoseconds"`
		}
		if err := json.Unmarshal(b, &ts); err != nil {
			return fmt.Errorf("timestamp object: %w", err)
		}
		lt.Time = time.Unix(ts.Seconds, ts.Nanoseconds).UTC()
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date string: %w", err)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339Nano, "2006-01-02T15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			lt.Time = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("unsupported date %q", s)
}

// ptr returns nil for a zero time.
func (lt LegacyTime) ptr() *time.Time {
	if lt.IsZero() {
		return nil
	}
	t := lt.Time
	return &t
}

// LegacyInt is an integer which was stored as a number or a string.
type LegacyInt int64

func (li *LegacyInt) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(bytes.TrimSpace(b), `"`)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("integer: %w", err)
	}
	*li = LegacyInt(f)
	return nil
}

func (li *LegacyInt) ptr() *int64 {
	if li == nil {
		return nil
	}
	v := int64(*li)
	return &v
}

// LegacyAmount is a decimal amount which was stored as a number or a
// string. Empty strings and nulls are zero.
type LegacyAmount struct {
	decimal.Decimal
}

func (la *LegacyAmount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if s := string(bytes.Trim(b, `"`)); s == "" || s == "null" {
		la.Decimal = decimal.Zero
		return nil
	}
	return la.Decimal.UnmarshalJSON(b)
}

type LegacySchedule struct {
	NextOilChangeKm    *LegacyInt `json:"prochainVidangeKm"`
	NextFuelFilterKm   *LegacyInt `json:"prochainFiltreGasoilKm"`
	NextTimingBeltKm   *LegacyInt `json:"prochaineCourroieKm"`
	NextBrakePadsKm    *LegacyInt `json:"prochainesPlaquettesKm"`
	NextServiceDate    LegacyTime `json:"prochaineRevisionDate"`
	NextBrakeFluidDate LegacyTime `json:"prochainLiquideFreinDate"`
	NextCoolantDate    LegacyTime `json:"prochainLiquideRefroidissementDate"`
}

type LegacyMaintenance struct {
	Date        LegacyTime   `json:"date"`
	StartedAt   LegacyTime   `json:"dateDebut"`
	Odometer    LegacyInt    `json:"kilometrage"`
	Description string       `json:"description"`
	Garage      string       `json:"garage"`
	Cost        LegacyAmount `json:"cout"`
}

type LegacyCar struct {
	ID               string              `json:"id"`
	Brand            string              `json:"marque"`
	Model            string              `json:"modele"`
	Year             LegacyInt           `json:"annee"`
	Color            string              `json:"couleur"`
	Plate            string              `json:"immatriculation"`
	Chassis          string              `json:"numeroChassis"`
	Condition        model.Condition     `json:"etat"`
	Availability     model.Availability  `json:"disponibilite"`
	DailyPrice       LegacyAmount        `json:"prixParJour"`
	Odometer         LegacyInt           `json:"kilometrage"`
	Fuel             model.FuelType      `json:"carburant"`
	Transmission     model.Transmission  `json:"transmission"`
	InsuranceExpiry  LegacyTime          `json:"dateExpirationAssurance"`
	InspectionExpiry LegacyTime          `json:"dateVisiteTechnique"`
	Schedule         LegacySchedule      `json:"entretien"`
	Current          *LegacyMaintenance  `json:"maintenanceEnCours"`
	History          []LegacyMaintenance `json:"historiqueMaintenance"`
	Photos           []string            `json:"photos"`
	CreatedAt        LegacyTime          `json:"createdAt"`
	ArchivedAt       LegacyTime          `json:"archivedAt"`
}

type LegacyPerson struct {
	LastName      string     `json:"nom"`
	FirstName     string     `json:"prenom"`
	NationalID    string     `json:"cin"`
	LicenseNumber string     `json:"numeroPermis"`
	LicenseIssued LegacyTime `json:"dateDelivrancePermis"`
	Phone         string     `json:"telephone"`
	Address       string     `json:"adresse"`
}

func (lp *LegacyPerson) person() model.Person {
	return model.Person{
		LastName:      strings.TrimSpace(lp.LastName),
		FirstName:     strings.TrimSpace(lp.FirstName),
		NationalID:    strings.ToUpper(strings.TrimSpace(lp.NationalID)),
		LicenseNumber: strings.TrimSpace(lp.LicenseNumber),
		LicenseIssued: lp.LicenseIssued.ptr(),
		Phone:         lp.Phone,
		Address:       lp.Address,
	}
}

type LegacyClient struct {
	ID string `json:"id"`
	LegacyPerson
	Email     string     `json:"email"`
	Photos    []string   `json:"photos"`
	CreatedAt LegacyTime `json:"createdAt"`
}

type LegacyDamage struct {
	ID   string           `json:"id"`
	Part string           `json:"partie"`
	Kind model.DamageKind `json:"type"`
	X    float64          `json:"x"`
	Y    float64          `json:"y"`
}

// LegacyInspection is either a document of the inspections collection
// (with a damages array) or an etatDepart/etatRetour object which was
// embedded in a rental (with a dommages array).
type LegacyInspection struct {
	ID          string               `json:"id"`
	RentalID    string               `json:"rentalId"`
	Kind        model.InspectionKind `json:"type"`
	Date        LegacyTime           `json:"date"`
	Odometer    *LegacyInt           `json:"kilometrage"`
	FuelLevel   float64              `json:"niveauCarburant"`
	Accessories model.Accessories    `json:"accessoires"`
	Notes       string               `json:"notes"`
	Photos      []string             `json:"photos"`
	Damages     []LegacyDamage       `json:"damages"`
	Dommages    []LegacyDamage       `json:"dommages"`
}

type LegacyVehicle struct {
	Brand string         `json:"marque"`
	Model string         `json:"modele"`
	Plate string         `json:"immatriculation"`
	Color string         `json:"couleur"`
	Fuel  model.FuelType `json:"carburant"`
}

type LegacyTerms struct {
	StartDate      LegacyTime   `json:"dateDebut"`
	EndDate        LegacyTime   `json:"dateFin"`
	PickupLocation string       `json:"lieuDepart"`
	ReturnLocation string       `json:"lieuRetour"`
	DailyPrice     LegacyAmount `json:"prixParJour"`
	Days           LegacyInt    `json:"nombreJours"`
	Deposit        LegacyAmount `json:"caution"`
	Total          LegacyAmount `json:"montantTotal"`
	Paid           LegacyAmount `json:"montantPaye"`
}

type LegacyRental struct {
	ID             string             `json:"id"`
	ContractNumber string             `json:"numeroContrat"`
	ClientID       string             `json:"clientId"`
	Renter         LegacyPerson       `json:"locataire"`
	SecondDriver   *LegacyPerson      `json:"deuxiemeConducteur"`
	CarID          string             `json:"carId"`
	Vehicle        LegacyVehicle      `json:"vehicule"`
	Terms          LegacyTerms        `json:"location"`
	Status         model.RentalStatus `json:"statut"`
	DepartureKm    LegacyInt          `json:"kilometrageDepart"`
	ReturnKm       *LegacyInt         `json:"kilometrageRetour"`
	ReturnedAt     LegacyTime         `json:"dateRetour"`
	Departure      *LegacyInspection  `json:"etatDepart"`
	Return         *LegacyInspection  `json:"etatRetour"`
	CreatedAt      LegacyTime         `json:"createdAt"`
	ArchivedAt     LegacyTime         `json:"archivedAt"`
}

type LegacyPayment struct {
	ID             string              `json:"id"`
	RentalID       string              `json:"rentalId"`
	ContractNumber string              `json:"numeroContrat"`
	ClientName     string              `json:"clientNom"`
	Amount         LegacyAmount        `json:"montant"`
	Date           LegacyTime          `json:"date"`
	Method         model.PaymentMethod `json:"methode"`
	Status         model.PaymentStatus `json:"statut"`
	Notes          string              `json:"notes"`
}

// importNamespace derives stable UUIDs from the legacy document IDs,
// so repeated imports of a dump produce the same identifiers.
var importNamespace = uuid.MustParse("5b0c3f8e-6a4d-4c59-9d1e-8f2a7c4e1b30")

// legacyID maps the id document ID of the entity collection to a UUID.
// Documents whose IDs are UUIDs keep them.
func legacyID(entity, id string) uuid.UUID {
	id = strings.TrimSpace(id)
	if id == "" {
		return uuid.New()
	}
	if u, err := uuid.Parse(id); err == nil {
		return u
	}
	return uuid.NewSHA1(importNamespace, []byte(entity+"/"+id))
}
