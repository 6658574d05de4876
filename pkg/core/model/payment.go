// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment is one amount which was collected for a rental.
// Client name and contract number are denormalized for listings.
type Payment struct {
	ID             uuid.UUID       `json:"id"`
	RentalID       uuid.UUID       `json:"rentalId"`
	ContractNumber string          `json:"numeroContrat"`
	ClientName     string          `json:"clientNom"`
	Amount         decimal.Decimal `json:"montant"`
	Date           time.Time       `json:"date"`
	Method         PaymentMethod   `json:"methode"`
	Status         PaymentStatus   `json:"statut"`
	Notes          string          `json:"notes"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// PaymentMethod enum.
type PaymentMethod string

// Valid values for the PaymentMethod enum.
const (
	Cash     PaymentMethod = "cash"
	Card     PaymentMethod = "card"
	Transfer PaymentMethod = "transfer"
	Advance  PaymentMethod = "advance"
)

func (m PaymentMethod) Validate() error {
	return validateEnum("payment method", m, Cash, Card, Transfer, Advance)
}

// PaymentStatus enum. Both statuses count towards the paid amount.
type PaymentStatus string

// Valid values for the PaymentStatus enum.
const (
	PaymentValid   PaymentStatus = "valide"
	PaymentPending PaymentStatus = "en_attente"
)

func (s PaymentStatus) Validate() error {
	return validateEnum("payment status", s, PaymentValid, PaymentPending)
}

// Balance is the financial summary of a rental. Remaining is never
// negative, an early return which makes Paid exceed Total is reported
// as Overpaid instead.
type Balance struct {
	Total     decimal.Decimal `json:"montantTotal"`
	Paid      decimal.Decimal `json:"montantPaye"`
	Remaining decimal.Decimal `json:"resteAPayer"`
	Overpaid  decimal.Decimal `json:"tropPercu"`
}
