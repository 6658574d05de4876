// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"time"

	"github.com/google/uuid"
)

// Alert is a derived (never persisted) maintenance or document
// reminder of a car.
type Alert struct {
	CarID         uuid.UUID   `json:"carId"`
	Car           string      `json:"vehicule"`
	Kind          AlertKind   `json:"type"`
	Status        AlertStatus `json:"statut"`
	DueKm         *int64      `json:"echeanceKm,omitempty"`
	DueDate       *time.Time  `json:"echeanceDate,omitempty"`
	RemainingKm   *int64      `json:"kmRestants,omitempty"`
	RemainingDays *int        `json:"joursRestants,omitempty"`
}

// AlertKind names the tracked threshold.
type AlertKind string

// Known alert kinds.
const (
	AlertOilChange      AlertKind = "vidange"
	AlertFuelFilter     AlertKind = "filtre-gasoil"
	AlertTimingBelt     AlertKind = "courroie"
	AlertBrakePads      AlertKind = "plaquettes"
	AlertService        AlertKind = "revision"
	AlertBrakeFluid     AlertKind = "liquide-frein"
	AlertCoolant        AlertKind = "liquide-refroidissement"
	AlertInsurance      AlertKind = "assurance"
	AlertTechInspection AlertKind = "visite-technique"
)

// AlertStatus tells how urgent an alert is. Maintenance alerts are
// due or soon, while document alerts are expired or expiring-soon.
type AlertStatus string

// Known alert statuses.
const (
	AlertDue          AlertStatus = "due"
	AlertSoon         AlertStatus = "soon"
	AlertExpired      AlertStatus = "expired"
	AlertExpiringSoon AlertStatus = "expiring-soon"
)

// Urgent is true for due and expired alerts.
func (s AlertStatus) Urgent() bool {
	return s == AlertDue || s == AlertExpired
}
