// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"time"

	"github.com/google/uuid"
)

// AuditEntry records one mutation. It is written in the same
// transaction as the mutation itself, so both apply or none.
type AuditEntry struct {
	ID       uuid.UUID   `json:"id"`
	At       time.Time   `json:"at"`
	Actor    string      `json:"actor"`
	Entity   string      `json:"entity"`
	EntityID uuid.UUID   `json:"entityId"`
	Action   AuditAction `json:"action"`
	Payload  string      `json:"payload"` // JSON document
}

// AuditAction names a mutation kind.
type AuditAction string

// Known audit actions.
const (
	ActionCreate              AuditAction = "create"
	ActionUpdate              AuditAction = "update"
	ActionArchive             AuditAction = "archive"
	ActionDelete              AuditAction = "delete"
	ActionExtend              AuditAction = "extend"
	ActionCheckIn             AuditAction = "check-in"
	ActionMaintenanceStart    AuditAction = "maintenance-start"
	ActionMaintenanceComplete AuditAction = "maintenance-complete"
	ActionImport              AuditAction = "import"
)

// Entity names which are used by audit entries and change
// notifications.
const (
	EntityCar     = "cars"
	EntityClient  = "clients"
	EntityRental  = "rentals"
	EntityPayment = "payments"
	EntityCompany = "settings"
)

// Change is the notification which is published after a committed
// mutation, letting the live dashboards refresh their views.
type Change struct {
	Entity string      `json:"entity"`
	ID     uuid.UUID   `json:"id"`
	Action AuditAction `json:"action"`
}
