// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"time"

	"github.com/google/uuid"
)

// CompanySettingsID identifies the company settings in the audit
// trail and change notifications.
var CompanySettingsID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// CompanySettings holds the agency identity which is printed on the
// contracts. There is exactly one instance of it.
type CompanySettings struct {
	Name      string    `json:"nom" binding:"required,max=200"`
	Address   string    `json:"adresse" binding:"max=500"`
	Phone     string    `json:"telephone" binding:"max=50"`
	Email     string    `json:"email" binding:"omitempty,email"`
	ICE       string    `json:"ice" binding:"max=50"`
	RC        string    `json:"rc" binding:"max=50"`
	Patente   string    `json:"patente" binding:"max=50"`
	LogoURL   string    `json:"logoUrl" binding:"omitempty,url"`
	Terms     string    `json:"conditionsGenerales"`
	Currency  string    `json:"devise" binding:"omitempty,len=3"`
	UpdatedAt time.Time `json:"updatedAt"`
}
