// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"time"

	"github.com/google/uuid"
)

// Client is a renter of the agency. Rentals do not reference clients
// for their identity fields, they copy them as a Person snapshot.
type Client struct {
	ID            uuid.UUID  `json:"id"`
	LastName      string     `json:"nom"`
	FirstName     string     `json:"prenom"`
	NationalID    string     `json:"cin"`
	LicenseNumber string     `json:"numeroPermis"`
	LicenseIssued *time.Time `json:"dateDelivrancePermis,omitempty"`
	Phone         string     `json:"telephone"`
	Email         string     `json:"email"`
	Address       string     `json:"adresse"`
	Photos        []string   `json:"photos"`

	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	ArchivedAt *time.Time `json:"archivedAt,omitempty"`
}

// Person returns the identity snapshot of c as stored in a rental.
func (c *Client) Person() Person {
	return Person{
		LastName:      c.LastName,
		FirstName:     c.FirstName,
		NationalID:    c.NationalID,
		LicenseNumber: c.LicenseNumber,
		LicenseIssued: c.LicenseIssued,
		Phone:         c.Phone,
		Address:       c.Address,
	}
}

// Person is the identity snapshot of a renter or second driver.
type Person struct {
	LastName      string     `json:"nom"`
	FirstName     string     `json:"prenom"`
	NationalID    string     `json:"cin"`
	LicenseNumber string     `json:"numeroPermis"`
	LicenseIssued *time.Time `json:"dateDelivrancePermis,omitempty"`
	Phone         string     `json:"telephone"`
	Address       string     `json:"adresse"`
}

// FullName returns the first and last names separated by a space.
func (p Person) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}
