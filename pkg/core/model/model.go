// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
// By the way, it is acceptable to annotate structs in this package with
// multiple frameworks dependent tags (e.g., the json tags which fix the
// wire format of the back-office dashboard) since adding more tags does
// not complicate definition of a struct, but can prevent unnecessary
// structs duplication.
// Database specific structs are kept in the repository packages, see
// the unexported gCar struct in pkg/adapter/db/postgres/carsrp for
// an example.
package model

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// EnumError indicates an invalid value of a string based enum. It
// keeps the enum name and the rejected value, so it can be reported
// without extra context by the caller.
type EnumError struct {
	Enum  string
	Value string
}

func (e *EnumError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Enum, e.Value)
}

// ErrUnknownEnumValue is returned by the ParseX functions.
// Callers already know the parsed string, so it is not repeated here.
var ErrUnknownEnumValue = errors.New("unknown enum value")

func validateEnum[E ~string](name string, v E, valid ...E) error {
	if slices.Contains(valid, v) {
		return nil
	}
	return &EnumError{Enum: name, Value: string(v)}
}

func parseEnum[E ~string](s string, valid ...E) (E, error) {
	e := E(s)
	if slices.Contains(valid, e) {
		return e, nil
	}
	var zero E
	return zero, ErrUnknownEnumValue
}

// View selects which records of an archivable table should be listed.
// Archived records are kept in the same table with a non-nil
// ArchivedAt field instead of being copied into mirror collections.
type View string

// Valid values for the View enum.
const (
	ViewActive   View = "active"
	ViewArchived View = "archived"
	ViewAll      View = "all"
)

// Validate returns nil if v is a known view.
func (v View) Validate() error {
	return validateEnum("view", v, ViewActive, ViewArchived, ViewAll)
}

// ParseView parses s as a View. The empty string selects ViewActive.
func ParseView(s string) (View, error) {
	if s == "" {
		return ViewActive, nil
	}
	return parseEnum(s, ViewActive, ViewArchived, ViewAll)
}

// DateOf returns the midnight (in UTC) of the calendar date of t,
// as observed in the location of t.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
