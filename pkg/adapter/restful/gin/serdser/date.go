// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package serdser

import (
	"fmt"
	"strings"
	"time"
)

// Date is a request time which may be given as a calendar date
// (2006-01-02, taken as UTC midnight) or as an RFC 3339 timestamp.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	s, ok := strings.CutPrefix(s, `"`)
	if !ok {
		return fmt.Errorf("date must be a string: %s", data)
	}
	s, ok = strings.CutSuffix(s, `"`)
	if !ok {
		return fmt.Errorf("date must be a string: %s", data)
	}
	return d.UnmarshalText([]byte(s))
}

func (d *Date) UnmarshalText(text []byte) error {
	s := string(text)
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t, err = time.Parse(time.DateOnly, s)
		if err != nil {
			return fmt.Errorf("%q is neither a date nor a timestamp", s)
		}
	}
	d.Time = t.UTC()
	return nil
}

// Ptr returns nil for a nil or zero d.
func (d *Date) Ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}
