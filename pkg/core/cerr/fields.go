// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cerr

import (
	"sort"
	"strings"
)

// FieldErrors maps a request field name to its validation messages.
// It has the same shape as the validator errors which are reported by
// the restful adapter, so domain-level checks (which need more than
// one field, e.g., odometer ordering) are rendered identically.
type FieldErrors map[string][]string

// Add appends msgs to the name field messages.
func (fe FieldErrors) Add(name string, msgs ...string) {
	fe[name] = append(fe[name], msgs...)
}

// Assert adds msg for the name field when ok is false and returns ok.
func (fe FieldErrors) Assert(ok bool, name, msg string) bool {
	if !ok {
		fe.Add(name, msg)
	}
	return ok
}

// Error lists all fields in a deterministic order.
func (fe FieldErrors) Error() string {
	names := make([]string, 0, len(fe))
	for name := range fe {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+strings.Join(fe[name], ", "))
	}
	return strings.Join(parts, "; ")
}

// Err returns nil if no field error was collected. Otherwise, fe is
// returned as a bad request error.
func (fe FieldErrors) Err() error {
	if len(fe) == 0 {
		return nil
	}
	return BadRequest(fe)
}

// Invalid is a shortcut for a single field validation error.
func Invalid(name, msg string) *Error {
	return BadRequest(FieldErrors{name: {msg}})
}
