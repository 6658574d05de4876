// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cerr

import "fmt"

// PermissionError describes a write (or read) which was denied by the
// access-control layer of the database. Users only see a generic
// message, while Path, Operation, and Payload are kept for the logs
// and the structured permission events.
type PermissionError struct {
	Path      string // table and record, like rentals/<uuid>
	Operation string // create, update, delete, get, or list
	Payload   any    // attempted payload, if any
	Err       error
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf(
		"%s on %s was denied: %v", e.Operation, e.Path, e.Err,
	)
}

func (e *PermissionError) Unwrap() error {
	return e.Err
}

// Permission wraps err as a forbidden *Error which carries
// a *PermissionError in its chain.
func Permission(op, path string, payload any, err error) *Error {
	return Authorization(&PermissionError{
		Path:      path,
		Operation: op,
		Payload:   payload,
		Err:       err,
	})
}
