// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/carrental/pkg/core/model"
)

type AuditConnQueryer interface {
	AuditQueryer
}

// AuditTxQueryer appends entries. Audit entries are written only
// within the transaction of their mutations.
type AuditTxQueryer interface {
	AuditQueryer
	Append(ctx context.Context, e *model.AuditEntry) error
}

type AuditQueryer interface {
	// List returns the audit trail of one record, oldest first.
	List(ctx context.Context, entity string, id uuid.UUID) (
		[]model.AuditEntry, error,
	)
}

type Audit interface {
	Conn(Conn) AuditConnQueryer
	Tx(Tx) AuditTxQueryer
}
