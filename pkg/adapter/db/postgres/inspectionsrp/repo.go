// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package inspectionsrp implements the repo.Inspections interface.
package inspectionsrp

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/carrental/pkg/adapter/db/postgres"
	"github.com/momeni/carrental/pkg/core/model"
	"github.com/momeni/carrental/pkg/core/repo"
)

type Repo struct {
}

func New() *Repo {
	return &Repo{}
}

type queryer[Q postgres.Queryer] struct {
	q Q
}

func (inspections *Repo) Conn(c repo.Conn) repo.InspectionsConnQueryer {
	return queryer[*postgres.Conn]{q: c.(*postgres.Conn)}
}

func (inspections *Repo) Tx(tx repo.Tx) repo.InspectionsTxQueryer {
	return queryer[*postgres.Tx]{q: tx.(*postgres.Tx)}
}

func (iq queryer[Q]) ListByRental(
	ctx context.Context, rentalID uuid.UUID,
) ([]model.Inspection, error) {
	return ListByRental(ctx, iq.q, rentalID)
}

func (iq queryer[Q]) Create(ctx context.Context, in *model.Inspection) error {
	return Create(ctx, iq.q, in)
}
