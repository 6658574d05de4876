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

type InspectionsConnQueryer interface {
	InspectionsQueryer
}

type InspectionsTxQueryer interface {
	InspectionsQueryer

	// Create inserts in with its damages. Nil IDs (of in and its
	// damages) are replaced by new random UUIDs.
	Create(ctx context.Context, in *model.Inspection) error
}

type InspectionsQueryer interface {
	// ListByRental returns the inspections of a rental (with their
	// damages) ordered by their dates.
	ListByRental(ctx context.Context, rentalID uuid.UUID) (
		[]model.Inspection, error,
	)
}

type Inspections interface {
	Conn(Conn) InspectionsConnQueryer
	Tx(Tx) InspectionsTxQueryer
}
