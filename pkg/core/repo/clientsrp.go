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

type ClientsConnQueryer interface {
	ClientsQueryer
}

type ClientsTxQueryer interface {
	ClientsQueryer

	// Create inserts c, a nil c.ID is replaced by a new random UUID.
	Create(ctx context.Context, c *model.Client) error
	Save(ctx context.Context, c *model.Client) error
}

type ClientsQueryer interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Client, error)

	// List returns the clients in the v view. A non-empty search term
	// filters them by a case-insensitive match on their last name,
	// first name, or national ID.
	List(ctx context.Context, v model.View, search string) (
		[]model.Client, error,
	)
}

type Clients interface {
	Conn(Conn) ClientsConnQueryer
	Tx(Tx) ClientsTxQueryer
}
