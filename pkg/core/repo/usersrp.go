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

type UsersConnQueryer interface {
	UsersQueryer
}

type UsersTxQueryer interface {
	UsersQueryer

	// Create inserts u, a nil u.ID is replaced by a new random UUID.
	Create(ctx context.Context, u *model.User) error
	SetPasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}

type UsersQueryer interface {
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

type Users interface {
	Conn(Conn) UsersConnQueryer
	Tx(Tx) UsersTxQueryer
}
