// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package usersrp implements the repo.Users interface which keeps
// the accounts of the local (email and password) identity provider.
package usersrp

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

func (users *Repo) Conn(c repo.Conn) repo.UsersConnQueryer {
	return queryer[*postgres.Conn]{q: c.(*postgres.Conn)}
}

func (users *Repo) Tx(tx repo.Tx) repo.UsersTxQueryer {
	return queryer[*postgres.Tx]{q: tx.(*postgres.Tx)}
}

func (uq queryer[Q]) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return Get(ctx, uq.q, id)
}

func (uq queryer[Q]) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return GetByEmail(ctx, uq.q, email)
}

func (uq queryer[Q]) Create(ctx context.Context, u *model.User) error {
	return Create(ctx, uq.q, u)
}

func (uq queryer[Q]) SetPasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	return SetPasswordHash(ctx, uq.q, id, hash)
}
