// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package clientsuc contains the clients UseCase which manages the
// renters directory. Rentals keep a snapshot of their renter, so
// updating or archiving a client does not alter past contracts.
package clientsuc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/momeni/carrental/pkg/core/cerr"
	"github.com/momeni/carrental/pkg/core/model"
	"github.com/momeni/carrental/pkg/core/repo"
	"github.com/momeni/carrental/pkg/core/usecase/audituc"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// UseCase represents a clients use case.
type UseCase struct {
	pool      repo.Pool
	clientsrp repo.Clients
	journal   *audituc.UseCase
}

// New instantiates a clients use case.
func New(p repo.Pool, c repo.Clients, j *audituc.UseCase) *UseCase {
	return &UseCase{pool: p, clientsrp: c, journal: j}
}

// Create use case validates and inserts a new client.
func (clients *UseCase) Create(ctx context.Context, cl *model.Client) (*model.Client, error) {
	normalize(cl)
	if err := check(cl); err != nil {
		return nil, err
	}
	cl.ID = uuid.Nil
	cl.ArchivedAt = nil
	err := clients.tx(ctx, func(ctx context.Context, tx repo.Tx, q repo.ClientsTxQueryer) error {
		if err := q.Create(ctx, cl); err != nil {
			return err
		}
		return clients.journal.Record(
			ctx, tx, model.EntityClient, cl.ID, model.ActionCreate, cl,
		)
	})
	if err != nil {
		return nil, err
	}
	return cl, nil
}

// Update use case replaces the fields of the id client.
func (clients *UseCase) Update(
	ctx context.Context, id uuid.UUID, cl *model.Client,
) (updated *model.Client, err error) {
	normalize(cl)
	if err := check(cl); err != nil {
		return nil, err
	}
	err = clients.tx(ctx, func(ctx context.Context, tx repo.Tx, q repo.ClientsTxQueryer) error {
		updated, err = q.Get(ctx, id)
		if err != nil {
			return err
		}
		if updated.ArchivedAt != nil {
			return cerr.Unprocessable(errors.New("client is archived"))
		}
		cl.ID = updated.ID
		cl.CreatedAt = updated.CreatedAt
		cl.ArchivedAt = nil
		if err := q.Save(ctx, cl); err != nil {
			return err
		}
		updated = cl
		return clients.journal.Record(
			ctx, tx, model.EntityClient, id, model.ActionUpdate, cl,
		)
	})
	if err != nil {
		updated = nil
	}
	return
}

func (clients *UseCase) Get(ctx context.Context, id uuid.UUID) (cl *model.Client, err error) {
	err = clients.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		cl, err = clients.clientsrp.Conn(c).Get(ctx, id)
		return err
	})
	if err != nil {
		cl = nil
	}
	return
}

// List use case returns the clients of the v view, optionally
// filtered by a search term on their names or national ID.
func (clients *UseCase) List(
	ctx context.Context, v model.View, search string,
) (list []model.Client, err error) {
	if err := v.Validate(); err != nil {
		return nil, cerr.BadRequest(err)
	}
	err = clients.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		list, err = clients.clientsrp.Conn(c).List(ctx, v, search)
		return err
	})
	if err != nil {
		list = nil
	}
	return
}

// Archive use case hides the id client from the active view.
func (clients *UseCase) Archive(ctx context.Context, id uuid.UUID) (cl *model.Client, err error) {
	err = clients.tx(ctx, func(ctx context.Context, tx repo.Tx, q repo.ClientsTxQueryer) error {
		cl, err = q.Get(ctx, id)
		if err != nil {
			return err
		}
		if cl.ArchivedAt != nil {
			return cerr.Conflict(errors.New("client is already archived"))
		}
		now := time.Now().UTC()
		cl.ArchivedAt = &now
		if err := q.Save(ctx, cl); err != nil {
			return err
		}
		return clients.journal.Record(
			ctx, tx, model.EntityClient, id, model.ActionArchive, cl,
		)
	})
	if err != nil {
		cl = nil
	}
	return
}

func (clients *UseCase) tx(
	ctx context.Context,
	f func(ctx context.Context, tx repo.Tx, q repo.ClientsTxQueryer) error,
) error {
	return clients.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			return f(ctx, tx, clients.clientsrp.Tx(tx))
		})
	})
}

func normalize(cl *model.Client) {
	cl.LastName = strings.TrimSpace(cl.LastName)
	cl.FirstName = strings.TrimSpace(cl.FirstName)
	cl.NationalID = strings.ToUpper(strings.TrimSpace(cl.NationalID))
	cl.Email = strings.TrimSpace(cl.Email)
	if cl.Photos == nil {
		cl.Photos = []string{}
	}
}

func check(cl *model.Client) error {
	fe := cerr.FieldErrors{}
	fe.Assert(cl.LastName != "", "nom", "last name is required")
	fe.Assert(cl.FirstName != "", "prenom", "first name is required")
	fe.Assert(cl.NationalID != "", "cin", "national ID is required")
	if cl.Email != "" {
		err := validate.Var(cl.Email, "email")
		fe.Assert(err == nil, "email", fmt.Sprintf(
			"%q is not a valid email address", cl.Email,
		))
	}
	return fe.Err()
}

// ValidatePerson checks the mandatory fields of a driver snapshot,
// reporting them under the prefix field name.
func ValidatePerson(prefix string, p *model.Person) error {
	fe := cerr.FieldErrors{}
	fe.Assert(p.LastName != "", prefix+".nom", "last name is required")
	fe.Assert(p.NationalID != "", prefix+".cin", "national ID is required")
	fe.Assert(
		p.LicenseNumber != "", prefix+".numeroPermis",
		"license number is required",
	)
	return fe.Err()
}
