// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package rentaluc contains the rental lifecycle UseCase. A contract
// is created in the en_cours status, may be extended while it is
// ongoing, and moves to the terminee status by its check-in. There is
// no other transition. Each operation runs in one transaction which
// also updates the rented car, so a failure leaves no partial state.
package rentaluc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/carrental/pkg/core/cerr"
	"github.com/momeni/carrental/pkg/core/finance"
	"github.com/momeni/carrental/pkg/core/model"
	"github.com/momeni/carrental/pkg/core/repo"
	"github.com/momeni/carrental/pkg/core/usecase/audituc"
)

// Repos groups the repositories which are used by the rental use
// cases.
type Repos struct {
	Rentals     repo.Rentals
	Cars        repo.Cars
	Clients     repo.Clients
	Inspections repo.Inspections
}

// UseCase represents the rental lifecycle use case.
type UseCase struct {
	pool    repo.Pool
	repos   Repos
	journal *audituc.UseCase

	now            func() time.Time
	contractPrefix string
}

// New instantiates a rental use case. All repositories of rs are
// required. Optional settings are passed as functional options.
func New(
	p repo.Pool, rs Repos, j *audituc.UseCase, opts ...Option,
) (*UseCase, error) {
	if rs.Rentals == nil || rs.Cars == nil || rs.Clients == nil ||
		rs.Inspections == nil {
		return nil, errors.New("all repositories are required")
	}
	uc := &UseCase{pool: p, repos: rs, journal: j}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	if uc.now == nil {
		uc.now = time.Now
	}
	if uc.contractPrefix == "" {
		uc.contractPrefix = "C"
	}
	return uc, nil
}

// Get use case fetches the id rental (archived or not).
func (rentals *UseCase) Get(ctx context.Context, id uuid.UUID) (r *model.Rental, err error) {
	err = rentals.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		r, err = rentals.repos.Rentals.Conn(c).Get(ctx, id)
		return err
	})
	if err != nil {
		r = nil
	}
	return
}

// List use case returns the rentals which match f, the most recent
// contracts first.
func (rentals *UseCase) List(
	ctx context.Context, f repo.RentalFilter,
) (list []model.Rental, err error) {
	if f.View == "" {
		f.View = model.ViewActive
	}
	if err := f.View.Validate(); err != nil {
		return nil, cerr.BadRequest(err)
	}
	if f.Status != "" {
		if err := f.Status.Validate(); err != nil {
			return nil, cerr.BadRequest(err)
		}
	}
	err = rentals.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		list, err = rentals.repos.Rentals.Conn(c).List(ctx, f)
		return err
	})
	if err != nil {
		list = nil
	}
	return
}

// Inspections use case returns the departure and return inspections
// of the id rental. A rental which is not returned yet has no return
// inspection, which is reported by a false Returned field and not as
// an error.
func (rentals *UseCase) Inspections(
	ctx context.Context, id uuid.UUID,
) (ri *model.RentalInspections, err error) {
	err = rentals.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		if _, err := rentals.repos.Rentals.Conn(c).Get(ctx, id); err != nil {
			return err
		}
		ins, err := rentals.repos.Inspections.Conn(c).ListByRental(ctx, id)
		if err != nil {
			return err
		}
		ri = &model.RentalInspections{}
		for i := range ins {
			switch ins[i].Kind {
			case model.DepartureInspection:
				ri.Departure = &ins[i]
			case model.ReturnInspection:
				ri.Return = &ins[i]
			}
		}
		ri.Returned = ri.Return != nil
		return nil
	})
	if err != nil {
		ri = nil
	}
	return
}

// Summary use case returns the financial balance of the id rental.
func (rentals *UseCase) Summary(ctx context.Context, id uuid.UUID) (*model.Balance, error) {
	r, err := rentals.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	b := finance.Summarize(r.Terms.Total, r.Terms.Paid)
	return &b, nil
}

// Archive use case hides the id returned rental from the active view.
// Ongoing rentals may not be archived.
func (rentals *UseCase) Archive(ctx context.Context, id uuid.UUID) (r *model.Rental, err error) {
	err = rentals.tx(ctx, func(ctx context.Context, tx repo.Tx) error {
		q := rentals.repos.Rentals.Tx(tx)
		r, err = q.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		switch {
		case r.ArchivedAt != nil:
			return cerr.Conflict(errors.New("rental is already archived"))
		case r.Status != model.Returned:
			return cerr.Unprocessable(errors.New(
				"only a returned rental may be archived",
			))
		}
		now := rentals.now().UTC()
		r.ArchivedAt = &now
		if err := q.Save(ctx, r); err != nil {
			return err
		}
		return rentals.journal.Record(
			ctx, tx, model.EntityRental, id, model.ActionArchive, r,
		)
	})
	if err != nil {
		r = nil
	}
	return
}

func (rentals *UseCase) tx(
	ctx context.Context, f func(ctx context.Context, tx repo.Tx) error,
) error {
	return rentals.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, f)
	})
}

// lockOngoing fetches the id rental for update and ensures that it is
// still ongoing.
func lockOngoing(
	ctx context.Context, q repo.RentalsTxQueryer, id uuid.UUID,
) (*model.Rental, error) {
	r, err := q.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Status != model.Ongoing {
		return nil, cerr.Unprocessable(fmt.Errorf(
			"contract %s is not ongoing", r.ContractNumber,
		))
	}
	return r, nil
}
