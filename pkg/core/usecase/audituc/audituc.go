// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package audituc contains the audit UseCase. Other use cases call its
// Record method inside their transactions, so each mutation commits
// (or rolls back) together with its audit entry and change
// notification. The History method exposes the recorded entries.
package audituc

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/momeni/carrental/pkg/core/model"
	"github.com/momeni/carrental/pkg/core/repo"
)

// UseCase represents the audit use case.
type UseCase struct {
	pool     repo.Pool
	auditrp  repo.Audit
	notifier repo.Notifier
	now      func() time.Time
}

// New instantiates an audit use case. A nil notifier disables the
// change notifications.
func New(p repo.Pool, a repo.Audit, n repo.Notifier) *UseCase {
	if n == nil {
		n = repo.NopNotifier{}
	}
	return &UseCase{
		pool:     p,
		auditrp:  a,
		notifier: n,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Record appends an audit entry for the entity/id record with the
// JSON serialization of payload and then notifies the change, both in
// the tx transaction. The actor is taken from the principal of ctx.
func (audit *UseCase) Record(
	ctx context.Context, tx repo.Tx,
	entity string, id uuid.UUID, action model.AuditAction, payload any,
) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("serializing %s/%s payload: %w", entity, id, err)
	}
	err = audit.auditrp.Tx(tx).Append(ctx, &model.AuditEntry{
		At:       audit.now(),
		Actor:    model.Actor(ctx),
		Entity:   entity,
		EntityID: id,
		Action:   action,
		Payload:  string(b),
	})
	if err != nil {
		return fmt.Errorf("appending audit entry: %w", err)
	}
	ch := model.Change{Entity: entity, ID: id, Action: action}
	if err := audit.notifier.Notify(ctx, tx, ch); err != nil {
		return fmt.Errorf("notifying change: %w", err)
	}
	return nil
}

// History returns the audit trail of the entity/id record, oldest
// first. An unknown record has an empty history.
func (audit *UseCase) History(
	ctx context.Context, entity string, id uuid.UUID,
) (entries []model.AuditEntry, err error) {
	err = audit.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		entries, err = audit.auditrp.Conn(c).List(ctx, entity, id)
		return err
	})
	if err != nil {
		entries = nil
	}
	return
}
