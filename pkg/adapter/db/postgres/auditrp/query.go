// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package auditrp

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/carrental/pkg/adapter/db/postgres"
	"github.com/momeni/carrental/pkg/core/model"
	"gorm.io/gorm"
)

type gAuditEntry struct {
	ID       uuid.UUID `gorm:"primaryKey;type:uuid"`
	At       time.Time `gorm:"index"`
	Actor    string
	Entity   string    `gorm:"index:idx_audit_record"`
	EntityID uuid.UUID `gorm:"type:uuid;index:idx_audit_record"`
	Action   string
	Payload  string `gorm:"type:text"`
}

func (ga *gAuditEntry) TableName() string {
	return "audit_entries"
}

// AutoMigrate creates (or alters) the audit_entries table.
func AutoMigrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(&gAuditEntry{})
}

func List[Q postgres.Queryer](
	ctx context.Context, q Q, entity string, id uuid.UUID,
) ([]model.AuditEntry, error) {
	var gas []gAuditEntry
	err := q.GORM(ctx).Where(
		"entity = ? AND entity_id = ?", entity, id,
	).Order("at").Find(&gas).Error
	if err != nil {
		return nil, postgres.MapErr(
			err, "list", entity+"/"+id.String()+"/audit", nil,
		)
	}
	entries := make([]model.AuditEntry, 0, len(gas))
	for _, ga := range gas {
		entries = append(entries, model.AuditEntry{
			ID:       ga.ID,
			At:       ga.At,
			Actor:    ga.Actor,
			Entity:   ga.Entity,
			EntityID: ga.EntityID,
			Action:   model.AuditAction(ga.Action),
			Payload:  ga.Payload,
		})
	}
	return entries, nil
}

func Append[Q postgres.Queryer](ctx context.Context, q Q, e *model.AuditEntry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	ga := &gAuditEntry{
		ID:       e.ID,
		At:       e.At,
		Actor:    e.Actor,
		Entity:   e.Entity,
		EntityID: e.EntityID,
		Action:   string(e.Action),
		Payload:  e.Payload,
	}
	if err := q.GORM(ctx).Create(ga).Error; err != nil {
		return postgres.MapErr(
			err, "create", e.Entity+"/"+e.EntityID.String()+"/audit", e,
		)
	}
	return nil
}
