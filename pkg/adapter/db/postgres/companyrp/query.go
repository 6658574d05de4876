// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package companyrp

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/momeni/carrental/pkg/adapter/db/postgres"
	"github.com/momeni/carrental/pkg/core/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// singletonID is the primary key of the only company settings row.
const singletonID = 1

type gCompany struct {
	ID        int    `gorm:"primaryKey;autoIncrement:false"`
	Config    string `gorm:"type:text"`
	UpdatedAt time.Time
}

func (gc *gCompany) TableName() string {
	return "company_settings"
}

// AutoMigrate creates (or alters) the company_settings table.
func AutoMigrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(&gCompany{})
}

// Get loads and deserializes the company settings.
func Get[Q postgres.Queryer](ctx context.Context, q Q) (*model.CompanySettings, error) {
	gc := &gCompany{}
	err := q.GORM(ctx).Where("id = ?", singletonID).First(gc).Error
	if err != nil {
		return nil, postgres.MapErr(err, "get", model.EntityCompany, nil)
	}
	s := &model.CompanySettings{}
	if err := json.Unmarshal([]byte(gc.Config), s); err != nil {
		return nil, fmt.Errorf("deserializing json: %w", err)
	}
	s.UpdatedAt = gc.UpdatedAt
	return s, nil
}

// Save serializes s as JSON and inserts or replaces the singleton row.
func Save[Q postgres.Queryer](ctx context.Context, q Q, s *model.CompanySettings) error {
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("serializing json: %w", err)
	}
	gc := &gCompany{
		ID:        singletonID,
		Config:    string(b),
		UpdatedAt: time.Now().UTC(),
	}
	err = q.GORM(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"config", "updated_at"}),
	}).Create(gc).Error
	if err != nil {
		return postgres.MapErr(err, "update", model.EntityCompany, s)
	}
	s.UpdatedAt = gc.UpdatedAt
	return nil
}
