// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package clientsrp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/carrental/pkg/adapter/db/postgres"
	"github.com/momeni/carrental/pkg/core/cerr"
	"github.com/momeni/carrental/pkg/core/model"
	"gorm.io/gorm"
)

type gClient struct {
	ID            uuid.UUID `gorm:"primaryKey;type:uuid"`
	LastName      string    `gorm:"index"`
	FirstName     string
	NationalID    string `gorm:"index"`
	LicenseNumber string
	LicenseIssued *time.Time
	Phone         string
	Email         string
	Address       string
	Photos        postgres.StringArray

	CreatedAt  time.Time
	UpdatedAt  time.Time
	ArchivedAt *time.Time `gorm:"index"`
}

func (gc *gClient) TableName() string {
	return "clients"
}

// AutoMigrate creates (or alters) the clients table.
func AutoMigrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(&gClient{})
}

func fromModel(c *model.Client) *gClient {
	return &gClient{
		ID:            c.ID,
		LastName:      c.LastName,
		FirstName:     c.FirstName,
		NationalID:    c.NationalID,
		LicenseNumber: c.LicenseNumber,
		LicenseIssued: c.LicenseIssued,
		Phone:         c.Phone,
		Email:         c.Email,
		Address:       c.Address,
		Photos:        postgres.StringArray(c.Photos),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
		ArchivedAt:    c.ArchivedAt,
	}
}

func (gc *gClient) Model() *model.Client {
	photos := []string(gc.Photos)
	if photos == nil {
		photos = []string{}
	}
	return &model.Client{
		ID:            gc.ID,
		LastName:      gc.LastName,
		FirstName:     gc.FirstName,
		NationalID:    gc.NationalID,
		LicenseNumber: gc.LicenseNumber,
		LicenseIssued: gc.LicenseIssued,
		Phone:         gc.Phone,
		Email:         gc.Email,
		Address:       gc.Address,
		Photos:        photos,
		CreatedAt:     gc.CreatedAt,
		UpdatedAt:     gc.UpdatedAt,
		ArchivedAt:    gc.ArchivedAt,
	}
}

func path(id uuid.UUID) string {
	return model.EntityClient + "/" + id.String()
}

func Get[Q postgres.Queryer](ctx context.Context, q Q, id uuid.UUID) (*model.Client, error) {
	gc := &gClient{}
	if err := q.GORM(ctx).Where("id = ?", id).First(gc).Error; err != nil {
		return nil, postgres.MapErr(err, "get", path(id), nil)
	}
	return gc.Model(), nil
}

func List[Q postgres.Queryer](
	ctx context.Context, q Q, v model.View, search string,
) ([]model.Client, error) {
	gdb := q.GORM(ctx).Scopes(postgres.ViewScope(v))
	if search = strings.TrimSpace(search); search != "" {
		term := "%" + strings.ToLower(search) + "%"
		gdb = gdb.Where(
			"LOWER(last_name) LIKE ? OR LOWER(first_name) LIKE ?"+
				" OR LOWER(national_id) LIKE ?",
			term, term, term,
		)
	}
	var gcs []gClient
	err := gdb.Order("last_name, first_name, id").Find(&gcs).Error
	if err != nil {
		return nil, postgres.MapErr(err, "list", model.EntityClient, nil)
	}
	clients := make([]model.Client, 0, len(gcs))
	for i := range gcs {
		clients = append(clients, *gcs[i].Model())
	}
	return clients, nil
}

func Create[Q postgres.Queryer](ctx context.Context, q Q, c *model.Client) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	gc := fromModel(c)
	if err := q.GORM(ctx).Create(gc).Error; err != nil {
		return postgres.MapErr(err, "create", path(c.ID), c)
	}
	c.CreatedAt, c.UpdatedAt = gc.CreatedAt, gc.UpdatedAt
	return nil
}

func Save[Q postgres.Queryer](ctx context.Context, q Q, c *model.Client) error {
	gc := fromModel(c)
	gdb := q.GORM(ctx).Model(&gClient{}).Where("id = ?", c.ID).Select(
		"*",
	).Omit("id", "created_at").Updates(gc)
	if err := gdb.Error; err != nil {
		return postgres.MapErr(err, "update", path(c.ID), c)
	}
	if n := gdb.RowsAffected; n != 1 {
		return cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	c.UpdatedAt = gc.UpdatedAt
	return nil
}
