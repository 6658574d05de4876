// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package usersrp

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

type gUser struct {
	ID           uuid.UUID `gorm:"primaryKey;type:uuid"`
	Email        string    `gorm:"uniqueIndex"`
	DisplayName  string
	PasswordHash string
	CreatedAt    time.Time
}

func (gu *gUser) TableName() string {
	return "users"
}

// AutoMigrate creates (or alters) the users table.
func AutoMigrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(&gUser{})
}

func (gu *gUser) Model() *model.User {
	return &model.User{
		ID:           gu.ID,
		Email:        gu.Email,
		DisplayName:  gu.DisplayName,
		PasswordHash: gu.PasswordHash,
		CreatedAt:    gu.CreatedAt,
	}
}

const users = "users"

func Get[Q postgres.Queryer](ctx context.Context, q Q, id uuid.UUID) (*model.User, error) {
	gu := &gUser{}
	if err := q.GORM(ctx).Where("id = ?", id).First(gu).Error; err != nil {
		return nil, postgres.MapErr(err, "get", users+"/"+id.String(), nil)
	}
	return gu.Model(), nil
}

// GetByEmail finds a user by its (case-insensitive) email address.
func GetByEmail[Q postgres.Queryer](ctx context.Context, q Q, email string) (*model.User, error) {
	gu := &gUser{}
	email = strings.ToLower(strings.TrimSpace(email))
	err := q.GORM(ctx).Where("email = ?", email).First(gu).Error
	if err != nil {
		return nil, postgres.MapErr(err, "get", users+"/"+email, nil)
	}
	return gu.Model(), nil
}

func Create[Q postgres.Queryer](ctx context.Context, q Q, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	gu := &gUser{
		ID:           u.ID,
		Email:        u.Email,
		DisplayName:  u.DisplayName,
		PasswordHash: u.PasswordHash,
	}
	if err := q.GORM(ctx).Create(gu).Error; err != nil {
		return postgres.MapErr(err, "create", users+"/"+u.Email, nil)
	}
	u.CreatedAt = gu.CreatedAt
	return nil
}

func SetPasswordHash[Q postgres.Queryer](
	ctx context.Context, q Q, id uuid.UUID, hash string,
) error {
	gdb := q.GORM(ctx).Model(&gUser{}).Where("id = ?", id).Update(
		"password_hash", hash,
	)
	if err := gdb.Error; err != nil {
		return postgres.MapErr(err, "update", users+"/"+id.String(), nil)
	}
	if n := gdb.RowsAffected; n != 1 {
		return cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	return nil
}
