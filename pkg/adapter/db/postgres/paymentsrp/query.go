// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package paymentsrp

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/carrental/pkg/adapter/db/postgres"
	"github.com/momeni/carrental/pkg/core/cerr"
	"github.com/momeni/carrental/pkg/core/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type gPayment struct {
	ID             uuid.UUID `gorm:"primaryKey;type:uuid"`
	RentalID       uuid.UUID `gorm:"type:uuid;index"`
	ContractNumber string
	ClientName     string
	Amount         decimal.Decimal `gorm:"type:numeric(12,2)"`
	Date           time.Time       `gorm:"index"`
	Method         string
	Status         string
	Notes          string
	CreatedAt      time.Time
}

func (gp *gPayment) TableName() string {
	return "payments"
}

// AutoMigrate creates (or alters) the payments table.
func AutoMigrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(&gPayment{})
}

func (gp *gPayment) Model() *model.Payment {
	return &model.Payment{
		ID:             gp.ID,
		RentalID:       gp.RentalID,
		ContractNumber: gp.ContractNumber,
		ClientName:     gp.ClientName,
		Amount:         gp.Amount,
		Date:           gp.Date,
		Method:         model.PaymentMethod(gp.Method),
		Status:         model.PaymentStatus(gp.Status),
		Notes:          gp.Notes,
		CreatedAt:      gp.CreatedAt,
	}
}

func path(id uuid.UUID) string {
	return model.EntityPayment + "/" + id.String()
}

func Get[Q postgres.Queryer](ctx context.Context, q Q, id uuid.UUID) (*model.Payment, error) {
	gp := &gPayment{}
	if err := q.GORM(ctx).Where("id = ?", id).First(gp).Error; err != nil {
		return nil, postgres.MapErr(err, "get", path(id), nil)
	}
	return gp.Model(), nil
}

func List[Q postgres.Queryer](
	ctx context.Context, q Q, rentalID uuid.UUID,
) ([]model.Payment, error) {
	gdb := q.GORM(ctx)
	if rentalID != uuid.Nil {
		gdb = gdb.Where("rental_id = ?", rentalID)
	}
	var gps []gPayment
	err := gdb.Order("date DESC, created_at DESC").Find(&gps).Error
	if err != nil {
		return nil, postgres.MapErr(err, "list", model.EntityPayment, nil)
	}
	payments := make([]model.Payment, 0, len(gps))
	for i := range gps {
		payments = append(payments, *gps[i].Model())
	}
	return payments, nil
}

func Create[Q postgres.Queryer](ctx context.Context, q Q, p *model.Payment) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	gp := &gPayment{
		ID:             p.ID,
		RentalID:       p.RentalID,
		ContractNumber: p.ContractNumber,
		ClientName:     p.ClientName,
		Amount:         p.Amount,
		Date:           p.Date,
		Method:         string(p.Method),
		Status:         string(p.Status),
		Notes:          p.Notes,
		CreatedAt:      p.CreatedAt,
	}
	if err := q.GORM(ctx).Create(gp).Error; err != nil {
		return postgres.MapErr(err, "create", path(p.ID), p)
	}
	p.CreatedAt = gp.CreatedAt
	return nil
}

func Delete[Q postgres.Queryer](ctx context.Context, q Q, id uuid.UUID) error {
	gdb := q.GORM(ctx).Where("id = ?", id).Delete(&gPayment{})
	if err := gdb.Error; err != nil {
		return postgres.MapErr(err, "delete", path(id), nil)
	}
	if gdb.RowsAffected == 0 {
		return cerr.NotFound(fmt.Errorf("%s was not found", path(id)))
	}
	return nil
}
