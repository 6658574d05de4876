// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package paymentsrs

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/momeni/carrental/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/carrental/pkg/core/model"
	"github.com/momeni/carrental/pkg/core/usecase/paymentuc"
	"github.com/shopspring/decimal"
)

type rawListReq struct {
	RentalID string `form:"rentalId" binding:"omitempty,uuid"`
}

type rawPaymentReq struct {
	RentalID string          `json:"rentalId" binding:"required,uuid"`
	Amount   decimal.Decimal `json:"montant"`
	Date     serdser.Date    `json:"date"`
	Method   string          `json:"methode" binding:"required,oneof=cash card transfer advance"`
	Status   string          `json:"statut" binding:"omitempty,oneof=valide en_attente"`
	Notes    string          `json:"notes" binding:"max=1000"`
}

func (rs *resource) DserListPaymentsReq(c *gin.Context) (uuid.UUID, bool) {
	req := &rawListReq{}
	if ok := serdser.Bind(c, req, binding.Query); !ok {
		return uuid.Nil, false
	}
	if req.RentalID == "" {
		return uuid.Nil, true
	}
	return uuid.MustParse(req.RentalID), true
}

func (rs *resource) DserPaymentReq(c *gin.Context) *paymentuc.Input {
	req := &rawPaymentReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	return &paymentuc.Input{
		RentalID: uuid.MustParse(req.RentalID),
		Amount:   req.Amount,
		Date:     req.Date.Time,
		Method:   model.PaymentMethod(req.Method),
		Status:   model.PaymentStatus(req.Status),
		Notes:    req.Notes,
	}
}
