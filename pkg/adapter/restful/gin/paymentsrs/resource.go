// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package paymentsrs realizes the payments resource.
package paymentsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/carrental/pkg/adapter/restful/gin/metrics"
	"github.com/momeni/carrental/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/carrental/pkg/core/usecase/paymentuc"
)

type resource struct {
	payments *paymentuc.UseCase
	metrics  *metrics.Metrics
}

// Register instantiates a resource adapting the payments use case
// instance with the relevant REST APIs including:
//  1. GET request to /api/rentweb/v1/payments
//     in order to list all payments or the payments of ?rentalId=...
//  2. POST request to /api/rentweb/v1/payments
//     in order to record a payment for a rental,
//  3. DELETE request to /api/rentweb/v1/payments/:pid
//     in order to delete a payment and reduce the paid amount of
//     its rental accordingly.
//
// The m metrics may be nil.
func Register(r *gin.RouterGroup, payments *paymentuc.UseCase, m *metrics.Metrics) {
	rs := &resource{payments: payments, metrics: m}
	r.GET("payments", rs.ListPayments)
	r.POST("payments", rs.RecordPayment)
	r.DELETE("payments/:pid", rs.DeletePayment)
}

func (rs *resource) ListPayments(c *gin.Context) {
	rentalID, ok := rs.DserListPaymentsReq(c)
	if !ok {
		return
	}
	list, err := rs.payments.List(c, rentalID)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (rs *resource) RecordPayment(c *gin.Context) {
	req := rs.DserPaymentReq(c)
	if req == nil {
		return
	}
	p, err := rs.payments.Record(c, *req)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	rs.metrics.PaymentRecorded()
	c.JSON(http.StatusCreated, p)
}

func (rs *resource) DeletePayment(c *gin.Context) {
	id, ok := serdser.ParseID(c, "pid")
	if !ok {
		return
	}
	if err := rs.payments.Delete(c, id); err != nil {
		serdser.SerErr(c, err)
		return
	}
	rs.metrics.PaymentDeleted()
	c.Status(http.StatusNoContent)
}
