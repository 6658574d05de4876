// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package rentalsrs realizes the rentals resource, adapting the
// contract lifecycle (creation, extension, check-in, and archiving)
// and its read models to REST APIs.
package rentalsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/carrental/pkg/adapter/restful/gin/metrics"
	"github.com/momeni/carrental/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/carrental/pkg/core/model"
	"github.com/momeni/carrental/pkg/core/usecase/audituc"
	"github.com/momeni/carrental/pkg/core/usecase/rentaluc"
)

type resource struct {
	rentals *rentaluc.UseCase
	audit   *audituc.UseCase
	metrics *metrics.Metrics
}

// Register instantiates a resource adapting the rentals use case
// instance with the relevant REST APIs including:
//  1. GET request to /api/rentweb/v1/rentals
//     in order to list rentals (?view=...&statut=...&carId=...),
//  2. POST request to /api/rentweb/v1/rentals
//     in order to open a contract with its departure inspection,
//  3. GET request to /api/rentweb/v1/rentals/:rid,
//  4. PATCH request to /api/rentweb/v1/rentals/:rid/extend
//     in order to change the end date of an ongoing contract,
//  5. POST request to /api/rentweb/v1/rentals/:rid/check-in
//     in order to close a contract with its return inspection,
//  6. GET requests to /api/rentweb/v1/rentals/:rid/inspections and
//     /api/rentweb/v1/rentals/:rid/balance,
//  7. POST request to /api/rentweb/v1/rentals/:rid/archive,
//  8. GET request to /api/rentweb/v1/rentals/:rid/history.
//
// The m metrics may be nil.
func Register(
	r *gin.RouterGroup, rentals *rentaluc.UseCase,
	audit *audituc.UseCase, m *metrics.Metrics,
) {
	rs := &resource{rentals: rentals, audit: audit, metrics: m}
	r.GET("rentals", rs.ListRentals)
	r.POST("rentals", rs.CreateRental)
	r.GET("rentals/:rid", rs.GetRental)
	r.PATCH("rentals/:rid/extend", rs.ExtendRental)
	r.POST("rentals/:rid/check-in", rs.CheckIn)
	r.GET("rentals/:rid/inspections", rs.Inspections)
	r.GET("rentals/:rid/balance", rs.Balance)
	r.POST("rentals/:rid/archive", rs.ArchiveRental)
	r.GET("rentals/:rid/history", rs.History)
}

func (rs *resource) ListRentals(c *gin.Context) {
	f := rs.DserRentalFilter(c)
	if f == nil {
		return
	}
	list, err := rs.rentals.List(c, *f)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (rs *resource) CreateRental(c *gin.Context) {
	req := rs.DserContractReq(c)
	if req == nil {
		return
	}
	r, err := rs.rentals.Create(c, *req)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	rs.metrics.ContractCreated()
	c.JSON(http.StatusCreated, r)
}

func (rs *resource) GetRental(c *gin.Context) {
	id, ok := serdser.ParseID(c, "rid")
	if !ok {
		return
	}
	r, err := rs.rentals.Get(c, id)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (rs *resource) ExtendRental(c *gin.Context) {
	id, ok := serdser.ParseID(c, "rid")
	if !ok {
		return
	}
	req := rs.DserExtensionReq(c)
	if req == nil {
		return
	}
	r, err := rs.rentals.Extend(c, id, *req)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (rs *resource) CheckIn(c *gin.Context) {
	id, ok := serdser.ParseID(c, "rid")
	if !ok {
		return
	}
	req := rs.DserCheckInReq(c)
	if req == nil {
		return
	}
	r, err := rs.rentals.CheckIn(c, id, *req)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	rs.metrics.CheckedIn()
	c.JSON(http.StatusOK, r)
}

func (rs *resource) Inspections(c *gin.Context) {
	id, ok := serdser.ParseID(c, "rid")
	if !ok {
		return
	}
	ri, err := rs.rentals.Inspections(c, id)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, ri)
}

func (rs *resource) Balance(c *gin.Context) {
	id, ok := serdser.ParseID(c, "rid")
	if !ok {
		return
	}
	b, err := rs.rentals.Summary(c, id)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (rs *resource) ArchiveRental(c *gin.Context) {
	id, ok := serdser.ParseID(c, "rid")
	if !ok {
		return
	}
	r, err := rs.rentals.Archive(c, id)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (rs *resource) History(c *gin.Context) {
	id, ok := serdser.ParseID(c, "rid")
	if !ok {
		return
	}
	entries, err := rs.audit.History(c, model.EntityRental, id)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
