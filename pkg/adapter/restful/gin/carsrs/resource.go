// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package carsrs realizes the cars resource, allowing the fleet
// management REST APIs to be accepted and delegated to the
// cars use cases respectively.
package carsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/carrental/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/carrental/pkg/core/model"
	"github.com/momeni/carrental/pkg/core/usecase/audituc"
	"github.com/momeni/carrental/pkg/core/usecase/carsuc"
)

type resource struct {
	cars  *carsuc.UseCase
	audit *audituc.UseCase
}

// Register instantiates a resource adapting the cars use case instance
// with the relevant REST APIs including:
//  1. GET and POST requests to /api/rentweb/v1/cars
//     in order to list cars (?view=active|archived|all) or add a car,
//  2. GET and PUT requests to /api/rentweb/v1/cars/:cid
//     in order to fetch or update a car,
//  3. POST request to /api/rentweb/v1/cars/:cid/archive,
//  4. POST requests to /api/rentweb/v1/cars/:cid/maintenance and
//     /api/rentweb/v1/cars/:cid/maintenance/complete
//     in order to send a car to the garage and take it back,
//  5. GET request to /api/rentweb/v1/cars/:cid/history
//     in order to fetch the audit trail of a car,
//  6. GET request to /api/rentweb/v1/alerts
//     in order to fetch the maintenance and documents alerts.
func Register(r *gin.RouterGroup, cars *carsuc.UseCase, audit *audituc.UseCase) {
	rs := &resource{cars: cars, audit: audit}
	r.GET("cars", rs.ListCars)
	r.POST("cars", rs.CreateCar)
	r.GET("cars/:cid", rs.GetCar)
	r.PUT("cars/:cid", rs.UpdateCar)
	r.POST("cars/:cid/archive", rs.ArchiveCar)
	r.POST("cars/:cid/maintenance", rs.StartMaintenance)
	r.POST("cars/:cid/maintenance/complete", rs.CompleteMaintenance)
	r.GET("cars/:cid/history", rs.History)
	r.GET("alerts", rs.Alerts)
}

func (rs *resource) ListCars(c *gin.Context) {
	v, ok := serdser.ParseView(c)
	if !ok {
		return
	}
	cars, err := rs.cars.List(c, v)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, cars)
}

func (rs *resource) CreateCar(c *gin.Context) {
	req := rs.DserCarReq(c)
	if req == nil {
		return
	}
	car, err := rs.cars.Create(c, req)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, car)
}

func (rs *resource) GetCar(c *gin.Context) {
	id, ok := serdser.ParseID(c, "cid")
	if !ok {
		return
	}
	car, err := rs.cars.Get(c, id)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, car)
}

func (rs *resource) UpdateCar(c *gin.Context) {
	id, ok := serdser.ParseID(c, "cid")
	if !ok {
		return
	}
	req := rs.DserCarReq(c)
	if req == nil {
		return
	}
	car, err := rs.cars.Update(c, id, req)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, car)
}

func (rs *resource) ArchiveCar(c *gin.Context) {
	id, ok := serdser.ParseID(c, "cid")
	if !ok {
		return
	}
	car, err := rs.cars.Archive(c, id)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, car)
}

func (rs *resource) StartMaintenance(c *gin.Context) {
	id, ok := serdser.ParseID(c, "cid")
	if !ok {
		return
	}
	req := rs.DserStartMaintenanceReq(c)
	if req == nil {
		return
	}
	car, err := rs.cars.StartMaintenance(c, id, *req)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, car)
}

func (rs *resource) CompleteMaintenance(c *gin.Context) {
	id, ok := serdser.ParseID(c, "cid")
	if !ok {
		return
	}
	req := rs.DserCompleteMaintenanceReq(c)
	if req == nil {
		return
	}
	car, err := rs.cars.CompleteMaintenance(c, id, *req)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, car)
}

func (rs *resource) History(c *gin.Context) {
	id, ok := serdser.ParseID(c, "cid")
	if !ok {
		return
	}
	entries, err := rs.audit.History(c, model.EntityCar, id)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (rs *resource) Alerts(c *gin.Context) {
	alerts, err := rs.cars.Alerts(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, alerts)
}
