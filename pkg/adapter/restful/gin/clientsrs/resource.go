// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package clientsrs realizes the clients resource.
package clientsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/carrental/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/carrental/pkg/core/model"
	"github.com/momeni/carrental/pkg/core/usecase/audituc"
	"github.com/momeni/carrental/pkg/core/usecase/clientsuc"
)

type resource struct {
	clients *clientsuc.UseCase
	audit   *audituc.UseCase
}

// Register instantiates a resource adapting the clients use case
// instance with the relevant REST APIs including:
//  1. GET and POST requests to /api/rentweb/v1/clients
//     in order to list (?view=...&q=name-or-cin) or add clients,
//  2. GET and PUT requests to /api/rentweb/v1/clients/:clid,
//  3. POST request to /api/rentweb/v1/clients/:clid/archive,
//  4. GET request to /api/rentweb/v1/clients/:clid/history.
func Register(r *gin.RouterGroup, clients *clientsuc.UseCase, audit *audituc.UseCase) {
	rs := &resource{clients: clients, audit: audit}
	r.GET("clients", rs.ListClients)
	r.POST("clients", rs.CreateClient)
	r.GET("clients/:clid", rs.GetClient)
	r.PUT("clients/:clid", rs.UpdateClient)
	r.POST("clients/:clid/archive", rs.ArchiveClient)
	r.GET("clients/:clid/history", rs.History)
}

func (rs *resource) ListClients(c *gin.Context) {
	v, ok := serdser.ParseView(c)
	if !ok {
		return
	}
	clients, err := rs.clients.List(c, v, c.Query("q"))
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

func (rs *resource) CreateClient(c *gin.Context) {
	req := rs.DserClientReq(c)
	if req == nil {
		return
	}
	cl, err := rs.clients.Create(c, req)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, cl)
}

func (rs *resource) GetClient(c *gin.Context) {
	id, ok := serdser.ParseID(c, "clid")
	if !ok {
		return
	}
	cl, err := rs.clients.Get(c, id)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, cl)
}

func (rs *resource) UpdateClient(c *gin.Context) {
	id, ok := serdser.ParseID(c, "clid")
	if !ok {
		return
	}
	req := rs.DserClientReq(c)
	if req == nil {
		return
	}
	cl, err := rs.clients.Update(c, id, req)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, cl)
}

func (rs *resource) ArchiveClient(c *gin.Context) {
	id, ok := serdser.ParseID(c, "clid")
	if !ok {
		return
	}
	cl, err := rs.clients.Archive(c, id)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, cl)
}

func (rs *resource) History(c *gin.Context) {
	id, ok := serdser.ParseID(c, "clid")
	if !ok {
		return
	}
	entries, err := rs.audit.History(c, model.EntityClient, id)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
