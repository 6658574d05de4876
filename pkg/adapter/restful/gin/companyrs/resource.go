// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package companyrs realizes the company settings resource, allowing
// the settings fetching and replacement REST APIs to be accepted
// and delegated to the company use case properly.
package companyrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/carrental/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/carrental/pkg/core/usecase/companyuc"
)

type resource struct {
	company *companyuc.UseCase
}

// Register instantiates a resource adapting the company use case
// instance with the relevant REST APIs including:
//  1. PUT request to /api/rentweb/v1/settings/company
//     in order to replace the company settings which are printed on
//     the contracts and invoices,
//  2. GET request to /api/rentweb/v1/settings/company
//     in order to fetch the current company settings.
func Register(r *gin.RouterGroup, company *companyuc.UseCase) {
	rs := &resource{company: company}
	r.PUT("settings/company", rs.UpdateSettings)
	r.GET("settings/company", rs.FetchSettings)
}

func (rs *resource) UpdateSettings(c *gin.Context) {
	req, ok := rs.DserUpdateSettingsReq(c)
	if !ok {
		return
	}
	s, err := rs.company.Update(c, req)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (rs *resource) FetchSettings(c *gin.Context) {
	s, err := rs.company.Get(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}
