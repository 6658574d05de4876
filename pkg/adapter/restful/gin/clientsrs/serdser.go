// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package clientsrs

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/momeni/carrental/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/carrental/pkg/core/model"
)

type rawClientReq struct {
	LastName      string        `json:"nom" binding:"required,max=100"`
	FirstName     string        `json:"prenom" binding:"required,max=100"`
	NationalID    string        `json:"cin" binding:"required,max=30"`
	LicenseNumber string        `json:"numeroPermis" binding:"max=30"`
	LicenseIssued *serdser.Date `json:"dateDelivrancePermis"`
	Phone         string        `json:"telephone" binding:"max=30"`
	Email         string        `json:"email" binding:"omitempty,email"`
	Address       string        `json:"adresse" binding:"max=500"`
	Photos        []string      `json:"photos" binding:"max=20"`
}

func (rs *resource) DserClientReq(c *gin.Context) *model.Client {
	req := &rawClientReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	return &model.Client{
		LastName:      req.LastName,
		FirstName:     req.FirstName,
		NationalID:    req.NationalID,
		LicenseNumber: req.LicenseNumber,
		LicenseIssued: req.LicenseIssued.Ptr(),
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		Photos:        req.Photos,
	}
}
