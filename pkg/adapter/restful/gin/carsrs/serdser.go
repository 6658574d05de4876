// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package carsrs

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/momeni/carrental/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/carrental/pkg/core/model"
	"github.com/momeni/carrental/pkg/core/usecase/carsuc"
	"github.com/shopspring/decimal"
)

type rawCarReq struct {
	Brand            string          `json:"marque" binding:"required,max=100"`
	Model            string          `json:"modele" binding:"required,max=100"`
	Year             int             `json:"annee" binding:"omitempty,min=1950,max=2100"`
	Color            string          `json:"couleur" binding:"max=50"`
	Plate            string          `json:"immatriculation" binding:"required,max=20"`
	Chassis          string          `json:"numeroChassis" binding:"max=50"`
	Condition        string          `json:"etat" binding:"omitempty,oneof=neuf bon moyen mauvais"`
	DailyPrice       decimal.Decimal `json:"prixParJour"`
	Odometer         int64           `json:"kilometrage" binding:"min=0"`
	Fuel             string          `json:"carburant" binding:"required,oneof=essence diesel hybride electrique"`
	Transmission     string          `json:"transmission" binding:"required,oneof=manuelle automatique"`
	InsuranceExpiry  *serdser.Date   `json:"dateExpirationAssurance"`
	InspectionExpiry *serdser.Date   `json:"dateVisiteTechnique"`
	Schedule         rawScheduleReq  `json:"entretien"`
	Photos           []string        `json:"photos" binding:"max=20"`
}

type rawScheduleReq struct {
	NextOilChangeKm    *int64        `json:"prochainVidangeKm" binding:"omitempty,min=0"`
	NextFuelFilterKm   *int64        `json:"prochainFiltreGasoilKm" binding:"omitempty,min=0"`
	NextTimingBeltKm   *int64        `json:"prochaineCourroieKm" binding:"omitempty,min=0"`
	NextBrakePadsKm    *int64        `json:"prochainesPlaquettesKm" binding:"omitempty,min=0"`
	NextServiceDate    *serdser.Date `json:"prochaineRevisionDate"`
	NextBrakeFluidDate *serdser.Date `json:"prochainLiquideFreinDate"`
	NextCoolantDate    *serdser.Date `json:"prochainLiquideRefroidissementDate"`
}

func (s *rawScheduleReq) toModel() model.MaintenanceSchedule {
	return model.MaintenanceSchedule{
		NextOilChangeKm:    s.NextOilChangeKm,
		NextFuelFilterKm:   s.NextFuelFilterKm,
		NextTimingBeltKm:   s.NextTimingBeltKm,
		NextBrakePadsKm:    s.NextBrakePadsKm,
		NextServiceDate:    s.NextServiceDate.Ptr(),
		NextBrakeFluidDate: s.NextBrakeFluidDate.Ptr(),
		NextCoolantDate:    s.NextCoolantDate.Ptr(),
	}
}

type rawStartMaintenanceReq struct {
	StartedAt   serdser.Date `json:"dateDebut"`
	Description string       `json:"description" binding:"required,max=500"`
	Garage      string       `json:"garage" binding:"max=200"`
}

type rawCompleteMaintenanceReq struct {
	Date        serdser.Date    `json:"date"`
	Odometer    *int64          `json:"kilometrage" binding:"omitempty,min=0"`
	Description string          `json:"description" binding:"max=500"`
	Cost        decimal.Decimal `json:"cout"`
	Schedule    *rawScheduleReq `json:"entretien"`
}

func (rs *resource) DserCarReq(c *gin.Context) *model.Car {
	req := &rawCarReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	condition := model.Condition(req.Condition)
	if condition == "" {
		condition = model.ConditionGood
	}
	return &model.Car{
		Brand:            req.Brand,
		Model:            req.Model,
		Year:             req.Year,
		Color:            req.Color,
		Plate:            req.Plate,
		Chassis:          req.Chassis,
		Condition:        condition,
		DailyPrice:       req.DailyPrice,
		Odometer:         req.Odometer,
		Fuel:             model.FuelType(req.Fuel),
		Transmission:     model.Transmission(req.Transmission),
		InsuranceExpiry:  req.InsuranceExpiry.Ptr(),
		InspectionExpiry: req.InspectionExpiry.Ptr(),
		Schedule:         req.Schedule.toModel(),
		Photos:           req.Photos,
	}
}

func (rs *resource) DserStartMaintenanceReq(
	c *gin.Context,
) *model.CurrentMaintenance {
	req := &rawStartMaintenanceReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	return &model.CurrentMaintenance{
		StartedAt:   req.StartedAt.Time,
		Description: req.Description,
		Garage:      req.Garage,
	}
}

func (rs *resource) DserCompleteMaintenanceReq(
	c *gin.Context,
) *carsuc.Completion {
	req := &rawCompleteMaintenanceReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	done := &carsuc.Completion{
		Date:        req.Date.Time,
		Odometer:    req.Odometer,
		Description: req.Description,
		Cost:        req.Cost,
	}
	if req.Schedule != nil {
		s := req.Schedule.toModel()
		done.Schedule = &s
	}
	return done
}
