// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package rentalsrs

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/momeni/carrental/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/carrental/pkg/core/model"
	"github.com/momeni/carrental/pkg/core/repo"
	"github.com/momeni/carrental/pkg/core/usecase/rentaluc"
	"github.com/shopspring/decimal"
)

type rawFilterReq struct {
	View   string `form:"view" binding:"omitempty,oneof=active archived all"`
	Status string `form:"statut" binding:"omitempty,oneof=en_cours terminee"`
	CarID  string `form:"carId" binding:"omitempty,uuid"`
}

type rawPersonReq struct {
	LastName      string        `json:"nom" binding:"required,max=100"`
	FirstName     string        `json:"prenom" binding:"max=100"`
	NationalID    string        `json:"cin" binding:"required,max=30"`
	LicenseNumber string        `json:"numeroPermis" binding:"required,max=30"`
	LicenseIssued *serdser.Date `json:"dateDelivrancePermis"`
	Phone         string        `json:"telephone" binding:"max=30"`
	Address       string        `json:"adresse" binding:"max=500"`
}

type rawDamageReq struct {
	Part string  `json:"partie" binding:"required,max=100"`
	Kind string  `json:"type" binding:"required,oneof=scratch dent break needs-replacement"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

type rawInspectionReq struct {
	Date        serdser.Date      `json:"date"`
	Odometer    *int64            `json:"kilometrage" binding:"omitempty,min=0"`
	FuelLevel   float64           `json:"niveauCarburant" binding:"min=0,max=1"`
	Accessories model.Accessories `json:"accessoires"`
	Notes       string            `json:"notes" binding:"max=2000"`
	Photos      []string          `json:"photos" binding:"max=40"`
	Damages     []rawDamageReq    `json:"dommages" binding:"dive"`
}

type rawContractReq struct {
	ClientID       string           `json:"clientId" binding:"required,uuid"`
	SecondDriver   *rawPersonReq    `json:"deuxiemeConducteur"`
	CarID          string           `json:"carId" binding:"required,uuid"`
	StartDate      serdser.Date     `json:"dateDebut"`
	EndDate        serdser.Date     `json:"dateFin"`
	PickupLocation string           `json:"lieuDepart" binding:"max=200"`
	ReturnLocation string           `json:"lieuRetour" binding:"max=200"`
	DailyPrice     *decimal.Decimal `json:"prixParJour"`
	Deposit        decimal.Decimal  `json:"caution"`
	Departure      rawInspectionReq `json:"depart"`
}

type rawExtensionReq struct {
	EndDate        serdser.Date `json:"dateFin"`
	ReturnLocation *string      `json:"lieuRetour" binding:"omitempty,max=200"`
}

type rawCheckInReq struct {
	ReturnDate serdser.Date     `json:"dateRetour"`
	ReturnKm   *int64           `json:"kilometrageRetour" binding:"required,min=0"`
	Inspection rawInspectionReq `json:"retour"`
}

func (p *rawPersonReq) toModel() *model.Person {
	if p == nil {
		return nil
	}
	return &model.Person{
		LastName:      p.LastName,
		FirstName:     p.FirstName,
		NationalID:    p.NationalID,
		LicenseNumber: p.LicenseNumber,
		LicenseIssued: p.LicenseIssued.Ptr(),
		Phone:         p.Phone,
		Address:       p.Address,
	}
}

func (in *rawInspectionReq) toInput() rentaluc.InspectionInput {
	damages := make([]model.Damage, 0, len(in.Damages))
	for _, d := range in.Damages {
		damages = append(damages, model.Damage{
			ID:   uuid.New(),
			Part: d.Part,
			Kind: model.DamageKind(d.Kind),
			X:    d.X,
			Y:    d.Y,
		})
	}
	return rentaluc.InspectionInput{
		Date:        in.Date.Time,
		Odometer:    in.Odometer,
		FuelLevel:   in.FuelLevel,
		Accessories: in.Accessories,
		Notes:       in.Notes,
		Photos:      in.Photos,
		Damages:     damages,
	}
}

func (rs *resource) DserRentalFilter(c *gin.Context) *repo.RentalFilter {
	req := &rawFilterReq{}
	if ok := serdser.Bind(c, req, binding.Query); !ok {
		return nil
	}
	f := &repo.RentalFilter{
		View:   model.View(req.View),
		Status: model.RentalStatus(req.Status),
	}
	if req.CarID != "" {
		f.CarID = uuid.MustParse(req.CarID)
	}
	return f
}

func (rs *resource) DserContractReq(c *gin.Context) *rentaluc.ContractInput {
	req := &rawContractReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	return &rentaluc.ContractInput{
		ClientID:       uuid.MustParse(req.ClientID),
		SecondDriver:   req.SecondDriver.toModel(),
		CarID:          uuid.MustParse(req.CarID),
		StartDate:      req.StartDate.Time,
		EndDate:        req.EndDate.Time,
		PickupLocation: req.PickupLocation,
		ReturnLocation: req.ReturnLocation,
		DailyPrice:     req.DailyPrice,
		Deposit:        req.Deposit,
		Departure:      req.Departure.toInput(),
	}
}

func (rs *resource) DserExtensionReq(c *gin.Context) *rentaluc.Extension {
	req := &rawExtensionReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	return &rentaluc.Extension{
		EndDate:        req.EndDate.Time,
		ReturnLocation: req.ReturnLocation,
	}
}

func (rs *resource) DserCheckInReq(c *gin.Context) *rentaluc.CheckInInput {
	req := &rawCheckInReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	return &rentaluc.CheckInInput{
		ReturnDate: req.ReturnDate.Time,
		ReturnKm:   *req.ReturnKm,
		Inspection: req.Inspection.toInput(),
	}
}
