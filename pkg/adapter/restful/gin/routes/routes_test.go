// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package routes_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/momeni/carrental/internal/test/sqlitedb"
	"github.com/momeni/carrental/pkg/adapter/auth/localauth"
	"github.com/momeni/carrental/pkg/adapter/config"
	"github.com/momeni/carrental/pkg/adapter/db/postgres"
	"github.com/momeni/carrental/pkg/adapter/db/postgres/companyrp"
	"github.com/momeni/carrental/pkg/adapter/db/postgres/usersrp"
	"github.com/momeni/carrental/pkg/adapter/restful/gin"
	"github.com/momeni/carrental/pkg/adapter/restful/gin/routes"
	"github.com/momeni/carrental/pkg/core/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const testConfig = `
database: {host: localhost, name: rentweb}
gin: {logger: false, metrics: false}
auth: {jwt-secret: routes-test-secret-0123456789}
live: {enabled: false}
usecases: {rentals: {contract-prefix: T}}
`

type RoutesTestSuite struct {
	suite.Suite

	Ctx   context.Context
	Pool  *postgres.Pool
	Gin   *gin.Engine
	Token string
}

func TestRoutesTestSuite(t *testing.T) {
	suite.Run(t, new(RoutesTestSuite))
}

func (rts *RoutesTestSuite) SetupTest() {
	rts.Ctx = context.Background()
	rts.Pool = sqlitedb.New(rts.T())
	hash, err := localauth.HashPassword("secret-pass")
	rts.Require().NoError(err)
	sqlitedb.Tx(rts.T(), rts.Pool, func(ctx context.Context, tx *postgres.Tx) {
		rts.Require().NoError(companyrp.Save(ctx, tx, &model.CompanySettings{
			Name: "Agence Test", Currency: "MAD",
		}))
		rts.Require().NoError(usersrp.Create(ctx, tx, &model.User{
			Email: "agent@example.com", PasswordHash: hash,
		}))
	})

	c, err := config.Parse([]byte(testConfig), func(string) (string, bool) {
		return "", false
	})
	rts.Require().NoError(err)
	rts.Gin = c.Gin.NewEngine(nil, c.Redis.NewBus())
	rts.Require().NoError(routes.Register(rts.Ctx, rts.Gin, rts.Pool, c, nil))

	res := struct{ Token string }{}
	code := rts.call(http.MethodPost, "auth/sign-in", map[string]any{
		"email": "agent@example.com", "password": "secret-pass",
	}, &res)
	rts.Require().Equal(http.StatusOK, code)
	rts.Require().NotEmpty(res.Token)
	rts.Token = res.Token
}

func (rts *RoutesTestSuite) call(method, path string, body, res any) int {
	var buf bytes.Buffer
	if body != nil {
		rts.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, routes.BasePath+"/"+path, &buf)
	rts.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if rts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+rts.Token)
	}
	w := httptest.NewRecorder()
	rts.Gin.ServeHTTP(w, req)
	if res != nil && w.Body.Len() > 0 {
		rts.Require().NoError(json.Unmarshal(w.Body.Bytes(), res), w.Body.String())
	}
	return w.Code
}

func (rts *RoutesTestSuite) TestAuthenticationRequired() {
	rts.Token = ""
	res := struct{ Detail string }{}
	rts.Equal(http.StatusUnauthorized, rts.call(http.MethodGet, "cars", nil, &res))
	rts.Token = "not-a-token"
	rts.Equal(http.StatusUnauthorized, rts.call(http.MethodGet, "cars", nil, &res))
}

func (rts *RoutesTestSuite) TestProfile() {
	prof := map[string]any{}
	rts.Equal(http.StatusOK, rts.call(http.MethodGet, "auth/profile", nil, &prof))
	rts.Equal("agent@example.com", prof["email"])
}

func (rts *RoutesTestSuite) TestCarValidation() {
	res := map[string][]string{}
	code := rts.call(http.MethodPost, "cars", map[string]any{
		"marque": "Dacia", "carburant": "kerosene",
	}, &res)
	rts.Equal(http.StatusBadRequest, code)
	rts.Contains(res, "modele")
	rts.Contains(res, "immatriculation")
	rts.Contains(res, "carburant")
}

func (rts *RoutesTestSuite) TestCompanySettings() {
	s := model.CompanySettings{}
	rts.Equal(http.StatusOK, rts.call(http.MethodGet, "settings/company", nil, &s))
	rts.Equal("Agence Test", s.Name)

	code := rts.call(http.MethodPut, "settings/company", map[string]any{
		"nom": "Agence Atlas", "devise": "MAD", "ice": "001122",
	}, &s)
	rts.Equal(http.StatusOK, code)
	rts.Equal("Agence Atlas", s.Name)
	rts.Equal("001122", s.ICE)
}

func (rts *RoutesTestSuite) TestRentalLifecycle() {
	car := model.Car{}
	code := rts.call(http.MethodPost, "cars", map[string]any{
		"marque": "Dacia", "modele": "Sandero",
		"immatriculation": "1234-A-5", "prixParJour": 300,
		"kilometrage": 42000, "carburant": "diesel",
		"transmission": "manuelle",
	}, &car)
	rts.Require().Equal(http.StatusCreated, code)
	rts.Equal(model.Available, car.Availability)

	client := model.Client{}
	code = rts.call(http.MethodPost, "clients", map[string]any{
		"nom": "Alaoui", "prenom": "Karim", "cin": "AB123456",
		"numeroPermis": "11/22334",
	}, &client)
	rts.Require().Equal(http.StatusCreated, code)

	start := time.Now().AddDate(0, 0, 1).Format(time.DateOnly)
	end := time.Now().AddDate(0, 0, 4).Format(time.DateOnly)
	r := model.Rental{}
	code = rts.call(http.MethodPost, "rentals", map[string]any{
		"clientId": client.ID, "carId": car.ID,
		"dateDebut": start, "dateFin": end,
		"caution": 2000,
		"depart": map[string]any{
			"niveauCarburant": 0.5,
			"dommages": []map[string]any{
				{"partie": "pare-choc", "type": "scratch", "x": 0.2, "y": 0.7},
			},
		},
	}, &r)
	rts.Require().Equal(http.StatusCreated, code)
	rts.Equal(model.Ongoing, r.Status)
	rts.Regexp(`^T-\d{4}-\d{2}-\d{3}$`, r.ContractNumber)
	rts.Equal(int64(42000), r.DepartureKm)
	total := r.Terms.Total
	rts.True(total.IsPositive())

	code = rts.call(http.MethodPost, "rentals", map[string]any{
		"clientId": client.ID, "carId": car.ID,
		"dateDebut": start, "dateFin": end,
	}, nil)
	rts.Equal(http.StatusConflict, code, "the car is already rented")

	rts.Equal(http.StatusOK, rts.call(http.MethodGet, "cars/"+car.ID.String(), nil, &car))
	rts.Equal(model.Rented, car.Availability)

	p := model.Payment{}
	code = rts.call(http.MethodPost, "payments", map[string]any{
		"rentalId": r.ID, "montant": 500, "methode": "cash",
	}, &p)
	rts.Require().Equal(http.StatusCreated, code)

	b := model.Balance{}
	path := "rentals/" + r.ID.String()
	rts.Equal(http.StatusOK, rts.call(http.MethodGet, path+"/balance", nil, &b))
	rts.True(decimal.NewFromInt(500).Equal(b.Paid), b.Paid.String())
	rts.True(total.Sub(decimal.NewFromInt(500)).Equal(b.Remaining))

	code = rts.call(http.MethodPost, path+"/check-in", map[string]any{
		"kilometrageRetour": 42650,
		"retour":            map[string]any{"niveauCarburant": 0.25},
	}, &r)
	rts.Require().Equal(http.StatusOK, code)
	rts.Equal(model.Returned, r.Status)

	inspections := []model.Inspection{}
	rts.Equal(http.StatusOK, rts.call(http.MethodGet, path+"/inspections", nil, &inspections))
	rts.Len(inspections, 2)

	rts.Equal(http.StatusOK, rts.call(http.MethodGet, "cars/"+car.ID.String(), nil, &car))
	rts.Equal(model.Available, car.Availability)
	rts.Equal(int64(42650), car.Odometer)

	history := []model.AuditEntry{}
	rts.Equal(http.StatusOK, rts.call(http.MethodGet, path+"/history", nil, &history))
	rts.NotEmpty(history)
	for _, e := range history {
		rts.Equal(model.EntityRental, e.Entity)
	}
}
