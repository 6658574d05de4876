// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model_test

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/momeni/carrental/pkg/core/model"
)

func ExampleParseView() {
	for _, s := range []string{"", "archived", "deleted"} {
		v, err := model.ParseView(s)
		fmt.Printf("%q %v\n", v, err)
	}
	// Output:
	// "active" <nil>
	// "archived" <nil>
	// "" unknown enum value
}

func ExampleParseContractNumber() {
	cn, err := model.ParseContractNumber("C-2024-05-007")
	fmt.Println(err)
	cn.Seq++
	fmt.Println(cn)
	fmt.Println(model.ContractMonthPrefix("C", time.Date(2024, 11, 3, 0, 0, 0, 0, time.UTC)))
	_, err = model.ParseContractNumber("C-2024-13-001")
	fmt.Println(err)
	// Output:
	// <nil>
	// C-2024-05-008
	// C-2024-11-
	// malformed month
}

func ExampleFuelType_Validate() {
	fmt.Println(model.FuelType("diesel").Validate())
	fmt.Println(model.FuelType("kerosene").Validate())
	// Output:
	// <nil>
	// invalid fuel type: "kerosene"
}

func ExamplePerson() {
	issued := time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC)
	c := &model.Client{
		LastName: "Alaoui", FirstName: "Karim", NationalID: "AB123456",
		LicenseNumber: "11/22334", LicenseIssued: &issued,
	}
	p := c.Person()
	b, err := json.Marshal(p)
	fmt.Println(err)
	fmt.Println(string(b))
	fmt.Println(p.FullName())
	// Output:
	// <nil>
	// {"nom":"Alaoui","prenom":"Karim","cin":"AB123456","numeroPermis":"11/22334","dateDelivrancePermis":"2015-06-01T00:00:00Z","telephone":"","adresse":""}
	// Karim Alaoui
}

func ExampleDateOf() {
	loc := time.FixedZone("UTC+1", 3600)
	t := time.Date(2024, 3, 1, 0, 30, 0, 0, loc)
	fmt.Println(model.DateOf(t))
	// Output:
	// 2024-03-01 00:00:00 +0000 UTC
}
