// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package alert_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/carrental/pkg/core/alert"
	"github.com/momeni/carrental/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 5, 10, 14, 30, 0, 0, time.UTC)

func km(v int64) *int64 {
	return &v
}

func day(offset int) *time.Time {
	t := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
	return &t
}

func car(plate string, odometer int64) model.Car {
	return model.Car{
		ID:       uuid.New(),
		Brand:    "Dacia",
		Model:    "Logan",
		Plate:    plate,
		Odometer: odometer,
	}
}

func TestOilChangeThresholds(t *testing.T) {
	for _, tc := range []struct {
		name     string
		odometer int64
		status   model.AlertStatus
	}{
		{"passed", 50500, model.AlertDue},
		{"reached", 50000, model.AlertDue},
		{"999 km before", 50000 - 999, model.AlertSoon},
		{"1000 km before", 50000 - 1000, model.AlertSoon},
		{"1001 km before", 50000 - 1001, ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c := car("A-1", tc.odometer)
			c.Schedule.NextOilChangeKm = km(50000)
			alerts := alert.Compute(
				[]model.Car{c}, now, alert.DefaultWindows(),
			)
			if tc.status == "" {
				assert.Empty(t, alerts)
				return
			}
			require.Len(t, alerts, 1)
			a := alerts[0]
			assert.Equal(t, model.AlertOilChange, a.Kind)
			assert.Equal(t, tc.status, a.Status)
			assert.Equal(t, int64(50000), *a.DueKm)
			assert.Equal(t, 50000-tc.odometer, *a.RemainingKm)
		})
	}
}

func TestDocumentAlerts(t *testing.T) {
	for _, tc := range []struct {
		name   string
		expiry *time.Time
		status model.AlertStatus
	}{
		{"yesterday", day(-1), model.AlertExpired},
		{"today", day(0), model.AlertExpiringSoon},
		{"in 7 days", day(7), model.AlertExpiringSoon},
		{"in 8 days", day(8), ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c := car("B-2", 1000)
			c.InsuranceExpiry = tc.expiry
			alerts := alert.Compute(
				[]model.Car{c}, now, alert.DefaultWindows(),
			)
			if tc.status == "" {
				assert.Empty(t, alerts)
				return
			}
			require.Len(t, alerts, 1)
			assert.Equal(t, model.AlertInsurance, alerts[0].Kind)
			assert.Equal(t, tc.status, alerts[0].Status)
		})
	}
}

func TestDaysUntilWestOfUTC(t *testing.T) {
	west := time.FixedZone("UTC-5", -5*3600)
	evening := time.Date(2024, 5, 10, 20, 0, 0, 0, west)
	expiry := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, alert.DaysUntil(evening, expiry))
	assert.Equal(t, 0, alert.DaysUntil(evening, expiry.In(west)))
	assert.Equal(t, 1, alert.DaysUntil(evening, expiry.AddDate(0, 0, 1)))
	assert.Equal(t, -1, alert.DaysUntil(evening, expiry.AddDate(0, 0, -1)))

	c := car("W-1", 1000)
	c.InsuranceExpiry = &expiry
	alerts := alert.Compute([]model.Car{c}, evening, alert.DefaultWindows())
	require.Len(t, alerts, 1)
	assert.Equal(t, model.AlertExpiringSoon, alerts[0].Status)
}

func TestDateMaintenanceAlerts(t *testing.T) {
	c := car("C-3", 1000)
	c.Schedule.NextServiceDate = day(15)    // soon
	c.Schedule.NextBrakeFluidDate = day(31) // nothing
	c.Schedule.NextCoolantDate = day(0)     // due
	alerts := alert.Compute([]model.Car{c}, now, alert.DefaultWindows())
	require.Len(t, alerts, 2)
	assert.Equal(t, model.AlertCoolant, alerts[0].Kind)
	assert.Equal(t, model.AlertDue, alerts[0].Status)
	assert.Equal(t, 0, *alerts[0].RemainingDays)
	assert.Equal(t, model.AlertService, alerts[1].Kind)
	assert.Equal(t, model.AlertSoon, alerts[1].Status)
	assert.Equal(t, 15, *alerts[1].RemainingDays)
}

func TestOrderingSoonestFirst(t *testing.T) {
	a := car("A", 10000)
	a.Schedule.NextTimingBeltKm = km(11900) // soon, 95% of its window
	b := car("B", 10000)
	b.Schedule.NextOilChangeKm = km(10100) // soon, 10% of its window
	c := car("C", 10000)
	c.InspectionExpiry = day(-3) // expired
	d := car("D", 10000)
	d.Schedule.NextBrakePadsKm = km(9000) // due
	archived := car("E", 10000)
	archived.Schedule.NextOilChangeKm = km(100)
	ts := now
	archived.ArchivedAt = &ts

	alerts := alert.Compute(
		[]model.Car{a, b, c, d, archived}, now, alert.DefaultWindows(),
	)
	require.Len(t, alerts, 4)
	kinds := make([]model.AlertKind, len(alerts))
	for i, al := range alerts {
		kinds[i] = al.Kind
	}
	assert.Equal(t, []model.AlertKind{
		model.AlertBrakePads,
		model.AlertTechInspection,
		model.AlertOilChange,
		model.AlertTimingBelt,
	}, kinds)
}

func TestUntrackedThresholdsAreIgnored(t *testing.T) {
	alerts := alert.Compute(
		[]model.Car{car("Z", 999999)}, now, alert.DefaultWindows(),
	)
	assert.Empty(t, alerts)
}
