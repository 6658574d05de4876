// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package alert derives the maintenance and document alerts of the
// fleet from the odometer and date fields of cars. Alerts are never
// persisted, they are computed again whenever cars change.
package alert

import (
	"cmp"
	"slices"
	"time"

	"github.com/momeni/carrental/pkg/core/model"
)

// Windows are the lead windows of each tracked threshold. A threshold
// which is reached yields a due (or expired) alert, while a threshold
// which is at most as far as its lead window yields a soon (or
// expiring-soon) alert.
type Windows struct {
	OilChangeKm  int64
	FuelFilterKm int64
	TimingBeltKm int64
	BrakePadsKm  int64

	ServiceDays    int
	BrakeFluidDays int
	CoolantDays    int
	DocumentDays   int
}

// DefaultWindows returns the lead windows which are used when they
// are not configured explicitly.
func DefaultWindows() Windows {
	return Windows{
		OilChangeKm:    1000,
		FuelFilterKm:   1500,
		TimingBeltKm:   2000,
		BrakePadsKm:    1500,
		ServiceDays:    15,
		BrakeFluidDays: 30,
		CoolantDays:    30,
		DocumentDays:   7,
	}
}

type scored struct {
	model.Alert
	urgency float64 // remaining fraction of the lead window
}

// Compute returns the alerts of cars at the now instant, the most
// urgent first. Due and expired alerts precede the soon ones and
// within each group, alerts are ordered by the remaining fraction of
// their lead window (so km and day based alerts are comparable).
// Archived cars are skipped.
func Compute(cars []model.Car, now time.Time, w Windows) []model.Alert {
	var all []scored
	for i := range cars {
		c := &cars[i]
		if c.ArchivedAt != nil {
			continue
		}
		s := c.Schedule
		all = appendKm(all, c, model.AlertOilChange, s.NextOilChangeKm, w.OilChangeKm)
		all = appendKm(all, c, model.AlertFuelFilter, s.NextFuelFilterKm, w.FuelFilterKm)
		all = appendKm(all, c, model.AlertTimingBelt, s.NextTimingBeltKm, w.TimingBeltKm)
		all = appendKm(all, c, model.AlertBrakePads, s.NextBrakePadsKm, w.BrakePadsKm)
		all = appendDate(all, c, now, model.AlertService, s.NextServiceDate, w.ServiceDays, false)
		all = appendDate(all, c, now, model.AlertBrakeFluid, s.NextBrakeFluidDate, w.BrakeFluidDays, false)
		all = appendDate(all, c, now, model.AlertCoolant, s.NextCoolantDate, w.CoolantDays, false)
		all = appendDate(all, c, now, model.AlertInsurance, c.InsuranceExpiry, w.DocumentDays, true)
		all = appendDate(all, c, now, model.AlertTechInspection, c.InspectionExpiry, w.DocumentDays, true)
	}
	slices.SortStableFunc(all, func(a, b scored) int {
		if ua, ub := a.Status.Urgent(), b.Status.Urgent(); ua != ub {
			if ua {
				return -1
			}
			return 1
		}
		if r := cmp.Compare(a.urgency, b.urgency); r != 0 {
			return r
		}
		if r := cmp.Compare(a.Car, b.Car); r != 0 {
			return r
		}
		return cmp.Compare(a.Kind, b.Kind)
	})
	alerts := make([]model.Alert, len(all))
	for i := range all {
		alerts[i] = all[i].Alert
	}
	return alerts
}

// KmStatus returns the status of a km threshold for the odometer
// value and lead window. Empty status means no alert.
func KmStatus(odometer, threshold, lead int64) model.AlertStatus {
	switch remaining := threshold - odometer; {
	case remaining <= 0:
		return model.AlertDue
	case remaining <= lead:
		return model.AlertSoon
	}
	return ""
}

// DaysUntil returns the number of calendar days from now to t.
// It is negative when t is a past date and zero for today.
// Dates are kept at UTC midnight, so t is compared by its UTC calendar
// day while now keeps the calendar day of its own location.
func DaysUntil(now, t time.Time) int {
	n := model.DateOf(now)
	d := model.DateOf(t.UTC())
	return int(d.Sub(n) / (24 * time.Hour))
}

func appendKm(
	all []scored, c *model.Car, kind model.AlertKind,
	threshold *int64, lead int64,
) []scored {
	if threshold == nil {
		return all
	}
	st := KmStatus(c.Odometer, *threshold, lead)
	if st == "" {
		return all
	}
	due := *threshold
	remaining := due - c.Odometer
	return append(all, scored{
		Alert: model.Alert{
			CarID:       c.ID,
			Car:         c.Label(),
			Kind:        kind,
			Status:      st,
			DueKm:       &due,
			RemainingKm: &remaining,
		},
		urgency: fraction(float64(remaining), float64(lead)),
	})
}

func appendDate(
	all []scored, c *model.Car, now time.Time, kind model.AlertKind,
	threshold *time.Time, lead int, document bool,
) []scored {
	if threshold == nil {
		return all
	}
	days := DaysUntil(now, *threshold)
	var st model.AlertStatus
	switch {
	case document && days < 0:
		st = model.AlertExpired
	case document && days <= lead:
		st = model.AlertExpiringSoon
	case !document && days <= 0:
		st = model.AlertDue
	case !document && days <= lead:
		st = model.AlertSoon
	default:
		return all
	}
	due := *threshold
	return append(all, scored{
		Alert: model.Alert{
			CarID:         c.ID,
			Car:           c.Label(),
			Kind:          kind,
			Status:        st,
			DueDate:       &due,
			RemainingDays: &days,
		},
		urgency: fraction(float64(days), float64(lead)),
	})
}

func fraction(remaining, lead float64) float64 {
	if lead <= 0 {
		return remaining
	}
	return remaining / lead
}
