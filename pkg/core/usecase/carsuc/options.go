// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package carsuc

import (
	"errors"
	"fmt"
	"time"

	"github.com/momeni/carrental/pkg/core/alert"
)

// Option is a functional option for the cars use case.
type Option func(uc *UseCase) error

// WithAlertWindows option configures a cars UseCase instance in order
// to use the given lead windows while computing the alerts. All
// windows must be positive. This option may be passed to the New()
// function.
func WithAlertWindows(w alert.Windows) Option {
	return func(uc *UseCase) error {
		for name, v := range map[string]int64{
			"oil change":  w.OilChangeKm,
			"fuel filter": w.FuelFilterKm,
			"timing belt": w.TimingBeltKm,
			"brake pads":  w.BrakePadsKm,
			"service":     int64(w.ServiceDays),
			"brake fluid": int64(w.BrakeFluidDays),
			"coolant":     int64(w.CoolantDays),
			"documents":   int64(w.DocumentDays),
		} {
			if v <= 0 {
				return fmt.Errorf("%s window (%d) is not positive", name, v)
			}
		}
		if uc.windows != nil {
			return errors.New("alert windows are already configured")
		}
		uc.windows = &w
		return nil
	}
}

// WithClock option replaces the time.Now function which is used for
// computing the alerts and the archiving timestamps.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) error {
		if now == nil {
			return errors.New("clock is nil")
		}
		if uc.now != nil {
			return errors.New("clock is already configured")
		}
		uc.now = now
		return nil
	}
}
