// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package rentaluc

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Option is a functional option for the rental use case.
type Option func(uc *UseCase) error

// WithClock option replaces the time.Now function. The location of
// the returned times decides the agency calendar, i.e., which day is
// today and which month a new contract number belongs to.
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

// WithContractPrefix option sets the first segment of the contract
// numbers (C by default). The prefix may not contain a dash.
func WithContractPrefix(prefix string) Option {
	return func(uc *UseCase) error {
		if prefix == "" || strings.Contains(prefix, "-") {
			return fmt.Errorf("invalid contract prefix %q", prefix)
		}
		if uc.contractPrefix != "" {
			return errors.New("contract prefix is already configured")
		}
		uc.contractPrefix = prefix
		return nil
	}
}
