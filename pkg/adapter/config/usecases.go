// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/momeni/carrental/pkg/adapter/config/settings"
	"github.com/momeni/carrental/pkg/adapter/db/postgres/auditrp"
	"github.com/momeni/carrental/pkg/adapter/db/postgres/carsrp"
	"github.com/momeni/carrental/pkg/adapter/db/postgres/clientsrp"
	"github.com/momeni/carrental/pkg/adapter/db/postgres/companyrp"
	"github.com/momeni/carrental/pkg/adapter/db/postgres/inspectionsrp"
	"github.com/momeni/carrental/pkg/adapter/db/postgres/paymentsrp"
	"github.com/momeni/carrental/pkg/adapter/db/postgres/rentalsrp"
	"github.com/momeni/carrental/pkg/core/alert"
	"github.com/momeni/carrental/pkg/core/repo"
	"github.com/momeni/carrental/pkg/core/usecase/audituc"
	"github.com/momeni/carrental/pkg/core/usecase/carsuc"
	"github.com/momeni/carrental/pkg/core/usecase/clientsuc"
	"github.com/momeni/carrental/pkg/core/usecase/companyuc"
	"github.com/momeni/carrental/pkg/core/usecase/migrationuc"
	"github.com/momeni/carrental/pkg/core/usecase/paymentuc"
	"github.com/momeni/carrental/pkg/core/usecase/rentaluc"
)

// Usecases contains the settings of the use cases. Missing items
// take the defaults of their use cases.
type Usecases struct {
	Rentals Rentals
	Alerts  Alerts
}

// Rentals contains the rental use case settings.
type Rentals struct {
	// ContractPrefix precedes the year, month, and sequence of
	// contract numbers, e.g., C-2024-05-001.
	ContractPrefix string `yaml:"contract-prefix"`
}

// Alerts contains the lead windows of the maintenance and document
// alerts.
type Alerts struct {
	OilChangeKm  *int64 `yaml:"oil-change-km"`
	FuelFilterKm *int64 `yaml:"fuel-filter-km"`
	TimingBeltKm *int64 `yaml:"timing-belt-km"`
	BrakePadsKm  *int64 `yaml:"brake-pads-km"`

	ServiceDays    *int `yaml:"service-days"`
	BrakeFluidDays *int `yaml:"brake-fluid-days"`
	CoolantDays    *int `yaml:"coolant-days"`
	DocumentDays   *int `yaml:"document-days"`
}

// ValidateAndNormalize fills the missing use cases settings with
// their defaults and validates the given ones.
func (u *Usecases) ValidateAndNormalize() error {
	switch cp := u.Rentals.ContractPrefix; {
	case len(cp) > 10:
		return errors.New("contract-prefix must have at most 10 chars")
	case strings.Contains(cp, "-"):
		return errors.New("contract-prefix may not contain a dash")
	}
	d := alert.DefaultWindows()
	a := &u.Alerts
	settings.OverwriteNil(&a.OilChangeKm, &d.OilChangeKm)
	settings.OverwriteNil(&a.FuelFilterKm, &d.FuelFilterKm)
	settings.OverwriteNil(&a.TimingBeltKm, &d.TimingBeltKm)
	settings.OverwriteNil(&a.BrakePadsKm, &d.BrakePadsKm)
	settings.OverwriteNil(&a.ServiceDays, &d.ServiceDays)
	settings.OverwriteNil(&a.BrakeFluidDays, &d.BrakeFluidDays)
	settings.OverwriteNil(&a.CoolantDays, &d.CoolantDays)
	settings.OverwriteNil(&a.DocumentDays, &d.DocumentDays)
	var minKm, maxKm int64 = 1, 100000
	for name, km := range map[string]**int64{
		"oil-change-km":  &a.OilChangeKm,
		"fuel-filter-km": &a.FuelFilterKm,
		"timing-belt-km": &a.TimingBeltKm,
		"brake-pads-km":  &a.BrakePadsKm,
	} {
		if err := settings.VerifyRange(km, &minKm, &maxKm); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	minDays, maxDays := 1, 365
	for name, days := range map[string]**int{
		"service-days":     &a.ServiceDays,
		"brake-fluid-days": &a.BrakeFluidDays,
		"coolant-days":     &a.CoolantDays,
		"document-days":    &a.DocumentDays,
	} {
		if err := settings.VerifyRange(days, &minDays, &maxDays); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// Windows returns the configured alert lead windows. It must be
// called after ValidateAndNormalize.
func (a *Alerts) Windows() alert.Windows {
	return alert.Windows{
		OilChangeKm:    *a.OilChangeKm,
		FuelFilterKm:   *a.FuelFilterKm,
		TimingBeltKm:   *a.TimingBeltKm,
		BrakePadsKm:    *a.BrakePadsKm,
		ServiceDays:    *a.ServiceDays,
		BrakeFluidDays: *a.BrakeFluidDays,
		CoolantDays:    *a.CoolantDays,
		DocumentDays:   *a.DocumentDays,
	}
}

// NewAuditUseCase instantiates the audit journal which is shared by
// other use cases. The committed changes are notified in the live
// channel.
func (c *Config) NewAuditUseCase(p repo.Pool) *audituc.UseCase {
	return audituc.New(p, auditrp.New(), c.Live.NewNotifier())
}

// NewCarsUseCase instantiates a cars use case with the configured
// alert windows.
func (c *Config) NewCarsUseCase(
	p repo.Pool, j *audituc.UseCase,
) (*carsuc.UseCase, error) {
	return carsuc.New(
		p, carsrp.New(), j,
		carsuc.WithAlertWindows(c.Usecases.Alerts.Windows()),
	)
}

// NewClientsUseCase instantiates a clients use case.
func (c *Config) NewClientsUseCase(
	p repo.Pool, j *audituc.UseCase,
) *clientsuc.UseCase {
	return clientsuc.New(p, clientsrp.New(), j)
}

// NewRentalsUseCase instantiates a rentals use case.
func (c *Config) NewRentalsUseCase(
	p repo.Pool, j *audituc.UseCase,
) (*rentaluc.UseCase, error) {
	var opts []rentaluc.Option
	if cp := c.Usecases.Rentals.ContractPrefix; cp != "" {
		opts = append(opts, rentaluc.WithContractPrefix(cp))
	}
	return rentaluc.New(p, rentaluc.Repos{
		Rentals:     rentalsrp.New(),
		Cars:        carsrp.New(),
		Clients:     clientsrp.New(),
		Inspections: inspectionsrp.New(),
	}, j, opts...)
}

// NewPaymentsUseCase instantiates a payments use case.
func (c *Config) NewPaymentsUseCase(
	p repo.Pool, j *audituc.UseCase,
) *paymentuc.UseCase {
	return paymentuc.New(p, paymentsrp.New(), rentalsrp.New(), j)
}

// NewCompanyUseCase instantiates the company settings use case.
func (c *Config) NewCompanyUseCase(
	p repo.Pool, j *audituc.UseCase,
) *companyuc.UseCase {
	return companyuc.New(p, companyrp.New(), j)
}

// NewImportUseCase instantiates the legacy import use case.
func (c *Config) NewImportUseCase(
	p repo.Pool, j *audituc.UseCase,
) *migrationuc.ImportUseCase {
	return migrationuc.NewImport(p, migrationuc.ImportRepos{
		Cars:        carsrp.New(),
		Clients:     clientsrp.New(),
		Rentals:     rentalsrp.New(),
		Inspections: inspectionsrp.New(),
		Payments:    paymentsrp.New(),
		Company:     companyrp.New(),
	}, j)
}
