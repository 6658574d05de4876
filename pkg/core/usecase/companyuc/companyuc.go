// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package companyuc contains the company settings UseCase. It keeps
// the last fetched (or updated) settings in memory, so they may be
// read without a database round trip, and replaces them atomically
// whenever they are updated.
package companyuc

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/momeni/carrental/pkg/core/cerr"
	"github.com/momeni/carrental/pkg/core/model"
	"github.com/momeni/carrental/pkg/core/repo"
	"github.com/momeni/carrental/pkg/core/usecase/audituc"
)

// the settings model carries gin binding tags, so they are reused
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName("binding")
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// UseCase represents the company settings use case.
type UseCase struct {
	pool      repo.Pool
	companyrp repo.Company
	journal   *audituc.UseCase

	// mutex serializes Reload and Update, so an older fetch may not
	// overwrite the cache after a newer update.
	mutex sync.Mutex

	// rwlock protects the cached settings.
	rwlock   sync.RWMutex
	settings *model.CompanySettings
}

// New instantiates a company settings use case. The Reload method
// should be called once before Settings may return the stored values.
func New(p repo.Pool, c repo.Company, j *audituc.UseCase) *UseCase {
	return &UseCase{pool: p, companyrp: c, journal: j}
}

// Reload fetches the company settings from the database and caches
// them.
func (company *UseCase) Reload(ctx context.Context) error {
	company.mutex.Lock()
	defer company.mutex.Unlock()
	var s *model.CompanySettings
	err := company.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) (err error) {
		s, err = company.companyrp.Conn(c).Get(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("fetching company settings: %w", err)
	}
	company.set(s)
	return nil
}

// Settings returns a copy of the cached company settings. Zero
// settings are returned if they were never fetched.
func (company *UseCase) Settings() model.CompanySettings {
	company.rwlock.RLock()
	defer company.rwlock.RUnlock()
	if company.settings == nil {
		return model.CompanySettings{}
	}
	return *company.settings
}

// Get use case returns the stored company settings, refreshing the
// cache on the way.
func (company *UseCase) Get(ctx context.Context) (*model.CompanySettings, error) {
	if err := company.Reload(ctx); err != nil {
		return nil, err
	}
	s := company.Settings()
	return &s, nil
}

// Update use case validates and replaces the company settings.
func (company *UseCase) Update(
	ctx context.Context, s *model.CompanySettings,
) (*model.CompanySettings, error) {
	normalize(s)
	if err := check(s); err != nil {
		return nil, err
	}
	company.mutex.Lock()
	defer company.mutex.Unlock()
	s.UpdatedAt = time.Now().UTC()
	err := company.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			if err := company.companyrp.Tx(tx).Save(ctx, s); err != nil {
				return fmt.Errorf("saving company settings: %w", err)
			}
			return company.journal.Record(
				ctx, tx, model.EntityCompany, model.CompanySettingsID,
				model.ActionUpdate, s,
			)
		})
	})
	if err != nil {
		return nil, err
	}
	company.set(s)
	cp := *s
	return &cp, nil
}

func (company *UseCase) set(s *model.CompanySettings) {
	cp := *s
	company.rwlock.Lock()
	defer company.rwlock.Unlock()
	company.settings = &cp
}

func normalize(s *model.CompanySettings) {
	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.TrimSpace(s.Email)
	s.Currency = strings.ToUpper(strings.TrimSpace(s.Currency))
	if s.Currency == "" {
		s.Currency = "MAD"
	}
}

func check(s *model.CompanySettings) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return cerr.BadRequest(err)
	}
	fe := cerr.FieldErrors{}
	for _, ve := range verrs {
		fe.Add(ve.Field(), fmt.Sprintf("failed on the %q rule", ve.Tag()))
	}
	return fe.Err()
}
