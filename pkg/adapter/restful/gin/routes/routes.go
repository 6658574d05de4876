// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// instantiation and registration of all repo, use case, and resource
// packages based on the user provided configuration settings.
package routes

import (
	"context"
	"errors"
	"fmt"

	"github.com/momeni/carrental/pkg/adapter/config"
	"github.com/momeni/carrental/pkg/adapter/db/postgres"
	"github.com/momeni/carrental/pkg/adapter/restful/gin"
	"github.com/momeni/carrental/pkg/adapter/restful/gin/authrs"
	"github.com/momeni/carrental/pkg/adapter/restful/gin/carsrs"
	"github.com/momeni/carrental/pkg/adapter/restful/gin/clientsrs"
	"github.com/momeni/carrental/pkg/adapter/restful/gin/companyrs"
	"github.com/momeni/carrental/pkg/adapter/restful/gin/livers"
	"github.com/momeni/carrental/pkg/adapter/restful/gin/metrics"
	"github.com/momeni/carrental/pkg/adapter/restful/gin/paymentsrs"
	"github.com/momeni/carrental/pkg/adapter/restful/gin/rentalsrs"
	"github.com/momeni/carrental/pkg/core/log"
	"github.com/momeni/carrental/pkg/core/repo"
)

// BasePath is the common prefix of all REST API routes.
const BasePath = "/api/rentweb/v1"

// Register instantiates relevant repositories and use cases based on
// the c configuration settings. The p connections pool is passed to
// the use case instances, so they may acquire/release connections
// and transactions on demand. These connections/transactions will be
// passed to the repositories later in order to run relevant queries on
// them and accomplish those use cases. Each use case package is named
// like carsuc and each repository package is named like carsrp.
// Register instantiates a series of "resource" structs, from packages
// which are named like carsrs, in order to adapt the use cases
// interfaces with the REST APIs. These resources are registered as
// request handlers using the e gin-gonic engine instance.
//
// All routes except the sign-in one require an authenticated
// principal. The m metrics may be nil. If the live feed is enabled,
// the changes are listened for until ctx is canceled.
func Register(
	ctx context.Context, e *gin.Engine, p repo.Pool,
	c *config.Config, m *metrics.Metrics,
) error {
	auth, err := c.NewAuthUseCase(ctx, p)
	if err != nil {
		return fmt.Errorf("creating auth use case: %w", err)
	}
	audit := c.NewAuditUseCase(p)
	cars, err := c.NewCarsUseCase(p, audit)
	if err != nil {
		return fmt.Errorf("creating cars use case: %w", err)
	}
	rentals, err := c.NewRentalsUseCase(p, audit)
	if err != nil {
		return fmt.Errorf("creating rentals use case: %w", err)
	}
	company := c.NewCompanyUseCase(p, audit)
	if err = company.Reload(ctx); err != nil {
		return fmt.Errorf("reloading company settings: %w", err)
	}

	public := e.Group(BasePath)
	r := e.Group(BasePath, authrs.Middleware(auth))
	authrs.Register(public, r, auth)
	carsrs.Register(r, cars, audit)
	clientsrs.Register(r, c.NewClientsUseCase(p, audit), audit)
	rentalsrs.Register(r, rentals, audit, m)
	paymentsrs.Register(r, c.NewPaymentsUseCase(p, audit), m)
	companyrs.Register(r, company)

	if !*c.Live.Enabled {
		return nil
	}
	url, err := c.Database.ListenURL()
	if err != nil {
		return fmt.Errorf("finding live listener URL: %w", err)
	}
	hub := livers.NewHub()
	livers.Register(r, hub, c.Gin.CorsOrigins)
	go func() {
		defer hub.Close()
		err := postgres.Listen(ctx, url, c.Live.Channel, hub.Feed(cars))
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Error(ctx, "live listener stopped", log.Err("err", err))
		}
	}()
	return nil
}
