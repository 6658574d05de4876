// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"fmt"
	"io"

	"github.com/momeni/carrental/pkg/adapter/config/settings"
	"github.com/momeni/carrental/pkg/adapter/restful/gin"
	"github.com/momeni/carrental/pkg/adapter/restful/gin/metrics"
	"github.com/momeni/carrental/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/carrental/pkg/core/log"
)

// Gin contains the gin-gonic related configuration settings.
// The boolean fields are defined as pointers, so a missing item can
// be told apart from a false value and take its default.
type Gin struct {
	Logger   *bool  // whether to log requests using the slog logger
	Recovery *bool  // whether to register the gin.Recovery() middleware
	Metrics  *bool  // whether to collect and serve the metrics
	Debug    bool   // whether to run gin in its debug mode
	Address  string // listening address, like :8080

	// CorsOrigins lists the origins of the back-office dashboard.
	// An empty list allows all origins.
	CorsOrigins []string `yaml:"cors-origins"`
}

// ValidateAndNormalize fills the defaults of the gin settings.
func (g *Gin) ValidateAndNormalize() error {
	t := true
	settings.OverwriteNil(&g.Logger, &t)
	settings.OverwriteNil(&g.Recovery, &t)
	settings.OverwriteNil(&g.Metrics, &t)
	if g.Address == "" {
		g.Address = ":8080"
	}
	for _, o := range g.CorsOrigins {
		if o == "" || o == "*" {
			return fmt.Errorf("invalid cors origin %q", o)
		}
	}
	return nil
}

// NewMetrics returns a new metrics registry, or nil if the metrics
// are disabled.
func (g *Gin) NewMetrics() *metrics.Metrics {
	if !*g.Metrics {
		return nil
	}
	return metrics.New()
}

// NewEngine instantiates a new gin-gonic engine instance based on
// the g settings. The m metrics may be nil and the p publisher
// receives the permission events which are reported by SerErr.
func (g *Gin) NewEngine(m *metrics.Metrics, p serdser.Publisher) *gin.Engine {
	gin.SetMode(g.Debug)
	middlewares := make([]gin.HandlerFunc, 0, 5)
	if *g.Recovery {
		middlewares = append(middlewares, gin.Recovery())
	}
	if *g.Logger {
		middlewares = append(middlewares, gin.Logger())
	}
	middlewares = append(middlewares, gin.Cors(g.CorsOrigins))
	if m != nil {
		middlewares = append(middlewares, m.Middleware())
	}
	middlewares = append(middlewares, serdser.Events(p))
	e := gin.New(middlewares...)
	if m != nil {
		e.GET("/metrics", m.Handler())
	}
	return e
}

// Log contains the default slog logger settings.
type Log struct {
	Level  string // debug, info, warn, or error
	Format string // text or json
}

// ValidateAndNormalize fills the defaults of the log settings.
func (l *Log) ValidateAndNormalize() error {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
	switch l.Format {
	case "text", "json":
		return nil
	}
	return fmt.Errorf("unknown log format: %q", l.Format)
}

// Setup installs the default slog logger which writes into w.
func (l *Log) Setup(w io.Writer) error {
	_, err := log.Setup(w, l.Level, l.Format)
	return err
}
