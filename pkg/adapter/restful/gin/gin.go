// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package gin wraps the gin-gonic engine construction, so the rest of
// the adapters do not need to know which logging, recovery, and CORS
// middlewares are installed.
package gin

import (
	"log/slog"
	"time"

	ginslog "github.com/FabienMht/ginslog/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type HandlerFunc = gin.HandlerFunc
type Engine = gin.Engine

// New creates an engine with the given middlewares. The request
// context is consulted by gin.Context for the missing values, so the
// principal which is attached by the authentication middleware is
// visible to the use cases.
func New(middlewares ...HandlerFunc) *Engine {
	e := gin.New()
	e.ContextWithFallback = true
	e.Use(middlewares...)
	return e
}

// Logger logs each request using the default slog logger.
func Logger() HandlerFunc {
	return ginslog.New(slog.Default())
}

func Recovery() HandlerFunc {
	return gin.Recovery()
}

// Cors allows the origins of the back-office dashboard to call the
// APIs. An empty origins list allows all origins without credentials.
func Cors(origins []string) HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{
			"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS",
		},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept", "Authorization",
		},
		MaxAge: 12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}

// SetMode switches gin between its debug and release modes.
func SetMode(debug bool) {
	if debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
}
