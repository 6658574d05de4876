// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/momeni/carrental/pkg/adapter/restful/gin/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := metrics.New()
	e := gin.New()
	e.Use(m.Middleware())
	e.GET("/cars/:cid", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	e.GET("/metrics", m.Handler())

	for _, path := range []string{"/cars/1", "/cars/2", "/nowhere"} {
		w := httptest.NewRecorder()
		e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}
	m.ContractCreated()
	m.CheckedIn()
	m.PaymentRecorded()
	m.PaymentRecorded()
	m.PaymentDeleted()

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	text := string(body)
	assert.Contains(t, text, `rentweb_http_requests_total{endpoint="/cars/:cid",method="GET",status="204"} 2`)
	assert.Contains(t, text, `rentweb_http_requests_total{endpoint="unknown",method="GET",status="404"} 1`)
	assert.Contains(t, text, "rentweb_contracts_created_total 1")
	assert.Contains(t, text, "rentweb_check_ins_total 1")
	assert.Contains(t, text, `rentweb_payments_total{action="recorded"} 2`)
	assert.Contains(t, text, `rentweb_payments_total{action="deleted"} 1`)
	assert.Contains(t, text, "go_goroutines")
}

func TestNilMetrics(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.ContractCreated()
		m.CheckedIn()
		m.PaymentRecorded()
		m.PaymentDeleted()
	})
	e := gin.New()
	e.Use(m.Middleware())
	e.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
