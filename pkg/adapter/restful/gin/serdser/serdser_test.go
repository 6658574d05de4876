// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package serdser_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/goccy/go-json"
	"github.com/momeni/carrental/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/carrental/pkg/core/cerr"
	"github.com/momeni/carrental/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate(t *testing.T) {
	var v struct {
		A serdser.Date  `json:"a"`
		B *serdser.Date `json:"b"`
		C *serdser.Date `json:"c"`
	}
	err := json.Unmarshal([]byte(
		`{"a":"2024-03-01","b":"2024-03-02T10:00:00+01:00","c":null}`,
	), &v)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), v.A.Time)
	require.NotNil(t, v.B)
	assert.Equal(t, time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC), v.B.Time)
	assert.Nil(t, v.C.Ptr())

	err = json.Unmarshal([]byte(`{"a":"yesterday"}`), &v)
	assert.Error(t, err)
	err = json.Unmarshal([]byte(`{"a":20240301}`), &v)
	assert.Error(t, err)
}

type fakePublisher struct {
	events []*model.PermissionEvent
}

func (fp *fakePublisher) Publish(_ context.Context, ev *model.PermissionEvent) error {
	fp.events = append(fp.events, ev)
	return nil
}

func serve(t *testing.T, e *gin.Engine, method, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	m := map[string]any{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	}
	return w.Code, m
}

func TestSerErr(t *testing.T) {
	gin.SetMode(gin.TestMode)
	fp := &fakePublisher{}
	e := gin.New()
	e.Use(serdser.Events(fp))
	e.GET("/errors/:kind", func(c *gin.Context) {
		var err error
		switch c.Param("kind") {
		case "fields":
			err = cerr.Invalid("montant", "exceeds remaining amount 750.00")
		case "conflict":
			err = cerr.Conflict(errors.New("duplicate contract number"))
		case "permission":
			err = cerr.Permission(
				"INSERT", "rentals", map[string]string{"id": "r1"},
				errors.New("permission denied for table rentals"),
			)
		default:
			err = errors.New("boom")
		}
		serdser.SerErr(c, err)
	})

	code, body := serve(t, e, http.MethodGet, "/errors/fields", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, []any{"exceeds remaining amount 750.00"}, body["montant"])

	code, body = serve(t, e, http.MethodGet, "/errors/conflict", "")
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "duplicate contract number", body["detail"])

	code, body = serve(t, e, http.MethodGet, "/errors/permission", "")
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, serdser.PermissionDeniedDetail, body["detail"])
	require.Len(t, fp.events, 1)
	ev := fp.events[0]
	assert.Equal(t, "INSERT", ev.Operation)
	assert.Equal(t, "rentals", ev.Path)
	assert.Equal(t, "/errors/:kind", ev.Route)
	assert.Equal(t, "system", ev.Actor)

	code, _ = serve(t, e, http.MethodGet, "/errors/other", "")
	assert.Equal(t, http.StatusInternalServerError, code)
}

func TestBind(t *testing.T) {
	gin.SetMode(gin.TestMode)
	type req struct {
		Amount string       `json:"montant" binding:"required"`
		Date   serdser.Date `json:"date"`
	}
	e := gin.New()
	e.POST("/bind", func(c *gin.Context) {
		r := &req{}
		if serdser.Bind(c, r, binding.JSON) {
			c.JSON(http.StatusOK, gin.H{"date": r.Date.Format(time.DateOnly)})
		}
	})

	code, body := serve(t, e, http.MethodPost, "/bind", `{"date":"2024-03-01"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, body, "montant")

	code, body = serve(t, e, http.MethodPost, "/bind", `{"montant":"10","date":"2024-03-01"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "2024-03-01", body["date"])

	code, body = serve(t, e, http.MethodPost, "/bind", `{"montant":`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, body, "detail")
}
