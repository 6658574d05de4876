// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package serdser contains the serialization and deserialization
// helpers which are shared by the resource packages.
package serdser

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/momeni/carrental/pkg/core/cerr"
	"github.com/momeni/carrental/pkg/core/log"
	"github.com/momeni/carrental/pkg/core/model"
)

// PermissionDeniedDetail is the only detail which is shown to users
// whose request was rejected by the database access-control layer.
const PermissionDeniedDetail = "insufficient permissions"

// Publisher receives the permission events of the failed requests.
type Publisher interface {
	Publish(ctx context.Context, ev *model.PermissionEvent) error
}

const publisherKey = "rentweb/serdser/publisher"

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonName)
	}
}

func jsonName(f reflect.StructField) string {
	for _, tag := range []string{"json", "uri", "form"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		switch name {
		case "-":
			return ""
		case "":
			continue
		}
		return name
	}
	return f.Name
}

// Events returns a middleware which makes p available to SerErr.
func Events(p Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(publisherKey, p)
		c.Next()
	}
}

// Bind deserializes the request into req using b and renders a bad
// request response if it fails. Validator errors are rendered as
// a map from field names to their messages.
func Bind(c *gin.Context, req any, b binding.Binding) bool {
	switch err := c.ShouldBindWith(req, b).(type) {
	case *validator.InvalidValidationError:
		c.JSON(http.StatusInternalServerError, gin.H{
			"detail": err.Error(),
		})
	case validator.ValidationErrors:
		var nameToErrs map[string][]string
		for _, ferr := range err {
			AddErr(&nameToErrs, ferr.Field(), ferr.Error())
		}
		c.JSON(http.StatusBadRequest, nameToErrs)
	default:
		if err == nil {
			return true
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": err.Error(),
		})
	}
	return false
}

// BindURI is Bind for the path parameters.
func BindURI(c *gin.Context, req any) bool {
	switch err := c.ShouldBindUri(req).(type) {
	case validator.ValidationErrors:
		var nameToErrs map[string][]string
		for _, ferr := range err {
			AddErr(&nameToErrs, ferr.Field(), ferr.Error())
		}
		c.JSON(http.StatusBadRequest, nameToErrs)
	default:
		if err == nil {
			return true
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": err.Error(),
		})
	}
	return false
}

func AddErr(errs *map[string][]string, name string, msgs ...string) {
	if (*errs) == nil {
		*errs = make(map[string][]string)
	}
	if elist, ok := (*errs)[name]; !ok {
		(*errs)[name] = msgs
	} else {
		(*errs)[name] = append(elist, msgs...)
	}
}

func Assert(errs *map[string][]string, ok bool, name string, msgs ...string) bool {
	if ok {
		return true
	}
	AddErr(errs, name, msgs...)
	return false
}

// ParseID parses the name path parameter as a UUID. It renders
// a bad request response and returns false if it is malformed.
func ParseID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			name: []string{"Path param " + name + " is not UUID."},
		})
		return uuid.Nil, false
	}
	return id, true
}

// SerErr renders err. Field errors are rendered as a map from field
// names to their messages, other *cerr.Error instances as a detail
// with their status code, and unknown errors as internal errors.
// Permission errors are published (when a Publisher is registered)
// and users only see PermissionDeniedDetail.
func SerErr(c *gin.Context, err error) {
	var pe *cerr.PermissionError
	if errors.As(err, &pe) {
		publish(c, pe)
		c.JSON(http.StatusForbidden, gin.H{
			"detail": PermissionDeniedDetail,
		})
		return
	}
	var ce *cerr.Error
	if errors.As(err, &ce) {
		var fe cerr.FieldErrors
		if errors.As(ce.Err, &fe) {
			c.JSON(ce.HTTPStatusCode, fe)
			return
		}
		c.JSON(ce.HTTPStatusCode, gin.H{
			"detail": ce.Err.Error(),
		})
		return
	}
	log.Error(c, "unexpected error", log.Err("err", err))
	c.JSON(http.StatusInternalServerError, gin.H{
		"detail": err.Error(),
	})
}

func publish(c *gin.Context, pe *cerr.PermissionError) {
	ev := &model.PermissionEvent{
		At:        time.Now().UTC(),
		Actor:     model.Actor(c),
		Method:    c.Request.Method,
		Route:     c.FullPath(),
		Operation: pe.Operation,
		Path:      pe.Path,
		Payload:   pe.Payload,
		Detail:    pe.Err.Error(),
	}
	p, ok := c.Get(publisherKey)
	if !ok {
		log.Warn(c, "permission denied", log.Valuer("event", ev))
		return
	}
	if err := p.(Publisher).Publish(c, ev); err != nil {
		log.Error(c, "publishing permission event", log.Err("err", err))
	}
}

// ParseView parses the view query parameter, defaulting to the active
// records. It renders a bad request response and returns false if the
// view is unknown.
func ParseView(c *gin.Context) (model.View, bool) {
	v, err := model.ParseView(c.Query("view"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"view": []string{"View must be active, archived, or all."},
		})
		return "", false
	}
	return v, true
}
