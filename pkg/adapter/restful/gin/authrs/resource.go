// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package authrs realizes the auth resource (sign-in, profile, and
// password change) and the middleware which authenticates all other
// REST APIs.
package authrs

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/momeni/carrental/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/carrental/pkg/core/usecase/authuc"
)

type resource struct {
	auth *authuc.UseCase
}

// Register instantiates a resource adapting the auth use case instance
// with the relevant REST APIs including:
//  1. POST request to /api/rentweb/v1/auth/sign-in
//     in order to exchange an email and password with a token,
//  2. GET request to /api/rentweb/v1/auth/profile
//     in order to fetch the profile of the signed in user,
//  3. PUT request to /api/rentweb/v1/auth/password
//     in order to change the password of the signed in user.
//
// The sign-in API is public. The r group must be protected by
// Middleware for the other two.
func Register(public, r *gin.RouterGroup, auth *authuc.UseCase) {
	rs := &resource{auth: auth}
	public.POST("auth/sign-in", rs.SignIn)
	r.GET("auth/profile", rs.Profile)
	r.PUT("auth/password", rs.ChangePassword)
}

// Middleware rejects the requests without a valid bearer token.
// The token is taken from the Authorization header, or from the token
// query parameter for the websocket upgrade requests which cannot set
// headers in browsers. The authenticated principal is attached to the
// request context.
func Middleware(auth *authuc.UseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok {
			token = c.Query("token")
		}
		ctx, _, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			serdser.SerErr(c, err)
			c.Abort()
			return
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func (rs *resource) SignIn(c *gin.Context) {
	req := rs.DserSignInReq(c)
	if req == nil {
		return
	}
	token, err := rs.auth.SignIn(c, req.Email, req.Password)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, TokenResp{Token: token})
}

func (rs *resource) Profile(c *gin.Context) {
	prof, err := rs.auth.Profile(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, prof)
}

func (rs *resource) ChangePassword(c *gin.Context) {
	req := rs.DserChangePasswordReq(c)
	if req == nil {
		return
	}
	err := rs.auth.ChangePassword(c, req.OldPassword, req.NewPassword)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
