// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package localauth implements an identity provider on top of the
// users table. Passwords are stored as bcrypt hashes and the issued
// tokens are HS256 signed JWTs.
package localauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/momeni/carrental/pkg/core/cerr"
	"github.com/momeni/carrental/pkg/core/model"
	"github.com/momeni/carrental/pkg/core/repo"
	"github.com/momeni/carrental/pkg/core/usecase/authuc"
	"golang.org/x/crypto/bcrypt"
)

const issuer = "rentweb"

// ErrInvalidToken is returned for tokens which are malformed, expired,
// or signed with another key.
var ErrInvalidToken = errors.New("invalid token")

type claims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Provider is the local identity provider.
type Provider struct {
	pool   repo.Pool
	users  repo.Users
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// New instantiates a local identity provider which signs its tokens
// with secret and makes them valid for ttl.
func New(p repo.Pool, users repo.Users, secret string, ttl time.Duration) (*Provider, error) {
	if len(secret) < 16 {
		return nil, errors.New("jwt secret must have at least 16 bytes")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl (%v) is not positive", ttl)
	}
	return &Provider{
		pool:   p,
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(h), nil
}

// SignIn checks the email and password of a user and issues a token.
func (lp *Provider) SignIn(ctx context.Context, email, password string) (string, error) {
	var u *model.User
	err := lp.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) (err error) {
		u, err = lp.users.Conn(c).GetByEmail(ctx, email)
		return err
	})
	if err != nil {
		if isNotFound(err) {
			return "", authuc.ErrBadCredentials
		}
		return "", err
	}
	err = bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	if err != nil {
		return "", authuc.ErrBadCredentials
	}
	now := lp.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: u.Email,
		Name:  u.DisplayName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lp.ttl)),
			ID:        uuid.NewString(),
		},
	})
	return token.SignedString(lp.secret)
}

// Verify checks the signature and expiry of a token.
func (lp *Provider) Verify(_ context.Context, token string) (*model.Principal, error) {
	c := &claims{}
	_, err := jwt.ParseWithClaims(
		token, c,
		func(*jwt.Token) (any, error) { return lp.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(lp.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return &model.Principal{
		UID:         c.Subject,
		Email:       c.Email,
		DisplayName: c.Name,
		Providers:   []string{model.PasswordProvider},
	}, nil
}

// Profile returns the profile of the uid user.
func (lp *Provider) Profile(ctx context.Context, uid string) (*model.Profile, error) {
	id, err := uuid.Parse(uid)
	if err != nil {
		return nil, cerr.NotFound(fmt.Errorf("user %q: %w", uid, err))
	}
	var u *model.User
	err = lp.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) (err error) {
		u, err = lp.users.Conn(c).Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return model.NewProfile(
		uid, u.DisplayName, u.Email, []string{model.PasswordProvider},
	), nil
}

// ChangePassword replaces the password hash of the uid user.
func (lp *Provider) ChangePassword(ctx context.Context, uid, oldPassword, newPassword string) error {
	id, err := uuid.Parse(uid)
	if err != nil {
		return cerr.NotFound(fmt.Errorf("user %q: %w", uid, err))
	}
	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	return lp.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := lp.users.Tx(tx)
			u, err := q.Get(ctx, id)
			if err != nil {
				return err
			}
			err = bcrypt.CompareHashAndPassword(
				[]byte(u.PasswordHash), []byte(oldPassword),
			)
			if err != nil {
				return authuc.ErrBadCredentials
			}
			return q.SetPasswordHash(ctx, id, hash)
		})
	})
}

func isNotFound(err error) bool {
	var ce *cerr.Error
	return errors.As(err, &ce) && ce.HTTPStatusCode == http.StatusNotFound
}
