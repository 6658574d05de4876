// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"github.com/momeni/carrental/pkg/adapter/db/postgres"
	"github.com/momeni/carrental/pkg/adapter/events/redisev"
	"github.com/momeni/carrental/pkg/core/repo"
)

// Redis contains the permission events bus settings. An empty Addr
// disables the bus and the events are only logged.
type Redis struct {
	Addr     string
	Password string
	DB       int
	Channel  string
}

func (r *Redis) normalize() {
	if r.Channel == "" {
		r.Channel = redisev.DefaultChannel
	}
}

// NewBus instantiates the permission events bus.
func (r *Redis) NewBus() *redisev.Bus {
	return redisev.New(redisev.Options{
		Addr:     r.Addr,
		Password: r.Password,
		DB:       r.DB,
		Channel:  r.Channel,
	})
}

// DefaultLiveChannel is the PostgreSQL notification channel of the
// committed changes.
const DefaultLiveChannel = "rentweb_changes"

// Live contains the live feed settings.
type Live struct {
	Enabled *bool
	Channel string
}

func (l *Live) normalize() {
	if l.Enabled == nil {
		t := true
		l.Enabled = &t
	}
	if l.Channel == "" {
		l.Channel = DefaultLiveChannel
	}
}

// NewNotifier returns the repo.Notifier which sends the changes to
// the live channel, or drops them if the live feed is disabled.
func (l *Live) NewNotifier() repo.Notifier {
	if !*l.Enabled {
		return repo.NopNotifier{}
	}
	return postgres.NewNotifier(l.Channel)
}
