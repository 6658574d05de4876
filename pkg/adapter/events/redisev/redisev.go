// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package redisev is an adapter which publishes the structured
// permission events on a Redis pub/sub channel and allows development
// tools to subscribe to them.
package redisev

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/goccy/go-json"
	"github.com/momeni/carrental/pkg/core/log"
	"github.com/momeni/carrental/pkg/core/model"
)

// DefaultChannel is the pub/sub channel of the permission events.
const DefaultChannel = "rentweb:permission-denied"

// ErrDisabled is returned by Listen when no Redis server is configured.
var ErrDisabled = errors.New("event bus is disabled")

// Options contains the Redis connection settings. An empty Addr
// disables the bus, so published events are only logged.
type Options struct {
	Addr     string
	Password string
	DB       int
	Channel  string
}

// Bus publishes and receives permission events.
type Bus struct {
	rdb     *redis.Client
	channel string
}

// New creates a Bus. It does not connect to Redis before the first
// Publish or Listen call, so a missing Redis server does not prevent
// the service from starting.
func New(opts Options) *Bus {
	b := &Bus{channel: opts.Channel}
	if b.channel == "" {
		b.channel = DefaultChannel
	}
	if opts.Addr != "" {
		b.rdb = redis.NewClient(&redis.Options{
			Addr:     opts.Addr,
			Password: opts.Password,
			DB:       opts.DB,
		})
	}
	return b
}

// Enabled reports whether events are sent to Redis.
func (b *Bus) Enabled() bool {
	return b.rdb != nil
}

// Channel returns the pub/sub channel name.
func (b *Bus) Channel() string {
	return b.channel
}

// Ping checks the Redis connection. It is a no-op for a disabled bus.
func (b *Bus) Ping(ctx context.Context) error {
	if b.rdb == nil {
		return nil
	}
	if err := b.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("pinging redis: %w", err)
	}
	return nil
}

// Publish logs ev and sends it to the channel subscribers.
func (b *Bus) Publish(ctx context.Context, ev *model.PermissionEvent) error {
	log.Warn(ctx, "permission denied", log.Valuer("event", ev))
	if b.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshalling permission event: %w", err)
	}
	if err := b.rdb.Publish(ctx, b.channel, payload).Err(); err != nil {
		return fmt.Errorf("publishing on %q: %w", b.channel, err)
	}
	return nil
}

// Listen subscribes to the channel and calls handle for each received
// event until ctx is canceled.
func (b *Bus) Listen(
	ctx context.Context, handle func(*model.PermissionEvent),
) error {
	if b.rdb == nil {
		return ErrDisabled
	}
	sub := b.rdb.Subscribe(ctx, b.channel)
	defer sub.Close()
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribing to %q: %w", b.channel, err)
	}
	msgs := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-msgs:
			if !ok {
				return errors.New("subscription is closed")
			}
			ev, err := Decode(m.Payload)
			if err != nil {
				log.Warn(ctx, "ignoring malformed event", log.Err("err", err))
				continue
			}
			handle(ev)
		}
	}
}

// Close releases the Redis connections.
func (b *Bus) Close() error {
	if b.rdb == nil {
		return nil
	}
	return b.rdb.Close()
}

// Decode parses a published event payload.
func Decode(payload string) (*model.PermissionEvent, error) {
	ev := &model.PermissionEvent{}
	if err := json.Unmarshal([]byte(payload), ev); err != nil {
		return nil, fmt.Errorf("decoding permission event: %w", err)
	}
	return ev, nil
}
