// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package redisev_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/carrental/pkg/adapter/events/redisev"
	"github.com/momeni/carrental/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func event() *model.PermissionEvent {
	return &model.PermissionEvent{
		At:        time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC),
		Actor:     "agent@example.com",
		Method:    "DELETE",
		Route:     "/api/rentweb/v1/payments/:pid",
		Operation: "delete",
		Path:      "payments/" + uuid.NewString(),
		Detail:    "permission denied for table payments",
	}
}

func TestDisabledBus(t *testing.T) {
	ctx := context.Background()
	b := redisev.New(redisev.Options{})
	assert.False(t, b.Enabled())
	assert.Equal(t, redisev.DefaultChannel, b.Channel())
	assert.NoError(t, b.Ping(ctx))
	assert.NoError(t, b.Publish(ctx, event()))
	err := b.Listen(ctx, func(*model.PermissionEvent) {})
	assert.ErrorIs(t, err, redisev.ErrDisabled)
	assert.NoError(t, b.Close())
}

func TestDecode(t *testing.T) {
	ev, err := redisev.Decode(`{"actor": "a", "operation": "update",
		"path": "rentals/1", "payload": {"montant": "10.00"}}`)
	require.NoError(t, err)
	assert.Equal(t, "a", ev.Actor)
	assert.Equal(t, "rentals/1", ev.Path)
	assert.NotNil(t, ev.Payload)
	_, err = redisev.Decode("{")
	assert.Error(t, err)
}

// TestPublishListen needs a Redis server, as given by REDIS_ADDR.
func TestPublishListen(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR is not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	b := redisev.New(redisev.Options{
		Addr:    addr,
		Channel: "rentweb:test:" + uuid.NewString(),
	})
	defer b.Close()
	require.NoError(t, b.Ping(ctx))

	received := make(chan *model.PermissionEvent, 1)
	go func() {
		_ = b.Listen(ctx, func(ev *model.PermissionEvent) {
			select {
			case received <- ev:
			default:
			}
		})
	}()
	want := event()
	// the subscription may not be active yet, so publish until it is
	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case got := <-received:
			assert.Equal(t, want.Path, got.Path)
			assert.True(t, want.At.Equal(got.At))
			return
		case <-tick.C:
			require.NoError(t, b.Publish(ctx, want))
		case <-ctx.Done():
			t.Fatal("no event was received")
		}
	}
}
