// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package livers_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/momeni/carrental/pkg/adapter/restful/gin/livers"
	"github.com/momeni/carrental/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAlerts struct {
	calls int
}

func (fa *fakeAlerts) Alerts(context.Context) ([]model.Alert, error) {
	fa.calls++
	return []model.Alert{{
		Car:    "Dacia Logan (123-A-45)",
		Kind:   model.AlertOilChange,
		Status: model.AlertDue,
	}}, nil
}

type rawMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func dial(t *testing.T, hub *livers.Hub) *websocket.Conn {
	t.Helper()
	gin.SetMode(gin.TestMode)
	e := gin.New()
	livers.Register(e.Group("/api/rentweb/v1"), hub, nil)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/rentweb/v1/live"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.Eventually(t, func() bool {
		return hub.Len() == 1
	}, 5*time.Second, 10*time.Millisecond)
	return conn
}

func read(t *testing.T, conn *websocket.Conn) rawMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var m rawMessage
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

func TestFeed(t *testing.T) {
	hub := livers.NewHub()
	defer hub.Close()
	conn := dial(t, hub)
	fa := &fakeAlerts{}
	feed := hub.Feed(fa)
	ctx := context.Background()

	id := uuid.New()
	feed(ctx, &model.Change{
		Entity: model.EntityCar, ID: id, Action: model.ActionUpdate,
	})
	m := read(t, conn)
	assert.Equal(t, livers.TypeChange, m.Type)
	var ch model.Change
	require.NoError(t, json.Unmarshal(m.Payload, &ch))
	assert.Equal(t, id, ch.ID)
	m = read(t, conn)
	assert.Equal(t, livers.TypeAlerts, m.Type)
	assert.Contains(t, string(m.Payload), `"vidange"`)
	assert.Equal(t, 1, fa.calls)

	feed(ctx, &model.Change{
		Entity: model.EntityPayment, ID: uuid.New(), Action: model.ActionCreate,
	})
	m = read(t, conn)
	assert.Equal(t, livers.TypeChange, m.Type)
	assert.Equal(t, 1, fa.calls, "payments do not change the alerts")

	feed(ctx, nil)
	m = read(t, conn)
	assert.Equal(t, livers.TypeResync, m.Type)
	m = read(t, conn)
	assert.Equal(t, livers.TypeAlerts, m.Type)
	assert.Equal(t, 2, fa.calls)
}

func TestFeedWithoutSubscribers(t *testing.T) {
	hub := livers.NewHub()
	fa := &fakeAlerts{}
	hub.Feed(fa)(context.Background(), &model.Change{Entity: model.EntityCar})
	assert.Zero(t, fa.calls)
}

func TestCloseDisconnects(t *testing.T) {
	hub := livers.NewHub()
	conn := dial(t, hub)
	hub.Close()
	assert.Zero(t, hub.Len())
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}
