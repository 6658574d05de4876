// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package livers realizes the live resource. It pushes the committed
// changes (and the recomputed maintenance alerts after car changes) to
// the websocket subscribers, so their views can be refreshed without
// polling.
package livers

import (
	"context"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/momeni/carrental/pkg/core/log"
	"github.com/momeni/carrental/pkg/core/model"
)

// Message types which are sent to the subscribers.
const (
	TypeChange = "change"
	TypeAlerts = "alerts"
	// TypeResync asks subscribers to reload their views because some
	// notifications may have been missed.
	TypeResync = "resync"
)

// Message is the JSON document of each websocket text frame.
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	sendBuffer = 16
)

// Hub keeps the subscribers and fans the messages out to them.
// A subscriber whose buffer is full is dropped, so one slow client
// cannot delay the others.
type Hub struct {
	mutex   sync.RWMutex
	clients map[*client]struct{}
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

// Len returns the number of the current subscribers.
func (h *Hub) Len() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// Broadcast sends m to all subscribers.
func (h *Hub) Broadcast(ctx context.Context, m Message) {
	data, err := json.Marshal(m)
	if err != nil {
		log.Error(ctx, "marshalling live message", log.Err("err", err))
		return
	}
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			log.Warn(ctx, "dropping slow live subscriber")
			h.remove(c)
		}
	}
}

// Change broadcasts a committed change. A nil ch means that the
// notifications stream was interrupted.
func (h *Hub) Change(ctx context.Context, ch *model.Change) {
	if ch == nil {
		h.Broadcast(ctx, Message{Type: TypeResync})
		return
	}
	h.Broadcast(ctx, Message{Type: TypeChange, Payload: ch})
}

// Close disconnects all subscribers.
func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for c := range h.clients {
		h.remove(c)
	}
}

func (h *Hub) add(conn *websocket.Conn) *client {
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[c] = struct{}{}
	return c
}

// remove must be called while the mutex is held.
func (h *Hub) remove(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

func (h *Hub) unregister(c *client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.remove(c)
}

// serve runs the write loop of c until its send channel is closed or
// writing fails. The read loop only handles the control frames and
// detects the closed connections.
func (h *Hub) serve(ctx context.Context, c *client) {
	go func() {
		defer h.unregister(c)
		c.conn.SetReadLimit(512)
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		c.conn.SetPongHandler(func(string) error {
			return c.conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := c.conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ping.Stop()
		h.unregister(c)
		_ = c.conn.Close()
	}()
	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			err := c.conn.WriteMessage(websocket.TextMessage, data)
			if err != nil {
				log.Debug(ctx, "writing live message", log.Err("err", err))
				return
			}
		case <-ping.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			err := c.conn.WriteMessage(websocket.PingMessage, nil)
			if err != nil {
				return
			}
		}
	}
}
