// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package livers

import (
	"context"
	"log/slog"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/momeni/carrental/pkg/core/log"
	"github.com/momeni/carrental/pkg/core/model"
)

// AlertsSource computes the current maintenance and documents alerts.
type AlertsSource interface {
	Alerts(ctx context.Context) ([]model.Alert, error)
}

type resource struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

// Register adds the GET /api/rentweb/v1/live websocket endpoint.
// An empty origins list accepts all origins.
func Register(r *gin.RouterGroup, hub *Hub, origins []string) {
	rs := &resource{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(req *http.Request) bool {
				if len(origins) == 0 {
					return true
				}
				return slices.Contains(origins, req.Header.Get("Origin"))
			},
		},
	}
	r.GET("live", rs.Subscribe)
}

func (rs *resource) Subscribe(c *gin.Context) {
	conn, err := rs.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// the upgrader has already written an error response
		log.Debug(c, "websocket upgrade", log.Err("err", err))
		return
	}
	log.Info(c, "live subscriber connected", slog.String("actor", model.Actor(c)))
	rs.hub.serve(c, rs.hub.add(conn))
}

// Feed returns a change handler which broadcasts the changes and,
// after the car and rental changes (which may move the odometers or
// replace the maintenance thresholds) and resyncs, the recomputed
// alerts list. It may be passed to postgres.Listen.
func (h *Hub) Feed(alerts AlertsSource) func(context.Context, *model.Change) {
	return func(ctx context.Context, ch *model.Change) {
		h.Change(ctx, ch)
		if ch != nil && ch.Entity != model.EntityCar && ch.Entity != model.EntityRental {
			return
		}
		if h.Len() == 0 {
			return
		}
		list, err := alerts.Alerts(ctx)
		if err != nil {
			log.Error(ctx, "computing alerts", log.Err("err", err))
			return
		}
		h.Broadcast(ctx, Message{Type: TypeAlerts, Payload: list})
	}
}
