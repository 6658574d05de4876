// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"fmt"
	"log/slog"
	"time"
)

// PermissionEvent describes a request which was rejected by the
// access-control layer of the database. It keeps the full context of
// the denial, while the requester only sees a generic message.
type PermissionEvent struct {
	At        time.Time `json:"at"`
	Actor     string    `json:"actor"`
	Method    string    `json:"method"`
	Route     string    `json:"route"`
	Operation string    `json:"operation"`
	Path      string    `json:"path"`
	Payload   any       `json:"payload,omitempty"`
	Detail    string    `json:"detail"`
}

func (ev *PermissionEvent) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Time("at", ev.At),
		slog.String("actor", ev.Actor),
		slog.String("method", ev.Method),
		slog.String("route", ev.Route),
		slog.String("operation", ev.Operation),
		slog.String("path", ev.Path),
		slog.String("payload", fmt.Sprintf("%+v", ev.Payload)),
		slog.String("detail", ev.Detail),
	)
}
