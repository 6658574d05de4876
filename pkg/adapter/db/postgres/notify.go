// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/lib/pq"
	"github.com/momeni/carrental/pkg/core/log"
	"github.com/momeni/carrental/pkg/core/model"
	"github.com/momeni/carrental/pkg/core/repo"
)

// Notifier implements the repo.Notifier interface by sending the
// changes with pg_notify. PostgreSQL delivers a notification only
// when its transaction commits.
type Notifier struct {
	channel string
}

// NewNotifier creates a Notifier for the given channel name.
func NewNotifier(channel string) *Notifier {
	return &Notifier{channel: channel}
}

func (n *Notifier) Notify(
	ctx context.Context, tx repo.Tx, ch model.Change,
) error {
	payload, err := json.Marshal(ch)
	if err != nil {
		return fmt.Errorf("marshalling change: %w", err)
	}
	_, err = tx.Exec(
		ctx, "SELECT pg_notify(?, ?)", n.channel, string(payload),
	)
	if err != nil {
		return fmt.Errorf("pg_notify(%q): %w", n.channel, err)
	}
	return nil
}

// Listen subscribes to the channel notifications of the url database
// and calls handle for each received change until ctx is canceled.
// The lib/pq listener reconnects automatically, so connection losses
// are only logged. Notifications which are missed during a connection
// loss are not replayed, subscribers should reload their views upon
// receiving a nil change (which is passed after each reconnection).
func Listen(
	ctx context.Context, url, channel string,
	handle func(ctx context.Context, ch *model.Change),
) error {
	l := pq.NewListener(
		url, 10*time.Second, time.Minute,
		func(_ pq.ListenerEventType, err error) {
			if err != nil {
				log.Warn(
					ctx, "listener connection event",
					log.Err("err", err),
				)
			}
		},
	)
	defer l.Close()
	if err := l.Listen(channel); err != nil {
		return fmt.Errorf("LISTEN %q: %w", channel, err)
	}
	ping := time.NewTicker(90 * time.Second)
	defer ping.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case n := <-l.Notify:
			if n == nil {
				handle(ctx, nil)
				continue
			}
			ch := &model.Change{}
			if err := json.Unmarshal([]byte(n.Extra), ch); err != nil {
				log.Warn(
					ctx, "ignoring malformed notification",
					log.Err("err", err),
				)
				continue
			}
			handle(ctx, ch)
		case <-ping.C:
			go func() {
				if err := l.Ping(); err != nil {
					log.Warn(ctx, "listener ping", log.Err("err", err))
				}
			}()
		}
	}
}
