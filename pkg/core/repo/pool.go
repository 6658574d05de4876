// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package repo contains the repository interfaces which are used by
// the use cases layer. A use case acquires a Conn from a Pool, starts
// a Tx on it when several statements must apply atomically, and passes
// them to the repositories which unwrap them into their own framework
// dependent types (see pkg/adapter/db/postgres).
package repo

import "context"

// ConnHandler is called with an acquired connection. The connection
// is released when the handler returns.
type ConnHandler func(context.Context, Conn) error

type Pool interface {
	Conn(ctx context.Context, handler ConnHandler) error
}
