// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/momeni/carrental/pkg/core/model"
)

// Notifier publishes change notifications. Notify is called inside
// the transaction of the mutation, so subscribers are informed only
// if that transaction commits.
type Notifier interface {
	Notify(ctx context.Context, tx Tx, ch model.Change) error
}

// NopNotifier drops all notifications. It is used when the live feed
// is disabled.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, Tx, model.Change) error {
	return nil
}
