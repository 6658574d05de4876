// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package paymentsrp_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/carrental/internal/test/sqlitedb"
	"github.com/momeni/carrental/pkg/adapter/db/postgres"
	"github.com/momeni/carrental/pkg/adapter/db/postgres/paymentsrp"
	"github.com/momeni/carrental/pkg/core/cerr"
	"github.com/momeni/carrental/pkg/core/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListAndDelete(t *testing.T) {
	pool := sqlitedb.New(t)
	rp := paymentsrp.New()
	rental1, rental2 := uuid.New(), uuid.New()
	day := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	sqlitedb.Tx(t, pool, func(ctx context.Context, tx *postgres.Tx) {
		q := rp.Tx(tx)
		var ids []uuid.UUID
		for i, rid := range []uuid.UUID{rental1, rental2, rental1} {
			p := &model.Payment{
				RentalID:       rid,
				ContractNumber: "C-2024-05-001",
				ClientName:     "Yassine Alaoui",
				Amount:         decimal.NewFromInt(int64(100 * (i + 1))),
				Date:           day.AddDate(0, 0, i),
				Method:         model.Cash,
				Status:         model.PaymentValid,
			}
			require.NoError(t, q.Create(ctx, p))
			ids = append(ids, p.ID)
		}

		all, err := q.List(ctx, uuid.Nil)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, ids[2], all[0].ID, "newest first")

		mine, err := q.List(ctx, rental1)
		require.NoError(t, err)
		require.Len(t, mine, 2)
		assert.True(t, mine[0].Amount.Equal(decimal.NewFromInt(300)))

		require.NoError(t, q.Delete(ctx, ids[0]))
		_, err = q.Get(ctx, ids[0])
		var ce *cerr.Error
		require.True(t, errors.As(err, &ce), err)
		assert.Equal(t, http.StatusNotFound, ce.HTTPStatusCode)

		err = q.Delete(ctx, ids[0])
		require.True(t, errors.As(err, &ce), err)
		assert.Equal(t, http.StatusNotFound, ce.HTTPStatusCode)
	})
}
