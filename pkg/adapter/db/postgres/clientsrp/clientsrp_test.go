// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package clientsrp_test

import (
	"context"
	"testing"
	"time"

	"github.com/momeni/carrental/internal/test/sqlitedb"
	"github.com/momeni/carrental/pkg/adapter/db/postgres"
	"github.com/momeni/carrental/pkg/adapter/db/postgres/clientsrp"
	"github.com/momeni/carrental/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchAndViews(t *testing.T) {
	pool := sqlitedb.New(t)
	rp := clientsrp.New()
	sqlitedb.Tx(t, pool, func(ctx context.Context, tx *postgres.Tx) {
		q := rp.Tx(tx)
		alaoui := &model.Client{LastName: "Alaoui", FirstName: "Yassine", NationalID: "BE123"}
		benali := &model.Client{LastName: "Benali", FirstName: "Salma", NationalID: "AB987"}
		chraibi := &model.Client{LastName: "Chraibi", FirstName: "Omar", NationalID: "CD555"}
		for _, c := range []*model.Client{alaoui, benali, chraibi} {
			require.NoError(t, q.Create(ctx, c))
		}
		now := time.Now().UTC()
		chraibi.ArchivedAt = &now
		require.NoError(t, q.Save(ctx, chraibi))

		names := func(v model.View, search string) []string {
			cs, err := q.List(ctx, v, search)
			require.NoError(t, err)
			var ns []string
			for _, c := range cs {
				ns = append(ns, c.LastName)
			}
			return ns
		}
		assert.Equal(t, []string{"Alaoui", "Benali"}, names(model.ViewActive, ""))
		assert.Equal(t, []string{"Chraibi"}, names(model.ViewArchived, ""))
		assert.Equal(t, []string{"Benali"}, names(model.ViewActive, "salma"))
		assert.Equal(t, []string{"Alaoui"}, names(model.ViewAll, " be12 "))
		assert.Empty(t, names(model.ViewActive, "omar"))

		got, err := q.Get(ctx, benali.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{}, got.Photos)
	})
}

func TestCreateGetAndSavePhotos(t *testing.T) {
	pool := sqlitedb.New(t)
	rp := clientsrp.New()
	sqlitedb.Tx(t, pool, func(ctx context.Context, tx *postgres.Tx) {
		q := rp.Tx(tx)
		c := &model.Client{
			LastName: "Idrissi", FirstName: "Nadia", NationalID: "EE4321",
			Photos: []string{"cin-recto.jpg", "permis.jpg"},
		}
		require.NoError(t, q.Create(ctx, c))

		got, err := q.Get(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"cin-recto.jpg", "permis.jpg"}, got.Photos)

		got.Phone = "0612345678"
		got.Photos = []string{"cin-verso.jpg"}
		require.NoError(t, q.Save(ctx, got))

		got, err = q.Get(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "0612345678", got.Phone)
		assert.Equal(t, []string{"cin-verso.jpg"}, got.Photos)
	})
}
