// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package migrationuc

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegacyTime(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{`"2024-03-01"`, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{`"2024-03-01T10:20:30+01:00"`, time.Date(2024, 3, 1, 9, 20, 30, 0, time.UTC)},
		{`"2024-03-01T10:20"`, time.Date(2024, 3, 1, 10, 20, 0, 0, time.UTC)},
		{`{"seconds": 1700000000, "nanoseconds": 500}`, time.Unix(1700000000, 500).UTC()},
		{`""`, time.Time{}},
		{`null`, time.Time{}},
	}
	for _, c := range cases {
		var lt LegacyTime
		require.NoError(t, json.Unmarshal([]byte(c.in), &lt), c.in)
		assert.True(t, c.want.Equal(lt.Time), "%s: got %v", c.in, lt.Time)
		assert.Equal(t, c.want.IsZero(), lt.ptr() == nil, c.in)
	}
	var lt LegacyTime
	assert.Error(t, json.Unmarshal([]byte(`"01/03/2024"`), &lt))
}

func TestLegacyNumbers(t *testing.T) {
	var v struct {
		A LegacyInt    `json:"a"`
		B LegacyInt    `json:"b"`
		C *LegacyInt   `json:"c"`
		D LegacyAmount `json:"d"`
		E LegacyAmount `json:"e"`
		F LegacyAmount `json:"f"`
	}
	err := json.Unmarshal([]byte(
		`{"a": "12000", "b": 15000.0, "d": "350.5", "e": "", "f": 99}`,
	), &v)
	require.NoError(t, err)
	assert.EqualValues(t, 12000, v.A)
	assert.EqualValues(t, 15000, v.B)
	assert.Nil(t, v.C.ptr())
	assert.Equal(t, "350.50", v.D.StringFixed(2))
	assert.True(t, v.E.IsZero())
	assert.Equal(t, "99", v.F.String())
	assert.Error(t, json.Unmarshal([]byte(`{"a": "many"}`), &v))
}

func TestLegacyID(t *testing.T) {
	a := legacyID("cars", "abc")
	assert.Equal(t, a, legacyID("cars", " abc "))
	assert.NotEqual(t, a, legacyID("clients", "abc"))
	assert.EqualValues(t, 5, a.Version())

	u := uuid.New()
	assert.Equal(t, u, legacyID("cars", u.String()))
	assert.NotEqual(t, legacyID("cars", ""), legacyID("cars", ""))
}
