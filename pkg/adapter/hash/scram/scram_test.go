// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package scram_test

import (
	"strings"
	"testing"

	"github.com/momeni/carrental/pkg/adapter/hash/scram"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForMethod(t *testing.T) {
	m, err := scram.ForMethod(scram.MethodSHA256)
	require.NoError(t, err)
	assert.Equal(t, scram.SHA256(), m)
	m, err = scram.ForMethod(scram.MethodSHA1)
	require.NoError(t, err)
	assert.Equal(t, scram.SHA1(), m)
	_, err = scram.ForMethod("md5")
	assert.Error(t, err)
}

func TestHash(t *testing.T) {
	const salt = "c2FsdHNhbHRzYWx0c2FsdA=="
	m := scram.SHA256()
	h1, err := m.Hash("pencil", salt, 4096)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(h1, "SCRAM-SHA-256$4096:"+salt+"$"), h1)
	keys := strings.Split(strings.SplitN(h1, "$", 3)[2], ":")
	require.Len(t, keys, 2)
	assert.NotEqual(t, keys[0], keys[1])

	h2, err := m.Hash("pencil", salt, 4096)
	require.NoError(t, err)
	assert.Equal(t, h1, h2, "a fixed salt gives a deterministic hash")

	h3, err := m.Hash("pencil", "", 4096)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)

	h4, err := scram.SHA1().Hash("pencil", salt, 4096)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(h4, "SCRAM-SHA-1$4096:"), h4)

	_, err = m.Hash("", salt, 4096)
	assert.Error(t, err)
	_, err = m.Hash("pencil", salt, 1000)
	assert.Error(t, err)
	_, err = m.Hash("pencil", "not base64!", 4096)
	assert.Error(t, err)
}
