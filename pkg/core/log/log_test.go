// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package log_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/momeni/carrental/pkg/core/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupJSON(t *testing.T) {
	old := slog.Default()
	defer slog.SetDefault(old)

	buf := &bytes.Buffer{}
	_, err := log.Setup(buf, "debug", "json")
	require.NoError(t, err)

	id := uuid.MustParse("4f1c2b4e-7d7e-4a43-9f59-0e2d2b0c9a11")
	log.Debug(
		context.Background(), "car archived",
		log.Stringer("car", id),
		log.Err("err", errors.New("boom")),
		log.Err("other", nil),
	)
	rec := map[string]any{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "DEBUG", rec["level"])
	assert.Equal(t, "car archived", rec["msg"])
	assert.Equal(t, id.String(), rec["car"])
	assert.Equal(t, "boom", rec["err"])
	assert.Equal(t, "no-error", rec["other"])
	src, ok := rec["source"].(map[string]any)
	require.True(t, ok, "source is expected")
	assert.Contains(t, src["file"], "log_test.go")
}

func TestSetupFiltersLevel(t *testing.T) {
	old := slog.Default()
	defer slog.SetDefault(old)

	buf := &bytes.Buffer{}
	_, err := log.Setup(buf, "warn", "text")
	require.NoError(t, err)
	log.Info(context.Background(), "hidden")
	assert.Empty(t, buf.String())
	log.Warn(context.Background(), "shown")
	assert.Contains(t, buf.String(), "msg=shown")
}

func TestSetupRejectsUnknownValues(t *testing.T) {
	_, err := log.Setup(&bytes.Buffer{}, "verbose", "text")
	assert.Error(t, err)
	_, err = log.Setup(&bytes.Buffer{}, "info", "xml")
	assert.Error(t, err)
}
