// Copyright (c) 2024 CircuitBhai
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

	"github.com/circuitbhai/cbweb/pkg/core/log"
	"github.com/circuitbhai/cbweb/pkg/core/model"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureDefault(t *testing.T, level slog.Level) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
	})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return buf
}

func TestInfoWithAttrs(t *testing.T) {
	buf := captureDefault(t, slog.LevelInfo)

	log.Info(
		context.Background(), "searching",
		log.Coord("origin", model.Coordinate{Lat: 28.6, Lon: 77.2}),
		log.Err("err", errors.New("boom")),
		log.Err("none", nil),
	)

	rec := map[string]any{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "searching", rec["msg"])
	assert.Equal(t, "boom", rec["err"])
	assert.Equal(t, "no-error", rec["none"])
	assert.Equal(t, map[string]any{"lat": 28.6, "lon": 77.2}, rec["origin"])
	src, ok := rec["source"].(map[string]any)
	require.True(t, ok, "source attribute is missing")
	assert.Contains(t, src["file"], "log_test.go")
}

func TestDisabledLevel(t *testing.T) {
	buf := captureDefault(t, slog.LevelWarn)
	log.Debug(context.Background(), "hidden")
	log.Info(context.Background(), "hidden")
	assert.Zero(t, buf.Len())
	log.Warn(context.Background(), "shown")
	assert.NotZero(t, buf.Len())
}
