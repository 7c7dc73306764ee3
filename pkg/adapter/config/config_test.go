// Copyright (c) 2024 CircuitBhai
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/circuitbhai/cbweb/pkg/adapter/config/settings"
	"github.com/circuitbhai/cbweb/pkg/adapter/places/elastic"
	"github.com/circuitbhai/cbweb/pkg/core/model"
	"github.com/circuitbhai/cbweb/pkg/core/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimal = `
database:
  name: cbweb
  user: cbweb
`

func cleanEnv(t *testing.T) {
	t.Setenv(DatabaseURLEnv, "")
	t.Setenv(DefaultGoogleAPIKeyEnv, "test-key")
}

func TestParseDefaults(t *testing.T) {
	cleanEnv(t)
	c, err := Parse([]byte(minimal))
	require.NoError(t, err)

	assert.Equal(t, "postgresql://cbweb@127.0.0.1:5432/cbweb?sslmode=disable", c.Database.url)
	assert.False(t, *c.Gin.Logger)
	assert.True(t, *c.Gin.Recovery)
	assert.Equal(t, ":8080", c.Gin.Address)
	assert.Equal(t, "text", c.Logging.Format)
	assert.Equal(t, slog.LevelInfo, c.Logging.level)
	assert.True(t, *c.Places.Google.Enabled)
	assert.Equal(t, "test-key", c.Places.Google.apiKey)
	assert.False(t, *c.Places.Elastic.Enabled)
	assert.Equal(t, elastic.DefaultIndex, c.Places.Elastic.Index)
	assert.True(t, *c.Places.Directory.Enabled)
	assert.Nil(t, c.Usecases.Technicians.RadiusMeters)
}

func TestParseSampleConfig(t *testing.T) {
	cleanEnv(t)
	t.Setenv("CBWEB_DB_PASSWORD", "p@ss")
	c, err := Load(filepath.Join("..", "..", "..", "configs", "sample-config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, c.Database.url, "p%40ss@")
	require.NotNil(t, c.Usecases.Technicians.QueryTimeout)
	assert.Equal(t, 10*time.Second, time.Duration(*c.Usecases.Technicians.QueryTimeout))
	assert.Len(t, c.Usecases.Technicians.SearchTerms, 4)
}

func TestDatabaseURLOverride(t *testing.T) {
	cleanEnv(t)
	t.Setenv(DatabaseURLEnv, "postgresql://u:p@db:5432/x")
	c, err := Parse([]byte("database: {}\n"))
	require.NoError(t, err)
	assert.Equal(t, "postgresql://u:p@db:5432/x", c.Database.url)
}

func TestParseErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		yaml string
		env  map[string]string
		msg  string
	}{
		{
			name: "empty file",
			yaml: "",
			msg:  "found 0 children nodes",
		},
		{
			name: "missing db name",
			yaml: "database: {user: cbweb}",
			msg:  "name is required",
		},
		{
			name: "unset db password",
			yaml: minimal + "  password-env: CBWEB_TEST_MISSING\n",
			msg:  `password env var "CBWEB_TEST_MISSING" is not set`,
		},
		{
			name: "missing google key",
			yaml: minimal,
			env:  map[string]string{DefaultGoogleAPIKeyEnv: ""},
			msg:  `api key env var "GOOGLE_PLACES_API_KEY" is empty`,
		},
		{
			name: "elastic without addresses",
			yaml: minimal + "places: {elastic: {enabled: true}}\n",
			msg:  "addresses are required",
		},
		{
			name: "bad log format",
			yaml: minimal + "logging: {format: xml}\n",
			msg:  "unknown log format",
		},
		{
			name: "radius above maximum",
			yaml: minimal + `usecases:
  technicians:
    radius-meters: 60000
    radius-meters-maximum: 50000
`,
			msg: "value (60000) is greater than max",
		},
		{
			name: "radius below the placeholder floor",
			yaml: minimal + "usecases: {technicians: {radius-meters: 500}}\n",
			msg:  "radius-meters (500) is not a finite number of at least 6000",
		},
		{
			name: "radius minimum below the placeholder floor",
			yaml: minimal + `usecases:
  technicians:
    radius-meters: 10000
    radius-meters-minimum: 500
`,
			msg: "radius-meters-minimum (500) is less than 6000",
		},
		{
			name: "infinite radius",
			yaml: minimal + "usecases: {technicians: {radius-meters: .inf}}\n",
			msg:  "radius-meters (+Inf) is not a finite number",
		},
		{
			name: "zero concurrency",
			yaml: minimal + "usecases: {technicians: {concurrency: 0}}\n",
			msg:  "value (0) is less than min",
		},
		{
			name: "bad duration",
			yaml: minimal + "usecases: {technicians: {query-timeout: soon}}\n",
			msg:  "decoding yaml node",
		},
		{
			name: "empty search term",
			yaml: minimal + "usecases: {technicians: {search-terms: [{}]}}\n",
			msg:  "search term #0 is empty",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cleanEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Parse([]byte(tc.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestDisabledGoogleNeedsNoKey(t *testing.T) {
	cleanEnv(t)
	t.Setenv(DefaultGoogleAPIKeyEnv, "")
	c, err := Parse([]byte(minimal + "places: {google: {enabled: false}}\n"))
	require.NoError(t, err)

	sources, err := c.Places.NewSources(nil, nil)
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, model.SourceDirectory, sources[0].Name())
}

func TestNewSourcesOrder(t *testing.T) {
	cleanEnv(t)
	t.Setenv("CBWEB_ES_PASSWORD", "secret")
	c, err := Parse([]byte(minimal + `places:
  elastic:
    enabled: true
    addresses: [http://127.0.0.1:9200]
    username: elastic
    password-env: CBWEB_ES_PASSWORD
`))
	require.NoError(t, err)
	assert.Equal(t, "secret", c.Places.Elastic.password)

	sources, err := c.Places.NewSources(nil, nil)
	require.NoError(t, err)
	names := make([]string, len(sources))
	for i, s := range sources {
		names[i] = s.Name()
	}
	assert.Equal(t, []string{
		model.SourceGooglePlaces, model.SourceElastic, model.SourceDirectory,
	}, names)
}

func TestNewTechniciansUseCase(t *testing.T) {
	r, n, d := 8000.0, 3, settings.Duration(2*time.Second)
	tc := Technicians{
		RadiusMeters: &r,
		MaxResults:   &n,
		QueryTimeout: &d,
		SearchTerms:  []SearchTerm{{Keyword: "laptop repair"}},
	}
	require.NoError(t, tc.ValidateAndNormalize())
	uc, err := tc.NewUseCase(nil, nil, []repo.PlaceSource{})
	require.NoError(t, err)
	assert.NotNil(t, uc)

	zero := 0
	tc.Concurrency = &zero
	assert.Error(t, tc.ValidateAndNormalize())
	assert.Equal(t, 1, *tc.Concurrency, "concurrency must be clamped")
}

func TestLoggingHandler(t *testing.T) {
	l := Logging{Format: "json", Level: "warn"}
	require.NoError(t, l.ValidateAndNormalize())
	h := l.NewHandler(os.Stderr)
	_, ok := h.(*slog.JSONHandler)
	assert.True(t, ok)
	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelWarn))
}
