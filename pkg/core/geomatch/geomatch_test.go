// Copyright (c) 2024 CircuitBhai
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package geomatch_test

import (
	"math"
	"net/http"
	"testing"

	"github.com/circuitbhai/cbweb/pkg/core/cerr"
	"github.com/circuitbhai/cbweb/pkg/core/geomatch"
	"github.com/circuitbhai/cbweb/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var delhi = model.Coordinate{Lat: 28.6139, Lon: 77.2090}

func ptr[T any](v T) *T {
	return &v
}

// north returns a candidate which is dLat degrees north of delhi.
func north(id string, dLat float64, rating *float64) model.Candidate {
	c := delhi.Offset(dLat, 0)
	return model.Candidate{
		ID:          id,
		Name:        "shop " + id,
		Address:     "street " + id,
		Coordinate:  &c,
		Rating:      rating,
		ReviewCount: 7,
		Source:      model.SourceGooglePlaces,
	}
}

func request() model.SearchRequest {
	origin := delhi
	return model.SearchRequest{
		Origin: &origin, RadiusMeters: 10000, MaxResults: 10,
	}
}

func ids(rcs []model.RankedCandidate) []string {
	res := make([]string, 0, len(rcs))
	for _, rc := range rcs {
		res = append(res, rc.ID)
	}
	return res
}

func TestHaversine(t *testing.T) {
	a := model.Coordinate{Lat: 0, Lon: 0}
	assert.Zero(t, geomatch.Haversine(delhi, delhi))
	assert.InDelta(t, 20015086.796, geomatch.Haversine(a, model.Coordinate{Lon: 180}), 0.01)
	assert.InDelta(t, 10007543.398, geomatch.Haversine(a, model.Coordinate{Lat: 90}), 0.01)

	b := delhi.Offset(0.05, 0.02)
	assert.InDelta(t, 5892.4, geomatch.Haversine(delhi, b), 1)
	assert.Equal(t, geomatch.Haversine(delhi, b), geomatch.Haversine(b, delhi))
}

func TestMatchEndToEnd(t *testing.T) {
	a := north("A", 0.027, ptr(4.5)) // about 3 km
	b := north("B", 0.108, ptr(4.8)) // about 12 km
	c := north("A", 0.010, ptr(3.0)) // duplicate of A by identity
	res, err := geomatch.Match(request(), []model.Candidate{a, b, c})
	require.NoError(t, err)
	require.Len(t, res, 1)
	got := res[0]
	assert.Equal(t, "A", got.ID)
	assert.Equal(t, "shop A", got.Name)
	assert.Equal(t, "street A", got.Address)
	assert.Equal(t, 4.5, got.Rating)
	assert.Equal(t, 7, got.ReviewCount)
	assert.InDelta(t, 3002.26, got.DistanceMeters, 0.1)
	assert.InDelta(t, 3.00226, got.DistanceKm(), 0.0001)
	assert.True(t, got.Verified)
	assert.False(t, got.Synthetic)
	assert.Equal(t, model.SourceGooglePlaces, got.Source)
}

func TestMatchSortsStablyAndTruncates(t *testing.T) {
	cands := []model.Candidate{
		north("far", 0.06, nil),
		north("tie1", 0.02, nil),
		north("near", 0.01, nil),
		north("tie2", 0.02, nil),
	}
	req := request()
	res, err := geomatch.Match(req, cands)
	require.NoError(t, err)
	assert.Equal(t, []string{"near", "tie1", "tie2", "far"}, ids(res))
	for i := 1; i < len(res); i++ {
		assert.LessOrEqual(t, res[i-1].DistanceMeters, res[i].DistanceMeters)
	}

	req.MaxResults = 2
	res, err = geomatch.Match(req, cands)
	require.NoError(t, err)
	assert.Equal(t, []string{"near", "tie1"}, ids(res))
}

func TestMatchRadiusIsInclusive(t *testing.T) {
	c := north("edge", 0.06, nil)
	d := geomatch.Haversine(delhi, *c.Coordinate)

	req := request()
	req.RadiusMeters = d
	res, err := geomatch.Match(req, []model.Candidate{c})
	require.NoError(t, err)
	assert.Equal(t, []string{"edge"}, ids(res))

	req.RadiusMeters = math.Nextafter(d, 0)
	res, err = geomatch.Match(req, []model.Candidate{c})
	require.NoError(t, err)
	assert.True(t, res[0].Synthetic, "edge candidate must be filtered out")
}

func TestMatchDedup(t *testing.T) {
	first := north("X", 0.03, ptr(4.9))
	second := north("X", 0.01, ptr(1.0))
	anon1 := north("", 0.02, nil)
	anon2 := north("", 0.02, nil)
	res, err := geomatch.Match(
		request(), []model.Candidate{first, anon1, second, anon2},
	)
	require.NoError(t, err)
	require.Len(t, res, 3, "empty identities are never deduplicated")
	assert.Equal(t, []string{"", "", "X"}, ids(res))
	assert.Equal(t, 4.9, res[2].Rating, "first occurrence must win")
}

func TestMatchDropsCandidatesWithoutGeometry(t *testing.T) {
	noGeo := model.Candidate{ID: "nogeo", Name: "lost"}
	dup := north("nogeo", 0.01, nil)
	ok := north("ok", 0.01, nil)
	res, err := geomatch.Match(request(), []model.Candidate{noGeo, dup, ok})
	require.NoError(t, err)
	// the first occurrence of "nogeo" has no geometry, so its later
	// duplicate is not considered either
	assert.Equal(t, []string{"ok"}, ids(res))
}

func TestMatchVerifiedFlag(t *testing.T) {
	res, err := geomatch.Match(request(), []model.Candidate{
		north("r40", 0.01, ptr(4.0)),
		north("r39", 0.02, ptr(3.9)),
		north("none", 0.03, nil),
	})
	require.NoError(t, err)
	require.Len(t, res, 3)
	assert.True(t, res[0].Verified)
	assert.False(t, res[1].Verified)
	assert.True(t, res[2].Verified)
	assert.Equal(t, geomatch.DefaultRating, res[2].Rating)
}

func TestMatchFallback(t *testing.T) {
	for name, cands := range map[string][]model.Candidate{
		"nil":          nil,
		"empty":        {},
		"out of range": {north("far", 0.5, nil)},
	} {
		t.Run(name, func(t *testing.T) {
			res, err := geomatch.Match(request(), cands)
			require.NoError(t, err)
			require.Len(t, res, 2)
			for _, rc := range res {
				assert.True(t, rc.Synthetic)
				assert.Equal(t, model.SourceSynthetic, rc.Source)
				assert.Empty(t, rc.MapLink())
				assert.LessOrEqual(t, rc.DistanceMeters, 10000.0)
				assert.Equal(
					t, geomatch.Haversine(delhi, rc.Coordinate),
					rc.DistanceMeters,
				)
			}
			assert.Equal(t, delhi.Offset(0.05, 0.02), res[0].Coordinate)
			assert.Equal(t, delhi.Offset(0.03, -0.03), res[1].Coordinate)
			assert.InDelta(t, 5892.4, res[0].DistanceMeters, 1)
			assert.InDelta(t, 4438.6, res[1].DistanceMeters, 1)

			again, err := geomatch.Match(request(), cands)
			require.NoError(t, err)
			assert.Equal(t, res, again)
		})
	}
}

func TestMatchFallbackStaysInsideRadius(t *testing.T) {
	for name, origin := range map[string]model.Coordinate{
		"delhi":        delhi,
		"equator":      {Lat: 0, Lon: 0},
		"south":        {Lat: -33.87, Lon: 151.21},
		"near pole":    {Lat: 89.99, Lon: 179.99},
		"antimeridian": {Lat: 0, Lon: -179.99},
	} {
		for _, radius := range []float64{model.MinRadiusMeters, 7500} {
			o := origin
			req := model.SearchRequest{Origin: &o, RadiusMeters: radius}
			res, err := geomatch.Match(req, nil)
			require.NoError(t, err, name)
			require.Len(t, res, 2, name)
			for _, rc := range res {
				assert.True(t, rc.Synthetic, name)
				assert.LessOrEqual(t, rc.DistanceMeters, radius, "%s: %s", name, rc.Name)
			}
		}
	}
}

func TestMatchDefaults(t *testing.T) {
	origin := delhi
	cands := make([]model.Candidate, 0, 12)
	for i := 0; i < 12; i++ {
		cands = append(cands, north("", 0.001*float64(i+1), nil))
	}
	cands = append(cands, north("beyond", 0.0899321606*1.01, nil))
	res, err := geomatch.Match(model.SearchRequest{Origin: &origin}, cands)
	require.NoError(t, err)
	assert.Len(t, res, model.DefaultMaxResults)
}

func TestMatchInvalidRequest(t *testing.T) {
	for name, req := range map[string]model.SearchRequest{
		"missing origin": {},
		"lat too large": {
			Origin: &model.Coordinate{Lat: 90.5, Lon: 1},
		},
		"lon too small": {
			Origin: &model.Coordinate{Lat: 1, Lon: -180.1},
		},
		"nan lat": {
			Origin: &model.Coordinate{Lat: math.NaN(), Lon: 1},
		},
		"negative radius": {
			Origin: &model.Coordinate{Lat: 1, Lon: 1}, RadiusMeters: -1,
		},
		"radius below minimum": {
			Origin: &model.Coordinate{Lat: 1, Lon: 1}, RadiusMeters: 500,
		},
		"infinite radius": {
			Origin:       &model.Coordinate{Lat: 1, Lon: 1},
			RadiusMeters: math.Inf(1),
		},
		"negative cap": {
			Origin: &model.Coordinate{Lat: 1, Lon: 1}, MaxResults: -3,
		},
	} {
		t.Run(name, func(t *testing.T) {
			res, err := geomatch.Match(req, nil)
			assert.Nil(t, res)
			var ce *cerr.Error
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, http.StatusBadRequest, ce.HTTPStatusCode)
		})
	}
}

func TestMatchDoesNotMutateInput(t *testing.T) {
	cands := []model.Candidate{
		north("b", 0.02, nil), north("a", 0.01, nil),
	}
	res, err := geomatch.Match(request(), cands)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(res))
	assert.Equal(t, "b", cands[0].ID)
	assert.Nil(t, cands[0].Rating)
}
