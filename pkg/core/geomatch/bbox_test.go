// Copyright (c) 2024 CircuitBhai
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package geomatch_test

import (
	"testing"

	"github.com/circuitbhai/cbweb/pkg/core/geomatch"
	"github.com/circuitbhai/cbweb/pkg/core/model"
	"github.com/stretchr/testify/assert"
)

func TestBoundingBoxContainsCircle(t *testing.T) {
	const radius = 10000
	b := geomatch.BoundingBox(delhi, radius)
	assert.Less(t, b.MinLat, delhi.Lat)
	assert.Greater(t, b.MaxLon, delhi.Lon)
	for _, d := range [][2]float64{
		{0.0899, 0}, {-0.0899, 0}, {0, 0.1024}, {0, -0.1024},
		{0.06, 0.07}, {-0.06, -0.07},
	} {
		c := delhi.Offset(d[0], d[1])
		if geomatch.Haversine(delhi, c) <= radius {
			assert.True(t, b.Contains(c), "%+v must be inside %+v", c, b)
		}
	}
	assert.False(t, b.Contains(delhi.Offset(0.2, 0)))
	assert.False(t, b.Contains(delhi.Offset(0, -0.2)))
}

func TestBoundingBoxNearPoleAndAntimeridian(t *testing.T) {
	b := geomatch.BoundingBox(model.Coordinate{Lat: 89.95, Lon: 10}, 10000)
	assert.Equal(t, 90.0, b.MaxLat)
	assert.Equal(t, -180.0, b.MinLon)
	assert.Equal(t, 180.0, b.MaxLon)

	b = geomatch.BoundingBox(model.Coordinate{Lat: 0, Lon: 179.99}, 10000)
	assert.Equal(t, -180.0, b.MinLon)
	assert.Equal(t, 180.0, b.MaxLon)
	assert.True(t, b.Contains(model.Coordinate{Lat: 0, Lon: -179.99}))
}
