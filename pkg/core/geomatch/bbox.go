// Copyright (c) 2024 CircuitBhai
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package geomatch

import (
	"math"

	"github.com/circuitbhai/cbweb/pkg/core/model"
)

// Box is a latitude/longitude aligned rectangle in degrees.
type Box struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// BoundingBox returns a Box which contains every point whose Haversine
// distance from origin is at most radiusMeters. The box is only a
// prefilter and may contain farther points too. When the circle
// reaches a pole or the antimeridian, the whole longitude range is
// covered.
func BoundingBox(origin model.Coordinate, radiusMeters float64) Box {
	dLat := radiusMeters / EarthRadiusMeters * 180 / math.Pi
	b := Box{
		MinLat: math.Max(-90, origin.Lat-dLat),
		MaxLat: math.Min(90, origin.Lat+dLat),
		MinLon: -180,
		MaxLon: 180,
	}
	if b.MinLat == -90 || b.MaxLat == 90 {
		return b
	}
	// the widest longitude span is reached at the latitude which is
	// farthest from the equator
	cos := math.Cos(toRadians(math.Max(math.Abs(b.MinLat), math.Abs(b.MaxLat))))
	dLon := dLat / cos
	if origin.Lon-dLon < -180 || origin.Lon+dLon > 180 {
		return b
	}
	b.MinLon = origin.Lon - dLon
	b.MaxLon = origin.Lon + dLon
	return b
}

// Contains reports if c is inside of b, including its edges.
func (b Box) Contains(c model.Coordinate) bool {
	return c.Lat >= b.MinLat && c.Lat <= b.MaxLat &&
		c.Lon >= b.MinLon && c.Lon <= b.MaxLon
}
