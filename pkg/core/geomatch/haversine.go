// Copyright (c) 2024 CircuitBhai
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package geomatch

import (
	"math"

	"github.com/circuitbhai/cbweb/pkg/core/model"
)

// EarthRadiusMeters is the mean earth radius which is used by the
// spherical distance approximation.
const EarthRadiusMeters = 6_371_000

// Haversine returns the great-circle distance between a and b in
// meters, approximating the earth as a sphere. It is symmetric and
// returns zero for identical points.
func Haversine(a, b model.Coordinate) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLat := toRadians(b.Lat - a.Lat)
	dLon := toRadians(b.Lon - a.Lon)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	// rounding may push h slightly above one for antipodal points
	h = math.Min(1, h)
	return EarthRadiusMeters * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
