// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models of the technician matching
// service: coordinates, place candidates and their ranked form, search
// requests, registered technicians, and bookings.
// This layer may not depend on outer layers, while all other layers
// may depend on it.
package model

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
)

// ErrInvalidCoordinate indicates that a latitude or longitude value is
// not a finite number in its acceptable range. The caller knows which
// coordinate was validated, so the error only describes the violated
// bound and the caller should wrap it with more context.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Coordinate represents a geographical location with a latitude and
// longitude in decimal degrees. It is an immutable value type and is
// passed by value everywhere.
type Coordinate struct {
	Lat, Lon float64 // latitude and longitude of the geo-location
}

// Validate returns nil if the latitude is in [-90, 90] and the
// longitude is in [-180, 180]. NaN and infinite values are rejected.
// Returned errors wrap ErrInvalidCoordinate.
func (c Coordinate) Validate() error {
	switch {
	case math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0):
		return fmt.Errorf("%w: latitude is not a finite number", ErrInvalidCoordinate)
	case c.Lat < -90 || c.Lat > 90:
		return fmt.Errorf("%w: latitude %v is out of [-90, 90]", ErrInvalidCoordinate, c.Lat)
	case math.IsNaN(c.Lon) || math.IsInf(c.Lon, 0):
		return fmt.Errorf("%w: longitude is not a finite number", ErrInvalidCoordinate)
	case c.Lon < -180 || c.Lon > 180:
		return fmt.Errorf("%w: longitude %v is out of [-180, 180]", ErrInvalidCoordinate, c.Lon)
	}
	return nil
}

// Offset returns a new coordinate which is moved by dLat and dLon
// degrees. The latitude is clamped to [-90, 90] and the longitude is
// wrapped into [-180, 180], so the result is always a valid coordinate
// when c itself is valid.
func (c Coordinate) Offset(dLat, dLon float64) Coordinate {
	lat := math.Max(-90, math.Min(90, c.Lat+dLat))
	lon := c.Lon + dLon
	if lon > 180 {
		lon -= 360
	} else if lon < -180 {
		lon += 360
	}
	return Coordinate{Lat: lat, Lon: lon}
}

// LogValue implements slog.LogValuer so coordinates are logged as a
// group of lat and lon attributes.
func (c Coordinate) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("lat", c.Lat),
		slog.Float64("lon", c.Lon),
	)
}
