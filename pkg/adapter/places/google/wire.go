// Copyright (c) 2024 CircuitBhai
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package google

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/circuitbhai/cbweb/pkg/core/model"
	"googlemaps.github.io/maps"
)

// Status values of the Nearby Search responses.
const (
	StatusOK          = "OK"
	StatusZeroResults = "ZERO_RESULTS"
)

// ErrStatus is wrapped by the errors which report a non-OK status.
var ErrStatus = errors.New("places api status")

// statusRE matches the "maps: STATUS - message" errors of the client.
var statusRE = regexp.MustCompile(`^maps: ([A-Z_]+) - ?(.*)$`)

// statusResult turns a client error into the Nearby outcome. The
// ZERO_RESULTS status is an empty result and other statuses wrap
// ErrStatus. The error_message is kept, but it never contains the API
// key since Google does not echo it back.
func statusResult(err error) ([]model.Candidate, error) {
	m := statusRE.FindStringSubmatch(err.Error())
	switch {
	case m == nil:
		return nil, fmt.Errorf("nearby search: %w", err)
	case m[1] == StatusZeroResults:
		return nil, nil
	case m[2] == "":
		return nil, fmt.Errorf("%w: %q", ErrStatus, m[1])
	default:
		return nil, fmt.Errorf("%w: %q: %s", ErrStatus, m[1], m[2])
	}
}

func candidates(results []maps.PlacesSearchResult) []model.Candidate {
	cands := make([]model.Candidate, 0, len(results))
	for _, pr := range results {
		cands = append(cands, candidate(pr))
	}
	return cands
}

// candidate converts one result. The client decodes absent numbers as
// zeros, so a zero rating means unrated and a (0, 0) location means no
// geometry; neither is a real repair shop value.
func candidate(pr maps.PlacesSearchResult) model.Candidate {
	c := model.Candidate{
		ID:      pr.PlaceID,
		Name:    pr.Name,
		Address: pr.Vicinity,
		Source:  model.SourceGooglePlaces,
	}
	if c.Address == "" {
		c.Address = pr.FormattedAddress
	}
	if pr.Rating > 0 {
		r := rating(pr.Rating)
		c.Rating = &r
	}
	if pr.UserRatingsTotal > 0 {
		c.ReviewCount = pr.UserRatingsTotal
	}
	loc := pr.Geometry.Location
	if loc.Lat != 0 || loc.Lng != 0 {
		coord := model.Coordinate{Lat: loc.Lat, Lon: loc.Lng}
		if coord.Validate() == nil {
			c.Coordinate = &coord
		}
	}
	return c
}

// rating widens r using its shortest decimal form, so 4.3 stays 4.3.
func rating(r float32) float64 {
	f, err := strconv.ParseFloat(strconv.FormatFloat(float64(r), 'g', -1, 32), 64)
	if err != nil {
		return float64(r)
	}
	return f
}
