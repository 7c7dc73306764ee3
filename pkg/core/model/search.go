// Copyright (c) 2024 CircuitBhai
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
	"math"
)

// Default search bounds which are used when a SearchRequest leaves
// them unset (zero).
const (
	DefaultRadiusMeters = 10000
	DefaultMaxResults   = 10
)

// MinRadiusMeters is the smallest accepted search radius. The synthetic
// placeholders lie within 5988 m of the origin at every latitude, so a
// radius of at least this much keeps them inside the search circle.
const MinRadiusMeters = 6000

// Errors which are reported while normalizing a SearchRequest.
var (
	ErrMissingOrigin     = errors.New("origin coordinate is required")
	ErrInvalidRadius     = errors.New("radius must be a finite number of at least 6000 meters")
	ErrInvalidMaxResults = errors.New("max results must be positive")
)

// SearchRequest describes one nearest venues search around Origin.
// A nil Origin is a caller error. Zero RadiusMeters and MaxResults
// select the DefaultRadiusMeters and DefaultMaxResults respectively,
// while a non-zero RadiusMeters must not be less than MinRadiusMeters.
type SearchRequest struct {
	Origin       *Coordinate
	RadiusMeters float64
	MaxResults   int
}

// Normalize validates the request and returns a copy which has its
// defaults applied. The returned error wraps one of ErrMissingOrigin,
// ErrInvalidCoordinate, ErrInvalidRadius, or ErrInvalidMaxResults.
func (r SearchRequest) Normalize() (SearchRequest, error) {
	if r.Origin == nil {
		return r, ErrMissingOrigin
	}
	if err := r.Origin.Validate(); err != nil {
		return r, fmt.Errorf("origin: %w", err)
	}
	switch {
	case math.IsNaN(r.RadiusMeters) || math.IsInf(r.RadiusMeters, 0):
		return r, ErrInvalidRadius
	case r.RadiusMeters == 0:
		r.RadiusMeters = DefaultRadiusMeters
	case r.RadiusMeters < MinRadiusMeters:
		return r, fmt.Errorf("%w: got %v", ErrInvalidRadius, r.RadiusMeters)
	}
	switch {
	case r.MaxResults < 0:
		return r, fmt.Errorf("%w: got %d", ErrInvalidMaxResults, r.MaxResults)
	case r.MaxResults == 0:
		r.MaxResults = DefaultMaxResults
	}
	origin := *r.Origin
	r.Origin = &origin
	return r, nil
}

// PlaceQuery is what a place source is asked for. Keyword and Type are
// optional hints; sources which cannot use them may ignore them.
type PlaceQuery struct {
	Origin       Coordinate
	RadiusMeters float64
	Keyword      string
	Type         string
}

// SearchTerm is one configured (keyword, type) pair. Every term is
// turned into a PlaceQuery per search and sent to every place source.
type SearchTerm struct {
	Keyword string
	Type    string
}

// DefaultSearchTerms are the terms which are used for finding repair
// shops when no terms are configured.
var DefaultSearchTerms = []SearchTerm{
	{Type: "electronics_store", Keyword: "repair"},
	{Keyword: "mobile repair"},
	{Keyword: "phone repair"},
	{Keyword: "electronics repair"},
}
