// Copyright (c) 2024 CircuitBhai
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package geomatch ranks place candidates by their distance from an
// origin. It deduplicates candidates, filters them by a search radius,
// sorts them from nearest to farthest, marks well rated ones as
// verified, and bounds the result count. When nothing qualifies, a
// fixed pair of synthetic placeholders is returned instead.
//
// The package is pure and synchronous. It performs no I/O, so it can
// be called from any number of goroutines concurrently.
package geomatch

import (
	"sort"

	"github.com/circuitbhai/cbweb/pkg/core/cerr"
	"github.com/circuitbhai/cbweb/pkg/core/model"
)

// Rating thresholds of the verification policy.
const (
	// VerifiedRating is the minimum rating of a verified candidate.
	VerifiedRating = 4.0

	// DefaultRating is assumed for candidates which have no rating.
	DefaultRating = 4.0
)

// Match ranks candidates for the req search request.
//
// Candidates sharing a non-empty ID are collapsed into their first
// occurrence, while candidates with an empty ID are always kept.
// Candidates without a coordinate are dropped. A candidate is kept if
// its distance is at most req.RadiusMeters. The kept ones are sorted
// by ascending distance, preserving the input order for equal
// distances, and at most req.MaxResults of them are returned.
// If no candidate remains, the synthetic placeholders are returned.
//
// An invalid req results in a cerr.InvalidRequest error.
func Match(
	req model.SearchRequest, candidates []model.Candidate,
) ([]model.RankedCandidate, error) {
	req, err := req.Normalize()
	if err != nil {
		return nil, cerr.InvalidRequest(err)
	}
	origin := *req.Origin

	ranked := make([]model.RankedCandidate, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		if c.ID != "" {
			if _, dup := seen[c.ID]; dup {
				continue
			}
			seen[c.ID] = struct{}{}
		}
		if c.Coordinate == nil {
			continue
		}
		d := Haversine(origin, *c.Coordinate)
		if d > req.RadiusMeters {
			continue
		}
		ranked = append(ranked, rank(c, d))
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceMeters < ranked[j].DistanceMeters
	})
	if len(ranked) > req.MaxResults {
		ranked = ranked[:req.MaxResults]
	}
	if len(ranked) == 0 {
		return fallback(origin), nil
	}
	return ranked, nil
}

func rank(c model.Candidate, distance float64) model.RankedCandidate {
	rating := DefaultRating
	if c.Rating != nil {
		rating = *c.Rating
	}
	reviews := c.ReviewCount
	if reviews < 0 {
		reviews = 0
	}
	return model.RankedCandidate{
		ID:             c.ID,
		Name:           c.Name,
		Address:        c.Address,
		Coordinate:     *c.Coordinate,
		Rating:         rating,
		ReviewCount:    reviews,
		Source:         c.Source,
		DistanceMeters: distance,
		Verified:       rating >= VerifiedRating,
	}
}
