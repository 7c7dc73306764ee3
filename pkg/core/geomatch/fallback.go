// Copyright (c) 2024 CircuitBhai
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package geomatch

import "github.com/circuitbhai/cbweb/pkg/core/model"

type placeholder struct {
	id, name, address string
	dLat, dLon        float64
	rating            float64
	reviews           int
}

var placeholders = [...]placeholder{
	{
		id:      "synthetic-1",
		name:    "ABC Mobile Repair",
		address: "Illustrative listing near you",
		dLat:    0.05,
		dLon:    0.02,
		rating:  4.5,
		reviews: 102,
	},
	{
		id:      "synthetic-2",
		name:    "QuickFix Electronics",
		address: "Illustrative listing near you",
		dLat:    0.03,
		dLon:    -0.03,
		rating:  4.2,
		reviews: 89,
	},
}

// fallback returns the fixed placeholder entries around origin. Their
// distances are computed like real candidates. Both lie within
// model.MinRadiusMeters of any origin, so they never exceed a valid
// search radius.
func fallback(origin model.Coordinate) []model.RankedCandidate {
	res := make([]model.RankedCandidate, 0, len(placeholders))
	for _, p := range placeholders {
		c := origin.Offset(p.dLat, p.dLon)
		res = append(res, model.RankedCandidate{
			ID:             p.id,
			Name:           p.name,
			Address:        p.address,
			Coordinate:     c,
			Rating:         p.rating,
			ReviewCount:    p.reviews,
			Source:         model.SourceSynthetic,
			DistanceMeters: Haversine(origin, c),
			Verified:       p.rating >= VerifiedRating,
			Synthetic:      true,
		})
	}
	return res
}
