// Copyright (c) 2024 CircuitBhai
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import "net/url"

// These constants name the known origins of a Candidate. They are kept
// on bookings too, so a booked technician can be traced back to the
// directory which listed it.
const (
	SourceGooglePlaces = "google_places"
	SourceDirectory    = "directory"
	SourceElastic      = "elastic"
	SourceSynthetic    = "synthetic"
)

// Candidate is one venue as reported by a place source, before any
// ranking. Attributes which a source may omit are pointers, so their
// absence survives decoding and defaults are applied exactly once
// while ranking. A Candidate is created per search and never persisted.
type Candidate struct {
	// ID is an opaque identity token which is used for deduplication.
	// An empty ID means that the source provided no identity.
	ID string

	Name    string
	Address string // street address or vicinity description

	Coordinate  *Coordinate // nil if the record has no geometry
	Rating      *float64    // nil if the source reported no rating
	ReviewCount int         // zero if the source reported no count

	Source string // one of the Source* constants
}

// RankedCandidate is a Candidate which passed the distance filter.
// Its Rating is always set (the default rating is applied for missing
// values) and its Coordinate is always present.
type RankedCandidate struct {
	ID          string
	Name        string
	Address     string
	Coordinate  Coordinate
	Rating      float64
	ReviewCount int
	Source      string

	DistanceMeters float64 // great-circle distance from the origin
	Verified       bool    // true when Rating meets the threshold

	// Synthetic marks placeholder entries which do not describe any
	// real venue. They are only produced when no real candidate could
	// qualify and must be disclosed as illustrative by the clients.
	Synthetic bool
}

// DistanceKm returns the distance from the origin in kilometers.
func (rc RankedCandidate) DistanceKm() float64 {
	return rc.DistanceMeters / 1000
}

// MapLink returns a maps URL for candidates which were found by the
// maps provider. Other candidates (including synthetic ones and those
// without an identity) have no link and an empty string is returned.
func (rc RankedCandidate) MapLink() string {
	if rc.Synthetic || rc.ID == "" || rc.Source != SourceGooglePlaces {
		return ""
	}
	return "https://www.google.com/maps/place/?q=place_id:" +
		url.QueryEscape(rc.ID)
}

// NearbyResult is the outcome of a nearby technicians search.
// Synthetic is true if Results only contains placeholder entries.
type NearbyResult struct {
	Results   []RankedCandidate
	Synthetic bool
}
