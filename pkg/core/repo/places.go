// Copyright (c) 2024 CircuitBhai
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/circuitbhai/cbweb/pkg/core/model"
)

// PlaceSource is a provider of raw venues around a location, such as
// a maps API or a local directory. A source may return duplicates,
// venues outside of the requested radius, and venues without any
// geometry; all of them are tolerated by the ranking.
//
// Implementations must be safe to be used concurrently, since several
// queries are sent to each source in parallel.
type PlaceSource interface {
	// Name identifies the source in logs.
	Name() string

	// Nearby returns the venues matching q. An empty result is not an
	// error. Network, authentication, and quota problems are reported
	// as errors.
	Nearby(ctx context.Context, q model.PlaceQuery) ([]model.Candidate, error)
}

// TermlessPlaceSource is implemented by place sources which ignore the
// Keyword and Type of their queries. Such sources are queried once per
// search instead of once per search term.
type TermlessPlaceSource interface {
	PlaceSource

	// IgnoresTerms returns true if Keyword and Type have no effect.
	IgnoresTerms() bool
}
