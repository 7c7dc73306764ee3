// Copyright (c) 2024 CircuitBhai
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package techniciansuc

import (
	"context"

	"github.com/circuitbhai/cbweb/pkg/core/model"
	"github.com/circuitbhai/cbweb/pkg/core/repo"
)

// DirectorySource is a repo.PlaceSource which reports the approved
// registered technicians. Technicians without a location are skipped.
// The query keyword and type are ignored since every registered
// technician is a repair shop.
type DirectorySource struct {
	pool    repo.Pool
	techsrp repo.Technicians
}

// NewDirectorySource instantiates a DirectorySource.
func NewDirectorySource(p repo.Pool, t repo.Technicians) *DirectorySource {
	return &DirectorySource{pool: p, techsrp: t}
}

// Name returns model.SourceDirectory.
func (ds *DirectorySource) Name() string {
	return model.SourceDirectory
}

// IgnoresTerms returns true, so the directory is queried once per
// search.
func (ds *DirectorySource) IgnoresTerms() bool {
	return true
}

// Nearby returns the approved technicians around q.Origin.
func (ds *DirectorySource) Nearby(
	ctx context.Context, q model.PlaceQuery,
) ([]model.Candidate, error) {
	var techs []model.Technician
	err := ds.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) (err error) {
		techs, err = ds.techsrp.Conn(c).ListApprovedNear(
			ctx, q.Origin, q.RadiusMeters,
		)
		return err
	})
	if err != nil {
		return nil, err
	}
	cands := make([]model.Candidate, 0, len(techs))
	for i := range techs {
		if c, ok := techs[i].Candidate(); ok {
			cands = append(cands, c)
		}
	}
	return cands, nil
}
