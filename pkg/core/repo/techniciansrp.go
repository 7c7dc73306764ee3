// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/circuitbhai/cbweb/pkg/core/model"
	"github.com/google/uuid"
)

// Technicians is the directory of registered repair shops.
type Technicians interface {
	Conn(Conn) TechniciansConnQueryer
	Tx(Tx) TechniciansTxQueryer
}

// TechniciansConnQueryer lists technician operations which may be
// called with a connection at hand.
type TechniciansConnQueryer interface {
	TechniciansQueryer
}

// TechniciansTxQueryer lists technician operations which may be called
// in an ongoing transaction.
type TechniciansTxQueryer interface {
	TechniciansQueryer
}

// TechniciansQueryer lists the technician operations which need
// either a connection or a transaction.
type TechniciansQueryer interface {
	// Create persists t. The ID, Status, and CreatedAt fields must
	// be filled by the caller. An already registered email address
	// is reported as a cerr.Conflict error.
	Create(ctx context.Context, t *model.Technician) error

	// ListApproved returns the approved technicians ordered by their
	// rating, best first. A non-empty specialty keeps only those
	// technicians which list it among their specialties.
	ListApproved(
		ctx context.Context, specialty string,
	) ([]model.Technician, error)

	// ListApprovedNear returns the approved technicians which have a
	// location inside the bounding box of the circle with radiusMeters
	// radius around origin. The result may contain technicians which
	// are farther than radiusMeters, so callers must filter it again.
	ListApprovedNear(
		ctx context.Context, origin model.Coordinate, radiusMeters float64,
	) ([]model.Technician, error)

	// SetStatus updates the review status of the id technician and
	// returns it. A missing technician is reported as a cerr.NotFound
	// error.
	SetStatus(
		ctx context.Context, id uuid.UUID, s model.TechnicianStatus,
	) (*model.Technician, error)
}

// TechnicianIndex is a search index which mirrors the approved
// technicians, such as an Elasticsearch index.
type TechnicianIndex interface {
	// EnsureIndex creates the index if it does not exist.
	EnsureIndex(ctx context.Context) error

	// BulkIndex stores techs in the index, replacing their previous
	// documents. Technicians without a location are skipped. The
	// number of stored documents is returned.
	BulkIndex(ctx context.Context, techs []model.Technician) (int, error)
}
