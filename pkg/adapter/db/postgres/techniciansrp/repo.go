// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package techniciansrp is the adapter for the technicians repository.
// It exposes the techniciansrp.Repo type in order to allow use cases
// to register, review, and list technicians.
package techniciansrp

import (
	"context"

	"github.com/circuitbhai/cbweb/pkg/adapter/db/postgres"
	"github.com/circuitbhai/cbweb/pkg/core/model"
	"github.com/circuitbhai/cbweb/pkg/core/repo"
	"github.com/google/uuid"
)

// Repo represents the technicians repository instance.
type Repo struct {
}

// New instantiates a technicians Repo struct.
func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*postgres.Conn
}

// Conn takes a Conn interface instance, unwraps it as required,
// and returns a TechniciansConnQueryer interface.
func (techs *Repo) Conn(c repo.Conn) repo.TechniciansConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Create(ctx context.Context, t *model.Technician) error {
	return Create(ctx, cq.Conn, t)
}

func (cq connQueryer) ListApproved(
	ctx context.Context, specialty string,
) ([]model.Technician, error) {
	return ListApproved(ctx, cq.Conn, specialty)
}

func (cq connQueryer) ListApprovedNear(
	ctx context.Context, origin model.Coordinate, radiusMeters float64,
) ([]model.Technician, error) {
	return ListApprovedNear(ctx, cq.Conn, origin, radiusMeters)
}

func (cq connQueryer) SetStatus(
	ctx context.Context, id uuid.UUID, s model.TechnicianStatus,
) (*model.Technician, error) {
	return SetStatus(ctx, cq.Conn, id, s)
}

type txQueryer struct {
	*postgres.Tx
}

// Tx takes a Tx interface instance, unwraps it as required,
// and returns a TechniciansTxQueryer interface.
func (techs *Repo) Tx(tx repo.Tx) repo.TechniciansTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Create(ctx context.Context, t *model.Technician) error {
	return Create(ctx, tq.Tx, t)
}

func (tq txQueryer) ListApproved(
	ctx context.Context, specialty string,
) ([]model.Technician, error) {
	return ListApproved(ctx, tq.Tx, specialty)
}

func (tq txQueryer) ListApprovedNear(
	ctx context.Context, origin model.Coordinate, radiusMeters float64,
) ([]model.Technician, error) {
	return ListApprovedNear(ctx, tq.Tx, origin, radiusMeters)
}

func (tq txQueryer) SetStatus(
	ctx context.Context, id uuid.UUID, s model.TechnicianStatus,
) (*model.Technician, error) {
	return SetStatus(ctx, tq.Tx, id, s)
}
