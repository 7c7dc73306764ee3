// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package bookingsrp is the adapter for the bookings repository.
// It exposes the bookingsrp.Repo type in order to allow use cases
// to record and follow up the bookings.
package bookingsrp

import (
	"context"

	"github.com/circuitbhai/cbweb/pkg/adapter/db/postgres"
	"github.com/circuitbhai/cbweb/pkg/core/model"
	"github.com/circuitbhai/cbweb/pkg/core/repo"
	"github.com/google/uuid"
)

// Repo represents the bookings repository instance.
type Repo struct {
}

// New instantiates a bookings Repo struct.
func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*postgres.Conn
}

// Conn takes a Conn interface instance, unwraps it as required,
// and returns a BookingsConnQueryer interface.
func (bookings *Repo) Conn(c repo.Conn) repo.BookingsConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Create(ctx context.Context, b *model.Booking) error {
	return Create(ctx, cq.Conn, b)
}

func (cq connQueryer) List(
	ctx context.Context, technicianID string,
) ([]model.Booking, error) {
	return List(ctx, cq.Conn, technicianID)
}

func (cq connQueryer) SetStatus(
	ctx context.Context, id uuid.UUID, s model.BookingStatus,
) (*model.Booking, error) {
	return SetStatus(ctx, cq.Conn, id, s)
}

type txQueryer struct {
	*postgres.Tx
}

// Tx takes a Tx interface instance, unwraps it as required,
// and returns a BookingsTxQueryer interface.
func (bookings *Repo) Tx(tx repo.Tx) repo.BookingsTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Create(ctx context.Context, b *model.Booking) error {
	return Create(ctx, tq.Tx, b)
}

func (tq txQueryer) List(
	ctx context.Context, technicianID string,
) ([]model.Booking, error) {
	return List(ctx, tq.Tx, technicianID)
}

func (tq txQueryer) GetForUpdate(
	ctx context.Context, id uuid.UUID,
) (*model.Booking, error) {
	return GetForUpdate(ctx, tq.Tx, id)
}

func (tq txQueryer) SetStatus(
	ctx context.Context, id uuid.UUID, s model.BookingStatus,
) (*model.Booking, error) {
	return SetStatus(ctx, tq.Tx, id, s)
}
