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

// Bookings is the booking store. It records which technician a
// customer chose and lets the technicians review their bookings.
type Bookings interface {
	Conn(Conn) BookingsConnQueryer
	Tx(Tx) BookingsTxQueryer
}

// BookingsConnQueryer lists booking operations which may be called
// with a connection at hand.
type BookingsConnQueryer interface {
	BookingsQueryer
}

// BookingsTxQueryer lists booking operations which may be called in
// an ongoing transaction.
type BookingsTxQueryer interface {
	BookingsQueryer

	// GetForUpdate returns the id booking and locks it until the end
	// of the transaction. A missing booking is reported as a
	// cerr.NotFound error.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*model.Booking, error)
}

// BookingsQueryer lists the booking operations which need either a
// connection or a transaction.
type BookingsQueryer interface {
	// Create persists b. The ID, Status, BookedAt, and CreatedAt
	// fields must be filled by the caller.
	Create(ctx context.Context, b *model.Booking) error

	// List returns bookings, newest first. An empty technicianID
	// lists all bookings, otherwise only the bookings of that
	// technician are returned.
	List(ctx context.Context, technicianID string) ([]model.Booking, error)

	// SetStatus updates the status of the id booking and returns it.
	// A missing booking is reported as a cerr.NotFound error.
	SetStatus(
		ctx context.Context, id uuid.UUID, s model.BookingStatus,
	) (*model.Booking, error)
}
