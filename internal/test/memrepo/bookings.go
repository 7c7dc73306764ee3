// Copyright (c) 2024 CircuitBhai
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package memrepo

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/circuitbhai/cbweb/pkg/core/cerr"
	"github.com/circuitbhai/cbweb/pkg/core/model"
	"github.com/circuitbhai/cbweb/pkg/core/repo"
	"github.com/google/uuid"
)

// Bookings is an in-memory repo.Bookings.
type Bookings struct {
	mu       sync.Mutex
	bookings []model.Booking
}

// Conn returns b itself.
func (b *Bookings) Conn(repo.Conn) repo.BookingsConnQueryer {
	return b
}

// Tx returns b itself.
func (b *Bookings) Tx(repo.Tx) repo.BookingsTxQueryer {
	return b
}

// Create stores a copy of bk.
func (b *Bookings) Create(_ context.Context, bk *model.Booking) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.bookings = append(b.bookings, *bk)
	return nil
}

// List returns the bookings, newest first.
func (b *Bookings) List(
	_ context.Context, technicianID string,
) ([]model.Booking, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var res []model.Booking
	for _, bk := range b.bookings {
		if technicianID == "" || bk.TechnicianID == technicianID {
			res = append(res, bk)
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})
	return res, nil
}

// GetForUpdate returns a copy of the id booking. Nothing is locked
// beyond the duration of this call.
func (b *Bookings) GetForUpdate(
	_ context.Context, id uuid.UUID,
) (*model.Booking, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, bk := range b.bookings {
		if bk.ID == id {
			return &bk, nil
		}
	}
	return nil, cerr.NotFound(fmt.Errorf("booking %v is not found", id))
}

// SetStatus updates the status of the id booking.
func (b *Bookings) SetStatus(
	_ context.Context, id uuid.UUID, s model.BookingStatus,
) (*model.Booking, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.bookings {
		if b.bookings[i].ID == id {
			b.bookings[i].Status = s
			bk := b.bookings[i]
			return &bk, nil
		}
	}
	return nil, cerr.NotFound(fmt.Errorf("booking %v is not found", id))
}
