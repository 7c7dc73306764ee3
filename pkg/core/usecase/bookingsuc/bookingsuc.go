// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package bookingsuc contains the bookings UseCase which records the
// technicians chosen by customers and lets technicians follow up
// their bookings.
package bookingsuc

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/circuitbhai/cbweb/pkg/core/cerr"
	"github.com/circuitbhai/cbweb/pkg/core/log"
	"github.com/circuitbhai/cbweb/pkg/core/model"
	"github.com/circuitbhai/cbweb/pkg/core/repo"
	"github.com/google/uuid"
)

// UseCase represents the bookings use case. It holds a database
// connection pool and the bookings repository.
type UseCase struct {
	pool       repo.Pool
	bookingsrp repo.Bookings

	now func() time.Time
}

// New instantiates a bookings use case.
func New(p repo.Pool, b repo.Bookings, opts ...Option) (*UseCase, error) {
	uc := &UseCase{pool: p, bookingsrp: b}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	if uc.now == nil {
		uc.now = time.Now
	}
	return uc, nil
}

// Create use case validates and stores br as a pending booking.
// A technician which is chosen from the local directory must be
// identified by its uuid, while other sources may use any non-empty
// identity. An empty source is taken as model.SourceGooglePlaces.
func (uc *UseCase) Create(
	ctx context.Context, br model.BookingRequest,
) (*model.Booking, error) {
	br.TechnicianSource = strings.TrimSpace(br.TechnicianSource)
	if br.TechnicianSource == "" {
		br.TechnicianSource = model.SourceGooglePlaces
	}
	if err := br.Validate(); err != nil {
		return nil, cerr.InvalidRequest(err)
	}
	switch br.TechnicianSource {
	case model.SourceGooglePlaces, model.SourceElastic:
	case model.SourceDirectory:
		if _, err := uuid.Parse(br.TechnicianID); err != nil {
			return nil, cerr.InvalidRequest(
				fmt.Errorf("technicianId is not a uuid: %w", err),
			)
		}
	default:
		return nil, cerr.InvalidRequest(fmt.Errorf(
			"technician source %q is not bookable", br.TechnicianSource,
		))
	}
	now := uc.now().UTC()
	b := &model.Booking{
		ID:             uuid.New(),
		BookingRequest: br,
		Status:         model.BookingStatusPending,
		BookedAt:       now,
		CreatedAt:      now,
	}
	err := uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return uc.bookingsrp.Conn(c).Create(ctx, b)
	})
	if err != nil {
		return nil, err
	}
	log.Info(
		ctx, "booking is created",
		slog.String("id", b.ID.String()),
		slog.String("source", br.TechnicianSource),
	)
	return b, nil
}

// List use case returns the bookings, newest first. A non-empty
// technicianID only lists the bookings of that technician.
func (uc *UseCase) List(
	ctx context.Context, technicianID string,
) (bookings []model.Booking, err error) {
	technicianID = strings.TrimSpace(technicianID)
	err = uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		bookings, err = uc.bookingsrp.Conn(c).List(ctx, technicianID)
		return err
	})
	if err != nil {
		bookings = nil
	}
	return
}

// UpdateStatus use case moves the id booking to the s status.
// A cancelled or completed booking is final and may not change.
func (uc *UseCase) UpdateStatus(
	ctx context.Context, id uuid.UUID, s model.BookingStatus,
) (b *model.Booking, err error) {
	if s <= model.BookingStatusPending || s > model.BookingStatusCancelled {
		return nil, cerr.InvalidRequest(
			fmt.Errorf("a booking may not be moved to %d status", int(s)),
		)
	}
	err = uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := uc.bookingsrp.Tx(tx)
			cur, err := q.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if cur.Status == model.BookingStatusCompleted ||
				cur.Status == model.BookingStatusCancelled {
				return cerr.Conflict(fmt.Errorf(
					"booking %v is already %s", id, cur.Status,
				))
			}
			b, err = q.SetStatus(ctx, id, s)
			return err
		})
	})
	if err != nil {
		b = nil
	}
	return
}
