// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package bookingsrp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/circuitbhai/cbweb/pkg/adapter/db/postgres"
	"github.com/circuitbhai/cbweb/pkg/core/cerr"
	"github.com/circuitbhai/cbweb/pkg/core/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gBooking struct {
	ID                       uuid.UUID `gorm:"primaryKey;type:uuid"`
	CustomerName             string
	CustomerPhone            string
	CustomerEmail            string
	TechnicianID             *uuid.UUID `gorm:"type:uuid"`
	ExternalTechnicianID     *string
	ExternalTechnicianName   string
	ExternalTechnicianSource string
	DeviceType               string
	IssueDescription         string
	PreferredTime            string
	Notes                    *string
	Status                   string
	BookingDate              time.Time
	CreatedAt                time.Time
}

func (gb *gBooking) TableName() string {
	return "bookings"
}

// fromModel keeps registered technicians in the technician_id foreign
// key column and other technicians in the external_technician_id one.
func fromModel(b *model.Booking) (*gBooking, error) {
	gb := &gBooking{
		ID:                       b.ID,
		CustomerName:             b.CustomerName,
		CustomerPhone:            b.CustomerPhone,
		CustomerEmail:            b.CustomerEmail,
		ExternalTechnicianName:   b.TechnicianName,
		ExternalTechnicianSource: b.TechnicianSource,
		DeviceType:               b.DeviceType,
		IssueDescription:         b.Issue,
		PreferredTime:            b.PreferredTime,
		Status:                   b.Status.String(),
		BookingDate:              b.BookedAt,
		CreatedAt:                b.CreatedAt,
	}
	if b.TechnicianSource == model.SourceDirectory {
		id, err := uuid.Parse(b.TechnicianID)
		if err != nil {
			return nil, cerr.InvalidRequest(
				fmt.Errorf("technician id: %w", err),
			)
		}
		gb.TechnicianID = &id
	} else {
		extID := b.TechnicianID
		gb.ExternalTechnicianID = &extID
	}
	if b.Notes != "" {
		notes := b.Notes
		gb.Notes = &notes
	}
	return gb, nil
}

func (gb *gBooking) Model() (*model.Booking, error) {
	status, err := model.ParseBookingStatus(gb.Status)
	if err != nil {
		return nil, fmt.Errorf("booking %v: %w", gb.ID, err)
	}
	b := &model.Booking{
		ID: gb.ID,
		BookingRequest: model.BookingRequest{
			CustomerName:     gb.CustomerName,
			CustomerPhone:    gb.CustomerPhone,
			CustomerEmail:    gb.CustomerEmail,
			TechnicianName:   gb.ExternalTechnicianName,
			TechnicianSource: gb.ExternalTechnicianSource,
			DeviceType:       gb.DeviceType,
			Issue:            gb.IssueDescription,
			PreferredTime:    gb.PreferredTime,
		},
		Status:    status,
		BookedAt:  gb.BookingDate,
		CreatedAt: gb.CreatedAt,
	}
	switch {
	case gb.TechnicianID != nil:
		b.TechnicianID = gb.TechnicianID.String()
	case gb.ExternalTechnicianID != nil:
		b.TechnicianID = *gb.ExternalTechnicianID
	}
	if gb.Notes != nil {
		b.Notes = *gb.Notes
	}
	return b, nil
}

// Create inserts b as a new row. Booking an unknown registered
// technician is reported as a cerr.NotFound error.
func Create[Q postgres.Queryer](
	ctx context.Context, q Q, b *model.Booking,
) error {
	gb, err := fromModel(b)
	if err != nil {
		return err
	}
	gdb := q.GORM(ctx).Create(gb)
	if err := gdb.Error; err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return cerr.NotFound(
				fmt.Errorf("technician %s is not registered", b.TechnicianID),
			)
		}
		return fmt.Errorf("query: %w", err)
	}
	return nil
}

// List queries the bookings, newest first. A non-empty technicianID
// matches both registered and external technician ids.
func List[Q postgres.Queryer](
	ctx context.Context, q Q, technicianID string,
) ([]model.Booking, error) {
	var gbs []gBooking
	gdb := q.GORM(ctx)
	if technicianID != "" {
		gdb = gdb.Where(
			"technician_id::text = ? OR external_technician_id = ?",
			technicianID, technicianID,
		)
	}
	gdb = gdb.Order("created_at DESC").Order("id").Find(&gbs)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	bookings := make([]model.Booking, 0, len(gbs))
	for i := range gbs {
		b, err := gbs[i].Model()
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, nil
}

// GetForUpdate queries the id booking and locks its row.
func GetForUpdate(
	ctx context.Context, tx *postgres.Tx, id uuid.UUID,
) (*model.Booking, error) {
	var gb gBooking
	gdb := tx.ForUpdate(ctx).Where("id = ?", id).Take(&gb)
	if err := gdb.Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cerr.NotFound(fmt.Errorf("booking %v is not found", id))
		}
		return nil, fmt.Errorf("query: %w", err)
	}
	return gb.Model()
}

// SetStatus updates the status of the id booking.
func SetStatus[Q postgres.Queryer](
	ctx context.Context, q Q, id uuid.UUID, s model.BookingStatus,
) (*model.Booking, error) {
	var gbs []gBooking
	gdb := q.GORM(ctx).Model(&gbs).Clauses(clause.Returning{}).Where(
		"id = ?", id,
	).Update("status", s.String())
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if n := len(gbs); n != 1 {
		return nil, cerr.NotFound(
			fmt.Errorf("expected one booking, but got %d", n),
		)
	}
	return gbs[0].Model()
}
