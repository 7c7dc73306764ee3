// Copyright (c) 2024 CircuitBhai
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrMissingField indicates that a mandatory field of a request was
// left empty. Callers wrap it with the field name.
var ErrMissingField = errors.New("field is required")

// BookingStatus is the life-cycle state of a booking. It is numeric
// in the core layer, but (de)serialized as a string in the adapters.
type BookingStatus int

// Valid values for the BookingStatus enum.
const (
	BookingStatusInvalid BookingStatus = iota // zero value is invalid

	BookingStatusPending   // created, not seen by the technician yet
	BookingStatusConfirmed // accepted by the technician
	BookingStatusCompleted // repair is done
	BookingStatusCancelled // withdrawn by either party
)

// ErrUnknownBookingStatus indicates that a string could not be parsed
// as a known booking status.
var ErrUnknownBookingStatus = errors.New("unknown booking status")

// String converts the status to its wire representation. Invalid
// statuses cause a panic since they can only come from a programming
// error.
func (s BookingStatus) String() string {
	switch s {
	case BookingStatusPending:
		return "pending"
	case BookingStatusConfirmed:
		return "confirmed"
	case BookingStatusCompleted:
		return "completed"
	case BookingStatusCancelled:
		return "cancelled"
	default:
		panic(fmt.Sprintf("invalid booking status: %d", int(s)))
	}
}

// ParseBookingStatus parses the wire representation of a status.
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch s {
	case "pending":
		return BookingStatusPending, nil
	case "confirmed":
		return BookingStatusConfirmed, nil
	case "completed":
		return BookingStatusCompleted, nil
	case "cancelled":
		return BookingStatusCancelled, nil
	default:
		return BookingStatusInvalid, ErrUnknownBookingStatus
	}
}

// BookingRequest carries what a customer submits for booking a
// technician. TechnicianID is either the identity of a place from an
// external source or the uuid of a registered technician.
type BookingRequest struct {
	CustomerName  string
	CustomerPhone string
	CustomerEmail string

	TechnicianID     string
	TechnicianName   string
	TechnicianSource string // empty means SourceGooglePlaces

	DeviceType    string
	Issue         string
	PreferredTime string
	Notes         string
}

// Validate reports the first mandatory field which is empty.
func (br BookingRequest) Validate() error {
	for _, f := range []struct{ name, value string }{
		{"name", br.CustomerName},
		{"phone", br.CustomerPhone},
		{"technicianId", br.TechnicianID},
		{"deviceType", br.DeviceType},
		{"issue", br.Issue},
	} {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%s: %w", f.name, ErrMissingField)
		}
	}
	return nil
}

// Booking is a persisted BookingRequest.
type Booking struct {
	ID uuid.UUID
	BookingRequest
	Status    BookingStatus
	BookedAt  time.Time
	CreatedAt time.Time
}
