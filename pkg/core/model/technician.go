// Copyright (c) 2024 CircuitBhai
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TechnicianStatus is the review state of a registered technician.
// Only approved technicians are listed or matched.
type TechnicianStatus string

// Known technician statuses.
const (
	TechnicianStatusPending  TechnicianStatus = "pending"
	TechnicianStatusApproved TechnicianStatus = "approved"
	TechnicianStatusRejected TechnicianStatus = "rejected"
)

// TechnicianRegistration is the application form of a repair shop.
// Location is optional, but technicians without a location can not be
// matched by the nearby search.
type TechnicianRegistration struct {
	Name            string
	Email           string
	Phone           string
	Address         string
	Location        *Coordinate
	Specialties     []string
	ExperienceYears int
	LicenseNumber   string
	Certifications  []string
	Description     string
}

// Validate checks the mandatory fields and the optional location.
func (tr TechnicianRegistration) Validate() error {
	for _, f := range []struct{ name, value string }{
		{"name", tr.Name},
		{"email", tr.Email},
		{"phone", tr.Phone},
		{"address", tr.Address},
	} {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%s: %w", f.name, ErrMissingField)
		}
	}
	if len(tr.Specialties) == 0 {
		return fmt.Errorf("specialties: %w", ErrMissingField)
	}
	if tr.ExperienceYears < 0 {
		return fmt.Errorf("experience years (%d) is negative", tr.ExperienceYears)
	}
	if tr.Location != nil {
		if err := tr.Location.Validate(); err != nil {
			return fmt.Errorf("location: %w", err)
		}
	}
	return nil
}

// Technician is a registered repair shop.
type Technician struct {
	ID uuid.UUID
	TechnicianRegistration
	Status       TechnicianStatus
	Rating       *float64
	TotalReviews int
	CreatedAt    time.Time
}

// Candidate converts an approved technician with a location into a
// place candidate. The ok return value is false if t has no location.
func (t *Technician) Candidate() (c Candidate, ok bool) {
	if t.Location == nil {
		return c, false
	}
	loc := *t.Location
	c = Candidate{
		ID:          t.ID.String(),
		Name:        t.Name,
		Address:     t.Address,
		Coordinate:  &loc,
		Rating:      t.Rating,
		ReviewCount: t.TotalReviews,
		Source:      SourceDirectory,
	}
	return c, true
}
