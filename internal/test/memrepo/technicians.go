// Copyright (c) 2024 CircuitBhai
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package memrepo

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/circuitbhai/cbweb/pkg/core/cerr"
	"github.com/circuitbhai/cbweb/pkg/core/geomatch"
	"github.com/circuitbhai/cbweb/pkg/core/model"
	"github.com/circuitbhai/cbweb/pkg/core/repo"
	"github.com/google/uuid"
)

// Technicians is an in-memory repo.Technicians.
type Technicians struct {
	mu    sync.Mutex
	techs []model.Technician

	// NearCalls counts the ListApprovedNear calls.
	NearCalls int
}

// Conn returns t itself.
func (t *Technicians) Conn(repo.Conn) repo.TechniciansConnQueryer {
	return t
}

// Tx returns t itself.
func (t *Technicians) Tx(repo.Tx) repo.TechniciansTxQueryer {
	return t
}

// Create stores a copy of tech.
func (t *Technicians) Create(_ context.Context, tech *model.Technician) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, old := range t.techs {
		if strings.EqualFold(old.Email, tech.Email) {
			return cerr.Conflict(
				fmt.Errorf("email %q is already registered", tech.Email),
			)
		}
	}
	t.techs = append(t.techs, *tech)
	return nil
}

// ListApproved returns the approved technicians, best rated first.
func (t *Technicians) ListApproved(
	_ context.Context, specialty string,
) ([]model.Technician, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	var res []model.Technician
	for _, tech := range t.techs {
		if tech.Status != model.TechnicianStatusApproved {
			continue
		}
		if specialty != "" && !slices.Contains(tech.Specialties, specialty) {
			continue
		}
		res = append(res, tech)
	}
	sort.SliceStable(res, func(i, j int) bool {
		ri, rj := res[i].Rating, res[j].Rating
		if ri == nil || rj == nil {
			return ri != nil
		}
		return *ri > *rj
	})
	return res, nil
}

// ListApprovedNear returns the approved technicians in the bounding
// box of the search circle.
func (t *Technicians) ListApprovedNear(
	_ context.Context, origin model.Coordinate, radiusMeters float64,
) ([]model.Technician, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.NearCalls++
	box := geomatch.BoundingBox(origin, radiusMeters)
	var res []model.Technician
	for _, tech := range t.techs {
		if tech.Status == model.TechnicianStatusApproved &&
			tech.Location != nil && box.Contains(*tech.Location) {
			res = append(res, tech)
		}
	}
	return res, nil
}

// SetStatus updates the status of the id technician.
func (t *Technicians) SetStatus(
	_ context.Context, id uuid.UUID, s model.TechnicianStatus,
) (*model.Technician, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.techs {
		if t.techs[i].ID == id {
			t.techs[i].Status = s
			tech := t.techs[i]
			return &tech, nil
		}
	}
	return nil, cerr.NotFound(fmt.Errorf("technician %v is not found", id))
}

// Put stores tech as is, bypassing the Create checks.
func (t *Technicians) Put(tech model.Technician) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.techs = append(t.techs, tech)
}
