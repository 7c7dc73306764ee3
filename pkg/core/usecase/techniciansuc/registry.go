// Copyright (c) 2024 CircuitBhai
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package techniciansuc

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

// Register use case stores the tr registration form as a pending
// technician. The stored technician is returned.
func (uc *UseCase) Register(
	ctx context.Context, tr model.TechnicianRegistration,
) (*model.Technician, error) {
	tr.Specialties = cleanList(tr.Specialties)
	tr.Certifications = cleanList(tr.Certifications)
	if err := tr.Validate(); err != nil {
		return nil, cerr.InvalidRequest(err)
	}
	t := &model.Technician{
		ID:                     uuid.New(),
		TechnicianRegistration: tr,
		Status:                 model.TechnicianStatusPending,
		CreatedAt:              time.Now().UTC(),
	}
	err := uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return uc.techsrp.Conn(c).Create(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	log.Info(
		ctx, "technician is registered",
		slog.String("id", t.ID.String()),
	)
	return t, nil
}

// ListApproved use case returns the approved technicians, best rated
// first. A non-empty specialty filters them by that specialty.
func (uc *UseCase) ListApproved(
	ctx context.Context, specialty string,
) (techs []model.Technician, err error) {
	specialty = strings.TrimSpace(specialty)
	err = uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		techs, err = uc.techsrp.Conn(c).ListApproved(ctx, specialty)
		return err
	})
	if err != nil {
		techs = nil
	}
	return
}

// Review use case approves or rejects the id technician. Approved
// technicians become visible to the listing and nearby searches.
func (uc *UseCase) Review(
	ctx context.Context, id uuid.UUID, s model.TechnicianStatus,
) (t *model.Technician, err error) {
	switch s {
	case model.TechnicianStatusPending,
		model.TechnicianStatusApproved,
		model.TechnicianStatusRejected:
	default:
		return nil, cerr.InvalidRequest(
			fmt.Errorf("unknown technician status %q", s),
		)
	}
	err = uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		t, err = uc.techsrp.Conn(c).SetStatus(ctx, id, s)
		return err
	})
	if err != nil {
		t = nil
	}
	return
}

// cleanList trims the items and drops the empty ones.
func cleanList(items []string) []string {
	var res []string
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			res = append(res, s)
		}
	}
	return res
}
