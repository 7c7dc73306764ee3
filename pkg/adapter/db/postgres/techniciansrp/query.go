// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package techniciansrp

import (
	"context"
	"fmt"
	"time"

	"github.com/circuitbhai/cbweb/pkg/adapter/db/postgres"
	"github.com/circuitbhai/cbweb/pkg/core/cerr"
	"github.com/circuitbhai/cbweb/pkg/core/geomatch"
	"github.com/circuitbhai/cbweb/pkg/core/model"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

type gTechnician struct {
	ID              uuid.UUID `gorm:"primaryKey;type:uuid"`
	Name            string
	Email           string
	Phone           string
	BusinessAddress string
	Lat             *float64
	Lon             *float64
	Specialties     []string `gorm:"serializer:json;type:jsonb"`
	ExperienceYears int
	LicenseNumber   string
	Certifications  []string `gorm:"serializer:json;type:jsonb"`
	Description     string
	Status          string
	Rating          *float64
	TotalReviews    int
	CreatedAt       time.Time
}

func (gt *gTechnician) TableName() string {
	return "technicians"
}

func fromModel(t *model.Technician) *gTechnician {
	gt := &gTechnician{
		ID:              t.ID,
		Name:            t.Name,
		Email:           t.Email,
		Phone:           t.Phone,
		BusinessAddress: t.Address,
		Specialties:     t.Specialties,
		ExperienceYears: t.ExperienceYears,
		LicenseNumber:   t.LicenseNumber,
		Certifications:  t.Certifications,
		Description:     t.Description,
		Status:          string(t.Status),
		Rating:          t.Rating,
		TotalReviews:    t.TotalReviews,
		CreatedAt:       t.CreatedAt,
	}
	if gt.Specialties == nil {
		gt.Specialties = []string{}
	}
	if gt.Certifications == nil {
		gt.Certifications = []string{}
	}
	if t.Location != nil {
		lat, lon := t.Location.Lat, t.Location.Lon
		gt.Lat, gt.Lon = &lat, &lon
	}
	return gt
}

func (gt *gTechnician) Model() *model.Technician {
	t := &model.Technician{
		ID: gt.ID,
		TechnicianRegistration: model.TechnicianRegistration{
			Name:            gt.Name,
			Email:           gt.Email,
			Phone:           gt.Phone,
			Address:         gt.BusinessAddress,
			Specialties:     gt.Specialties,
			ExperienceYears: gt.ExperienceYears,
			LicenseNumber:   gt.LicenseNumber,
			Certifications:  gt.Certifications,
			Description:     gt.Description,
		},
		Status:       model.TechnicianStatus(gt.Status),
		Rating:       gt.Rating,
		TotalReviews: gt.TotalReviews,
		CreatedAt:    gt.CreatedAt,
	}
	if gt.Lat != nil && gt.Lon != nil {
		t.Location = &model.Coordinate{Lat: *gt.Lat, Lon: *gt.Lon}
	}
	return t
}

func models(gts []gTechnician) []model.Technician {
	techs := make([]model.Technician, 0, len(gts))
	for i := range gts {
		techs = append(techs, *gts[i].Model())
	}
	return techs
}

// Create inserts t as a new row.
func Create[Q postgres.Queryer](
	ctx context.Context, q Q, t *model.Technician,
) error {
	gdb := q.GORM(ctx).Create(fromModel(t))
	if err := gdb.Error; err != nil {
		if postgres.IsUniqueViolation(err) {
			return cerr.Conflict(
				fmt.Errorf("email %q is already registered", t.Email),
			)
		}
		return fmt.Errorf("query: %w", err)
	}
	return nil
}

// ListApproved queries the approved technicians, best rated first.
func ListApproved[Q postgres.Queryer](
	ctx context.Context, q Q, specialty string,
) ([]model.Technician, error) {
	var gts []gTechnician
	gdb := q.GORM(ctx).Where("status = ?", string(model.TechnicianStatusApproved))
	if specialty != "" {
		b, err := json.Marshal([]string{specialty})
		if err != nil {
			return nil, fmt.Errorf("encoding specialty: %w", err)
		}
		gdb = gdb.Where("specialties @> ?::jsonb", string(b))
	}
	gdb = gdb.Order("rating DESC NULLS LAST").Order("created_at").Find(&gts)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return models(gts), nil
}

// ListApprovedNear queries the approved technicians which are located
// in the bounding box of the circle around origin.
func ListApprovedNear[Q postgres.Queryer](
	ctx context.Context, q Q, origin model.Coordinate, radiusMeters float64,
) ([]model.Technician, error) {
	box := geomatch.BoundingBox(origin, radiusMeters)
	var gts []gTechnician
	gdb := q.GORM(ctx).Where(
		"status = ?", string(model.TechnicianStatusApproved),
	).Where(
		"lat BETWEEN ? AND ?", box.MinLat, box.MaxLat,
	).Where(
		"lon BETWEEN ? AND ?", box.MinLon, box.MaxLon,
	).Find(&gts)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return models(gts), nil
}

// SetStatus updates the status of the id technician.
func SetStatus[Q postgres.Queryer](
	ctx context.Context, q Q, id uuid.UUID, s model.TechnicianStatus,
) (*model.Technician, error) {
	var gts []gTechnician
	gdb := q.GORM(ctx).Model(&gts).Clauses(clause.Returning{}).Where(
		"id = ?", id,
	).Update("status", string(s))
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if n := len(gts); n != 1 {
		return nil, cerr.NotFound(
			fmt.Errorf("expected one technician, but got %d", n),
		)
	}
	return gts[0].Model(), nil
}
