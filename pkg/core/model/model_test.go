// Copyright (c) 2024 CircuitBhai
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model_test

import (
	"math"
	"testing"

	"github.com/circuitbhai/cbweb/pkg/core/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinateValidate(t *testing.T) {
	valid := []model.Coordinate{
		{}, {Lat: 90, Lon: 180}, {Lat: -90, Lon: -180}, {Lat: 28.6, Lon: 77.2},
	}
	for _, c := range valid {
		assert.NoError(t, c.Validate(), "%+v", c)
	}
	invalid := []model.Coordinate{
		{Lat: 90.01}, {Lat: -91}, {Lon: 180.5}, {Lon: -181},
		{Lat: math.NaN()}, {Lon: math.Inf(1)},
	}
	for _, c := range invalid {
		assert.ErrorIs(t, c.Validate(), model.ErrInvalidCoordinate, "%+v", c)
	}
}

func TestCoordinateOffset(t *testing.T) {
	c := model.Coordinate{Lat: 89.99, Lon: 179.99}.Offset(0.05, 0.02)
	assert.Equal(t, 90.0, c.Lat)
	assert.InDelta(t, -179.99, c.Lon, 1e-9)
	assert.NoError(t, c.Validate())

	c = model.Coordinate{Lat: -89.99, Lon: -179.99}.Offset(-0.05, -0.03)
	assert.Equal(t, -90.0, c.Lat)
	assert.InDelta(t, 179.98, c.Lon, 1e-9)
}

func TestSearchRequestNormalize(t *testing.T) {
	origin := model.Coordinate{Lat: 1, Lon: 2}
	req, err := model.SearchRequest{Origin: &origin}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, float64(model.DefaultRadiusMeters), req.RadiusMeters)
	assert.Equal(t, model.DefaultMaxResults, req.MaxResults)
	assert.NotSame(t, &origin, req.Origin)
	assert.Equal(t, origin, *req.Origin)

	_, err = model.SearchRequest{}.Normalize()
	assert.ErrorIs(t, err, model.ErrMissingOrigin)
	_, err = model.SearchRequest{
		Origin: &origin, RadiusMeters: math.NaN(),
	}.Normalize()
	assert.ErrorIs(t, err, model.ErrInvalidRadius)
	for _, r := range []float64{-1, 5999.9, math.Inf(1)} {
		_, err = model.SearchRequest{Origin: &origin, RadiusMeters: r}.Normalize()
		assert.ErrorIs(t, err, model.ErrInvalidRadius, "radius %v", r)
	}
	req, err = model.SearchRequest{
		Origin: &origin, RadiusMeters: model.MinRadiusMeters,
	}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, float64(model.MinRadiusMeters), req.RadiusMeters)
	_, err = model.SearchRequest{Origin: &origin, MaxResults: -1}.Normalize()
	assert.ErrorIs(t, err, model.ErrInvalidMaxResults)
	_, err = model.SearchRequest{
		Origin: &model.Coordinate{Lat: 100},
	}.Normalize()
	assert.ErrorIs(t, err, model.ErrInvalidCoordinate)
}

func TestMapLink(t *testing.T) {
	rc := model.RankedCandidate{
		ID: "ChIJ a&b", Source: model.SourceGooglePlaces,
	}
	assert.Equal(
		t,
		"https://www.google.com/maps/place/?q=place_id:ChIJ+a%26b",
		rc.MapLink(),
	)
	rc.Synthetic = true
	assert.Empty(t, rc.MapLink())
	rc = model.RankedCandidate{ID: "x", Source: model.SourceDirectory}
	assert.Empty(t, rc.MapLink())
	rc = model.RankedCandidate{Source: model.SourceGooglePlaces}
	assert.Empty(t, rc.MapLink())
}

func TestBookingStatus(t *testing.T) {
	for _, s := range []model.BookingStatus{
		model.BookingStatusPending,
		model.BookingStatusConfirmed,
		model.BookingStatusCompleted,
		model.BookingStatusCancelled,
	} {
		parsed, err := model.ParseBookingStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
	_, err := model.ParseBookingStatus("lost")
	assert.ErrorIs(t, err, model.ErrUnknownBookingStatus)
	assert.Panics(t, func() { _ = model.BookingStatusInvalid.String() })
}

func TestBookingRequestValidate(t *testing.T) {
	br := model.BookingRequest{
		CustomerName:  "Asha",
		CustomerPhone: "+91 98100 00000",
		TechnicianID:  "ChIJxyz",
		DeviceType:    "phone",
		Issue:         "cracked screen",
	}
	require.NoError(t, br.Validate())
	br.Issue = "  "
	err := br.Validate()
	assert.ErrorIs(t, err, model.ErrMissingField)
	assert.ErrorContains(t, err, "issue")
}

func TestTechnicianRegistration(t *testing.T) {
	tr := model.TechnicianRegistration{
		Name:        "Fixers",
		Email:       "fix@example.com",
		Phone:       "123",
		Address:     "Main road",
		Specialties: []string{"phones"},
	}
	require.NoError(t, tr.Validate())

	tr.Location = &model.Coordinate{Lat: 200}
	assert.ErrorIs(t, tr.Validate(), model.ErrInvalidCoordinate)
	tr.Location = nil
	tr.Specialties = nil
	assert.ErrorIs(t, tr.Validate(), model.ErrMissingField)
	tr.Specialties = []string{"tv"}
	tr.ExperienceYears = -1
	assert.Error(t, tr.Validate())
}

func TestTechnicianCandidate(t *testing.T) {
	tech := &model.Technician{ID: uuid.New()}
	tech.Name = "Fixers"
	_, ok := tech.Candidate()
	assert.False(t, ok)

	tech.Location = &model.Coordinate{Lat: 1, Lon: 2}
	tech.TotalReviews = 3
	c, ok := tech.Candidate()
	require.True(t, ok)
	assert.Equal(t, tech.ID.String(), c.ID)
	assert.Equal(t, model.SourceDirectory, c.Source)
	assert.Equal(t, 3, c.ReviewCount)
	assert.Nil(t, c.Rating)
	assert.NotSame(t, tech.Location, c.Coordinate)
}
