// Copyright (c) 2024 CircuitBhai
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package bookingsuc_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/circuitbhai/cbweb/internal/test/memrepo"
	"github.com/circuitbhai/cbweb/pkg/core/cerr"
	"github.com/circuitbhai/cbweb/pkg/core/model"
	"github.com/circuitbhai/cbweb/pkg/core/usecase/bookingsuc"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type BookingsTestSuite struct {
	suite.Suite

	Ctx   context.Context
	UC    *bookingsuc.UseCase
	clock time.Time
}

func TestBookingsTestSuite(t *testing.T) {
	suite.Run(t, new(BookingsTestSuite))
}

func (s *BookingsTestSuite) SetupTest() {
	s.Ctx = context.Background()
	s.clock = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	uc, err := bookingsuc.New(
		&memrepo.Pool{}, &memrepo.Bookings{},
		bookingsuc.WithClock(func() time.Time {
			s.clock = s.clock.Add(time.Minute)
			return s.clock
		}),
	)
	s.Require().NoError(err)
	s.UC = uc
}

func (s *BookingsTestSuite) request(techID string) model.BookingRequest {
	return model.BookingRequest{
		CustomerName:   "Asha",
		CustomerPhone:  "+91 98100 00000",
		CustomerEmail:  "asha@example.com",
		TechnicianID:   techID,
		TechnicianName: "ABC Mobile Repair",
		DeviceType:     "smartphone",
		Issue:          "battery drains quickly",
		PreferredTime:  "tomorrow morning",
	}
}

func (s *BookingsTestSuite) statusCode(err error) int {
	var ce *cerr.Error
	s.Require().ErrorAs(err, &ce)
	return ce.HTTPStatusCode
}

func (s *BookingsTestSuite) TestCreate() {
	b, err := s.UC.Create(s.Ctx, s.request("ChIJxxxxx"))
	s.Require().NoError(err)
	s.NotEqual(uuid.Nil, b.ID)
	s.Equal(model.BookingStatusPending, b.Status)
	s.Equal(model.SourceGooglePlaces, b.TechnicianSource)
	s.Equal(s.clock, b.BookedAt)
	s.Equal(b.BookedAt, b.CreatedAt)
}

func (s *BookingsTestSuite) TestCreateValidation() {
	br := s.request("ChIJxxxxx")
	br.CustomerPhone = ""
	_, err := s.UC.Create(s.Ctx, br)
	s.Equal(http.StatusBadRequest, s.statusCode(err))
	s.ErrorIs(err, model.ErrMissingField)

	br = s.request("not-a-uuid")
	br.TechnicianSource = model.SourceDirectory
	_, err = s.UC.Create(s.Ctx, br)
	s.Equal(http.StatusBadRequest, s.statusCode(err))

	br = s.request(uuid.NewString())
	br.TechnicianSource = model.SourceSynthetic
	_, err = s.UC.Create(s.Ctx, br)
	s.Equal(http.StatusBadRequest, s.statusCode(err))

	br.TechnicianSource = model.SourceDirectory
	_, err = s.UC.Create(s.Ctx, br)
	s.NoError(err)
}

func (s *BookingsTestSuite) TestListNewestFirst() {
	first, err := s.UC.Create(s.Ctx, s.request("t1"))
	s.Require().NoError(err)
	second, err := s.UC.Create(s.Ctx, s.request("t2"))
	s.Require().NoError(err)
	third, err := s.UC.Create(s.Ctx, s.request("t1"))
	s.Require().NoError(err)

	all, err := s.UC.List(s.Ctx, "")
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal(third.ID, all[0].ID)
	s.Equal(second.ID, all[1].ID)
	s.Equal(first.ID, all[2].ID)

	t1, err := s.UC.List(s.Ctx, " t1 ")
	s.Require().NoError(err)
	s.Require().Len(t1, 2)
	s.Equal(third.ID, t1[0].ID)
	s.Equal(first.ID, t1[1].ID)
}

func (s *BookingsTestSuite) TestUpdateStatus() {
	b, err := s.UC.Create(s.Ctx, s.request("t1"))
	s.Require().NoError(err)

	_, err = s.UC.UpdateStatus(s.Ctx, b.ID, model.BookingStatusPending)
	s.Equal(http.StatusBadRequest, s.statusCode(err))

	got, err := s.UC.UpdateStatus(s.Ctx, b.ID, model.BookingStatusConfirmed)
	s.Require().NoError(err)
	s.Equal(model.BookingStatusConfirmed, got.Status)

	got, err = s.UC.UpdateStatus(s.Ctx, b.ID, model.BookingStatusCompleted)
	s.Require().NoError(err)
	s.Equal(model.BookingStatusCompleted, got.Status)

	_, err = s.UC.UpdateStatus(s.Ctx, b.ID, model.BookingStatusCancelled)
	s.Equal(http.StatusConflict, s.statusCode(err))

	_, err = s.UC.UpdateStatus(s.Ctx, uuid.New(), model.BookingStatusConfirmed)
	s.Equal(http.StatusNotFound, s.statusCode(err))
}
