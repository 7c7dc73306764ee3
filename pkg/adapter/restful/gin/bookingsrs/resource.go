// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package bookingsrs realizes the bookings resource, allowing the
// bookings creation, listing, and status REST APIs to be accepted and
// delegated to the bookings use cases respectively.
package bookingsrs

import (
	"net/http"

	"github.com/circuitbhai/cbweb/pkg/adapter/restful/gin/serdser"
	"github.com/circuitbhai/cbweb/pkg/core/usecase/bookingsuc"
	"github.com/gin-gonic/gin"
)

type resource struct {
	bookings *bookingsuc.UseCase
}

// Register instantiates a resource adapting the bookings use case
// instance with the relevant REST APIs including:
//  1. POST request to /api/cbweb/v1/bookings
//     in order to book a technician,
//  2. GET request to /api/cbweb/v1/bookings?technicianId=..
//     in order to list the bookings, newest first,
//  3. PATCH request to /api/cbweb/v1/bookings/:bid/status
//     in order to confirm, complete, or cancel a booking.
func Register(r *gin.RouterGroup, bookings *bookingsuc.UseCase) {
	rs := &resource{bookings: bookings}
	r.POST("bookings", rs.Create)
	r.GET("bookings", rs.List)
	r.PATCH("bookings/:bid/status", rs.UpdateStatus)
}

func (rs *resource) Create(c *gin.Context) {
	br, ok := rs.DserCreateReq(c)
	if !ok {
		return
	}
	b, err := rs.bookings.Create(c, *br)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"booking": SerBooking(b),
		"message": "Booking created successfully",
	})
}

func (rs *resource) List(c *gin.Context) {
	bookings, err := rs.bookings.List(c, c.Query("technicianId"))
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	items := make([]BookingResp, len(bookings))
	for i := range bookings {
		items[i] = SerBooking(&bookings[i])
	}
	c.JSON(http.StatusOK, gin.H{"bookings": items})
}

func (rs *resource) UpdateStatus(c *gin.Context) {
	req, ok := rs.DserUpdateStatusReq(c)
	if !ok {
		return
	}
	b, err := rs.bookings.UpdateStatus(c, req.id, req.status)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": SerBooking(b)})
}
