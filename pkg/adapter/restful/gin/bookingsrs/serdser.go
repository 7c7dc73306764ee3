// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package bookingsrs

import (
	"net/http"
	"time"

	"github.com/circuitbhai/cbweb/pkg/adapter/restful/gin/serdser"
	"github.com/circuitbhai/cbweb/pkg/core/model"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
)

type rawCreateReq struct {
	Name             string `json:"name" binding:"required"`
	Phone            string `json:"phone" binding:"required"`
	Email            string `json:"email" binding:"omitempty,email"`
	TechnicianID     string `json:"technicianId" binding:"required"`
	TechnicianName   string `json:"technicianName"`
	TechnicianSource string `json:"technicianSource"`
	DeviceType       string `json:"deviceType" binding:"required"`
	Issue            string `json:"issue" binding:"required"`
	PreferredTime    string `json:"preferredTime"`
	Notes            string `json:"notes"`
}

func (rs *resource) DserCreateReq(
	c *gin.Context,
) (*model.BookingRequest, bool) {
	req := &rawCreateReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil, false
	}
	return &model.BookingRequest{
		CustomerName:     req.Name,
		CustomerPhone:    req.Phone,
		CustomerEmail:    req.Email,
		TechnicianID:     req.TechnicianID,
		TechnicianName:   req.TechnicianName,
		TechnicianSource: req.TechnicianSource,
		DeviceType:       req.DeviceType,
		Issue:            req.Issue,
		PreferredTime:    req.PreferredTime,
		Notes:            req.Notes,
	}, true
}

// StatusURI is the path of a status update request.
type StatusURI struct {
	ID string `uri:"bid" binding:"required,uuid"`
}

type rawUpdateStatusReq struct {
	Status string `json:"status" binding:"required,oneof=confirmed completed cancelled"`
}

type updateStatusReq struct {
	id     uuid.UUID
	status model.BookingStatus
}

func (rs *resource) DserUpdateStatusReq(
	c *gin.Context,
) (*updateStatusReq, bool) {
	uri := &StatusURI{}
	if ok := serdser.BindURI(c, uri); !ok {
		return nil, false
	}
	req := &rawUpdateStatusReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil, false
	}
	val := &updateStatusReq{}
	var errs map[string][]string
	var err error
	val.id, err = uuid.Parse(uri.ID)
	serdser.Assert(&errs, err == nil, "bid", "Path param bid is not UUID.")
	val.status, err = model.ParseBookingStatus(req.Status)
	if err != nil {
		serdser.AddErr(&errs, "status", err.Error())
	}
	if errs != nil {
		c.JSON(http.StatusBadRequest, errs)
		return nil, false
	}
	return val, true
}

// BookingResp is a booking, using the column names of the bookings
// table. A technician from the local directory is reported by
// TechnicianID, while other technicians are reported by the
// ExternalTechnicianID.
type BookingResp struct {
	ID                       uuid.UUID `json:"id"`
	CustomerName             string    `json:"customer_name"`
	CustomerPhone            string    `json:"customer_phone"`
	CustomerEmail            string    `json:"customer_email,omitempty"`
	TechnicianID             *string   `json:"technician_id"`
	ExternalTechnicianID     *string   `json:"external_technician_id"`
	ExternalTechnicianName   string    `json:"external_technician_name,omitempty"`
	ExternalTechnicianSource string    `json:"external_technician_source"`
	DeviceType               string    `json:"device_type"`
	IssueDescription         string    `json:"issue_description"`
	PreferredTime            string    `json:"preferred_time,omitempty"`
	Status                   string    `json:"status"`
	BookingDate              time.Time `json:"booking_date"`
	Notes                    *string   `json:"notes"`
	CreatedAt                time.Time `json:"created_at"`
}

// SerBooking converts b to its response.
func SerBooking(b *model.Booking) BookingResp {
	br := BookingResp{
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
	id := b.TechnicianID
	if b.TechnicianSource == model.SourceDirectory {
		br.TechnicianID = &id
	} else {
		br.ExternalTechnicianID = &id
	}
	if b.Notes != "" {
		notes := b.Notes
		br.Notes = &notes
	}
	return br
}
