// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package techniciansrs realizes the technicians resource, allowing
// the nearby search, registration, listing, and review REST APIs to be
// accepted and delegated to the technicians use cases respectively.
package techniciansrs

import (
	"net/http"

	"github.com/circuitbhai/cbweb/pkg/adapter/restful/gin/serdser"
	"github.com/circuitbhai/cbweb/pkg/core/usecase/techniciansuc"
	"github.com/gin-gonic/gin"
)

type resource struct {
	techs *techniciansuc.UseCase
}

// Register instantiates a resource adapting the technicians use case
// instance with the relevant REST APIs including:
//  1. GET request to /api/cbweb/v1/technicians/nearby?lat=..&lng=..
//     in order to find and rank the technicians around a location,
//  2. GET request to /api/cbweb/v1/technicians?specialty=..
//     in order to list the approved registered technicians,
//  3. POST request to /api/cbweb/v1/technicians
//     in order to apply for being listed as a technician,
//  4. PATCH request to /api/cbweb/v1/technicians/:tid/status
//     in order to approve or reject an application.
func Register(r *gin.RouterGroup, techs *techniciansuc.UseCase) {
	rs := &resource{techs: techs}
	r.GET("technicians/nearby", rs.Nearby)
	r.GET("technicians", rs.ListApproved)
	r.POST("technicians", rs.Register)
	r.PATCH("technicians/:tid/status", rs.Review)
}

func (rs *resource) Nearby(c *gin.Context) {
	origin, ok := rs.DserNearbyReq(c)
	if !ok {
		return
	}
	res, err := rs.techs.Nearby(c, origin)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, SerNearbyResp(res))
}

func (rs *resource) ListApproved(c *gin.Context) {
	techs, err := rs.techs.ListApproved(c, c.Query("specialty"))
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	items := make([]TechnicianResp, len(techs))
	for i := range techs {
		items[i] = SerTechnician(&techs[i])
	}
	c.JSON(http.StatusOK, gin.H{"technicians": items})
}

func (rs *resource) Register(c *gin.Context) {
	tr, ok := rs.DserRegistrationReq(c)
	if !ok {
		return
	}
	t, err := rs.techs.Register(c, *tr)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"technician": SerTechnician(t),
		"message":    "Registration submitted successfully",
	})
}

func (rs *resource) Review(c *gin.Context) {
	req, ok := rs.DserReviewReq(c)
	if !ok {
		return
	}
	t, err := rs.techs.Review(c, req.id, req.status)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"technician": SerTechnician(t)})
}
