// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package techniciansrs

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/circuitbhai/cbweb/pkg/adapter/restful/gin/serdser"
	"github.com/circuitbhai/cbweb/pkg/core/model"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
)

// StrCoordinate is the origin of a nearby search as it is given in the
// query string. Values are validated as strings first, so a missing
// parameter can be told apart from a zero coordinate.
type StrCoordinate struct {
	Lat string `form:"lat" binding:"required,latitude"`
	Lng string `form:"lng" binding:"required,longitude"`
}

// ToModel parses sc as a model.Coordinate.
func (sc StrCoordinate) ToModel() (c model.Coordinate, err error) {
	c.Lat, err = strconv.ParseFloat(sc.Lat, 64)
	if err != nil {
		return
	}
	c.Lon, err = strconv.ParseFloat(sc.Lng, 64)
	return
}

func (rs *resource) DserNearbyReq(c *gin.Context) (*model.Coordinate, bool) {
	req := &StrCoordinate{}
	if ok := serdser.Bind(c, req, binding.Query); !ok {
		return nil, false
	}
	origin, err := req.ToModel()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return nil, false
	}
	return &origin, true
}

type rawRegistrationReq struct {
	Name           string   `json:"name" binding:"required"`
	Email          string   `json:"email" binding:"required,email"`
	Phone          string   `json:"phone" binding:"required"`
	Address        string   `json:"address" binding:"required"`
	Latitude       *float64 `json:"latitude" binding:"required_with=Longitude,omitempty,latitude"`
	Longitude      *float64 `json:"longitude" binding:"required_with=Latitude,omitempty,longitude"`
	Specialties    []string `json:"specialties" binding:"required,min=1"`
	Experience     string   `json:"experience"`
	LicenseNumber  string   `json:"licenseNumber"`
	Certifications []string `json:"certifications"`
	Description    string   `json:"description"`
}

func (rs *resource) DserRegistrationReq(
	c *gin.Context,
) (*model.TechnicianRegistration, bool) {
	req := &rawRegistrationReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil, false
	}
	tr := &model.TechnicianRegistration{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        req.Address,
		Specialties:    req.Specialties,
		LicenseNumber:  req.LicenseNumber,
		Certifications: req.Certifications,
		Description:    req.Description,
	}
	if req.Latitude != nil && req.Longitude != nil {
		tr.Location = &model.Coordinate{
			Lat: *req.Latitude, Lon: *req.Longitude,
		}
	}
	// unparsable experience is taken as no experience
	if n, err := strconv.Atoi(strings.TrimSpace(req.Experience)); err == nil {
		tr.ExperienceYears = n
	}
	return tr, true
}

// StatusURI is the path of a status update request.
type StatusURI struct {
	ID string `uri:"tid" binding:"required,uuid"`
}

type rawReviewReq struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

type reviewReq struct {
	id     uuid.UUID
	status model.TechnicianStatus
}

func (rs *resource) DserReviewReq(c *gin.Context) (*reviewReq, bool) {
	uri := &StatusURI{}
	if ok := serdser.BindURI(c, uri); !ok {
		return nil, false
	}
	req := &rawReviewReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil, false
	}
	id, err := uuid.Parse(uri.ID)
	if err != nil {
		var errs map[string][]string
		serdser.AddErr(&errs, "tid", "Path param tid is not UUID.")
		c.JSON(http.StatusBadRequest, errs)
		return nil, false
	}
	return &reviewReq{id: id, status: model.TechnicianStatus(req.Status)}, true
}

// Location is a point in the {"lat": .., "lng": ..} format.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Geometry wraps a Location like the maps provider responses do.
type Geometry struct {
	Location Location `json:"location"`
}

// NearbyItem is one ranked technician. The identity, address, and
// review count are published under two names each, so both naming
// conventions of the clients are supported.
type NearbyItem struct {
	ID               string   `json:"id"`
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	Vicinity         string   `json:"vicinity"`
	Address          string   `json:"address"`
	Rating           float64  `json:"rating"`
	UserRatingsTotal int      `json:"user_ratings_total"`
	TotalReviews     int      `json:"totalReviews"`
	Geometry         Geometry `json:"geometry"`
	DistanceMeters   float64  `json:"distance_meters"`
	DistanceKm       float64  `json:"distance_km"`
	Verified         bool     `json:"verified"`
	Synthetic        bool     `json:"synthetic"`
	Source           string   `json:"source"`
	MapLink          string   `json:"map_link,omitempty"`
}

// NearbyResp is the nearby search response. Synthetic is true if the
// results are illustrative placeholders and describe no real venue.
type NearbyResp struct {
	Results   []NearbyItem `json:"results"`
	Synthetic bool         `json:"synthetic"`
}

// SerNearbyResp converts a nearby search result to its response.
func SerNearbyResp(res *model.NearbyResult) *NearbyResp {
	items := make([]NearbyItem, len(res.Results))
	for i, rc := range res.Results {
		items[i] = NearbyItem{
			ID:               rc.ID,
			PlaceID:          rc.ID,
			Name:             rc.Name,
			Vicinity:         rc.Address,
			Address:          rc.Address,
			Rating:           rc.Rating,
			UserRatingsTotal: rc.ReviewCount,
			TotalReviews:     rc.ReviewCount,
			Geometry: Geometry{Location: Location{
				Lat: rc.Coordinate.Lat, Lng: rc.Coordinate.Lon,
			}},
			DistanceMeters: rc.DistanceMeters,
			DistanceKm:     rc.DistanceKm(),
			Verified:       rc.Verified,
			Synthetic:      rc.Synthetic,
			Source:         rc.Source,
			MapLink:        rc.MapLink(),
		}
	}
	return &NearbyResp{Results: items, Synthetic: res.Synthetic}
}

// TechnicianResp is a registered technician, using the column names
// of the technicians table.
type TechnicianResp struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	BusinessAddress string    `json:"business_address"`
	Latitude        *float64  `json:"latitude"`
	Longitude       *float64  `json:"longitude"`
	Specialties     []string  `json:"specialties"`
	ExperienceYears int       `json:"experience_years"`
	LicenseNumber   string    `json:"license_number,omitempty"`
	Certifications  []string  `json:"certifications"`
	Description     string    `json:"description,omitempty"`
	Status          string    `json:"status"`
	Rating          *float64  `json:"rating"`
	TotalReviews    int       `json:"total_reviews"`
	CreatedAt       time.Time `json:"created_at"`
}

// SerTechnician converts t to its response.
func SerTechnician(t *model.Technician) TechnicianResp {
	tr := TechnicianResp{
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
	if t.Location != nil {
		lat, lon := t.Location.Lat, t.Location.Lon
		tr.Latitude, tr.Longitude = &lat, &lon
	}
	if tr.Specialties == nil {
		tr.Specialties = []string{}
	}
	if tr.Certifications == nil {
		tr.Certifications = []string{}
	}
	return tr
}
