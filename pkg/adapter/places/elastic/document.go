// Copyright (c) 2024 CircuitBhai
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package elastic

import (
	"github.com/circuitbhai/cbweb/pkg/core/model"
)

// mapping is the index body which is used by EnsureIndex.
const mapping = `{
  "mappings": {
    "properties": {
      "name":          {"type": "text"},
      "address":       {"type": "text"},
      "phone":         {"type": "keyword"},
      "specialties":   {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "description":   {"type": "text"},
      "rating":        {"type": "float"},
      "total_reviews": {"type": "integer"},
      "location":      {"type": "geo_point"}
    }
  }
}`

// document is the indexed form of an approved technician.
type document struct {
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	Phone        string    `json:"phone,omitempty"`
	Specialties  []string  `json:"specialties,omitempty"`
	Description  string    `json:"description,omitempty"`
	Rating       *float64  `json:"rating,omitempty"`
	TotalReviews int       `json:"total_reviews"`
	Location     *geoPoint `json:"location,omitempty"`
}

type geoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func newDocument(t *model.Technician) document {
	d := document{
		Name:         t.Name,
		Address:      t.Address,
		Phone:        t.Phone,
		Specialties:  t.Specialties,
		Description:  t.Description,
		Rating:       t.Rating,
		TotalReviews: t.TotalReviews,
	}
	if t.Location != nil {
		d.Location = &geoPoint{Lat: t.Location.Lat, Lon: t.Location.Lon}
	}
	return d
}

func (d document) candidate(id string) model.Candidate {
	c := model.Candidate{
		ID:          id,
		Name:        d.Name,
		Address:     d.Address,
		Rating:      d.Rating,
		ReviewCount: d.TotalReviews,
		Source:      model.SourceElastic,
	}
	if d.Location != nil {
		coord := model.Coordinate{Lat: d.Location.Lat, Lon: d.Location.Lon}
		if coord.Validate() == nil {
			c.Coordinate = &coord
		}
	}
	return c
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string   `json:"_id"`
			Source document `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}
