// Copyright (c) 2024 CircuitBhai
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"fmt"
	"math"
	"time"

	"github.com/circuitbhai/cbweb/pkg/adapter/config/settings"
	"github.com/circuitbhai/cbweb/pkg/core/model"
	"github.com/circuitbhai/cbweb/pkg/core/repo"
	"github.com/circuitbhai/cbweb/pkg/core/usecase/bookingsuc"
	"github.com/circuitbhai/cbweb/pkg/core/usecase/techniciansuc"
)

// Usecases contains the configuration settings for all use cases.
type Usecases struct {
	Technicians Technicians // technicians use cases related settings
}

// ValidateAndNormalize checks the ranges of all use case settings.
func (u *Usecases) ValidateAndNormalize() error {
	if err := u.Technicians.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("technicians: %w", err)
	}
	return nil
}

// Technicians contains the configuration settings for the technicians
// use cases. Fields are defined as pointers, so it is possible to
// detect if they are or are not initialized. Missing settings take
// their defaults in the use case layer. Each setting may be bounded
// by its -minimum and -maximum settings, where a missing bound means
// that the setting is not bounded in that direction.
type Technicians struct {
	RadiusMeters    *float64 `yaml:"radius-meters"`
	MinRadiusMeters *float64 `yaml:"radius-meters-minimum"`
	MaxRadiusMeters *float64 `yaml:"radius-meters-maximum"`

	MaxResults    *int `yaml:"max-results"`
	MinMaxResults *int `yaml:"max-results-minimum"`
	MaxMaxResults *int `yaml:"max-results-maximum"`

	Concurrency    *int `yaml:"concurrency"`
	MaxConcurrency *int `yaml:"concurrency-maximum"`

	// QueryTimeout bounds each place source query.
	QueryTimeout *settings.Duration `yaml:"query-timeout"`

	SearchTerms []SearchTerm `yaml:"search-terms"`
}

// SearchTerm is one (keyword, type) pair which is sent to the place
// sources. At least one of them must be set.
type SearchTerm struct {
	Keyword string `yaml:",omitempty"`
	Type    string `yaml:",omitempty"`
}

// ValidateAndNormalize verifies that each setting is in its range.
// The radius and its minimum bound may not be less than
// model.MinRadiusMeters.
func (t *Technicians) ValidateAndNormalize() error {
	if m := t.MinRadiusMeters; m != nil && *m < model.MinRadiusMeters {
		return fmt.Errorf(
			"radius-meters-minimum (%v) is less than %d",
			*m, model.MinRadiusMeters,
		)
	}
	if err := settings.VerifyRange(
		&t.RadiusMeters, t.MinRadiusMeters, t.MaxRadiusMeters,
	); err != nil {
		return fmt.Errorf(
			"VerifyRange(radius-meters, minb=%v, maxb=%v): %w",
			t.MinRadiusMeters, t.MaxRadiusMeters, err,
		)
	}
	if r := t.RadiusMeters; r != nil &&
		(math.IsInf(*r, 0) || !(*r >= model.MinRadiusMeters)) {
		return fmt.Errorf(
			"radius-meters (%v) is not a finite number of at least %d",
			*r, model.MinRadiusMeters,
		)
	}
	if err := settings.VerifyRange(
		&t.MaxResults, t.MinMaxResults, t.MaxMaxResults,
	); err != nil {
		return fmt.Errorf(
			"VerifyRange(max-results, minb=%v, maxb=%v): %w",
			t.MinMaxResults, t.MaxMaxResults, err,
		)
	}
	one := 1
	if err := settings.VerifyRange(
		&t.Concurrency, &one, t.MaxConcurrency,
	); err != nil {
		return fmt.Errorf(
			"VerifyRange(concurrency, maxb=%v): %w", t.MaxConcurrency, err,
		)
	}
	if d := t.QueryTimeout; d != nil && *d <= 0 {
		return fmt.Errorf("query-timeout (%v) is not positive", time.Duration(*d))
	}
	for i, st := range t.SearchTerms {
		if st.Keyword == "" && st.Type == "" {
			return fmt.Errorf("search term #%d is empty", i)
		}
	}
	return nil
}

// NewUseCase instantiates a new technicians use case based on the
// settings in the t struct.
func (t Technicians) NewUseCase(
	p repo.Pool, r repo.Technicians, sources []repo.PlaceSource,
) (*techniciansuc.UseCase, error) {
	opts := make([]techniciansuc.Option, 0, 5)
	if t.RadiusMeters != nil {
		opts = append(opts, techniciansuc.WithRadius(*t.RadiusMeters))
	}
	if t.MaxResults != nil {
		opts = append(opts, techniciansuc.WithMaxResults(*t.MaxResults))
	}
	if t.Concurrency != nil {
		opts = append(opts, techniciansuc.WithConcurrency(*t.Concurrency))
	}
	if t.QueryTimeout != nil {
		d := time.Duration(*t.QueryTimeout)
		opts = append(opts, techniciansuc.WithQueryTimeout(d))
	}
	if len(t.SearchTerms) > 0 {
		terms := make([]model.SearchTerm, len(t.SearchTerms))
		for i, st := range t.SearchTerms {
			terms[i] = model.SearchTerm{Keyword: st.Keyword, Type: st.Type}
		}
		opts = append(opts, techniciansuc.WithSearchTerms(terms...))
	}
	return techniciansuc.New(p, r, sources, opts...)
}

// NewBookingsUseCase instantiates a new bookings use case. Bookings
// have no configurable settings yet.
func (u Usecases) NewBookingsUseCase(
	p repo.Pool, r repo.Bookings,
) (*bookingsuc.UseCase, error) {
	return bookingsuc.New(p, r)
}
