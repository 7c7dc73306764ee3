// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package techniciansuc

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/circuitbhai/cbweb/pkg/core/model"
)

// Option is a functional option for the technicians use case.
type Option func(uc *UseCase) error

// WithRadius option configures the search radius of the nearby
// technicians use case in meters. It must be a finite number which is
// not less than model.MinRadiusMeters.
func WithRadius(meters float64) Option {
	return func(uc *UseCase) error {
		if math.IsNaN(meters) || math.IsInf(meters, 0) {
			return fmt.Errorf("radius (%v) is not finite", meters)
		}
		if meters < model.MinRadiusMeters {
			return fmt.Errorf(
				"radius (%v) is less than %d", meters, model.MinRadiusMeters,
			)
		}
		if uc.radius != 0 {
			return errors.New("radius is already configured")
		}
		uc.radius = meters
		return nil
	}
}

// WithMaxResults option bounds the number of nearby technicians which
// are reported for each search.
func WithMaxResults(n int) Option {
	return func(uc *UseCase) error {
		if n <= 0 {
			return fmt.Errorf("max results (%d) is not positive", n)
		}
		if uc.maxResults != 0 {
			return errors.New("max results is already configured")
		}
		uc.maxResults = n
		return nil
	}
}

// WithSearchTerms option replaces the model.DefaultSearchTerms.
// Each term is queried from every place source.
func WithSearchTerms(terms ...model.SearchTerm) Option {
	return func(uc *UseCase) error {
		if len(terms) == 0 {
			return errors.New("no search term is given")
		}
		if uc.terms != nil {
			return errors.New("search terms are already configured")
		}
		for i, t := range terms {
			if strings.TrimSpace(t.Keyword) == "" &&
				strings.TrimSpace(t.Type) == "" {
				return fmt.Errorf("search term #%d is empty", i)
			}
		}
		uc.terms = append([]model.SearchTerm(nil), terms...)
		return nil
	}
}

// WithConcurrency option limits the number of place source queries
// which may be in flight at the same time for one search.
func WithConcurrency(n int) Option {
	return func(uc *UseCase) error {
		if n <= 0 {
			return fmt.Errorf("concurrency (%d) is not positive", n)
		}
		if uc.concurrency != 0 {
			return errors.New("concurrency is already configured")
		}
		uc.concurrency = n
		return nil
	}
}

// WithQueryTimeout option limits the duration of each place source
// query. A timed out query counts as a failed one.
func WithQueryTimeout(d time.Duration) Option {
	return func(uc *UseCase) error {
		if d <= 0 {
			return fmt.Errorf("query timeout (%v) is not positive", d)
		}
		if uc.timeout != 0 {
			return errors.New("query timeout is already configured")
		}
		uc.timeout = d
		return nil
	}
}
