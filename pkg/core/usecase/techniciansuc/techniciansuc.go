// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package techniciansuc contains the technicians UseCase which supports
// the technicians related use cases:
//  1. Finding nearby technicians by querying all place sources and
//     ranking their venues,
//  2. Registering a repair shop in the local directory,
//  3. Listing and reviewing the registered technicians.
package techniciansuc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/circuitbhai/cbweb/pkg/core/cerr"
	"github.com/circuitbhai/cbweb/pkg/core/geomatch"
	"github.com/circuitbhai/cbweb/pkg/core/log"
	"github.com/circuitbhai/cbweb/pkg/core/model"
	"github.com/circuitbhai/cbweb/pkg/core/repo"
	"golang.org/x/sync/errgroup"
)

// Defaults of the optional settings.
const (
	DefaultConcurrency  = 4
	DefaultQueryTimeout = 10 * time.Second
)

// UseCase represents the technicians use case. It holds a database
// connection pool, the technicians repository, the place sources which
// are queried for nearby venues, and the search settings.
type UseCase struct {
	pool    repo.Pool
	techsrp repo.Technicians
	sources []repo.PlaceSource

	radius      float64
	maxResults  int
	terms       []model.SearchTerm
	concurrency int
	timeout     time.Duration
}

// New instantiates a technicians use case.
// The sources are queried in the given order for each nearby search,
// so the venues of earlier sources win over their duplicates which
// are reported by later sources.
func New(
	p repo.Pool,
	t repo.Technicians,
	sources []repo.PlaceSource,
	opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{
		pool:    p,
		techsrp: t,
		sources: append([]repo.PlaceSource(nil), sources...),
	}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if uc.radius == 0 {
		uc.radius = model.DefaultRadiusMeters
	}
	if uc.maxResults == 0 {
		uc.maxResults = model.DefaultMaxResults
	}
	if uc.terms == nil {
		uc.terms = model.DefaultSearchTerms
	}
	if uc.concurrency == 0 {
		uc.concurrency = DefaultConcurrency
	}
	if uc.timeout == 0 {
		uc.timeout = DefaultQueryTimeout
	}
	return uc, nil
}

// Nearby use case finds the technicians around the origin location.
// A nil or out of range origin is reported as a cerr.InvalidRequest
// error without querying any place source.
//
// Each search term is sent to each place source concurrently. Failed
// queries are logged and skipped, and only if all of them fail, a
// cerr.UpstreamUnavailable error is returned. Venues are ranked by
// the geomatch package, so if no real venue is found nearby, the
// returned result contains synthetic entries and has its Synthetic
// field set.
func (uc *UseCase) Nearby(
	ctx context.Context, origin *model.Coordinate,
) (*model.NearbyResult, error) {
	req, err := model.SearchRequest{
		Origin:       origin,
		RadiusMeters: uc.radius,
		MaxResults:   uc.maxResults,
	}.Normalize()
	if err != nil {
		return nil, cerr.InvalidRequest(err)
	}
	cands, err := uc.gather(ctx, *req.Origin, req.RadiusMeters)
	if err != nil {
		return nil, err
	}
	ranked, err := geomatch.Match(req, cands)
	if err != nil {
		return nil, err
	}
	res := &model.NearbyResult{
		Results:   ranked,
		Synthetic: len(ranked) > 0 && ranked[0].Synthetic,
	}
	log.Info(
		ctx, "nearby technicians are ranked",
		log.Coord("origin", *req.Origin),
		slog.Int("candidates", len(cands)),
		slog.Int("results", len(ranked)),
		slog.Bool("synthetic", res.Synthetic),
	)
	return res, nil
}

type query struct {
	src repo.PlaceSource
	pq  model.PlaceQuery
}

// gather runs all place source queries and concatenates their venues
// in the queries order, independent of their completion order.
func (uc *UseCase) gather(
	ctx context.Context, origin model.Coordinate, radius float64,
) ([]model.Candidate, error) {
	queries := make([]query, 0, len(uc.sources)*len(uc.terms))
	for _, src := range uc.sources {
		terms := uc.terms
		if ts, ok := src.(repo.TermlessPlaceSource); ok && ts.IgnoresTerms() {
			terms = terms[:1]
		}
		for _, t := range terms {
			queries = append(queries, query{src: src, pq: model.PlaceQuery{
				Origin:       origin,
				RadiusMeters: radius,
				Keyword:      t.Keyword,
				Type:         t.Type,
			}})
		}
	}
	outs := make([][]model.Candidate, len(queries))
	errs := make([]error, len(queries))
	var g errgroup.Group
	g.SetLimit(uc.concurrency)
	for i, q := range queries {
		i, q := i, q
		g.Go(func() error {
			qctx, cancel := context.WithTimeout(ctx, uc.timeout)
			defer cancel()
			outs[i], errs[i] = q.src.Nearby(qctx, q.pq)
			return nil
		})
	}
	_ = g.Wait() // goroutines report their errors in errs
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("gathering venues: %w", err)
	}

	failed := 0
	n := 0
	for i, err := range errs {
		if err != nil {
			failed++
			log.Warn(
				ctx, "place source query failed",
				slog.String("source", queries[i].src.Name()),
				slog.String("keyword", queries[i].pq.Keyword),
				slog.String("type", queries[i].pq.Type),
				log.Err("err", err),
			)
			continue
		}
		n += len(outs[i])
	}
	if failed > 0 && failed == len(queries) {
		err := errors.Join(errs...)
		log.Error(
			ctx, "all place source queries failed",
			slog.Int("queries", failed), log.Err("err", err),
		)
		return nil, cerr.UpstreamUnavailable(
			fmt.Errorf("all %d place source queries failed: %w", failed, err),
		)
	}
	cands := make([]model.Candidate, 0, n)
	for i, out := range outs {
		if errs[i] == nil {
			cands = append(cands, out...)
		}
	}
	return cands, nil
}
