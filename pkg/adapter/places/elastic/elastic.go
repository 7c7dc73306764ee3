// Copyright (c) 2024 CircuitBhai
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package elastic is a place source adapter which searches an
// Elasticsearch index of the approved technicians. Documents carry a
// geo_point location, so the nearby search is a geo_distance filtered
// query which is sorted by the distance from the origin.
// The same index is filled by the BulkIndex method, so the directory
// of registered technicians can be served without the database.
package elastic

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/circuitbhai/cbweb/pkg/core/log"
	"github.com/circuitbhai/cbweb/pkg/core/model"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/goccy/go-json"
)

// DefaultIndex is the index name which is used when none is given.
const DefaultIndex = "cbweb-technicians"

// DefaultMaxHits bounds the number of documents which are fetched for
// each nearby search when no other bound is configured.
const DefaultMaxHits = 50

// Config describes how an Elasticsearch cluster may be reached.
type Config struct {
	Addresses []string
	Username  string
	Password  string
	Index     string
	MaxHits   int

	// Transport replaces the default http transport, e.g., for tests.
	Transport http.RoundTripper
}

// Source is a repo.PlaceSource backed by an Elasticsearch index.
// It is safe to be used concurrently.
type Source struct {
	es      *elasticsearch.Client
	index   string
	maxHits int
}

// New instantiates a Source. No request is sent before the first use.
func New(cfg Config) (*Source, error) {
	if len(cfg.Addresses) == 0 {
		return nil, errors.New("no elasticsearch address is given")
	}
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
		Transport: cfg.Transport,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch.NewClient: %w", err)
	}
	s := &Source{es: es, index: cfg.Index, maxHits: cfg.MaxHits}
	if s.index == "" {
		s.index = DefaultIndex
	}
	if s.maxHits <= 0 {
		s.maxHits = DefaultMaxHits
	}
	return s, nil
}

// Name returns model.SourceElastic.
func (s *Source) Name() string {
	return model.SourceElastic
}

// EnsureIndex creates the index with its mapping if it is missing.
func (s *Source) EnsureIndex(ctx context.Context) error {
	res, err := s.es.Indices.Exists(
		[]string{s.index}, s.es.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("checking index existence: %w", err)
	}
	res.Body.Close()
	switch res.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
	default:
		return fmt.Errorf("checking index existence: status %d", res.StatusCode)
	}
	res, err = s.es.Indices.Create(
		s.index,
		s.es.Indices.Create.WithContext(ctx),
		s.es.Indices.Create.WithBody(bytes.NewReader([]byte(mapping))),
	)
	if err != nil {
		return fmt.Errorf("creating index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("creating index: %s", res.String())
	}
	log.Info(ctx, "elasticsearch index is created", slog.String("index", s.index))
	return nil
}

// BulkIndex stores the technicians which have a location, using their
// uuid as the document id. The number of indexed documents is returned.
func (s *Source) BulkIndex(
	ctx context.Context, techs []model.Technician,
) (int, error) {
	var failed atomic.Int64
	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:         s.index,
		Client:        s.es,
		NumWorkers:    2,
		FlushBytes:    1 << 20,
		FlushInterval: 30 * time.Second,
		Refresh:       "true",
	})
	if err != nil {
		return 0, fmt.Errorf("creating the bulk indexer: %w", err)
	}
	for i := range techs {
		t := &techs[i]
		if t.Location == nil {
			continue
		}
		body, err := json.Marshal(newDocument(t))
		if err != nil {
			_ = bi.Close(ctx)
			return 0, fmt.Errorf("encoding technician %v: %w", t.ID, err)
		}
		err = bi.Add(ctx, esutil.BulkIndexerItem{
			Action:     "index",
			DocumentID: t.ID.String(),
			Body:       bytes.NewReader(body),
			OnFailure: func(
				ctx context.Context,
				item esutil.BulkIndexerItem,
				res esutil.BulkIndexerResponseItem,
				err error,
			) {
				failed.Add(1)
				if err == nil {
					err = fmt.Errorf("%s: %s", res.Error.Type, res.Error.Reason)
				}
				log.Warn(
					ctx, "indexing a technician failed",
					slog.String("id", item.DocumentID), log.Err("err", err),
				)
			},
		})
		if err != nil {
			_ = bi.Close(ctx)
			return 0, fmt.Errorf("adding technician %v: %w", t.ID, err)
		}
	}
	if err := bi.Close(ctx); err != nil {
		return 0, fmt.Errorf("closing the bulk indexer: %w", err)
	}
	stats := bi.Stats()
	if n := failed.Load(); n > 0 {
		return int(stats.NumIndexed), fmt.Errorf("%d documents failed", n)
	}
	return int(stats.NumIndexed), nil
}

// Nearby searches the documents which are located in the q circle,
// nearest first. A non-empty keyword must match the name, the
// specialties, or the description of a document.
func (s *Source) Nearby(
	ctx context.Context, q model.PlaceQuery,
) ([]model.Candidate, error) {
	body, err := json.Marshal(s.searchBody(q))
	if err != nil {
		return nil, fmt.Errorf("encoding query: %w", err)
	}
	res, err := s.es.Search(
		s.es.Search.WithContext(ctx),
		s.es.Search.WithIndex(s.index),
		s.es.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil, fmt.Errorf("searching: status %d", res.StatusCode)
	}
	var sr searchResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}
	cands := make([]model.Candidate, 0, len(sr.Hits.Hits))
	for _, h := range sr.Hits.Hits {
		cands = append(cands, h.Source.candidate(h.ID))
	}
	return cands, nil
}

type object = map[string]any

func (s *Source) searchBody(q model.PlaceQuery) object {
	origin := object{"lat": q.Origin.Lat, "lon": q.Origin.Lon}
	var must any = object{"match_all": object{}}
	if q.Keyword != "" {
		must = object{"multi_match": object{
			"query":    q.Keyword,
			"fields":   []string{"name^2", "specialties", "description"},
			"operator": "or",
		}}
	}
	return object{
		"size": s.maxHits,
		"query": object{"bool": object{
			"must": must,
			"filter": object{"geo_distance": object{
				"distance": strconv.FormatFloat(q.RadiusMeters, 'f', 0, 64) + "m",
				"location": origin,
			}},
		}},
		"sort": []object{{"_geo_distance": object{
			"location":      origin,
			"order":         "asc",
			"unit":          "m",
			"distance_type": "arc",
		}}},
	}
}
