// Copyright (c) 2024 CircuitBhai
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package google is a place source adapter for the Google Places
// Nearby Search API. Requests are sent by the googlemaps client and
// its results are converted to model.Candidate instances right away,
// so the rest of the service never sees the provider types.
package google

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/circuitbhai/cbweb/pkg/core/model"
	"googlemaps.github.io/maps"
)

// DefaultBaseURL is the scheme and host of the Places web service.
const DefaultBaseURL = "https://maps.googleapis.com"

// ErrMissingAPIKey is returned by New when no API key is given.
var ErrMissingAPIKey = errors.New("google places api key is empty")

// Source is a repo.PlaceSource which queries the Nearby Search API.
// It is safe to be used concurrently.
type Source struct {
	apiKey string
	client *maps.Client
}

type options struct {
	baseURL    string
	httpClient *http.Client
}

// Option is a functional option for the Source.
type Option func(o *options) error

// WithBaseURL replaces the DefaultBaseURL, e.g., for tests.
func WithBaseURL(u string) Option {
	return func(o *options) error {
		pu, err := url.Parse(u)
		if err != nil {
			return fmt.Errorf("parsing base url: %w", err)
		}
		if pu.Scheme != "http" && pu.Scheme != "https" {
			return fmt.Errorf("base url scheme %q is not http(s)", pu.Scheme)
		}
		o.baseURL = strings.TrimSuffix(u, "/")
		return nil
	}
}

// WithHTTPClient replaces the default client which has a 15 seconds
// timeout.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) error {
		if c == nil {
			return errors.New("http client is nil")
		}
		o.httpClient = c
		return nil
	}
}

// New instantiates a Source. The apiKey is mandatory and is kept
// private; it is never logged nor included in the returned errors.
func New(apiKey string, opts ...Option) (*Source, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	o := options{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	c, err := maps.NewClient(
		maps.WithAPIKey(apiKey),
		maps.WithBaseURL(o.baseURL),
		maps.WithHTTPClient(o.httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("maps.NewClient: %w", redact(err, apiKey))
	}
	return &Source{apiKey: apiKey, client: c}, nil
}

// Name returns model.SourceGooglePlaces.
func (s *Source) Name() string {
	return model.SourceGooglePlaces
}

// Nearby sends one Nearby Search request for q.
// The ZERO_RESULTS status yields an empty result, while other non-OK
// statuses (such as REQUEST_DENIED or OVER_QUERY_LIMIT) and the
// transport or decoding failures are returned as errors.
func (s *Source) Nearby(
	ctx context.Context, q model.PlaceQuery,
) ([]model.Candidate, error) {
	resp, err := s.client.NearbySearch(ctx, nearbyRequest(q))
	if err != nil {
		return statusResult(redact(err, s.apiKey))
	}
	return candidates(resp.Results), nil
}

func nearbyRequest(q model.PlaceQuery) *maps.NearbySearchRequest {
	return &maps.NearbySearchRequest{
		Location: &maps.LatLng{Lat: q.Origin.Lat, Lng: q.Origin.Lon},
		Radius:   uint(math.Round(q.RadiusMeters)),
		Keyword:  q.Keyword,
		Type:     maps.PlaceType(q.Type),
	}
}

// redact drops the request URL (which carries the API key) from the
// *url.Error values which are returned by the http.Client, and masks
// the key if it still shows up in the message.
func redact(err error, apiKey string) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		err = fmt.Errorf("%s: %w", ue.Op, ue.Err)
	}
	if msg := err.Error(); strings.Contains(msg, apiKey) {
		return errors.New(strings.ReplaceAll(msg, apiKey, "<redacted>"))
	}
	return err
}
