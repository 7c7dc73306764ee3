// Copyright (c) 2024 CircuitBhai
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/circuitbhai/cbweb/pkg/adapter/config/settings"
	"github.com/circuitbhai/cbweb/pkg/adapter/places/elastic"
	"github.com/circuitbhai/cbweb/pkg/adapter/places/google"
	"github.com/circuitbhai/cbweb/pkg/core/repo"
	"github.com/circuitbhai/cbweb/pkg/core/usecase/techniciansuc"
)

// Places lists the place sources. The enabled sources are queried in
// the google, elastic, directory order, so venues of earlier sources
// win over their duplicates.
type Places struct {
	Google    Google
	Elastic   Elastic
	Directory Directory
}

// Google contains the Google Places API settings.
type Google struct {
	Enabled *bool // defaults to true

	// APIKeyEnv names the environment variable which holds the API
	// key. It defaults to GOOGLE_PLACES_API_KEY and there is no default
	// key, so an enabled source without a key is rejected.
	APIKeyEnv string `yaml:"api-key-env,omitempty"`

	BaseURL string `yaml:"base-url,omitempty"` // scheme and host, for tests and proxies

	apiKey string
}

// DefaultGoogleAPIKeyEnv is the default value of Google.APIKeyEnv.
const DefaultGoogleAPIKeyEnv = "GOOGLE_PLACES_API_KEY"

// Elastic contains the Elasticsearch technicians index settings.
type Elastic struct {
	Enabled   *bool // defaults to false
	Addresses []string
	Username  string `yaml:",omitempty"`
	Index     string `yaml:",omitempty"`
	MaxHits   *int   `yaml:"max-hits,omitempty"`

	// PasswordEnv names the environment variable which holds the
	// password of Username.
	PasswordEnv string `yaml:"password-env,omitempty"`

	password string
}

// Directory controls the registered technicians place source.
type Directory struct {
	Enabled *bool // defaults to true
}

// ValidateAndNormalize fills the defaults and resolves the secrets of
// the enabled sources.
func (p *Places) ValidateAndNormalize() error {
	settings.Default(&p.Google.Enabled, true)
	settings.Default(&p.Elastic.Enabled, false)
	settings.Default(&p.Directory.Enabled, true)
	if err := p.Google.validateAndNormalize(); err != nil {
		return fmt.Errorf("google: %w", err)
	}
	if err := p.Elastic.validateAndNormalize(); err != nil {
		return fmt.Errorf("elastic: %w", err)
	}
	return nil
}

func (g *Google) validateAndNormalize() error {
	if g.APIKeyEnv == "" {
		g.APIKeyEnv = DefaultGoogleAPIKeyEnv
	}
	if !*g.Enabled {
		return nil
	}
	g.apiKey = os.Getenv(g.APIKeyEnv)
	if g.apiKey == "" {
		return fmt.Errorf("api key env var %q is empty", g.APIKeyEnv)
	}
	return nil
}

func (e *Elastic) validateAndNormalize() error {
	if e.Index == "" {
		e.Index = elastic.DefaultIndex
	}
	settings.Default(&e.MaxHits, elastic.DefaultMaxHits)
	if *e.MaxHits <= 0 {
		return fmt.Errorf("max-hits (%d) is not positive", *e.MaxHits)
	}
	if e.PasswordEnv != "" {
		pass, ok := os.LookupEnv(e.PasswordEnv)
		if !ok && *e.Enabled {
			return fmt.Errorf(
				"password env var %q is not set", e.PasswordEnv,
			)
		}
		e.password = pass
	}
	if *e.Enabled && len(e.Addresses) == 0 {
		return errors.New("addresses are required")
	}
	return nil
}

// NewSource instantiates the Google Places source.
func (g Google) NewSource() (*google.Source, error) {
	var opts []google.Option
	if g.BaseURL != "" {
		opts = append(opts, google.WithBaseURL(g.BaseURL))
	}
	return google.New(g.apiKey, opts...)
}

// NewSource instantiates the Elasticsearch source. It can be used as
// a place source and as the technicians index of the sync command.
func (e Elastic) NewSource() (*elastic.Source, error) {
	return elastic.New(elastic.Config{
		Addresses: e.Addresses,
		Username:  e.Username,
		Password:  e.password,
		Index:     e.Index,
		MaxHits:   *e.MaxHits,
	})
}

// NewSources instantiates the enabled place sources. The p pool and
// t technicians repository are used by the directory source.
func (p Places) NewSources(
	pool repo.Pool, t repo.Technicians,
) ([]repo.PlaceSource, error) {
	var sources []repo.PlaceSource
	if *p.Google.Enabled {
		s, err := p.Google.NewSource()
		if err != nil {
			return nil, fmt.Errorf("creating google source: %w", err)
		}
		sources = append(sources, s)
	}
	if *p.Elastic.Enabled {
		s, err := p.Elastic.NewSource()
		if err != nil {
			return nil, fmt.Errorf("creating elastic source: %w", err)
		}
		sources = append(sources, s)
	}
	if *p.Directory.Enabled {
		sources = append(sources, techniciansuc.NewDirectorySource(pool, t))
	}
	return sources, nil
}
