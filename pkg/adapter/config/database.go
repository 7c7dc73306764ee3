// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/circuitbhai/cbweb/pkg/adapter/db/postgres"
)

// DatabaseURLEnv names the environment variable which overrides the
// database section entirely when it is not empty.
const DatabaseURLEnv = "DATABASE_URL"

// Database contains the database related configuration settings.
type Database struct {
	Host    string // domain name or IP address of the DBMS server
	Port    int    // port number of the DBMS server
	Name    string // database name, like cbweb
	User    string // role name for connecting to the database
	SSLMode string `yaml:"ssl-mode,omitempty"` // libpq sslmode value

	// PasswordEnv names the environment variable which holds the
	// password of User. An empty PasswordEnv means no password.
	PasswordEnv string `yaml:"password-env,omitempty"`

	url string // resolved connection URL, including the password
}

// ValidateAndNormalize resolves the connection URL, either from the
// DATABASE_URL environment variable or from the d settings.
func (d *Database) ValidateAndNormalize() error {
	if u := os.Getenv(DatabaseURLEnv); u != "" {
		d.url = u
		return nil
	}
	if d.Host == "" {
		d.Host = "127.0.0.1"
	}
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	switch {
	case d.Port < 0 || d.Port > 65535:
		return fmt.Errorf("port (%d) is out of range", d.Port)
	case d.Name == "":
		return errors.New("name is required")
	case d.User == "":
		return errors.New("user is required")
	}
	u := url.URL{
		Scheme:   "postgresql",
		User:     url.User(d.User),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     d.Name,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	if d.PasswordEnv != "" {
		pass, ok := os.LookupEnv(d.PasswordEnv)
		if !ok {
			return fmt.Errorf(
				"password env var %q is not set", d.PasswordEnv,
			)
		}
		u.User = url.UserPassword(d.User, pass)
	}
	d.url = u.String()
	return nil
}

// ConnectionPool creates a database connection pool using the
// connection information which are kept in the `d` settings.
func (d Database) ConnectionPool(ctx context.Context) (*postgres.Pool, error) {
	if d.url == "" {
		return nil, errors.New("database settings are not validated")
	}
	p, err := postgres.NewPool(ctx, d.url)
	if err != nil {
		return nil, fmt.Errorf(
			"connecting to %s:%d/%s: %w", d.Host, d.Port, d.Name, err,
		)
	}
	return p, nil
}
