// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package postgres is the PostgreSQL adapter of the repo interfaces.
// It wraps GORM (with the pgx driver) in the Pool, Conn, and Tx types
// and owns the database schema. Repositories live in sub-packages and
// are implemented once as generic functions over the Queryer type
// constraint, so they may run either on a connection or in a
// transaction.
package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/circuitbhai/cbweb/pkg/core/repo"
	"github.com/jackc/pgx/v5/pgconn"
)

// Schema holds the idempotent DDL statements of all tables.
//
//go:embed schema.sql
var Schema string

// InitSchema creates the missing tables and indices in a transaction.
func InitSchema(ctx context.Context, p repo.Pool) error {
	return p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			if _, err := tx.Exec(ctx, Schema); err != nil {
				return fmt.Errorf("applying schema: %w", err)
			}
			return nil
		})
	})
}

// IsUniqueViolation reports if err indicates a unique constraint
// violation (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// IsForeignKeyViolation reports if err indicates a foreign key
// constraint violation (SQLSTATE 23503).
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
