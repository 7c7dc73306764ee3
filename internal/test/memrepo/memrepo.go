// Copyright (c) 2024 CircuitBhai
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package memrepo is an internal helper for the test packages.
// It provides in-memory implementations of the pkg/core/repo
// interfaces, so the use cases can be tested without a database.
// The Pool, Conn, and Tx types carry no state and only pass the
// handlers through, while the repositories keep their rows in memory
// guarded by a mutex.
package memrepo

import (
	"context"
	"errors"

	"github.com/circuitbhai/cbweb/pkg/core/repo"
)

// ErrRawStatement is returned by Exec and Query methods. The in-memory
// repositories do not interpret SQL statements.
var ErrRawStatement = errors.New("memrepo: raw statements are unsupported")

// Pool is a repo.Pool which hands out in-memory connections.
// If Err is set, Conn fails with it without calling the handler.
type Pool struct {
	Err error
}

// Conn calls handler with a new connection.
func (p *Pool) Conn(ctx context.Context, handler repo.ConnHandler) error {
	if p.Err != nil {
		return p.Err
	}
	return handler(ctx, &Conn{})
}

// Conn is a repo.Conn with no state.
type Conn struct{}

// Exec returns ErrRawStatement.
func (c *Conn) Exec(context.Context, string, ...any) (int64, error) {
	return 0, ErrRawStatement
}

// Query returns ErrRawStatement.
func (c *Conn) Query(context.Context, string, ...any) (repo.Rows, error) {
	return nil, ErrRawStatement
}

// Tx calls handler with a new transaction. Changes are applied
// immediately, so a failed handler does not roll anything back.
func (c *Conn) Tx(ctx context.Context, handler repo.TxHandler) error {
	return handler(ctx, &Tx{})
}

// IsConn marks Conn as a repo.Conn.
func (c *Conn) IsConn() {
}

// Tx is a repo.Tx with no state.
type Tx struct{}

// Exec returns ErrRawStatement.
func (tx *Tx) Exec(context.Context, string, ...any) (int64, error) {
	return 0, ErrRawStatement
}

// Query returns ErrRawStatement.
func (tx *Tx) Query(context.Context, string, ...any) (repo.Rows, error) {
	return nil, ErrRawStatement
}

// IsTx marks Tx as a repo.Tx.
func (tx *Tx) IsTx() {
}
