// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"context"

	"github.com/circuitbhai/cbweb/pkg/core/repo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Tx is a READ-COMMITTED transaction which is opened by Conn.Tx.
// It must not be shared between goroutines. Bookings use it to read
// and update a row while holding its lock, see ForUpdate.
type Tx struct {
	*gorm.DB
}

// Exec runs sql with args and reports the number of affected rows.
// Without args, sql may hold several semicolon separated statements,
// such as the embedded Schema. The $1, ?, and @name placeholders are
// accepted.
func (tx *Tx) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	tt := tx.DB.WithContext(ctx).Exec(sql, args...)
	if err := tt.Error; err != nil {
		return 0, err
	}
	return tt.RowsAffected, nil
}

// Query runs one sql statement with args. The returned Rows must be
// closed before the next statement is sent on this transaction.
func (tx *Tx) Query(ctx context.Context, sql string, args ...any) (repo.Rows, error) {
	rows, err := tx.DB.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	return rowsAdapter{rows}, nil
}

// IsTx marks Tx as a repo.Tx, so a Conn cannot be passed instead.
func (tx *Tx) IsTx() {
}

// GORM returns the embedded *gorm.DB in a session which uses ctx.
func (tx *Tx) GORM(ctx context.Context) *gorm.DB {
	return tx.DB.WithContext(ctx)
}

// ForUpdate is like GORM, but the selected rows are locked with
// SELECT ... FOR UPDATE until tx is committed or rolled back.
// Concurrent status changes of one booking are serialized this way.
func (tx *Tx) ForUpdate(ctx context.Context) *gorm.DB {
	return tx.GORM(ctx).Clauses(clause.Locking{Strength: "UPDATE"})
}
