// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"database/sql"
	"fmt"
)

// rowsAdapter adapts *sql.Rows to the repo.Rows interface.
type rowsAdapter struct {
	*sql.Rows
}

// Close releases the connection for the next statement. A close
// error is reported by the Err method.
func (ra rowsAdapter) Close() {
	_ = ra.Rows.Close()
}

// Values scans the current row into a slice holding one value per
// column, e.g., a uuid id and a timestamptz created_at of a booking.
func (ra rowsAdapter) Values() ([]any, error) {
	cols, err := ra.Columns()
	if err != nil {
		return nil, fmt.Errorf("column-names: %w", err)
	}
	vals := make([]any, len(cols))
	dest := make([]any, len(cols))
	for i := range vals {
		dest[i] = &vals[i]
	}
	if err := ra.Scan(dest...); err != nil {
		return nil, fmt.Errorf("scanning %d columns: %w", len(cols), err)
	}
	return vals, nil
}
