// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

// Tx is a database transaction, obtained from Conn.Tx, which must not
// be shared between goroutines. The TxQueryer of a repository (such as
// BookingsTxQueryer) offers the operations which are only safe inside
// a transaction, like reading a booking while its row is locked.
type Tx interface {
	Queryer

	// IsTx keeps a Conn from satisfying the Tx interface by accident.
	IsTx()
}
