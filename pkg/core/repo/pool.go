// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package repo defines the interfaces which are implemented by the
// adapters layer and consumed by the use cases layer in order to reach
// the persistence and the remote place sources. Use cases take a Pool,
// obtain a Conn from it, and begin a Tx on that Conn whenever a group
// of statements must be executed atomically.
package repo

import "context"

// ConnHandler is called with an acquired connection. The connection is
// released after the handler returns, so it must not be retained.
type ConnHandler func(context.Context, Conn) error

// Pool represents a database connection pool.
// It is safe to be used concurrently.
type Pool interface {
	// Conn acquires a connection, passes it to handler, and releases
	// it afterwards. The handler error is returned as is.
	Conn(ctx context.Context, handler ConnHandler) error
}
