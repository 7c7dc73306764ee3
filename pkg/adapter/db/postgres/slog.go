// Copyright (c) 2024 CircuitBhai
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/circuitbhai/cbweb/pkg/core/log"
)

// slogWriter adapts the GORM logger output to the log package.
// GORM only writes warnings and errors at the configured level, so
// all messages are logged as warnings.
type slogWriter struct{}

func (slogWriter) Printf(format string, args ...any) {
	msg := strings.TrimSpace(fmt.Sprintf(format, args...))
	log.Warn(context.Background(), "gorm: "+msg)
}
