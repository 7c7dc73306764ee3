// Copyright (c) 2024 CircuitBhai
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"fmt"
	"io"
	"log/slog"
)

// Logging contains the log/slog handler settings.
type Logging struct {
	Format string // text or json, defaults to text
	Level  string // debug, info, warn, or error, defaults to info

	level slog.Level
}

// ValidateAndNormalize fills the default format and level and parses
// the level name.
func (l *Logging) ValidateAndNormalize() error {
	switch l.Format {
	case "":
		l.Format = "text"
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format: %q", l.Format)
	}
	if l.Level == "" {
		l.Level = "info"
	}
	if err := l.level.UnmarshalText([]byte(l.Level)); err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}
	return nil
}

// NewHandler instantiates a slog handler which writes to w.
// Source locations are included, so the log helpers which skip their
// own frames report the calling use case.
func (l Logging) NewHandler(w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{AddSource: true, Level: l.level}
	if l.Format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}
