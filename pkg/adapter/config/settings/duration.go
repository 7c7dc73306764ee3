// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package settings provides the generic helpers which are shared by
// the configuration sections, such as the Duration type, the default
// value initializers, and the range verifier.
package settings

import (
	"errors"
	"log/slog"
	"strings"
	"time"
)

// Duration is a time.Duration which can be read from a YAML file
// using the time.ParseDuration format, e.g., 1m30s.
type Duration time.Duration

// UnmarshalText implements the encoding.TextUnmarshaler interface.
// The `d` receiver is only updated if data could be parsed.
func (d *Duration) UnmarshalText(data []byte) error {
	dd, err := time.ParseDuration(strings.TrimSpace(string(data)))
	if err != nil {
		return err
	}
	*d = Duration(dd)
	return nil
}

// MarshalText implements the encoding.TextMarshaler interface.
// Zero trailing components are dropped, so 1h0m0s is encoded as 1h.
func (d *Duration) MarshalText() ([]byte, error) {
	if d == nil {
		return nil, errors.New("nil duration")
	}
	s := time.Duration(*d).String()
	if strings.HasSuffix(s, "m0s") {
		s = s[:len(s)-2]
	}
	if strings.HasSuffix(s, "h0m") {
		s = s[:len(s)-2]
	}
	return []byte(s), nil
}

// LogValue implements slog.LogValuer.
func (d *Duration) LogValue() slog.Value {
	if d == nil {
		return slog.StringValue("nil-duration")
	}
	return slog.DurationValue(time.Duration(*d))
}
