// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package log is the logging facade of the core packages. Use cases
// and adapters log through Debug, Info, Warn, and Error, passing typed
// slog.Attr values such as Coord for search origins and Err for failed
// place source queries. Records go to the default slog logger, whose
// handler (text or json) and level are installed by cmd/cbweb.
package log

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

// callerSkip skips runtime.Callers, emit, and the exported function,
// so the recorded source is the line which called Info and friends.
const callerSkip = 3

// Debug logs msg with attrs at the debug level.
func Debug(ctx context.Context, msg string, attrs ...slog.Attr) {
	emit(ctx, slog.LevelDebug, msg, attrs)
}

// Info logs msg with attrs at the info level.
func Info(ctx context.Context, msg string, attrs ...slog.Attr) {
	emit(ctx, slog.LevelInfo, msg, attrs)
}

// Warn logs msg with attrs at the warning level. A place source
// failure which still leaves other sources answering is a warning.
func Warn(ctx context.Context, msg string, attrs ...slog.Attr) {
	emit(ctx, slog.LevelWarn, msg, attrs)
}

// Error logs msg with attrs at the error level.
func Error(ctx context.Context, msg string, attrs ...slog.Attr) {
	emit(ctx, slog.LevelError, msg, attrs)
}

// emit may only be called by the exported level functions.
func emit(ctx context.Context, level slog.Level, msg string, attrs []slog.Attr) {
	h := slog.Default().Handler()
	if !h.Enabled(ctx, level) {
		return
	}
	var pcs [1]uintptr
	runtime.Callers(callerSkip, pcs[:])
	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	r.AddAttrs(attrs...)
	_ = h.Handle(ctx, r)
}
