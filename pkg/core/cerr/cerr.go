// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package cerr contains the core errors which carry enough information
// for the adapters layer to choose a response status. Use cases wrap
// their errors with one of the constructors in this package when the
// error crosses the use case boundary; everything else is reported as
// an internal error.
package cerr

import (
	"fmt"
	"net/http"
)

// Error wraps Err and records the HTTP status code which describes
// its class.
type Error struct {
	Err            error
	HTTPStatusCode int
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %s", e.HTTPStatusCode, e.Err.Error())
}

// InvalidRequest reports a malformed or missing input. It is never
// retried by clients.
func InvalidRequest(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusBadRequest}
}

// NotFound reports a missing entity.
func NotFound(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusNotFound}
}

// Conflict reports a uniqueness violation.
func Conflict(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusConflict}
}

// UpstreamUnavailable reports that a remote collaborator, such as a
// place source, failed due to network, authentication, or quota
// problems.
func UpstreamUnavailable(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusInternalServerError}
}
