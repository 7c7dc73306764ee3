// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package gin wraps the gin-gonic engine construction, so the other
// adapters (such as the config package) do not need to import the
// gin-gonic package itself. The REST resources are kept in the
// sub-packages and are registered by the routes package.
package gin

import "github.com/gin-gonic/gin"

// HandlerFunc is a gin-gonic middleware or request handler.
type HandlerFunc = gin.HandlerFunc

// Engine is the gin-gonic engine which serves the REST APIs.
type Engine = gin.Engine

// New instantiates an engine without any default middleware, and
// registers the given middlewares on it.
func New(middlewares ...HandlerFunc) *Engine {
	e := gin.New()
	e.Use(middlewares...)
	return e
}

// Logger returns the gin-gonic request logging middleware.
func Logger() HandlerFunc {
	return gin.Logger()
}

// Recovery returns a middleware which converts panics to 500 responses.
func Recovery() HandlerFunc {
	return gin.Recovery()
}
