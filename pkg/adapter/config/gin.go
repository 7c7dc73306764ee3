// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"github.com/circuitbhai/cbweb/pkg/adapter/config/settings"
	"github.com/circuitbhai/cbweb/pkg/adapter/restful/gin"
)

// Gin contains the gin-gonic related configuration settings.
// Fields are defined as pointers, so it is possible to detect if they
// are or are not initialized.
type Gin struct {
	Logger   *bool  // Whether to register the gin.Logger() middleware
	Recovery *bool  // Whether to register the gin.Recovery() middleware
	Address  string // listening address, like :8080
}

func (g *Gin) normalize() {
	settings.Nil2Zero(&g.Logger)
	settings.Default(&g.Recovery, true)
	if g.Address == "" {
		g.Address = ":8080"
	}
}

// NewEngine instantiates a new gin-gonic engine instance based on
// the `g` settings.
func (g Gin) NewEngine() *gin.Engine {
	middlewares := make([]gin.HandlerFunc, 0, 2)
	if g.Logger != nil && *g.Logger {
		middlewares = append(middlewares, gin.Logger())
	}
	if g.Recovery != nil && *g.Recovery {
		middlewares = append(middlewares, gin.Recovery())
	}
	return gin.New(middlewares...)
}
