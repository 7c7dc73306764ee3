// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// instantiation and registration of all repo, use case, and resource
// packages based on the user provided configuration settings.
package routes

import (
	"fmt"
	"net/http"

	"github.com/circuitbhai/cbweb/pkg/adapter/config"
	"github.com/circuitbhai/cbweb/pkg/adapter/db/postgres/bookingsrp"
	"github.com/circuitbhai/cbweb/pkg/adapter/db/postgres/techniciansrp"
	"github.com/circuitbhai/cbweb/pkg/adapter/restful/gin/bookingsrs"
	"github.com/circuitbhai/cbweb/pkg/adapter/restful/gin/techniciansrs"
	"github.com/circuitbhai/cbweb/pkg/core/repo"
	"github.com/circuitbhai/cbweb/pkg/core/usecase/bookingsuc"
	"github.com/circuitbhai/cbweb/pkg/core/usecase/techniciansuc"
	"github.com/gin-gonic/gin"
)

// BasePath is the prefix of all REST APIs.
const BasePath = "/api/cbweb/v1"

// Register instantiates relevant repositories and use cases based on
// the c configuration settings. The p connections pool is passed to
// the use case instances, so they may acquire/release connections
// and transactions on demand. These connections/transactions will be
// passed to the repositories later in order to run relevant queries on
// them and accomplish those use cases. Each use case package is named
// like bookingsuc and each repository package is named like bookingsrp.
// The place sources are created from the c.Places settings too.
// Possible errors will be returned after possible wrapping.
func Register(e *gin.Engine, p repo.Pool, c *config.Config) error {
	techsRepo := techniciansrp.New()
	bookingsRepo := bookingsrp.New()

	sources, err := c.Places.NewSources(p, techsRepo)
	if err != nil {
		return fmt.Errorf("creating place sources: %w", err)
	}
	techs, err := c.Usecases.Technicians.NewUseCase(p, techsRepo, sources)
	if err != nil {
		return fmt.Errorf("creating technicians use case: %w", err)
	}
	bookings, err := c.Usecases.NewBookingsUseCase(p, bookingsRepo)
	if err != nil {
		return fmt.Errorf("creating bookings use case: %w", err)
	}
	RegisterUseCases(e, techs, bookings)
	return nil
}

// RegisterUseCases registers the resources of the given use cases and
// the health check API on the e engine.
func RegisterUseCases(
	e *gin.Engine,
	techs *techniciansuc.UseCase,
	bookings *bookingsuc.UseCase,
) {
	r := e.Group(BasePath)
	r.GET("health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})
	techniciansrs.Register(r, techs)
	bookingsrs.Register(r, bookings)
}
