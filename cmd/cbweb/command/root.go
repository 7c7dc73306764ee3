// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands for the cbweb
// project. Commands are organized using the cobra library.
// The root command starts the web server itself while the "db" and
// "index" sub-commands prepare the storage which it relies on.
//
//	./cbweb [-c /path/of/config.yaml]            # start web server
//	./cbweb db init [-c /path/of/config.yaml]    # create the tables
//	./cbweb index sync [-c /path/of/config.yaml] # fill elasticsearch
package command

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/circuitbhai/cbweb/pkg/adapter/config"
	"github.com/circuitbhai/cbweb/pkg/adapter/restful/gin/routes"
	"github.com/circuitbhai/cbweb/pkg/core/log"
	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "cbweb",
	Short: "Find, register, and book nearby repair technicians",
	Long: `The cbweb serves the REST APIs for finding the repair
technicians around a location, ranking the venues which are reported by
Google Places, an optional Elasticsearch index, and the local directory
of registered technicians. It also records the bookings of customers
and the registration of new repair shops in a PostgreSQL database.`,
	RunE: startWebServer,
	Args: cobra.NoArgs,
}

func startWebServer(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	c, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	p, err := c.Database.ConnectionPool(ctx)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	e := c.Gin.NewEngine()
	if err = routes.Register(e, p, c); err != nil {
		return fmt.Errorf("registering routes: %w", err)
	}
	log.Info(ctx, "starting web server", slog.String("address", c.Gin.Address))
	if err = e.Run(c.Gin.Address); err != nil {
		return fmt.Errorf("running Gin engine: %w", err)
	}
	return nil
}

// loadConfig loads the cfgPath configuration file and installs its
// logging handler as the default slog logger.
func loadConfig(ctx context.Context) (*config.Config, error) {
	c, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	slog.SetDefault(slog.New(c.Logging.NewHandler(os.Stderr)))
	log.Info(
		ctx, "configuration is loaded",
		slog.String("path", cfgPath),
		slog.Bool("google", *c.Places.Google.Enabled),
		slog.Bool("elastic", *c.Places.Elastic.Enabled),
		slog.Bool("directory", *c.Places.Directory.Enabled),
	)
	return c, nil
}

// Execute runs the rootCmd which in turn parses CLI arguments and
// flags and runs the most specific cobra command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(fixConfigPath)
	rootCmd.PersistentFlags().StringVarP(
		&cfgPath, "config", "c", "", "config file path",
	)
}

// fixConfigPath ensures that cfgPath is set respectively by either the
// CLI args, the CONFIG_FILE environment variable, or its default value.
func fixConfigPath() {
	if cfgPath != "" {
		return
	}
	var found bool
	if cfgPath, found = os.LookupEnv("CONFIG_FILE"); !found {
		cfgPath = "configs/sample-config.yaml"
	}
}
