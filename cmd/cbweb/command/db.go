// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/circuitbhai/cbweb/pkg/adapter/db/postgres"
	"github.com/circuitbhai/cbweb/pkg/core/log"
	"github.com/spf13/cobra"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database management actions",
	Long: `Database management actions can be chosen by sub-commands.
For a fresh installation, the init action creates the tables.`,
}

var dbInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the technicians and bookings tables",
	Long: `Create the technicians and bookings tables and their indexes
in the database which is described by the configuration file. Existing
tables are kept as is, so running init again is harmless.`,
	RunE: initDB,
	Args: cobra.NoArgs,
}

func initDB(_ *cobra.Command, _ []string) error {
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
	if err = postgres.InitSchema(ctx, p); err != nil {
		return fmt.Errorf("initializing DB schema: %w", err)
	}
	log.Info(ctx, "database schema is ready")
	return nil
}

func init() {
	rootCmd.AddCommand(dbCmd)
	dbCmd.AddCommand(dbInitCmd)
}
