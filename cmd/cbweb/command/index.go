// Copyright (c) 2024 CircuitBhai
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/circuitbhai/cbweb/pkg/adapter/db/postgres/techniciansrp"
	"github.com/circuitbhai/cbweb/pkg/core/log"
	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Elasticsearch technicians index actions",
}

var indexSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Copy the approved technicians into Elasticsearch",
	Long: `Create the Elasticsearch technicians index (if it is missing)
and index all approved technicians which have a location, so they can
be found by the elastic place source. The places.elastic settings are
used even if that source is disabled for the web server.`,
	RunE: syncIndex,
	Args: cobra.NoArgs,
}

func syncIndex(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	c, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	if len(c.Places.Elastic.Addresses) == 0 {
		return errors.New("places.elastic.addresses is empty")
	}
	idx, err := c.Places.Elastic.NewSource()
	if err != nil {
		return fmt.Errorf("creating elastic source: %w", err)
	}
	p, err := c.Database.ConnectionPool(ctx)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	techsRepo := techniciansrp.New()
	uc, err := c.Usecases.Technicians.NewUseCase(p, techsRepo, nil)
	if err != nil {
		return fmt.Errorf("creating technicians use case: %w", err)
	}
	n, err := uc.SyncIndex(ctx, idx)
	if err != nil {
		return fmt.Errorf("syncing index: %w", err)
	}
	log.Info(ctx, "technicians are indexed", slog.Int("count", n))
	return nil
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.AddCommand(indexSyncCmd)
}
