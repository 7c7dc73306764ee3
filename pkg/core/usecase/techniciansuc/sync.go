// Copyright (c) 2024 CircuitBhai
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package techniciansuc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/circuitbhai/cbweb/pkg/core/log"
	"github.com/circuitbhai/cbweb/pkg/core/repo"
)

// SyncIndex use case copies all approved technicians into idx, so
// a search index based place source can report them.
func (uc *UseCase) SyncIndex(
	ctx context.Context, idx repo.TechnicianIndex,
) (int, error) {
	if err := idx.EnsureIndex(ctx); err != nil {
		return 0, fmt.Errorf("ensuring index: %w", err)
	}
	techs, err := uc.ListApproved(ctx, "")
	if err != nil {
		return 0, fmt.Errorf("listing approved technicians: %w", err)
	}
	n, err := idx.BulkIndex(ctx, techs)
	if err != nil {
		return n, fmt.Errorf("indexing: %w", err)
	}
	log.Info(
		ctx, "technicians index is synchronized",
		slog.Int("approved", len(techs)), slog.Int("indexed", n),
	)
	return n, nil
}
