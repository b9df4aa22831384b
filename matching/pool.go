// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package matching

import (
	"context"

	"github.com/google/uuid"
	"github.com/luxfi/log"
	"golang.org/x/sync/errgroup"

	"github.com/angstrom-protocol/angstrom/amm"
	"github.com/angstrom-protocol/angstrom/types"
)

// PoolInput bundles one pool's matching inputs for a SolveAll call.
type PoolInput struct {
	PoolID   types.PoolId
	Limit    []BookOrder
	Searcher *types.StoredOrder
	Snapshot *amm.Snapshot
}

// SolveAll matches every pool concurrently, bounded by maxWorkers, and
// returns the solutions in the same order as pools. Each pool's solve
// is CPU-bound and independent of the others, so a
// failure in one does not cancel the rest — the first error is
// returned once all solves have finished.
func SolveAll(ctx context.Context, pools []PoolInput, maxWorkers int) ([]*types.PoolSolution, error) {
	solutions := make([]*types.PoolSolution, len(pools))
	g, _ := errgroup.WithContext(ctx)
	if maxWorkers > 0 {
		g.SetLimit(maxWorkers)
	}

	for i := range pools {
		i := i
		g.Go(func() error {
			p := pools[i]
			reqID := uuid.New()
			sol, err := Solve(p.PoolID, p.Limit, p.Searcher, p.Snapshot)
			if err != nil {
				log.Warn("pool solve failed", "request", reqID, "pool", p.PoolID, "err", err)
				return err
			}
			solutions[i] = sol
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return solutions, nil
}
