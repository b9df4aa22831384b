// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package tribute turns the leftover T0 of a pool's match (reward_t0)
// into a tick-indexed reward the settlement contract can apply to LPs,
// restricted to ticks that were already initialized before the block
//. Ported from the original Rust donation calculator,
// re-expressed over amm.SwapStep traces instead of the on-chain
// pool-manager's own step iterator.
package tribute

import (
	"math/big"

	"github.com/angstrom-protocol/angstrom/amm"
	"github.com/angstrom-protocol/angstrom/ray"
)

// TickInterval is one contiguous run of the swap trace between two
// initialized-tick crossings, carrying the liquidity active across it
// and the net T0/T1 that moved while it was active.
type TickInterval struct {
	Tick      int32 // the initialized tick bounding this interval in the walk direction
	Liquidity *big.Int
	DT0       *big.Int
	DT1       *big.Int
}

// reduceSteps collapses a swap's per-tick-step trace into the ordered
// list of intervals the donation walk can merge into its blob. Only
// steps that crossed an initialized tick become intervals — the final
// step of a trace usually stops mid-range, at whatever price the swap
// exhausted at, and that resting position is carried separately as the
// "current tick" rather than treated as a donation target.
func reduceSteps(steps []amm.SwapStep) []TickInterval {
	out := make([]TickInterval, 0, len(steps))
	for _, s := range steps {
		if !s.Initialized {
			continue
		}
		out = append(out, TickInterval{
			Tick:      s.EndTick,
			Liquidity: s.Liquidity,
			DT0:       s.DT0,
			DT1:       s.DT1,
		})
	}
	return out
}

// blobCost is the T0 the calculator must still spend to bring the
// accumulated donation blob (blobT0, blobT1) to next's average
// execution price before merging it in: next's avg price restates the
// blob's own T1 as a target T0 (inverse_quantity, rounded per dir, the
// same direction the pool itself would round a matching trade), and
// the cost is the gap between that target and the T0 the blob
// actually holds. A blob with no cost left to pay is already priced
// at next's average and merges for free.
func blobCost(blobT0, blobT1 *big.Int, next TickInterval, dir ray.RoundDirection) *big.Int {
	if next.DT0 == nil || next.DT0.Sign() == 0 || next.DT1 == nil {
		return new(big.Int)
	}
	targetPrice := ray.FromRat(new(big.Int).Abs(next.DT1), new(big.Int).Abs(next.DT0))
	targetT0 := targetPrice.InverseQuantity(new(big.Int).Abs(blobT1), dir)
	return new(big.Int).Abs(new(big.Int).Sub(new(big.Int).Abs(blobT0), targetT0))
}
