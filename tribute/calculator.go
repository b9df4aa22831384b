// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tribute

import (
	"math/big"

	"github.com/angstrom-protocol/angstrom/amm"
	"github.com/angstrom-protocol/angstrom/ray"
	"github.com/angstrom-protocol/angstrom/types"
)

// DonationCalculation is the donation walk's accumulated state: an
// ordered-by-tick sequence of donations, the index of the "current
// tick" entry within it, and the running total donated so far
//.
type DonationCalculation struct {
	Donations    []types.Donation
	BreakIdx     int
	TotalDonated *big.Int
}

// Allocate reduces a pool's swap trace into donation intervals and
// walks outward from the block's ending tick, merging whole intervals
// into the donation blob while reward_t0 can still cover their
// blobCost, until the reward is exhausted.
func Allocate(steps []amm.SwapStep, dir types.Direction, finalTick int32, finalLiquidity *big.Int, rewardT0 *big.Int) (*DonationCalculation, error) {
	if rewardT0 == nil || rewardT0.Sign() == 0 || len(steps) == 0 {
		return &DonationCalculation{Donations: nil, BreakIdx: 0, TotalDonated: big.NewInt(0)}, nil
	}

	intervals := reduceSteps(steps)
	remaining := new(big.Int).Set(rewardT0)
	total := big.NewInt(0)

	current := types.Donation{Kind: types.DonationCurrent, Tick: finalTick, Liquidity: finalLiquidity, Amount: big.NewInt(0)}
	donations := []types.Donation{current}
	breakIdx := 0

	// steps are recorded in execution order, which already runs
	// outward from the block's starting tick toward finalTick; walking
	// the slice in reverse therefore walks outward from finalTick,
	// exactly the merge direction this step needs. A ZeroForOne swap
	// walks ticks downward to reach finalTick, so every tick it crossed
	// sits above finalTick; a OneForZero swap crossed ticks that sit
	// below it. The same ZeroForOne/OneForZero split decides which way
	// blobCost rounds the blob's restated T0: a falling price rounds
	// up (favoring the blob), a rising one rounds down.
	kind := types.DonationAbove
	roundDir := ray.RoundUp
	if dir == types.OneForZero {
		kind = types.DonationBelow
		roundDir = ray.RoundDown
	}

	// lastMergedIdx tracks where an insufficient remaining reward gets
	// folded in: the most recently merged tick, or the current tick
	// itself if nothing has been merged yet.
	lastMergedIdx := breakIdx

	// blobT0/blobT1 are the running (T0, T1) of every interval merged
	// into the blob so far; blobCost restates them at each new
	// interval's average price to find what merging it would cost.
	var blobT0, blobT1 *big.Int

	for i := len(intervals) - 1; i >= 0 && remaining.Sign() > 0; i-- {
		iv := intervals[i]
		if iv.DT0 == nil || iv.DT0.Sign() == 0 {
			// No liquidity was active across this interval: nothing to
			// donate to here, keep walking outward past it.
			continue
		}
		if blobT0 == nil {
			blobT0 = new(big.Int).Abs(iv.DT0)
			blobT1 = new(big.Int).Abs(iv.DT1)
			continue
		}

		cost := blobCost(blobT0, blobT1, iv, roundDir)
		if remaining.Cmp(cost) >= 0 {
			d := types.Donation{Kind: kind, Tick: iv.Tick, Liquidity: iv.Liquidity, Amount: new(big.Int).Set(cost)}
			donations, breakIdx = insertOutward(donations, breakIdx, kind, d)
			if kind == types.DonationBelow {
				lastMergedIdx = 0
			} else {
				lastMergedIdx = len(donations) - 1
			}
			remaining.Sub(remaining, cost)
			total.Add(total, cost)
			blobT0.Add(blobT0, new(big.Int).Abs(iv.DT0))
			blobT1.Add(blobT1, new(big.Int).Abs(iv.DT1))
			continue
		}
		donations[lastMergedIdx].Amount.Add(donations[lastMergedIdx].Amount, remaining)
		total.Add(total, remaining)
		remaining.SetInt64(0)
	}

	if remaining.Sign() > 0 {
		donations[lastMergedIdx].Amount.Add(donations[lastMergedIdx].Amount, remaining)
		total.Add(total, remaining)
	}

	return &DonationCalculation{Donations: donations, BreakIdx: breakIdx, TotalDonated: total}, nil
}

// insertOutward keeps donations ordered ascending by tick: a Below
// entry (ticks under the current one) is prepended, an Above entry is
// appended, and breakIdx is adjusted to keep pointing at the current
// tick's entry.
func insertOutward(donations []types.Donation, breakIdx int, kind types.DonationKind, d types.Donation) ([]types.Donation, int) {
	if kind == types.DonationBelow {
		out := make([]types.Donation, 0, len(donations)+1)
		out = append(out, d)
		out = append(out, donations...)
		return out, breakIdx + 1
	}
	return append(donations, d), breakIdx
}
