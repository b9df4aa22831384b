// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tribute

import (
	"encoding/binary"
	"math/big"

	"golang.org/x/crypto/sha3"

	"github.com/angstrom-protocol/angstrom/types"
)

// RewardsChecksum iteratively hashes a contiguous donation run into the
// value the settlement contract recomputes on-chain: each step folds
// in the next tick's liquidity and its 3-byte big-endian tick index,
// truncated to the high 160 bits.
func RewardsChecksum(donations []types.Donation) [20]byte {
	var acc [32]byte
	for i := 1; i < len(donations); i++ {
		h := sha3.NewLegacyKeccak256()
		h.Write(acc[:])
		h.Write(leftPad16(donations[i].Liquidity))
		h.Write(tick3Bytes(donations[i-1].Tick))
		h.Sum(acc[:0])
	}
	// Truncation matches the contract's U256>>96: keep the most
	// significant 160 bits, i.e. the first 20 bytes of the digest.
	var out [20]byte
	copy(out[:], acc[:20])
	return out
}

func leftPad16(v *big.Int) []byte {
	buf := make([]byte, 16)
	if v == nil {
		return buf
	}
	b := v.Bytes()
	copy(buf[16-len(b):], b)
	return buf
}

func tick3Bytes(tick int32) []byte {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(tick))
	return buf[1:]
}

// IntoRewardUpdates folds a DonationCalculation into one or two
// contract-ready RewardsUpdate values, splitting at BreakIdx when the
// donation run straddles both sides of the current tick.
func (c *DonationCalculation) IntoRewardUpdates() (types.RewardsUpdate, *types.RewardsUpdate) {
	n := len(c.Donations)
	if n <= 1 {
		if n == 0 {
			return types.RewardsUpdate{CurrentOnly: &types.CurrentOnlyUpdate{Amount: big.NewInt(0), ExpectedLiquidity: big.NewInt(0)}}, nil
		}
		d := c.Donations[0]
		return types.RewardsUpdate{CurrentOnly: &types.CurrentOnlyUpdate{Amount: d.Amount, ExpectedLiquidity: d.Liquidity}}, nil
	}

	if c.BreakIdx == 0 {
		return multiTickUpdate(reverseDonations(c.Donations)), nil
	}
	if c.BreakIdx == n-1 {
		return multiTickUpdate(c.Donations), nil
	}

	above := append([]types.Donation{}, c.Donations[c.BreakIdx:]...)
	below := append([]types.Donation{}, c.Donations[:c.BreakIdx+1]...)
	// The current tick's reward was already booked into the above
	// split; below's copy of it must not double-count.
	below[len(below)-1].Amount = big.NewInt(0)

	aboveUpdate := multiTickUpdate(reverseDonations(above))
	belowUpdate := multiTickUpdate(below)
	return aboveUpdate, &belowUpdate
}

func reverseDonations(in []types.Donation) []types.Donation {
	out := make([]types.Donation, len(in))
	for i, d := range in {
		out[len(in)-1-i] = d
	}
	return out
}

func multiTickUpdate(ordered []types.Donation) types.RewardsUpdate {
	quantities := make([]*big.Int, len(ordered))
	for i, d := range ordered {
		quantities[i] = d.Amount
	}
	return types.RewardsUpdate{MultiTick: &types.MultiTickUpdate{
		StartTick:      ordered[0].Tick,
		StartLiquidity: ordered[0].Liquidity,
		Quantities:     quantities,
		RewardChecksum: RewardsChecksum(ordered),
	}}
}
