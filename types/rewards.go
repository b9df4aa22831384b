// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import "math/big"

// DonationKind tags which side of a tick a donation applies to
//.
type DonationKind uint8

const (
	DonationCurrent DonationKind = iota
	DonationAbove
	DonationBelow
)

// Donation is one entry of the tribute calculator's output sequence
// before it is folded into a RewardsUpdate.
type Donation struct {
	Kind      DonationKind
	Tick      int32
	Amount    *big.Int
	Liquidity *big.Int
}

// CurrentOnlyUpdate donates only to the pool's current tick.
type CurrentOnlyUpdate struct {
	Amount            *big.Int
	ExpectedLiquidity *big.Int
}

// MultiTickUpdate donates to a contiguous run of ticks anchored at
// StartTick, with a checksum the on-chain contract recomputes
//.
type MultiTickUpdate struct {
	StartTick      int32
	StartLiquidity *big.Int
	Quantities     []*big.Int
	RewardChecksum [20]byte
}

// RewardsUpdate is the on-chain-encodable result of one donation
// calculation; exactly one of CurrentOnly/MultiTick is set
//.
type RewardsUpdate struct {
	CurrentOnly *CurrentOnlyUpdate
	MultiTick   *MultiTickUpdate
}
