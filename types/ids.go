// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import (
	"math/big"

	"github.com/luxfi/geth/common"

	"github.com/angstrom-protocol/angstrom/ray"
)

// OrderLocation distinguishes the user limit book from the searcher's
// single top-of-block slot per pool.
type OrderLocation uint8

const (
	LocationLimit OrderLocation = iota
	LocationSearcher
)

// OrderId uniquely identifies a stored order.
type OrderId struct {
	Hash           common.Hash
	PoolId         PoolId
	Address        common.Address
	Location       OrderLocation
	Deadline       uint64
	FlashBlock     uint64
	ReuseAvoidance uint64 // nonce for standing orders, valid_for_block for flash orders
}

// PriorityData is used only by the matcher's sort, never persisted
// past one block.
type PriorityData struct {
	Price    ray.Ray
	Volume   *big.Int
	Gas      *big.Int
	GasUnits uint64
}

// ValidationPriority ranks two orders from the same signer:
// top-of-block > exact > partial > lower-nonce > lexicographically
// smaller hash, testable property
// "Order validation priority").
func ValidationPriority(a, b Order, aNonce, bNonce uint64, aHash, bHash common.Hash) bool {
	aTOB, bTOB := a.Kind() == KindTopOfBlock, b.Kind() == KindTopOfBlock
	if aTOB != bTOB {
		return aTOB
	}
	aExact := a.Kind() == KindExactStanding || a.Kind() == KindExactFlash
	bExact := b.Kind() == KindExactStanding || b.Kind() == KindExactFlash
	if aExact != bExact {
		return aExact
	}
	if aNonce != bNonce {
		return aNonce < bNonce
	}
	return aHash.Cmp(bHash) < 0
}

// StoredOrder wraps an order with matching/validation-only metadata
//.
type StoredOrder struct {
	Order      Order
	IsBid      bool
	IsValid    bool
	PoolId     PoolId
	ValidBlock uint64
	Priority   PriorityData
	TobReward  *big.Int
	ID         OrderId
}
