// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bundle

import (
	"fmt"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/rlp"

	"github.com/angstrom-protocol/angstrom/ray"
	"github.com/angstrom-protocol/angstrom/types"
)

// Bundle is the block's settlement payload submitted to L1: the
// asset and pair lists every reindexed order resolves against, the
// tribute donations to apply per pool, the filled orders themselves,
// and an opaque calldata blob the execution environment forwards
// verbatim.
type Bundle struct {
	Assets           []common.Address
	Pairs            []Pair
	PoolUpdates      []types.RewardsUpdate
	TopOfBlockOrders []CompactTopOfBlockOrder
	UserOrders       []CompactUserOrder
	Calldata         []byte
}

// Encode RLP-encodes the bundle.
func (b *Bundle) Encode() ([]byte, error) {
	return rlp.EncodeToBytes(b)
}

// Decode parses an RLP-encoded bundle.
func Decode(data []byte) (*Bundle, error) {
	var b Bundle
	if err := rlp.DecodeBytes(data, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// Build assembles a Bundle from one block's pool solutions. orders
// resolves an outcome's OrderId back to the signed order it
// describes; solutions carrying a fill the matcher reported but
// missing from orders is a programming error upstream, not a user
// error, so Build fails closed on it.
func Build(solutions []*types.PoolSolution, orders map[types.OrderId]types.Order, pools []types.PoolKey, calldata []byte) (*Bundle, error) {
	assets := BuildAssetList(pools)

	prices := make(map[types.PoolId]ray.Ray, len(solutions))
	for _, sol := range solutions {
		prices[sol.PoolId] = sol.UCP
	}

	pairs, err := BuildPairList(pools, assets, prices)
	if err != nil {
		return nil, err
	}

	pairIndex := make(map[types.PoolId]uint16, len(pairs))
	idx := uint16(0)
	for _, p := range pools {
		if _, ok := prices[p.ID()]; !ok {
			continue
		}
		pairIndex[p.ID()] = idx
		idx++
	}

	b := &Bundle{Assets: assets, Pairs: pairs, Calldata: calldata}

	for _, sol := range solutions {
		pi, ok := pairIndex[sol.PoolId]
		if !ok {
			return nil, fmt.Errorf("bundle: solution for pool %s has no clearing price", sol.PoolId)
		}

		if sol.RewardT0 != nil {
			b.PoolUpdates = append(b.PoolUpdates, types.RewardsUpdate{
				CurrentOnly: &types.CurrentOnlyUpdate{Amount: sol.RewardT0},
			})
		}

		if sol.Searcher != nil {
			tob, ok := sol.Searcher.Order.(*types.TopOfBlockOrder)
			if !ok {
				return nil, fmt.Errorf("bundle: pool %s searcher slot is not a top-of-block order", sol.PoolId)
			}
			b.TopOfBlockOrders = append(b.TopOfBlockOrders, CompactTopOfBlock(tob, pi, sol.Searcher.Priority.Gas))
		}

		for _, outcome := range sol.Limit {
			if !outcome.IsFilled() {
				continue
			}
			order, ok := orders[outcome.OrderID]
			if !ok {
				return nil, fmt.Errorf("bundle: filled order %s not found in order set", outcome.OrderID.Hash)
			}
			b.UserOrders = append(b.UserOrders, CompactUserOrderFrom(order, pi))
		}
	}

	return b, nil
}

// Encoder adapts Build into the roundconsensus.BundleEncoder
// interface, fixing the active pool set and the order lookup table
// so the consensus package never needs to know how a bundle is laid
// out on the wire.
type Encoder struct {
	Pools    []types.PoolKey
	Orders   map[types.OrderId]types.Order
	Calldata []byte
}

// Encode implements roundconsensus.BundleEncoder.
func (e *Encoder) Encode(solutions []*types.PoolSolution) ([]byte, error) {
	b, err := Build(solutions, e.Orders, e.Pools, e.Calldata)
	if err != nil {
		return nil, err
	}
	return b.Encode()
}
