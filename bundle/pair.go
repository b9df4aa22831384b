// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bundle

import (
	"fmt"
	"math/big"

	"github.com/luxfi/geth/common"

	"github.com/angstrom-protocol/angstrom/ray"
	"github.com/angstrom-protocol/angstrom/types"
)

// Pair is one entry of the bundle's pair_list: a pool's two asset
// indices into the asset list, the store slot the contract keeps its
// running price in, and the uniform clearing price expressed as
// T1-per-T0 per active pool").
type Pair struct {
	Index0      uint16
	Index1      uint16
	StoreIndex  uint16
	Price1Over0 *big.Int
}

// BuildPairList reindexes every pool that has a clearing price in
// prices against assets, in pools order. A pool with no entry in
// prices (no solution computed for it this block) is skipped.
func BuildPairList(pools []types.PoolKey, assets []common.Address, prices map[types.PoolId]ray.Ray) ([]Pair, error) {
	var out []Pair
	for storeIndex, p := range pools {
		price, ok := prices[p.ID()]
		if !ok {
			continue
		}
		idx0, ok := assetIndex(assets, p.Token0)
		if !ok {
			return nil, fmt.Errorf("bundle: token0 %s of pool %s not in asset list", p.Token0, p.ID())
		}
		idx1, ok := assetIndex(assets, p.Token1)
		if !ok {
			return nil, fmt.Errorf("bundle: token1 %s of pool %s not in asset list", p.Token1, p.ID())
		}
		out = append(out, Pair{
			Index0:      idx0,
			Index1:      idx1,
			StoreIndex:  uint16(storeIndex),
			Price1Over0: price.Big(),
		})
	}
	return out, nil
}
