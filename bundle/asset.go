// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package bundle encodes a block's settlement into the RLP tuple
// format the L1 submission handler receives: an asset list, a pair
// list, one CurrentOnly pool update carrying each solution's RewardT0
// (when set), and every filled order reindexed against those two lists.
package bundle

import (
	"bytes"
	"sort"

	"github.com/luxfi/geth/common"

	"github.com/angstrom-protocol/angstrom/types"
)

// BuildAssetList collects every token referenced by pools, deduplicated
// and sorted ascending by address.
func BuildAssetList(pools []types.PoolKey) []common.Address {
	seen := make(map[common.Address]bool)
	var out []common.Address
	for _, p := range pools {
		for _, addr := range [2]common.Address{p.Token0, p.Token1} {
			if seen[addr] {
				continue
			}
			seen[addr] = true
			out = append(out, addr)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i][:], out[j][:]) < 0
	})
	return out
}

// assetIndex finds addr's position in an ascending asset list built by
// BuildAssetList.
func assetIndex(assets []common.Address, addr common.Address) (uint16, bool) {
	i := sort.Search(len(assets), func(i int) bool {
		return bytes.Compare(assets[i][:], addr[:]) >= 0
	})
	if i < len(assets) && assets[i] == addr {
		return uint16(i), true
	}
	return 0, false
}
