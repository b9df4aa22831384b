// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bundle

import (
	"math/big"

	"github.com/luxfi/geth/common"

	"github.com/angstrom-protocol/angstrom/types"
)

// CompactTopOfBlockOrder is the searcher's single swap per pool,
// reindexed against the bundle's pair list instead of carrying its
// two full asset addresses. Field shape follows the contract payload
// the original TypeScript/Rust client assembles for the same slot:
// use_internal, quantity_in, quantity_out, max_gas_asset_0,
// gas_used_asset_0, a pair index in place of (asset_in, asset_out),
// a zero_for_1 direction flag, the recipient, and the raw signature.
type CompactTopOfBlockOrder struct {
	UseInternal   bool
	QuantityIn    *big.Int
	QuantityOut   *big.Int
	MaxGasAsset0  *big.Int
	GasUsedAsset0 *big.Int
	PairIndex     uint16
	ZeroForOne    bool
	Recipient     common.Address
	Signature     []byte
}

// CompactTopOfBlock reindexes o against pairIndex, attaching the gas
// it actually consumed.
func CompactTopOfBlock(o *types.TopOfBlockOrder, pairIndex uint16, gasUsedAsset0 *big.Int) CompactTopOfBlockOrder {
	return CompactTopOfBlockOrder{
		UseInternal:   o.UseInternalFlag,
		QuantityIn:    o.QuantityIn,
		QuantityOut:   o.QuantityOut,
		MaxGasAsset0:  o.MaxGasAsset0,
		GasUsedAsset0: gasUsedAsset0,
		PairIndex:     pairIndex,
		ZeroForOne:    !types.IsBid(o),
		Recipient:     o.RecipientAddr,
		Signature:     o.OrderMeta.Signature,
	}
}

// CompactUserOrder is a single limit-book order reindexed against the
// bundle's pair list, generalized across all four standing/flash
// order shapes via Kind. Deadline/Nonce apply only to standing orders;
// ValidForBlock applies only to flash orders.
type CompactUserOrder struct {
	Kind          types.OrderKind
	PairIndex     uint16
	ZeroForOne    bool
	ExactIn       bool
	AmountIn      *big.Int
	MinAmountIn   *big.Int
	MinPrice      *big.Int
	UseInternal   bool
	Recipient     common.Address
	HookData      []byte
	Nonce         uint64
	Deadline      uint64
	ValidForBlock uint64
	Signature     []byte
}

// CompactUserOrderFrom reindexes o against pairIndex, pulling the
// optional nonce/deadline/valid-for-block fields from whichever of
// StandingOrder/FlashOrder o implements.
func CompactUserOrderFrom(o types.Order, pairIndex uint16) CompactUserOrder {
	cu := CompactUserOrder{
		Kind:        o.Kind(),
		PairIndex:   pairIndex,
		ZeroForOne:  !types.IsBid(o),
		ExactIn:     o.ExactIn(),
		AmountIn:    o.Amount(),
		MinAmountIn: o.MinAmount(),
		MinPrice:    o.LimitPrice().Big(),
		UseInternal: o.UseInternal(),
		Recipient:   o.Recipient(),
		HookData:    o.HookData(),
		Signature:   o.Meta().Signature,
	}
	if so, ok := o.(types.StandingOrder); ok {
		cu.Nonce = so.Nonce()
		cu.Deadline = so.Deadline()
	}
	if fo, ok := o.(types.FlashOrder); ok {
		cu.ValidForBlock = fo.ValidForBlock()
	}
	return cu
}
