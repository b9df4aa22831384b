// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package matching computes, per pool, the single uniform clearing
// price (UCP) that balances a limit book, an optional top-of-block
// searcher leg, and the AMM snapshot against each other. It never mutates the registry's shared snapshot: every
// candidate price is probed against an amm.Snapshot.Clone.
package matching

import (
	"math/big"

	"github.com/angstrom-protocol/angstrom/ray"
	"github.com/angstrom-protocol/angstrom/types"
)

// BookOrder is one limit-book participant restated so every order —
// bid or ask — can be measured against a single UCP variable
// representing T1-per-T0.
type BookOrder struct {
	Stored *types.StoredOrder
	// ClearingPrice is the order's limit in T1-per-T0 terms. Asks
	// already store their limit this way; bids store the inverse, so
	// it is restated here via inv_ray_round (rounding up, the
	// direction that favors the book over the bidder).
	ClearingPrice ray.Ray
}

// NewBookOrder wraps a validated order for one matching pass.
func NewBookOrder(o *types.StoredOrder) BookOrder {
	if o.IsBid {
		return BookOrder{Stored: o, ClearingPrice: ray.InvRayRound(o.Order.LimitPrice(), ray.RoundUp)}
	}
	return BookOrder{Stored: o, ClearingPrice: o.Order.LimitPrice()}
}

// eligible reports whether this order would fill, in whole or part,
// at candidate UCP.
func (b BookOrder) eligible(ucp ray.Ray) bool {
	if b.Stored.IsBid {
		return b.ClearingPrice.Cmp(ucp) >= 0
	}
	return b.ClearingPrice.Cmp(ucp) <= 0
}

// t0Amount restates an order quantity (always expressed in the
// order's token_in units) as T0: asks already quote T0 directly; bids
// quote T1 and are converted at ucp via inverse_quantity, rounding
// toward the book.
func (b BookOrder) t0Amount(amount *big.Int, ucp ray.Ray) *big.Int {
	if amount == nil {
		return new(big.Int)
	}
	if b.Stored.IsBid {
		return ucp.InverseQuantity(amount, ray.RoundDown)
	}
	return new(big.Int).Set(amount)
}
