// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package oracle prices an order's settlement gas in T0 for the
// validator's gas-sufficiency check).
package oracle

import "github.com/angstrom-protocol/angstrom/types"

// Fixed per-kind gas units an order's settlement is expected to cost,
// distinguishing whether it settles via internal balances (cheaper:
// no ERC20 transfer) or external token movement.
const (
	BookGas         uint64 = 50_000
	BookGasInternal uint64 = 10_000
	TobGas          uint64 = 160_000
	TobGasInternal  uint64 = 150_000
)

// GasUnitsFor returns the fixed gas unit quote for order's kind and
// internal-settlement flag.
func GasUnitsFor(order types.Order) uint64 {
	if order.Kind() == types.KindTopOfBlock {
		if order.UseInternal() {
			return TobGasInternal
		}
		return TobGas
	}
	if order.UseInternal() {
		return BookGasInternal
	}
	return BookGas
}
