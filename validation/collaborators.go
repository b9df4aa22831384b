// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package validation

import (
	"math/big"

	"github.com/luxfi/geth/common"

	"github.com/angstrom-protocol/angstrom/amm"
	"github.com/angstrom-protocol/angstrom/types"
)

// StateProvider reads the L1 chain state the validator checks orders
// against: token balances, ERC20 approvals to the Angstrom contract,
// and whether a pool exists and (4)).
// Grounded on original_source's state/db_state_utils — a thin
// synchronous read facade over the chain database.
type StateProvider interface {
	BalanceOf(owner, token common.Address) (*big.Int, error)
	AllowanceOf(owner, token common.Address) (*big.Int, error)
	PoolByID(id types.PoolId) (types.PoolKey, bool)
	NextBlock() uint64
}

// GasOracle prices an order's validation/settlement cost in T0, the
// collaborator behind the gas-sufficiency check. Grounded on
// original_source's order/sim/gas.rs fixed per-kind gas schedule.
type GasOracle interface {
	GasCostT0(o types.Order, tokenIn common.Address) (*big.Int, error)
}

// SnapshotProvider hands the validator a read-locked AMM snapshot for
// simulating a top-of-block order's declared swap (check (5)).
type SnapshotProvider interface {
	Get(poolID types.PoolId) (*amm.Snapshot, func(), error)
}
