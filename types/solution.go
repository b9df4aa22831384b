// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import (
	"math/big"

	"github.com/angstrom-protocol/angstrom/ray"
)

// FillState is the per-order outcome of one pool's match
//.
type FillState uint8

const (
	FillUnfilled FillState = iota
	FillKilled
	FillPartial
	FillComplete
)

func (s FillState) String() string {
	switch s {
	case FillUnfilled:
		return "Unfilled"
	case FillKilled:
		return "Killed"
	case FillPartial:
		return "PartialFill"
	case FillComplete:
		return "CompleteFill"
	default:
		return "Unknown"
	}
}

// OrderOutcome is the matcher's verdict for one input order.
type OrderOutcome struct {
	OrderID  OrderId
	State    FillState
	Quantity *big.Int // populated iff State == FillPartial
}

// IsFilled reports whether the order cleared at all.
func (o OrderOutcome) IsFilled() bool {
	return o.State == FillPartial || o.State == FillComplete
}

// AmmDirection is the direction of the net AMM leg of a pool's
// solution.
type AmmDirection uint8

const (
	AmmBuy AmmDirection = iota // buying T0 from the AMM
	AmmSell
)

// NetAmmOrder is the single AMM leg of a pool's solution
//.
type NetAmmOrder struct {
	Direction AmmDirection
	T0        *big.Int
	T1        *big.Int
}

// T0Signed returns the AMM leg's T0 delta, positive when Angstrom is
// buying T0 from the pool and negative when selling T0 into it
//.
func (n *NetAmmOrder) T0Signed() *big.Int {
	if n == nil {
		return big.NewInt(0)
	}
	if n.Direction == AmmBuy {
		return new(big.Int).Set(n.T0)
	}
	return new(big.Int).Neg(n.T0)
}

// T1Signed returns the AMM leg's T1 delta using the same sign
// convention as T0Signed.
func (n *NetAmmOrder) T1Signed() *big.Int {
	if n == nil {
		return big.NewInt(0)
	}
	if n.Direction == AmmBuy {
		return new(big.Int).Neg(n.T1)
	}
	return new(big.Int).Set(n.T1)
}

// PoolSolution is the per-pool output of the matching engine
//.
type PoolSolution struct {
	PoolId      PoolId
	UCP         ray.Ray
	Searcher    *StoredOrder
	AmmQuantity *NetAmmOrder
	Limit       []OrderOutcome
	RewardT0    *big.Int
	Fee         uint32
}
