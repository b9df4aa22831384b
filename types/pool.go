// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import (
	"bytes"
	"math/big"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/crypto"
)

// PoolKey identifies a pool by its immutable configuration
//. Token0 < Token1 by address ordering.
type PoolKey struct {
	Token0      common.Address
	Token1      common.Address
	Fee         uint32
	TickSpacing int32
	Hooks       common.Address
}

// ID derives the deterministic PoolId from the key's fields.
func (k PoolKey) ID() PoolId {
	var buf bytes.Buffer
	buf.Write(k.Token0[:])
	buf.Write(k.Token1[:])
	feeBytes := make([]byte, 4)
	big.NewInt(int64(k.Fee)).FillBytes(feeBytes)
	buf.Write(feeBytes)
	spacingBytes := make([]byte, 4)
	big.NewInt(int64(k.TickSpacing)).FillBytes(spacingBytes)
	buf.Write(spacingBytes)
	buf.Write(k.Hooks[:])
	return common.BytesToHash(crypto.Keccak256(buf.Bytes()))
}

// Sorted reports whether Token0 < Token1, the invariant every pool
// key must hold.
func (k PoolKey) Sorted() bool {
	return k.Token0.Cmp(k.Token1) < 0
}

// TickInfo is per-tick bookkeeping inside a pool snapshot
//.
type TickInfo struct {
	LiquidityNet   *big.Int // signed delta applied when this tick is crossed
	LiquidityGross *big.Int
	Initialized    bool
}

// Direction is the side of a swap: ZeroForOne sells T0 for T1 (price
// falls); OneForZero buys T0 with T1 (price rises).
type Direction uint8

const (
	ZeroForOne Direction = iota
	OneForZero
)

// PoolEvent is the external collaborator event the registry consumes
//.
type PoolEvent struct {
	NewPool     *PoolKey
	RemovedPool *PoolId
}
