// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"errors"
	"math/big"

	"github.com/luxfi/geth/common"

	"github.com/angstrom-protocol/angstrom/types"
)

// errL1Unconfigured is returned by the stand-ins below that read
// balances and allowances, load ticks or submit bundles; PoolByID and
// NextBlock report no pool and block 0 instead. No chain RPC client is
// wired and chain-rpc-url is not read; wiring that client is out of
// scope here the same way roundconsensus.L1Submitter
// and Broadcaster are documented as out of scope beyond their interfaces.
var errL1Unconfigured = errors.New("angstromd: no chain RPC client configured")

// noopStateProvider satisfies validation.StateProvider until an
// ethclient-backed implementation is wired in.
type noopStateProvider struct{}

func (noopStateProvider) BalanceOf(owner, token common.Address) (*big.Int, error) {
	return nil, errL1Unconfigured
}

func (noopStateProvider) AllowanceOf(owner, token common.Address) (*big.Int, error) {
	return nil, errL1Unconfigured
}

func (noopStateProvider) PoolByID(id types.PoolId) (types.PoolKey, bool) {
	return types.PoolKey{}, false
}

func (noopStateProvider) NextBlock() uint64 {
	return 0
}

// noopTickLoader satisfies registry.TickLoader until ticks are read
// from L1 storage.
type noopTickLoader struct{}

func (noopTickLoader) LoadTicks(poolID types.PoolId, startTick int32, dir types.Direction, count int) (map[int32]types.TickInfo, error) {
	return nil, errL1Unconfigured
}

// noopL1Submitter satisfies roundconsensus.L1Submitter until bundle
// submission is wired to a real L1 RPC endpoint; every round attests
// empty rather than risk silently dropping a bundle.
type noopL1Submitter struct{}

func (noopL1Submitter) Submit(ctx context.Context, bundle []byte) (bool, error) {
	return false, errL1Unconfigured
}
