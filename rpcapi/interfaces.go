// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package rpcapi exposes the node's order-pool, validation, and
// consensus state over JSON-RPC, grounded on utils/rpc/json.go and
// plugin/evm's vm_refactored_example.go gorilla/rpc v2 usage and
// extended here to a real server-side service (those only wire an
// RPC client).
package rpcapi

import (
	"context"

	"github.com/luxfi/geth/common"

	"github.com/angstrom-protocol/angstrom/leader"
	"github.com/angstrom-protocol/angstrom/orderpool"
	"github.com/angstrom-protocol/angstrom/roundconsensus"
	"github.com/angstrom-protocol/angstrom/types"
	"github.com/angstrom-protocol/angstrom/validation"
)

// OrderValidator is the subset of *validation.Validator the RPC layer
// needs; kept as an interface so tests can fake it.
type OrderValidator interface {
	Validate(ctx context.Context, order types.Order) validation.Outcome
	Cancel(req types.CancelOrderRequest, deadline uint64)
	ValidNonce(signer common.Address, nonce uint64) bool
}

// OrderPool is the subset of *orderpool.Pool the RPC layer needs.
type OrderPool interface {
	Status(hash common.Hash) orderpool.Status
	OrdersByPool(poolID types.PoolId, location types.OrderLocation) []*types.StoredOrder
	PendingOrdersFor(address common.Address) []*types.StoredOrder
}

// ConsensusView reports the process's current leader schedule and
// active round, satisfied by the reactor loop cmd/angstromd runs.
type ConsensusView interface {
	Schedule() *leader.Schedule
	ActiveRound() *roundconsensus.Round
}
