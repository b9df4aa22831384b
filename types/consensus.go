// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import "github.com/luxfi/geth/common"

// PreProposal is the first consensus message of a round: one
// validator's signed snapshot of the orders it is willing to settle
//.
type PreProposal struct {
	BlockHeight    uint64
	Source         common.Address
	LimitOrders    []StoredOrder
	SearcherOrders []StoredOrder
	Signature      []byte
}

// PreProposalAggregation wraps the pre-proposals one validator has
// received (itself included) and signs over the aggregate
//.
type PreProposalAggregation struct {
	BlockHeight  uint64
	Source       common.Address
	PreProposals []PreProposal
	Signature    []byte
}

// Proposal is the leader's final settlement proposal.
type Proposal struct {
	BlockHeight  uint64
	Proposer     common.Address
	PreProposals []PreProposal
	Solutions    []PoolSolution
	Signature    []byte
}

// AttestAngstromBlockEmpty is the leader's (or any validator's) claim
// that no settlement occurred for a block; it carries no signature.
type AttestAngstromBlockEmpty struct {
	BlockNumber uint64
}

// CancelOrderRequest carries a signed cancellation.
type CancelOrderRequest struct {
	Signature    []byte
	UserAddress  common.Address
	OrderHash    common.Hash
}
