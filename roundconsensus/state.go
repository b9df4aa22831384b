// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package roundconsensus runs the per-block consensus state machine:
// every validator signs and exchanges pre-proposals, aggregates them
// once two-thirds of voting power agrees on the same underlying set,
// then either proposes (the leader) or waits for the leader's proposal
// (everyone else).
package roundconsensus

import "errors"

// State names one phase of a block's consensus round.
type State uint8

const (
	StatePrePropose State = iota
	StatePreProposeAggregation
	StatePropose
	StateWaitForProposer
	StateTerminal
)

func (s State) String() string {
	switch s {
	case StatePrePropose:
		return "PrePropose"
	case StatePreProposeAggregation:
		return "PreProposeAggregation"
	case StatePropose:
		return "Propose"
	case StateWaitForProposer:
		return "WaitForProposer"
	case StateTerminal:
		return "Terminal"
	default:
		return "Unknown"
	}
}

var (
	ErrUnexpectedMessage = errors.New("roundconsensus: message not accepted in the current state")
	ErrWrongHeight       = errors.New("roundconsensus: message height does not match the active round")
	ErrConflictingMessage = errors.New("roundconsensus: conflicting message from a source that already sent one")
	ErrNotLeader          = errors.New("roundconsensus: proposal's proposer is not this round's leader")
	ErrInvalidSignature   = errors.New("roundconsensus: proposal signature does not recover to the proposer")
	ErrSolutionMismatch   = errors.New("roundconsensus: re-run solutions do not match the proposal bit-for-bit")
)
