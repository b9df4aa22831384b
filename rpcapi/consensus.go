// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpcapi

import (
	"net/http"

	"github.com/luxfi/geth/common"
)

// ConsensusService is registered under the "consensus" namespace.
type ConsensusService struct {
	View ConsensusView
}

// CurrentLeaderArgs takes no parameters.
type CurrentLeaderArgs struct{}

// CurrentLeaderReply names the active round's proposer and the
// schedule's total voting power.
type CurrentLeaderReply struct {
	Leader           common.Address
	TotalVotingPower uint64
}

// CurrentLeader reports who the active round's proposer is without
// advancing the schedule.
func (s *ConsensusService) CurrentLeader(r *http.Request, args *CurrentLeaderArgs, reply *CurrentLeaderReply) error {
	round := s.View.ActiveRound()
	if round != nil {
		reply.Leader = round.Leader
	}
	reply.TotalVotingPower = s.View.Schedule().TotalVotingPower()
	return nil
}

// CurrentConsensusStateArgs takes no parameters.
type CurrentConsensusStateArgs struct{}

// CurrentConsensusStateReply reports the active round's height,
// state-machine state, and whether this node is its leader.
type CurrentConsensusStateReply struct {
	Height   uint64
	State    string
	IsLeader bool
}

// CurrentConsensusState reports the active round's progress.
func (s *ConsensusService) CurrentConsensusState(r *http.Request, args *CurrentConsensusStateArgs, reply *CurrentConsensusStateReply) error {
	round := s.View.ActiveRound()
	if round == nil {
		return nil
	}
	reply.Height = round.Height
	reply.State = round.State().String()
	reply.IsLeader = round.IsLeader()
	return nil
}
