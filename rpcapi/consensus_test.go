// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpcapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/luxfi/geth/common"
	"github.com/stretchr/testify/require"

	"github.com/angstrom-protocol/angstrom/leader"
	"github.com/angstrom-protocol/angstrom/roundconsensus"
	"github.com/angstrom-protocol/angstrom/types"
)

type fakeConsensusView struct {
	schedule *leader.Schedule
	round    *roundconsensus.Round
}

func (f *fakeConsensusView) Schedule() *leader.Schedule          { return f.schedule }
func (f *fakeConsensusView) ActiveRound() *roundconsensus.Round { return f.round }

func TestCurrentLeaderReportsRoundLeaderAndTotalPower(t *testing.T) {
	self := common.BytesToAddress([]byte{1})
	other := common.BytesToAddress([]byte{2})
	schedule := leader.NewSchedule([]*types.ValidatorInfo{
		{Address: self, VotingPower: 10},
		{Address: other, VotingPower: 5},
	})
	round := roundconsensus.NewRound(1, self, schedule)

	svc := &ConsensusService{View: &fakeConsensusView{schedule: schedule, round: round}}
	var reply CurrentLeaderReply
	require.NoError(t, svc.CurrentLeader(httptest.NewRequest(http.MethodPost, "/rpc", nil), &CurrentLeaderArgs{}, &reply))
	require.Equal(t, round.Leader, reply.Leader)
	require.Equal(t, uint64(15), reply.TotalVotingPower)
}

func TestCurrentConsensusStateReportsRoundProgress(t *testing.T) {
	self := common.BytesToAddress([]byte{1})
	schedule := leader.NewSchedule([]*types.ValidatorInfo{{Address: self, VotingPower: 10}})
	round := roundconsensus.NewRound(7, self, schedule)

	svc := &ConsensusService{View: &fakeConsensusView{schedule: schedule, round: round}}
	var reply CurrentConsensusStateReply
	require.NoError(t, svc.CurrentConsensusState(httptest.NewRequest(http.MethodPost, "/rpc", nil), &CurrentConsensusStateArgs{}, &reply))
	require.Equal(t, uint64(7), reply.Height)
	require.Equal(t, round.State().String(), reply.State)
	require.True(t, reply.IsLeader)
}

func TestCurrentConsensusStateHandlesNoActiveRound(t *testing.T) {
	schedule := leader.NewSchedule(nil)
	svc := &ConsensusService{View: &fakeConsensusView{schedule: schedule}}
	var reply CurrentConsensusStateReply
	require.NoError(t, svc.CurrentConsensusState(httptest.NewRequest(http.MethodPost, "/rpc", nil), &CurrentConsensusStateArgs{}, &reply))
	require.Zero(t, reply.Height)
}
