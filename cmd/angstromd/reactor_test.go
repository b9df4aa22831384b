// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"testing"

	"github.com/luxfi/geth/crypto"
	"github.com/stretchr/testify/require"

	"github.com/angstrom-protocol/angstrom/bundle"
	"github.com/angstrom-protocol/angstrom/leader"
	"github.com/angstrom-protocol/angstrom/matching"
	"github.com/angstrom-protocol/angstrom/metricsreport"
	"github.com/angstrom-protocol/angstrom/types"
)

type fakeSubmitter struct {
	included bool
	err      error
}

func (f fakeSubmitter) Submit(ctx context.Context, bundle []byte) (bool, error) {
	return f.included, f.err
}

type captureBroadcaster struct {
	messages []any
}

func (c *captureBroadcaster) Broadcast(msg any) error {
	c.messages = append(c.messages, msg)
	return nil
}

func TestReactorRunBlockLeaderHappyPathBroadcastsProposal(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	self := crypto.PubkeyToAddress(key.PublicKey)

	schedule := leader.NewSchedule([]*types.ValidatorInfo{{Address: self, VotingPower: 10}})
	encoder := &bundle.Encoder{Orders: make(map[types.OrderId]types.Order)}
	bc := &captureBroadcaster{}
	metrics := metricsreport.New()

	r := newReactor(self, key, schedule, encoder, fakeSubmitter{included: true}, bc, metrics)
	err = r.RunBlock(context.Background(), 1, []matching.PoolInput{})
	require.NoError(t, err)

	require.Len(t, bc.messages, 1)
	proposal, ok := bc.messages[0].(types.Proposal)
	require.True(t, ok)
	require.Equal(t, uint64(1), proposal.BlockHeight)
	require.Equal(t, self, r.ActiveRound().Leader)
}

func TestReactorRunBlockAttestsEmptyWhenSubmissionFails(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	self := crypto.PubkeyToAddress(key.PublicKey)

	schedule := leader.NewSchedule([]*types.ValidatorInfo{{Address: self, VotingPower: 10}})
	encoder := &bundle.Encoder{Orders: make(map[types.OrderId]types.Order)}
	bc := &captureBroadcaster{}
	metrics := metricsreport.New()

	r := newReactor(self, key, schedule, encoder, noopL1Submitter{}, bc, metrics)
	err = r.RunBlock(context.Background(), 1, []matching.PoolInput{})
	require.NoError(t, err)

	require.Len(t, bc.messages, 1)
	_, ok := bc.messages[0].(types.AttestAngstromBlockEmpty)
	require.True(t, ok)
}

func TestAttestationBusFanOutAndCancel(t *testing.T) {
	bus := newAttestationBus()
	feed, cancel := bus.Subscribe()

	bus.Publish(types.AttestAngstromBlockEmpty{BlockNumber: 7})
	att := <-feed
	require.Equal(t, uint64(7), att.BlockNumber)

	cancel()
	_, open := <-feed
	require.False(t, open)
}
