// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package leader

import (
	"testing"

	"github.com/luxfi/geth/common"
	"github.com/stretchr/testify/require"

	"github.com/angstrom-protocol/angstrom/types"
)

func addr(b byte) common.Address {
	var a common.Address
	a[19] = b
	return a
}

func TestAdvancePicksHighestVotingPowerFirst(t *testing.T) {
	validators := []*types.ValidatorInfo{
		{Address: addr(1), VotingPower: 10},
		{Address: addr(2), VotingPower: 30},
		{Address: addr(3), VotingPower: 5},
	}
	sched := NewSchedule(validators)

	winner := sched.Advance()
	require.Equal(t, addr(2), winner.Address)
}

func TestAdvanceRoundRobinsProportionalToWeight(t *testing.T) {
	validators := []*types.ValidatorInfo{
		{Address: addr(1), VotingPower: 1},
		{Address: addr(2), VotingPower: 1},
	}
	sched := NewSchedule(validators)

	wins := map[common.Address]int{}
	for i := 0; i < 10; i++ {
		w := sched.Advance()
		wins[w.Address]++
	}
	require.Equal(t, 5, wins[addr(1)])
	require.Equal(t, 5, wins[addr(2)])
}

func TestAdvanceTiesBreakByLowerAddress(t *testing.T) {
	validators := []*types.ValidatorInfo{
		{Address: addr(9), VotingPower: 10},
		{Address: addr(1), VotingPower: 10},
	}
	sched := NewSchedule(validators)

	winner := sched.Advance()
	require.Equal(t, addr(1), winner.Address)
}

func TestAddValidatorAppliesJoinPenalty(t *testing.T) {
	validators := []*types.ValidatorInfo{
		{Address: addr(1), VotingPower: 100},
	}
	sched := NewSchedule(validators)
	sched.Advance()

	joiner := &types.ValidatorInfo{Address: addr(2), VotingPower: 100}
	sched.AddValidator(joiner)

	require.Negative(t, joiner.Priority)
	require.Equal(t, uint64(200), sched.TotalVotingPower())

	// The joiner must not win the very next round against an
	// established validator of equal voting power.
	winner := sched.Advance()
	require.Equal(t, addr(1), winner.Address)
}

func TestRecenterBoundsSpreadAfterManyRounds(t *testing.T) {
	validators := []*types.ValidatorInfo{
		{Address: addr(1), VotingPower: 1},
		{Address: addr(2), VotingPower: 1000},
	}
	sched := NewSchedule(validators)

	for i := 0; i < 50; i++ {
		sched.Advance()
	}

	min, max := sched.validators[0].Priority, sched.validators[0].Priority
	for _, v := range sched.validators {
		if v.Priority < min {
			min = v.Priority
		}
		if v.Priority > max {
			max = v.Priority
		}
	}
	bound := 2 * int64(sched.totalPower) * types.PriorityScale
	require.LessOrEqual(t, max-min, bound)
}

func TestValidatorsReturnsAddressSortedCopy(t *testing.T) {
	validators := []*types.ValidatorInfo{
		{Address: addr(9), VotingPower: 1},
		{Address: addr(1), VotingPower: 1},
	}
	sched := NewSchedule(validators)

	out := sched.Validators()
	require.Equal(t, addr(1), out[0].Address)
	require.Equal(t, addr(9), out[1].Address)
}
