// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package leader implements the Tendermint-style weighted round-robin
// proposer schedule used to pick each block's leader.
package leader

import (
	"bytes"
	"sort"

	"github.com/angstrom-protocol/angstrom/types"
)

// joinPenaltyNum/joinPenaltyDen express the 1.125x new-validator join
// penalty in integer arithmetic: a joining validator's starting
// priority is pushed down by (9/8) * total existing voting power.
const (
	joinPenaltyNum = 9
	joinPenaltyDen = 8
)

// Schedule tracks validator priorities across block heights and
// advances them one block at a time, re-deriving the same sequence any
// validator would regardless of when it last observed the set
//.
type Schedule struct {
	validators []*types.ValidatorInfo
	totalPower uint64
}

// NewSchedule builds a schedule over validators, starting every
// priority at zero. The slice is retained and mutated in place by
// Advance; callers must not share it with other schedules.
func NewSchedule(validators []*types.ValidatorInfo) *Schedule {
	var total uint64
	for _, v := range validators {
		v.Priority = 0
		total += v.VotingPower
	}
	return &Schedule{validators: validators, totalPower: total}
}

// AddValidator admits a new validator mid-schedule, applying a join
// penalty before it ever competes for a slot.
func (s *Schedule) AddValidator(v *types.ValidatorInfo) {
	v.Priority = -int64(joinPenaltyNum*s.totalPower/joinPenaltyDen) * types.PriorityScale
	s.validators = append(s.validators, v)
	s.totalPower += v.VotingPower
}

// Advance runs one round of the weighted round-robin algorithm: add
// voting power to every priority, pick and return the winner, then
// subtract total power from the winner's priority. Callers that need to catch up across several blocks call
// Advance once per intermediate block, in order, so offline validators
// converge onto the same schedule on rejoin.
func (s *Schedule) Advance() *types.ValidatorInfo {
	for _, v := range s.validators {
		v.Priority += int64(v.VotingPower) * types.PriorityScale
	}

	winner := s.validators[0]
	for _, v := range s.validators[1:] {
		switch {
		case v.Priority > winner.Priority:
			winner = v
		case v.Priority == winner.Priority && bytes.Compare(v.Address[:], winner.Address[:]) < 0:
			winner = v
		}
	}

	winner.Priority -= int64(s.totalPower) * types.PriorityScale
	s.recenterAndScale()
	return winner
}

// recenterAndScale subtracts the mean priority from every validator,
// then, if the spread exceeds 2x total voting power, scales every
// priority down proportionally.
func (s *Schedule) recenterAndScale() {
	if len(s.validators) == 0 {
		return
	}

	var sum int64
	for _, v := range s.validators {
		sum += v.Priority
	}
	mean := sum / int64(len(s.validators))
	for _, v := range s.validators {
		v.Priority -= mean
	}

	min, max := s.validators[0].Priority, s.validators[0].Priority
	for _, v := range s.validators[1:] {
		if v.Priority < min {
			min = v.Priority
		}
		if v.Priority > max {
			max = v.Priority
		}
	}

	spread := max - min
	bound := 2 * int64(s.totalPower) * types.PriorityScale
	if spread <= bound || spread == 0 {
		return
	}

	// Scale factor is (max-min)/(2*total) expressed in the same
	// fixed-point units as Priority; dividing it back out brings the
	// spread down to exactly the bound.
	for _, v := range s.validators {
		v.Priority = v.Priority * bound / spread
	}
}

// Validators returns the schedule's validator set ordered by address,
// for deterministic iteration by callers (e.g. computing total voting
// power for a quorum check).
func (s *Schedule) Validators() []*types.ValidatorInfo {
	out := make([]*types.ValidatorInfo, len(s.validators))
	copy(out, s.validators)
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i].Address[:], out[j].Address[:]) < 0
	})
	return out
}

// TotalVotingPower returns the schedule's total voting power.
func (s *Schedule) TotalVotingPower() uint64 {
	return s.totalPower
}
