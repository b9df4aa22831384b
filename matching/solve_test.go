// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package matching

import (
	"math/big"
	"testing"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/stretchr/testify/require"

	"github.com/angstrom-protocol/angstrom/amm"
	"github.com/angstrom-protocol/angstrom/types"
)

var rayOne = new(big.Int).Exp(big.NewInt(10), big.NewInt(27), nil)

func rayOf(numerator, denominator int64) *big.Int {
	v := new(big.Int).Mul(rayOne, big.NewInt(numerator))
	return v.Quo(v, big.NewInt(denominator))
}

func flatSnapshot(poolID types.PoolId) *amm.Snapshot {
	q96 := new(big.Int).Lsh(big.NewInt(1), 96)
	return &amm.Snapshot{
		PoolID:        poolID,
		Fee:           3000,
		TickSpacing:   60,
		SqrtPriceX96:  uint256.MustFromBig(q96),
		Tick:          0,
		Liquidity:     big.NewInt(1_000_000_000_000),
		Ticks:         make(map[int32]types.TickInfo),
		MinLoadedTick: -600,
		MaxLoadedTick: 600,
	}
}

func stored(id byte, isBid bool, order types.Order, volume int64) *types.StoredOrder {
	hash := common.BytesToHash([]byte{id})
	return &types.StoredOrder{
		Order:   order,
		IsBid:   isBid,
		IsValid: true,
		Priority: types.PriorityData{
			Volume: big.NewInt(volume),
		},
		ID: types.OrderId{Hash: hash, Address: common.BytesToAddress([]byte{id})},
	}
}

func exactOrder(price *big.Int, amount int64) *types.ExactStandingOrder {
	return &types.ExactStandingOrder{
		IsExactIn:   true,
		AmountValue: big.NewInt(amount),
		MinPrice:    price,
	}
}

func exactFlash(price *big.Int, amount int64) *types.ExactFlashOrder {
	return &types.ExactFlashOrder{
		IsExactIn:   true,
		AmountValue: big.NewInt(amount),
		MinPrice:    price,
	}
}

func partialOrder(price *big.Int, min, max int64) *types.PartialStandingOrder {
	return &types.PartialStandingOrder{
		MinAmountIn: big.NewInt(min),
		MaxAmountIn: big.NewInt(max),
		MinPrice:    price,
	}
}

func partialFlash(price *big.Int, min, max int64) *types.PartialFlashOrder {
	return &types.PartialFlashOrder{
		MinAmountIn: big.NewInt(min),
		MaxAmountIn: big.NewInt(max),
		MinPrice:    price,
	}
}

func TestSolveSimpleCrossing(t *testing.T) {
	poolID := common.HexToHash("0x01")
	snap := flatSnapshot(poolID)

	ask := NewBookOrder(stored(1, false, exactOrder(rayOne, 1000), 0))
	bid := NewBookOrder(stored(2, true, exactOrder(rayOne, 1000), 0))

	sol, err := Solve(poolID, []BookOrder{ask, bid}, nil, snap)
	require.NoError(t, err)
	require.Equal(t, 0, sol.UCP.Big().Cmp(rayOne))
	require.Len(t, sol.Limit, 2)
	for _, o := range sol.Limit {
		require.Equal(t, types.FillComplete, o.State)
	}
	require.Equal(t, 0, sol.RewardT0.Sign())
}

func TestSolveMarginalAsksProrated(t *testing.T) {
	poolID := common.HexToHash("0x02")
	snap := flatSnapshot(poolID)

	bid := NewBookOrder(stored(1, true, exactOrder(rayOne, 500), 0))
	// askA has the larger priority volume so tie-break fills it first.
	askA := NewBookOrder(stored(2, false, partialOrder(rayOne, 100, 300), 10))
	askB := NewBookOrder(stored(3, false, partialOrder(rayOne, 50, 400), 5))

	sol, err := Solve(poolID, []BookOrder{bid, askA, askB}, nil, snap)
	require.NoError(t, err)
	require.Equal(t, 0, sol.UCP.Big().Cmp(rayOne))

	outcomes := map[common.Hash]types.OrderOutcome{}
	for _, o := range sol.Limit {
		outcomes[o.OrderID.Hash] = o
	}

	require.Equal(t, types.FillComplete, outcomes[bid.Stored.ID.Hash].State)

	a := outcomes[askA.Stored.ID.Hash]
	require.Equal(t, types.FillComplete, a.State)

	b := outcomes[askB.Stored.ID.Hash]
	require.Equal(t, types.FillPartial, b.State)
	require.Equal(t, 0, b.Quantity.Cmp(big.NewInt(200)))

	require.Equal(t, 0, sol.RewardT0.Sign())
}

func TestSolveAmmLegAbsorbsResidualAsDust(t *testing.T) {
	poolID := common.HexToHash("0x03")
	snap := flatSnapshot(poolID)

	askPrice := rayOf(95, 100)
	// min is set far above any plausible swap size at this liquidity so
	// the residual never clears the floor and is left as dust.
	huge := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	full := new(big.Int).Exp(big.NewInt(10), big.NewInt(15), nil)
	ask := NewBookOrder(stored(1, false, partialOrder(askPrice, huge.Int64(), full.Int64()), 0))

	sol, err := Solve(poolID, []BookOrder{ask}, nil, snap)
	require.NoError(t, err)

	require.Len(t, sol.Limit, 1)
	require.Equal(t, types.FillKilled, sol.Limit[0].State)
	require.NotNil(t, sol.AmmQuantity)
	require.Equal(t, 1, sol.RewardT0.Sign())
}

func TestSolveOversizedExactAskAtMarginIsKilledNotFilled(t *testing.T) {
	poolID := common.HexToHash("0x06")
	snap := flatSnapshot(poolID)

	// Same setup as TestSolveAmmLegAbsorbsResidualAsDust, but the ask
	// is an exact order instead of a partial one: it cannot be
	// partially filled, so when the book (here, just the AMM leg) has
	// only dust-sized room for it, it must come out Killed rather than
	// silently FillComplete with no real counterparty.
	askPrice := rayOf(95, 100)
	full := new(big.Int).Exp(big.NewInt(10), big.NewInt(15), nil)
	ask := NewBookOrder(stored(1, false, exactOrder(askPrice, full.Int64()), 0))

	sol, err := Solve(poolID, []BookOrder{ask}, nil, snap)
	require.NoError(t, err)

	require.Len(t, sol.Limit, 1)
	require.Equal(t, types.FillKilled, sol.Limit[0].State)
	require.Equal(t, 1, sol.RewardT0.Sign())
}

func TestSolveFlashOrderOutOfRangeIsKilled(t *testing.T) {
	poolID := common.HexToHash("0x04")
	snap := flatSnapshot(poolID)

	flash := NewBookOrder(stored(1, false, exactFlash(rayOf(10, 1), 1000), 0))
	standing := NewBookOrder(stored(2, false, exactOrder(rayOf(10, 1), 1000), 0))

	sol, err := Solve(poolID, []BookOrder{flash, standing}, nil, snap)
	require.NoError(t, err)

	outcomes := map[common.Hash]types.OrderOutcome{}
	for _, o := range sol.Limit {
		outcomes[o.OrderID.Hash] = o
	}
	require.Equal(t, types.FillKilled, outcomes[flash.Stored.ID.Hash].State)
	require.Equal(t, types.FillUnfilled, outcomes[standing.Stored.ID.Hash].State)
}

func TestAllocateMarginalNeverReturnsPartialBelowMinAlwaysKilled(t *testing.T) {
	imbalance := big.NewInt(-30)
	allocated, state := allocateMarginal(false, imbalance, big.NewInt(200), big.NewInt(50))
	require.Equal(t, types.FillKilled, state)
	require.Nil(t, allocated)
	require.Equal(t, 0, imbalance.Cmp(big.NewInt(-30)))
}

func TestAllocateMarginalFullFillWhenRoomExceedsFull(t *testing.T) {
	imbalance := big.NewInt(-500)
	allocated, state := allocateMarginal(false, imbalance, big.NewInt(200), big.NewInt(50))
	require.Equal(t, types.FillComplete, state)
	require.Equal(t, 0, allocated.Cmp(big.NewInt(200)))
	require.Equal(t, 0, imbalance.Cmp(big.NewInt(-300)))
}

func TestAllocateMarginalPartialFillAboveMinWhenRoomIsLimited(t *testing.T) {
	imbalance := big.NewInt(-80)
	allocated, state := allocateMarginal(false, imbalance, big.NewInt(200), big.NewInt(50))
	require.Equal(t, types.FillPartial, state)
	require.Equal(t, 0, allocated.Cmp(big.NewInt(80)))
	require.Equal(t, 0, imbalance.Sign())
}

func TestAllocateMarginalExactOrderCanOnlyCompleteOrKill(t *testing.T) {
	imbalance := big.NewInt(-80)
	allocated, state := allocateMarginal(false, imbalance, big.NewInt(200), big.NewInt(200))
	require.Equal(t, types.FillKilled, state)
	require.Nil(t, allocated)
	require.Equal(t, 0, imbalance.Cmp(big.NewInt(-80)))
}

func TestSolveSearcherTopOfBlockFillsWhenEligible(t *testing.T) {
	poolID := common.HexToHash("0x05")
	snap := flatSnapshot(poolID)

	tob := &types.TopOfBlockOrder{
		QuantityIn:  big.NewInt(1000),
		QuantityOut: big.NewInt(1000),
		AssetIn:     common.HexToAddress("0x02"),
		AssetOut:    common.HexToAddress("0x01"),
	}
	searcher := stored(9, false, tob, 0)

	sol, err := Solve(poolID, nil, searcher, snap)
	require.NoError(t, err)
	require.NotNil(t, sol.Searcher)
	require.Equal(t, searcher.ID.Hash, sol.Searcher.ID.Hash)
}
