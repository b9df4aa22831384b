// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package amm

import (
	"math/big"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/angstrom-protocol/angstrom/types"
)

func flatSnapshot() *Snapshot {
	return &Snapshot{
		Fee:           3000,
		TickSpacing:   60,
		SqrtPriceX96:  uint256.MustFromBig(new(big.Int).Set(Q96)),
		Tick:          0,
		Liquidity:     big.NewInt(1_000_000_000_000),
		Ticks:         map[int32]types.TickInfo{},
		MinLoadedTick: -600,
		MaxLoadedTick: 600,
	}
}

func TestCurrentPriceAtParity(t *testing.T) {
	s := flatSnapshot()
	p := s.CurrentPrice()
	one := new(big.Int).Exp(big.NewInt(10), big.NewInt(27), nil)
	require.Equal(t, 0, p.Big().Cmp(one), "sqrtPrice == 2^96 must be price 1.0")
}

func TestSwapToAmountZeroForOneMovesPriceDown(t *testing.T) {
	s := flatSnapshot()
	result, err := s.SwapToAmount(big.NewInt(1_000_000), ZeroForOne)
	require.NoError(t, err)
	require.True(t, result.TotalT0.Sign() > 0, "T0 leg should be positive (paid in)")
	require.True(t, result.TotalT1.Sign() < 0, "T1 leg should be negative (paid out)")
	require.True(t, result.EndSqrtPrice.Cmp(result.StartSqrtPrice) <= 0, "zero-for-one must not raise price")
}

func TestSwapToAmountOneForZeroMovesPriceUp(t *testing.T) {
	s := flatSnapshot()
	result, err := s.SwapToAmount(big.NewInt(1_000_000), OneForZero)
	require.NoError(t, err)
	require.True(t, result.TotalT1.Sign() > 0)
	require.True(t, result.TotalT0.Sign() < 0)
	require.True(t, result.EndSqrtPrice.Cmp(result.StartSqrtPrice) >= 0, "one-for-zero must not lower price")
}

func TestSwapBeyondLoadedWindowErrors(t *testing.T) {
	s := flatSnapshot()
	s.MinLoadedTick = -60
	s.MaxLoadedTick = 60
	_, err := s.SwapToAmount(new(big.Int).Lsh(big.NewInt(1), 80), ZeroForOne)
	require.ErrorIs(t, err, ErrTickNotLoaded)
}
