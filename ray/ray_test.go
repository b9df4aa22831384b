// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ray

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMulInverseRoundTrip(t *testing.T) {
	price := New(2) // 2 T1 per T0
	t0 := big.NewInt(1000)

	t1 := price.MulQuantity(t0, RoundDown)
	require.Equal(t, big.NewInt(2000), t1)

	back := price.InverseQuantity(t1, RoundDown)
	require.Equal(t, t0, back)
}

func TestMulQuantityRoundsAsRequested(t *testing.T) {
	price := FromRat(big.NewInt(1), big.NewInt(3)) // 1/3 T1 per T0
	t0 := big.NewInt(10)

	down := price.MulQuantity(t0, RoundDown)
	up := price.MulQuantity(t0, RoundUp)

	require.True(t, down.Cmp(up) < 0, "rounding up must be strictly greater when there's a remainder")
}

func TestInvRayRoundTrip(t *testing.T) {
	price := New(4)
	inv := InvRayRound(price, RoundDown)
	// 1/4 T0-per-T1 restated back should recover ~4 (within rounding direction).
	restored := InvRayRound(inv, RoundUp)
	require.Equal(t, 0, restored.Cmp(price))
}

func TestZeroPriceInverseIsZero(t *testing.T) {
	require.Equal(t, big.NewInt(0), Zero().InverseQuantity(big.NewInt(500), RoundDown))
}
