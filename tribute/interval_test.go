// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tribute

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/angstrom-protocol/angstrom/ray"
)

func TestBlobCostZeroWhenNextMatchesBlobPrice(t *testing.T) {
	blobT0 := big.NewInt(100)
	blobT1 := big.NewInt(100)
	next := TickInterval{DT0: big.NewInt(50), DT1: big.NewInt(-50)}

	cost := blobCost(blobT0, blobT1, next, ray.RoundUp)
	require.Equal(t, 0, cost.Sign())
}

func TestBlobCostRestatesBlobAtNextsAveragePrice(t *testing.T) {
	// blob holds (100, 100): average price 1 T1-per-T0. next traded at
	// an average price of 3 T1-per-T0, so matching it restates the
	// blob's fixed T1 (100) as T0 = 100/3, rounded up (34), and the
	// cost is the gap from what the blob actually holds (100).
	blobT0 := big.NewInt(100)
	blobT1 := big.NewInt(100)
	next := TickInterval{DT0: big.NewInt(100), DT1: big.NewInt(-300)}

	cost := blobCost(blobT0, blobT1, next, ray.RoundUp)
	require.Equal(t, 0, cost.Cmp(big.NewInt(66)))
}

func TestBlobCostZeroIntervalIsFreeToSkip(t *testing.T) {
	blobT0 := big.NewInt(100)
	blobT1 := big.NewInt(100)
	cost := blobCost(blobT0, blobT1, TickInterval{DT0: big.NewInt(0), DT1: big.NewInt(0)}, ray.RoundDown)
	require.Equal(t, 0, cost.Sign())
}
