// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package matching

import (
	"math/big"

	"github.com/holiman/uint256"

	"github.com/angstrom-protocol/angstrom/amm"
	"github.com/angstrom-protocol/angstrom/ray"
)

var rayScale = new(big.Int).Exp(big.NewInt(10), big.NewInt(ray.Decimals), nil)

// sqrtPriceX96ForRay inverts Snapshot.CurrentPrice's
// price = sqrtPriceX96^2 * 1e27 / 2^192, giving the sqrtPriceX96 a UCP
// candidate corresponds to, so it can drive Snapshot.SwapToPrice.
func sqrtPriceX96ForRay(p ray.Ray) *uint256.Int {
	num := new(big.Int).Mul(p.Big(), amm.Q192)
	num.Quo(num, rayScale)
	root := new(big.Int).Sqrt(num)
	return uint256.MustFromBig(root)
}
