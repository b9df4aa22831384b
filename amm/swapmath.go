// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package amm

import (
	"math/big"

	"github.com/holiman/uint256"
)

// Q96 and Q192 are the fixed-point scales used by Uniswap-v3-style
// sqrt-price math: sqrtPriceX96 = sqrt(price) * 2^96.
var (
	Q96  = new(big.Int).Lsh(big.NewInt(1), 96)
	Q192 = new(big.Int).Lsh(big.NewInt(1), 192)

	MinTick int32 = -887272
	MaxTick int32 = 887272

	minSqrtRatio    = uint256.MustFromBig(big.NewInt(4295128739))
	maxSqrtRatio, _ = uint256.FromBig(mustBig("1461446703485210103287273052203988822378723970342"))

	feeDenominator = big.NewInt(1_000_000)
)

func mustBig(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("amm: bad constant " + s)
	}
	return v
}

// swapStepResult is the closed-form output of one tick-interval's
// worth of swap, matching Uniswap v3's SwapMath.computeSwapStep.
type swapStepResult struct {
	sqrtPriceNext *uint256.Int
	amountIn      *big.Int
	amountOut     *big.Int
	feeAmount     *big.Int
}

// computeSwapStep advances price from sqrtPriceCurrent toward
// sqrtPriceTarget, consuming at most amountRemaining (positive =
// exact-in, negative = exact-out), at the given liquidity and fee
// (pips, 1e6 = 100%). Grounded on the closed-form step used by
// Uniswap v3 and mirrored in dex's simplified
// calculateSwapOutput/calculateSwapInput.
func computeSwapStep(sqrtPriceCurrent, sqrtPriceTarget *uint256.Int, liquidity *big.Int, amountRemaining *big.Int, feePips uint32) swapStepResult {
	zeroForOne := sqrtPriceCurrent.Cmp(sqrtPriceTarget) >= 0
	exactIn := amountRemaining.Sign() >= 0

	var amountIn, amountOut *big.Int
	sqrtPriceNext := sqrtPriceTarget

	if exactIn {
		amountRemainingLessFee := new(big.Int).Mul(amountRemaining, new(big.Int).Sub(feeDenominator, big.NewInt(int64(feePips))))
		amountRemainingLessFee.Div(amountRemainingLessFee, feeDenominator)

		if zeroForOne {
			amountIn = amountInForSqrtPriceDown(sqrtPriceTarget, sqrtPriceCurrent, liquidity)
		} else {
			amountIn = amountInForSqrtPriceUp(sqrtPriceCurrent, sqrtPriceTarget, liquidity)
		}
		if amountRemainingLessFee.Cmp(amountIn) >= 0 {
			// Target price reached without exhausting the step.
		} else {
			sqrtPriceNext = nextSqrtPriceFromAmountIn(sqrtPriceCurrent, liquidity, amountRemainingLessFee, zeroForOne)
			amountIn = amountRemainingLessFee
		}
		if zeroForOne {
			amountOut = amountOutForSqrtPriceDown(sqrtPriceNext, sqrtPriceCurrent, liquidity)
		} else {
			amountOut = amountOutForSqrtPriceUp(sqrtPriceCurrent, sqrtPriceNext, liquidity)
		}
	} else {
		amountRemainingAbs := new(big.Int).Neg(amountRemaining)

		if zeroForOne {
			amountOut = amountOutForSqrtPriceDown(sqrtPriceTarget, sqrtPriceCurrent, liquidity)
		} else {
			amountOut = amountOutForSqrtPriceUp(sqrtPriceCurrent, sqrtPriceTarget, liquidity)
		}
		if amountRemainingAbs.Cmp(amountOut) >= 0 {
			// Target reached.
		} else {
			sqrtPriceNext = nextSqrtPriceFromAmountOut(sqrtPriceCurrent, liquidity, amountRemainingAbs, zeroForOne)
			amountOut = amountRemainingAbs
		}
		if zeroForOne {
			amountIn = amountInForSqrtPriceDown(sqrtPriceNext, sqrtPriceCurrent, liquidity)
		} else {
			amountIn = amountInForSqrtPriceUp(sqrtPriceCurrent, sqrtPriceNext, liquidity)
		}
	}

	var feeAmount *big.Int
	if exactIn && sqrtPriceNext.Cmp(sqrtPriceTarget) != 0 {
		feeAmount = new(big.Int).Sub(amountRemaining, amountIn)
	} else {
		feeAmount = mulDivRoundUp(amountIn, big.NewInt(int64(feePips)), new(big.Int).Sub(feeDenominator, big.NewInt(int64(feePips))))
	}

	return swapStepResult{
		sqrtPriceNext: sqrtPriceNext,
		amountIn:      amountIn,
		amountOut:     amountOut,
		feeAmount:     feeAmount,
	}
}

// amountInForSqrtPriceDown computes the token0 needed to move the
// price down from sqrtPriceUpper to sqrtPriceLower, round up (pool
// never under-charges the taker).
func amountInForSqrtPriceDown(sqrtPriceLower, sqrtPriceUpper *uint256.Int, liquidity *big.Int) *big.Int {
	numerator := new(big.Int).Mul(liquidity, new(big.Int).Lsh(big.NewInt(1), 96))
	diff := new(big.Int).Sub(sqrtPriceUpper.ToBig(), sqrtPriceLower.ToBig())
	numerator.Mul(numerator, diff)
	denom := new(big.Int).Mul(sqrtPriceLower.ToBig(), sqrtPriceUpper.ToBig())
	return divRoundUp(numerator, denom)
}

// amountOutForSqrtPriceDown computes the token1 paid out when price
// moves down from sqrtPriceUpper to sqrtPriceLower, round down.
func amountOutForSqrtPriceDown(sqrtPriceLower, sqrtPriceUpper *uint256.Int, liquidity *big.Int) *big.Int {
	diff := new(big.Int).Sub(sqrtPriceUpper.ToBig(), sqrtPriceLower.ToBig())
	out := new(big.Int).Mul(liquidity, diff)
	return new(big.Int).Rsh(out, 96)
}

// amountInForSqrtPriceUp computes the token1 needed to move the price
// up from sqrtPriceLower to sqrtPriceUpper, round up.
func amountInForSqrtPriceUp(sqrtPriceLower, sqrtPriceUpper *uint256.Int, liquidity *big.Int) *big.Int {
	diff := new(big.Int).Sub(sqrtPriceUpper.ToBig(), sqrtPriceLower.ToBig())
	in := new(big.Int).Mul(liquidity, diff)
	return divRoundUp(in, new(big.Int).Lsh(big.NewInt(1), 96))
}

// amountOutForSqrtPriceUp computes the token0 paid out when price
// moves up from sqrtPriceLower to sqrtPriceUpper, round down.
func amountOutForSqrtPriceUp(sqrtPriceLower, sqrtPriceUpper *uint256.Int, liquidity *big.Int) *big.Int {
	numerator := new(big.Int).Mul(liquidity, new(big.Int).Lsh(big.NewInt(1), 96))
	diff := new(big.Int).Sub(sqrtPriceUpper.ToBig(), sqrtPriceLower.ToBig())
	numerator.Mul(numerator, diff)
	denom := new(big.Int).Mul(sqrtPriceLower.ToBig(), sqrtPriceUpper.ToBig())
	if denom.Sign() == 0 {
		return big.NewInt(0)
	}
	return new(big.Int).Div(numerator, denom)
}

func nextSqrtPriceFromAmountIn(sqrtPrice *uint256.Int, liquidity, amountIn *big.Int, zeroForOne bool) *uint256.Int {
	if zeroForOne {
		numerator := new(big.Int).Mul(liquidity, sqrtPrice.ToBig())
		product := new(big.Int).Mul(amountIn, sqrtPrice.ToBig())
		denom := new(big.Int).Lsh(liquidity, 96)
		denom.Add(denom, product)
		next := new(big.Int).Mul(numerator, big.NewInt(1))
		next.Lsh(next, 96)
		next.Div(next, denom)
		return clampUint256(next)
	}
	quotient := new(big.Int).Lsh(amountIn, 96)
	quotient.Div(quotient, liquidity)
	next := new(big.Int).Add(sqrtPrice.ToBig(), quotient)
	return clampUint256(next)
}

func nextSqrtPriceFromAmountOut(sqrtPrice *uint256.Int, liquidity, amountOut *big.Int, zeroForOne bool) *uint256.Int {
	if zeroForOne {
		quotient := new(big.Int).Lsh(amountOut, 96)
		quotient.Div(quotient, liquidity)
		next := new(big.Int).Sub(sqrtPrice.ToBig(), quotient)
		if next.Sign() < 0 {
			next = big.NewInt(0)
		}
		return clampUint256(next)
	}
	numerator := new(big.Int).Mul(liquidity, sqrtPrice.ToBig())
	product := new(big.Int).Mul(amountOut, sqrtPrice.ToBig())
	denom := new(big.Int).Lsh(liquidity, 96)
	denom.Sub(denom, product)
	if denom.Sign() <= 0 {
		return clampUint256(maxSqrtRatio.ToBig())
	}
	next := new(big.Int).Mul(numerator, big.NewInt(1))
	next.Lsh(next, 96)
	next.Div(next, denom)
	return clampUint256(next)
}

func clampUint256(v *big.Int) *uint256.Int {
	if v.Sign() < 0 {
		v = big.NewInt(0)
	}
	u, overflow := uint256.FromBig(v)
	if overflow {
		u = new(uint256.Int).SetAllOne()
	}
	return u
}

func divRoundUp(num, denom *big.Int) *big.Int {
	q, r := new(big.Int).QuoRem(num, denom, new(big.Int))
	if r.Sign() != 0 {
		q.Add(q, big.NewInt(1))
	}
	return q
}

func mulDivRoundUp(a, b, denom *big.Int) *big.Int {
	if denom.Sign() == 0 {
		return big.NewInt(0)
	}
	num := new(big.Int).Mul(a, b)
	return divRoundUp(num, denom)
}

// sqrtPriceToTick converts a Q64.96 sqrt price to the containing tick
// by binary search, mirroring dex/pool_manager.go's
// PoolManager.sqrtPriceX96ToTick.
func sqrtPriceToTick(sqrtPriceX96 *uint256.Int, tickAtSqrtPrice func(int32) *uint256.Int) int32 {
	if sqrtPriceX96.Cmp(minSqrtRatio) <= 0 {
		return MinTick
	}
	if sqrtPriceX96.Cmp(maxSqrtRatio) >= 0 {
		return MaxTick
	}
	lo, hi := MinTick, MaxTick
	for lo < hi {
		mid := lo + (hi-lo+1)/2
		if tickAtSqrtPrice(mid).Cmp(sqrtPriceX96) <= 0 {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// tickToSqrtPriceX96 computes sqrt(1.0001^tick) * 2^96 with 256-bit
// big.Float arithmetic.
func tickToSqrtPriceX96(tick int32) *uint256.Int {
	if tick == 0 {
		return uint256.MustFromBig(new(big.Int).Set(Q96))
	}
	absTick := tick
	if tick < 0 {
		absTick = -tick
	}

	ratio := new(big.Float).SetPrec(256).SetInt64(1)
	base, _ := new(big.Float).SetPrec(256).SetString("1.0001")
	for n := int64(absTick); n > 0; n >>= 1 {
		if n&1 == 1 {
			ratio.Mul(ratio, base)
		}
		base.Mul(base, base)
	}
	ratio.Sqrt(ratio)
	if tick < 0 {
		ratio.Quo(new(big.Float).SetPrec(256).SetInt64(1), ratio)
	}
	result, _ := ratio.Mul(ratio, new(big.Float).SetInt(Q96)).Int(nil)
	if result.Cmp(minSqrtRatio.ToBig()) < 0 {
		result = new(big.Int).Set(minSqrtRatio.ToBig())
	}
	if result.Cmp(maxSqrtRatio.ToBig()) > 0 {
		result = new(big.Int).Set(maxSqrtRatio.ToBig())
	}
	return clampUint256(result)
}

var sqrtMagics = []struct {
	bit   int
	magic *big.Int
}{
	{0, bytesBig(0xff, 0xf9, 0x71, 0x63, 0xe1, 0x37, 0x66, 0x35)},
	{1, bytesBig(0xff, 0xf2, 0xe5, 0x0f, 0x62, 0x6c, 0x4c, 0x95)},
	{2, bytesBig(0xff, 0xe5, 0xca, 0xca, 0x7e, 0x10, 0xe4, 0x46)},
	{3, bytesBig(0xff, 0xcb, 0x9a, 0x97, 0x93, 0x42, 0xa9, 0x50)},
	{4, bytesBig(0xff, 0x97, 0x38, 0x3c, 0x7e, 0x70, 0x01, 0x2a)},
	{5, bytesBig(0xff, 0x2e, 0xa1, 0x34, 0x34, 0xc3, 0x39, 0x69)},
	{6, bytesBig(0xfe, 0x5d, 0xee, 0x04, 0x6a, 0x99, 0xa1, 0x2d)},
	{7, bytesBig(0xfc, 0xbe, 0x86, 0xc7, 0x90, 0x67, 0x90, 0x01)},
	{8, bytesBig(0xf9, 0x87, 0xa7, 0x25, 0x30, 0x42, 0x46, 0x85)},
}

func bytesBig(b ...byte) *big.Int {
	return new(big.Int).SetBytes(b)
}
