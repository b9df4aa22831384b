// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package amm emulates a single Uniswap-v4-shaped constant-product
// pool off-chain so the matching engine can price directional swaps
// without touching the EVM. It is a per-block snapshot whose swaps
// advance its own price, tick and liquidity in place: the registry
// (package registry) owns the shared copy and hands out locked views
// of it, and speculative swaps run on a Clone.
package amm

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"

	"github.com/angstrom-protocol/angstrom/ray"
	"github.com/angstrom-protocol/angstrom/types"
)

// Direction mirrors types.Direction; re-exported for package-local
// readability in swap call sites.
type Direction = types.Direction

const (
	ZeroForOne = types.ZeroForOne
	OneForZero = types.OneForZero
)

// SwapStep is one entry of a swap's ordered trace, reported back to
// the tribute calculator so it can reconstruct donation intervals.
type SwapStep struct {
	EndTick     int32
	Initialized bool
	Liquidity   *big.Int
	DT0         *big.Int
	DT1         *big.Int
}

// SwapResult is the outcome of one swap_to_amount/swap_to_price call.
type SwapResult struct {
	StartSqrtPrice *uint256.Int
	EndSqrtPrice   *uint256.Int
	TotalT0        *big.Int
	TotalT1        *big.Int
	Steps          []SwapStep
}

// Snapshot is a per-block, per-pool view of the AMM: current price,
// current tick, total active liquidity, and a window of loaded
// initialized ticks. Grounded on dex/pool_manager.go's Pool/PoolManager
// state, reshaped into an off-chain simulation object
// instead of a precompile-backed mutable contract.
type Snapshot struct {
	PoolID      types.PoolId
	Fee         uint32
	TickSpacing int32

	SqrtPriceX96 *uint256.Int
	Tick         int32
	Liquidity    *big.Int

	// ticks holds the loaded window of initialized ticks, keyed by
	// tick index. Ticks outside [MinLoadedTick, MaxLoadedTick] are not
	// known to be uninitialized — they are simply not loaded yet.
	Ticks          map[int32]types.TickInfo
	MinLoadedTick  int32
	MaxLoadedTick  int32
}

// CurrentPrice returns the pool's current price as T1-per-T0 Ray:
// price = sqrtPriceX96^2 / 2^192, rescaled to 27 decimals.
func (s *Snapshot) CurrentPrice() ray.Ray {
	sq := new(big.Int).Mul(s.SqrtPriceX96.ToBig(), s.SqrtPriceX96.ToBig())
	sq.Mul(sq, rayScale)
	sq.Div(sq, Q192)
	return ray.FromBig(sq)
}

var rayScale = new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(ray.Decimals)), nil)

// SwapToAmount simulates a swap of signedAmount (positive = exact-in,
// negative = exact-out) in the given direction, walking ticks until
// the amount is exhausted or an unloaded tick boundary is reached
//.
func (s *Snapshot) SwapToAmount(signedAmount *big.Int, dir Direction) (*SwapResult, error) {
	limit := minSqrtPriceForDirection(dir)
	return s.swap(signedAmount, dir, limit)
}

// SwapToPrice simulates an unbounded swap in the given direction,
// capped by sqrtPriceLimit.
func (s *Snapshot) SwapToPrice(dir Direction, sqrtPriceLimit *uint256.Int) (*SwapResult, error) {
	// An effectively unbounded amountRemaining; the price limit cuts
	// the walk short, not the amount.
	unbounded := new(big.Int).Lsh(big.NewInt(1), 255)
	return s.swap(unbounded, dir, sqrtPriceLimit)
}

func minSqrtPriceForDirection(dir Direction) *uint256.Int {
	if dir == ZeroForOne {
		return minSqrtRatio
	}
	return maxSqrtRatio
}

func (s *Snapshot) swap(amountRemaining *big.Int, dir Direction, priceLimit *uint256.Int) (*SwapResult, error) {
	if s.Liquidity == nil || s.Liquidity.Sign() == 0 {
		if priceLimit.Cmp(s.SqrtPriceX96) == 0 {
			return &SwapResult{StartSqrtPrice: s.SqrtPriceX96, EndSqrtPrice: s.SqrtPriceX96, TotalT0: big.NewInt(0), TotalT1: big.NewInt(0)}, nil
		}
		return nil, errZeroLiquidity
	}

	zeroForOne := dir == ZeroForOne
	exactIn := amountRemaining.Sign() >= 0

	result := &SwapResult{
		StartSqrtPrice: s.SqrtPriceX96,
		TotalT0:        big.NewInt(0),
		TotalT1:        big.NewInt(0),
	}

	curSqrtPrice := s.SqrtPriceX96
	curTick := s.Tick
	curLiquidity := new(big.Int).Set(s.Liquidity)
	remaining := new(big.Int).Set(amountRemaining)

	for remaining.Sign() != 0 {
		nextTick, initialized, atTrueBoundary := s.nextInitializedTick(curTick, zeroForOne)

		sqrtPriceNextTick := tickToSqrtPriceX96(nextTick)
		stepTarget := sqrtPriceNextTick
		if zeroForOne {
			if priceLimit.Cmp(stepTarget) > 0 {
				stepTarget = priceLimit
			}
		} else {
			if priceLimit.Cmp(stepTarget) < 0 {
				stepTarget = priceLimit
			}
		}

		step := computeSwapStep(curSqrtPrice, stepTarget, curLiquidity, remaining, s.Fee)

		var dT0, dT1 *big.Int
		if zeroForOne {
			dT0 = step.amountIn
			dT1 = new(big.Int).Neg(step.amountOut)
		} else {
			dT1 = step.amountIn
			dT0 = new(big.Int).Neg(step.amountOut)
		}
		result.TotalT0.Add(result.TotalT0, dT0)
		result.TotalT1.Add(result.TotalT1, dT1)

		if exactIn {
			consumed := new(big.Int).Add(step.amountIn, step.feeAmount)
			remaining.Sub(remaining, consumed)
		} else {
			remaining.Add(remaining, step.amountOut)
		}

		crossed := step.sqrtPriceNext.Cmp(sqrtPriceNextTick) == 0
		curSqrtPrice = step.sqrtPriceNext

		traceTick := curTick
		if crossed {
			traceTick = nextTick
		}
		result.Steps = append(result.Steps, SwapStep{
			EndTick:     traceTick,
			Initialized: crossed && initialized,
			Liquidity:   new(big.Int).Set(curLiquidity),
			DT0:         dT0,
			DT1:         dT1,
		})

		if curSqrtPrice.Cmp(priceLimit) == 0 {
			break
		}

		if crossed && !initialized && !atTrueBoundary && remaining.Sign() != 0 {
			return nil, fmt.Errorf("%w: pool %s beyond [%d,%d]", ErrTickNotLoaded, s.PoolID, s.MinLoadedTick, s.MaxLoadedTick)
		}

		if crossed {
			info := s.Ticks[nextTick]
			net := info.LiquidityNet
			if net == nil {
				net = big.NewInt(0)
			}
			if !zeroForOne {
				curLiquidity.Add(curLiquidity, net)
			} else {
				curLiquidity.Sub(curLiquidity, net)
			}
			if zeroForOne {
				curTick = nextTick - 1
			} else {
				curTick = nextTick
			}
		} else {
			curTick = sqrtPriceToTick(curSqrtPrice, tickToSqrtPriceX96)
			break
		}

		if remaining.Sign() == 0 {
			break
		}
	}

	result.EndSqrtPrice = curSqrtPrice
	s.SqrtPriceX96 = curSqrtPrice
	s.Tick = curTick
	s.Liquidity = curLiquidity
	return result, nil
}

// nextInitializedTick scans the loaded window for the next initialized
// tick in the walk direction. When none is found, it returns the
// window's edge tick as the step target, with atTrueBoundary reporting
// whether that edge is the protocol's real MinTick/MaxTick (safe to
// treat as "no more liquidity ever") or just the edge of what the
// registry has loaded so far (the swap loop turns the latter into
// ErrTickNotLoaded if it actually needs to cross it).
func (s *Snapshot) nextInitializedTick(from int32, zeroForOne bool) (tick int32, initialized bool, atTrueBoundary bool) {
	step := s.TickSpacing
	if step <= 0 {
		step = 1
	}
	if zeroForOne {
		for t := alignDown(from, step); t >= s.MinLoadedTick; t -= step {
			if info, ok := s.Ticks[t]; ok && info.Initialized && t < from {
				return t, true, true
			}
		}
		return s.MinLoadedTick, false, s.MinLoadedTick <= MinTick
	}
	for t := alignUp(from, step); t <= s.MaxLoadedTick; t += step {
		if info, ok := s.Ticks[t]; ok && info.Initialized && t > from {
			return t, true, true
		}
	}
	return s.MaxLoadedTick, false, s.MaxLoadedTick >= MaxTick
}

func alignDown(tick, spacing int32) int32 {
	if tick >= 0 {
		return tick - tick%spacing
	}
	m := tick % spacing
	if m == 0 {
		return tick
	}
	return tick - m - spacing
}

func alignUp(tick, spacing int32) int32 {
	down := alignDown(tick, spacing)
	if down == tick {
		return tick + spacing
	}
	return down + spacing
}

// Clone deep-copies the snapshot so callers that only want to probe a
// hypothetical swap (the matching engine's UCP search, in particular)
// never mutate the registry's shared state. swap mutates its receiver
// in place, so every speculative call must run against a Clone.
func (s *Snapshot) Clone() *Snapshot {
	ticks := make(map[int32]types.TickInfo, len(s.Ticks))
	for k, v := range s.Ticks {
		ticks[k] = v
	}
	return &Snapshot{
		PoolID:        s.PoolID,
		Fee:           s.Fee,
		TickSpacing:   s.TickSpacing,
		SqrtPriceX96:  new(uint256.Int).Set(s.SqrtPriceX96),
		Tick:          s.Tick,
		Liquidity:     new(big.Int).Set(s.Liquidity),
		Ticks:         ticks,
		MinLoadedTick: s.MinLoadedTick,
		MaxLoadedTick: s.MaxLoadedTick,
	}
}
