// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ray implements the 27-decimal fixed-point price representation
// used throughout Angstrom's matching engine: a Ray is always T1-per-T0.
package ray

import (
	"fmt"
	"math/big"
)

// Decimals is the fixed-point precision of a Ray (1e27), matching the
// RAY convention used across the DeFi fixed-point corpus.
const Decimals = 27

// scale is 10^27.
var scale = new(big.Int).Exp(big.NewInt(10), big.NewInt(Decimals), nil)

// Ray is a 27-decimal fixed-point ratio of T1-per-T0. The zero value is
// not a valid price; construct with New or FromBig.
type Ray struct {
	v *big.Int
}

// Zero returns the Ray value 0.
func Zero() Ray { return Ray{v: new(big.Int)} }

// New builds a Ray from an integer numerator over Decimals.
func New(i int64) Ray {
	return Ray{v: new(big.Int).Mul(big.NewInt(i), scale)}
}

// FromBig wraps an already-scaled (×1e27) big.Int as a Ray. The caller
// retains no alias to v; FromBig copies it.
func FromBig(v *big.Int) Ray {
	if v == nil {
		return Zero()
	}
	return Ray{v: new(big.Int).Set(v)}
}

// FromRat builds a Ray from a rational numerator/denominator, e.g. a
// price expressed as priceNum/priceDen T1-per-T0.
func FromRat(num, den *big.Int) Ray {
	if den.Sign() == 0 {
		return Zero()
	}
	scaled := new(big.Int).Mul(num, scale)
	return Ray{v: scaled.Quo(scaled, den)}
}

// Big returns the underlying ×1e27 integer. The caller must not mutate
// the returned value.
func (r Ray) Big() *big.Int {
	if r.v == nil {
		return new(big.Int)
	}
	return r.v
}

func (r Ray) Cmp(o Ray) int { return r.Big().Cmp(o.Big()) }

func (r Ray) Sign() int { return r.Big().Sign() }

func (r Ray) Add(o Ray) Ray { return Ray{v: new(big.Int).Add(r.Big(), o.Big())} }

func (r Ray) Sub(o Ray) Ray { return Ray{v: new(big.Int).Sub(r.Big(), o.Big())} }

func (r Ray) AbsDiff(o Ray) Ray {
	d := new(big.Int).Sub(r.Big(), o.Big())
	return Ray{v: d.Abs(d)}
}

func (r Ray) String() string {
	if r.v == nil {
		return "0"
	}
	return fmt.Sprintf("%s/1e%d", r.v.String(), Decimals)
}

// RoundDirection controls how a division remainder is handled.
type RoundDirection int

const (
	RoundDown RoundDirection = iota
	RoundUp
)

// MulQuantity converts a T0 amount to a T1 amount at this price (T1 =
// T0 * price), rounding down for outputs and up for inputs so dust
// always falls to the party that should bear it.
func (r Ray) MulQuantity(t0 *big.Int, dir RoundDirection) *big.Int {
	num := new(big.Int).Mul(t0, r.Big())
	out := new(big.Int)
	rem := new(big.Int)
	out.QuoRem(num, scale, rem)
	if dir == RoundUp && rem.Sign() != 0 {
		out.Add(out, big.NewInt(1))
	}
	return out
}

// InverseQuantity converts a T1 amount to a T0 amount at this price
// (T0 = T1 / price).
func (r Ray) InverseQuantity(t1 *big.Int, dir RoundDirection) *big.Int {
	if r.Sign() == 0 {
		return new(big.Int)
	}
	num := new(big.Int).Mul(t1, scale)
	out := new(big.Int)
	rem := new(big.Int)
	out.QuoRem(num, r.Big(), rem)
	if dir == RoundUp && rem.Sign() != 0 {
		out.Add(out, big.NewInt(1))
	}
	return out
}

// InvRayRound returns 1/r rounded per dir, used to restate a bid's
// T0-per-T1 limit as a T1-per-T0 Ray so every order can be compared
// against a single UCP variable.
func InvRayRound(r Ray, dir RoundDirection) Ray {
	if r.Sign() == 0 {
		return Zero()
	}
	num := new(big.Int).Mul(scale, scale)
	out := new(big.Int)
	rem := new(big.Int)
	out.QuoRem(num, r.Big(), rem)
	if dir == RoundUp && rem.Sign() != 0 {
		out.Add(out, big.NewInt(1))
	}
	return Ray{v: out}
}
