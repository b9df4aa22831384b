// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package oracle

import (
	"context"
	"fmt"
	"math/big"

	"github.com/luxfi/geth/common"

	"github.com/angstrom-protocol/angstrom/types"
)

// ChainPriceSource reads live gas and token prices from the L1 node,
// the same two queries ethclient.Client exposes (SuggestGasPrice) and
// a price feed would expose per token.
type ChainPriceSource interface {
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	PriceWeiPerToken(ctx context.Context, token common.Address) (*big.Int, error)
}

// SimulatingOracle is the alternative validation.GasOracle: it quotes
// the same fixed per-kind gas units as TableOracle but prices them
// against a live ChainPriceSource instead of an operator-set table, so
// its quotes track current network conditions.
type SimulatingOracle struct {
	ctx    context.Context
	source ChainPriceSource
}

// NewSimulatingOracle builds a SimulatingOracle backed by source.
// ctx bounds every price query it issues.
func NewSimulatingOracle(ctx context.Context, source ChainPriceSource) *SimulatingOracle {
	return &SimulatingOracle{ctx: ctx, source: source}
}

// GasCostT0 implements validation.GasOracle against live chain state.
func (o *SimulatingOracle) GasCostT0(order types.Order, tokenIn common.Address) (*big.Int, error) {
	gasPriceWei, err := o.source.SuggestGasPrice(o.ctx)
	if err != nil {
		return nil, fmt.Errorf("oracle: suggesting gas price: %w", err)
	}
	price, err := o.source.PriceWeiPerToken(o.ctx, tokenIn)
	if err != nil {
		return nil, fmt.Errorf("oracle: pricing token %s: %w", tokenIn, err)
	}
	if price == nil || price.Sign() <= 0 {
		return nil, fmt.Errorf("oracle: no live price for token %s", tokenIn)
	}

	units := GasUnitsFor(order)
	weiCost := new(big.Int).Mul(new(big.Int).SetUint64(units), gasPriceWei)
	scaled := new(big.Int).Mul(weiCost, oneE18)
	return new(big.Int).Div(scaled, price), nil
}
