// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package oracle

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/luxfi/geth/common"

	"github.com/angstrom-protocol/angstrom/types"
)

// oneE18 scales a per-token wei price so prices can be set for
// 18-decimal tokens without losing precision to integer division.
var oneE18 = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

// TableOracle is the default validation.GasOracle: a mutable gas
// price and a static per-token wei price table, both set by the
// operator or refreshed by a background price feed. Grounded on
// original_source's order/sim/gas.rs fixed per-kind gas constants —
// that file's own EVM-simulation path is entirely commented-out dead
// code, so the fixed-quote model is this package's own design for
// turning those gas units into a T0-denominated cost.
type TableOracle struct {
	mu          sync.RWMutex
	gasPriceWei *big.Int
	// pricesWeiPerToken[t] is how many wei one whole unit (1e18) of t
	// is worth.
	pricesWeiPerToken map[common.Address]*big.Int
}

// NewTableOracle builds a TableOracle seeded with an initial gas
// price and per-token price table.
func NewTableOracle(gasPriceWei *big.Int, pricesWeiPerToken map[common.Address]*big.Int) *TableOracle {
	if pricesWeiPerToken == nil {
		pricesWeiPerToken = make(map[common.Address]*big.Int)
	}
	return &TableOracle{gasPriceWei: gasPriceWei, pricesWeiPerToken: pricesWeiPerToken}
}

// SetGasPriceWei updates the gas price a background feed observed.
func (o *TableOracle) SetGasPriceWei(gasPriceWei *big.Int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.gasPriceWei = gasPriceWei
}

// SetPrice updates one token's wei-per-1e18-unit price.
func (o *TableOracle) SetPrice(token common.Address, weiPerToken *big.Int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.pricesWeiPerToken[token] = weiPerToken
}

// GasCostT0 implements validation.GasOracle: gas units for order's
// kind, priced at the current gas price, converted into tokenIn units
// through the table.
func (o *TableOracle) GasCostT0(order types.Order, tokenIn common.Address) (*big.Int, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	price, ok := o.pricesWeiPerToken[tokenIn]
	if !ok || price == nil || price.Sign() <= 0 {
		return nil, fmt.Errorf("oracle: no price quoted for token %s", tokenIn)
	}
	if o.gasPriceWei == nil {
		return nil, fmt.Errorf("oracle: no gas price quoted")
	}

	units := GasUnitsFor(order)
	weiCost := new(big.Int).Mul(new(big.Int).SetUint64(units), o.gasPriceWei)
	scaled := new(big.Int).Mul(weiCost, oneE18)
	return new(big.Int).Div(scaled, price), nil
}
