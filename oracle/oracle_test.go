// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package oracle

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/luxfi/geth/common"
	"github.com/stretchr/testify/require"

	"github.com/angstrom-protocol/angstrom/types"
)

func tobOrder(useInternal bool) *types.TopOfBlockOrder {
	return &types.TopOfBlockOrder{UseInternalFlag: useInternal}
}

func bookOrder(useInternal bool) *types.ExactStandingOrder {
	return &types.ExactStandingOrder{UseInternalFlag: useInternal}
}

func TestGasUnitsForSelectsPerKindConstant(t *testing.T) {
	require.Equal(t, TobGas, GasUnitsFor(tobOrder(false)))
	require.Equal(t, TobGasInternal, GasUnitsFor(tobOrder(true)))
	require.Equal(t, BookGas, GasUnitsFor(bookOrder(false)))
	require.Equal(t, BookGasInternal, GasUnitsFor(bookOrder(true)))
}

func TestTableOracleConvertsGasToTokenUnits(t *testing.T) {
	token := common.BytesToAddress([]byte{1})
	// 1 token == 1 ether (1e18 wei), gas price 1 gwei.
	oracle := NewTableOracle(big.NewInt(1_000_000_000), map[common.Address]*big.Int{
		token: new(big.Int).Set(oneE18),
	})

	cost, err := oracle.GasCostT0(bookOrder(false), token)
	require.NoError(t, err)
	require.Equal(t, new(big.Int).Mul(big.NewInt(int64(BookGas)), big.NewInt(1_000_000_000)), cost)
}

func TestTableOracleRejectsUnknownToken(t *testing.T) {
	oracle := NewTableOracle(big.NewInt(1), nil)
	_, err := oracle.GasCostT0(bookOrder(false), common.BytesToAddress([]byte{9}))
	require.Error(t, err)
}

func TestTableOracleSetPriceAndGasPriceTakeEffect(t *testing.T) {
	token := common.BytesToAddress([]byte{2})
	oracle := NewTableOracle(big.NewInt(1), nil)
	oracle.SetGasPriceWei(big.NewInt(1_000_000_000))
	oracle.SetPrice(token, new(big.Int).Set(oneE18))

	cost, err := oracle.GasCostT0(tobOrder(true), token)
	require.NoError(t, err)
	require.Equal(t, new(big.Int).Mul(big.NewInt(int64(TobGasInternal)), big.NewInt(1_000_000_000)), cost)
}

type fakeChainPriceSource struct {
	gasPrice *big.Int
	price    *big.Int
	err      error
}

func (f *fakeChainPriceSource) SuggestGasPrice(context.Context) (*big.Int, error) {
	return f.gasPrice, f.err
}

func (f *fakeChainPriceSource) PriceWeiPerToken(context.Context, common.Address) (*big.Int, error) {
	return f.price, f.err
}

func TestSimulatingOracleUsesLiveChainPrices(t *testing.T) {
	source := &fakeChainPriceSource{gasPrice: big.NewInt(2_000_000_000), price: new(big.Int).Set(oneE18)}
	oracle := NewSimulatingOracle(context.Background(), source)

	cost, err := oracle.GasCostT0(bookOrder(false), common.Address{})
	require.NoError(t, err)
	require.Equal(t, new(big.Int).Mul(big.NewInt(int64(BookGas)), big.NewInt(2_000_000_000)), cost)
}

func TestSimulatingOracleSurfacesSourceErrors(t *testing.T) {
	source := &fakeChainPriceSource{err: errors.New("boom")}
	oracle := NewSimulatingOracle(context.Background(), source)
	_, err := oracle.GasCostT0(bookOrder(false), common.Address{})
	require.Error(t, err)
}
