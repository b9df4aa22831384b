// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package registry

import (
	"math/big"
	"testing"

	"github.com/luxfi/geth/common"
	"github.com/stretchr/testify/require"

	"github.com/angstrom-protocol/angstrom/types"
)

type fakeTickLoader struct {
	ticks map[int32]types.TickInfo
	err   error
}

func (f *fakeTickLoader) LoadTicks(types.PoolId, int32, types.Direction, int) (map[int32]types.TickInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.ticks, nil
}

func testPoolKey() types.PoolKey {
	return types.PoolKey{
		Token0: common.HexToAddress("0x01"),
		Token1: common.HexToAddress("0x02"),
		Fee:    3000,
	}
}

func TestGetUnknownPool(t *testing.T) {
	r := New(&fakeTickLoader{})
	_, _, err := r.Get(common.Hash{})
	require.ErrorIs(t, err, ErrUnknownPool)
}

func TestHandlePoolEventAddAndRemove(t *testing.T) {
	r := New(&fakeTickLoader{})
	key := testPoolKey()
	id := key.ID()

	r.HandlePoolEvent(types.PoolEvent{NewPool: &key})
	snap, unlock, err := r.Get(id)
	require.NoError(t, err)
	require.Equal(t, id, snap.PoolID)
	unlock()

	r.HandlePoolEvent(types.PoolEvent{RemovedPool: &id})
	_, _, err = r.Get(id)
	require.ErrorIs(t, err, ErrUnknownPool)
}

func TestLoadMoreTicksExtendsWindow(t *testing.T) {
	r := New(&fakeTickLoader{ticks: map[int32]types.TickInfo{
		-120: {LiquidityNet: big.NewInt(5), Initialized: true},
		120:  {LiquidityNet: big.NewInt(-5), Initialized: true},
	}})
	key := testPoolKey()
	id := key.ID()
	r.HandlePoolEvent(types.PoolEvent{NewPool: &key})

	err := <-r.LoadMoreTicks(id, 0, types.ZeroForOne, 2)
	require.NoError(t, err)

	snap, unlock, err := r.Get(id)
	require.NoError(t, err)
	defer unlock()
	require.Equal(t, int32(-120), snap.MinLoadedTick)
	require.Equal(t, int32(120), snap.MaxLoadedTick)
	require.True(t, snap.Ticks[-120].Initialized)
}

func TestLoadMoreTicksPropagatesLoaderError(t *testing.T) {
	r := New(&fakeTickLoader{err: require.AnError})
	key := testPoolKey()
	id := key.ID()
	r.HandlePoolEvent(types.PoolEvent{NewPool: &key})

	err := <-r.LoadMoreTicks(id, 0, types.ZeroForOne, 2)
	require.ErrorIs(t, err, require.AnError)
}
