// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpcapi

import (
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/angstrom-protocol/angstrom/orderpool"
	"github.com/angstrom-protocol/angstrom/types"
)

type fakeOrderFeed struct {
	events chan orderpool.PropagationEvent
}

func (f *fakeOrderFeed) Events() <-chan orderpool.PropagationEvent { return f.events }

type fakeAttestationSource struct {
	events chan types.AttestAngstromBlockEmpty
}

func (f *fakeAttestationSource) Subscribe() (<-chan types.AttestAngstromBlockEmpty, func()) {
	return f.events, func() {}
}

func TestSubscribeOrdersStreamsAcceptedOrders(t *testing.T) {
	feed := &fakeOrderFeed{events: make(chan orderpool.PropagationEvent, 1)}
	handler := NewSubscriptionHandler(feed, &fakeAttestationSource{events: make(chan types.AttestAngstromBlockEmpty)})

	server := httptest.NewServer(http.HandlerFunc(handler.SubscribeOrders))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	order := &types.StoredOrder{Order: &types.TopOfBlockOrder{QuantityIn: big.NewInt(1)}}
	feed.events <- orderpool.PropagationEvent{Kind: orderpool.PropagatePooledOrder, Order: order}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var out map[string]any
	require.NoError(t, conn.ReadJSON(&out))
	require.Contains(t, out, "IsBid")
}

func TestSubscribeAttestationsStreamsAttestations(t *testing.T) {
	feed := &fakeAttestationSource{events: make(chan types.AttestAngstromBlockEmpty, 1)}
	handler := NewSubscriptionHandler(&fakeOrderFeed{events: make(chan orderpool.PropagationEvent)}, feed)

	server := httptest.NewServer(http.HandlerFunc(handler.SubscribeAttestations))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	feed.events <- types.AttestAngstromBlockEmpty{BlockNumber: 99}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var out types.AttestAngstromBlockEmpty
	require.NoError(t, conn.ReadJSON(&out))
	require.Equal(t, uint64(99), out.BlockNumber)
}
