// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpcapi

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/angstrom-protocol/angstrom/orderpool"
	"github.com/angstrom-protocol/angstrom/types"
)

// AttestationSource feeds SubscribeAttestations; cmd/angstromd wires
// it to whatever fans out each Round's ReceiveEmptyAttestation calls.
type AttestationSource interface {
	Subscribe() (<-chan types.AttestAngstromBlockEmpty, func())
}

// SubscriptionHandler upgrades HTTP requests to websockets and streams
// one of the two event feeds as newline-delimited JSON, the same shape
// gorilla/websocket's own examples use for a server-push feed.
type SubscriptionHandler struct {
	Orders       OrderFeed
	Attestations AttestationSource
	upgrader     websocket.Upgrader
}

// OrderFeed is the subset of *orderpool.Pool a subscriber needs.
type OrderFeed interface {
	Events() <-chan orderpool.PropagationEvent
}

// NewSubscriptionHandler builds a handler with permissive CORS,
// matching a local-RPC-endpoint trust model.
func NewSubscriptionHandler(orders OrderFeed, attestations AttestationSource) *SubscriptionHandler {
	return &SubscriptionHandler{
		Orders:       orders,
		Attestations: attestations,
		upgrader:     websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
	}
}

// SubscribeOrders streams every order the pool accepts into its
// propagation feed.
func (h *SubscriptionHandler) SubscribeOrders(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	for ev := range h.Orders.Events() {
		if ev.Kind != orderpool.PropagatePooledOrder || ev.Order == nil {
			continue
		}
		if err := conn.WriteJSON(ev.Order); err != nil {
			return
		}
	}
}

// SubscribeAttestations streams every empty-block attestation this
// node has observed.
func (h *SubscriptionHandler) SubscribeAttestations(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	feed, cancel := h.Attestations.Subscribe()
	defer cancel()

	for att := range feed {
		if err := conn.WriteJSON(att); err != nil {
			return
		}
	}
}
