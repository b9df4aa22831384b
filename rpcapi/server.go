// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpcapi

import (
	"net/http"

	gorillarpc "github.com/gorilla/rpc/v2"
	"github.com/gorilla/rpc/v2/json2"
)

// NewServer builds the node's JSON-RPC 2.0 mux: "order.*" and
// "consensus.*" methods over HTTP POST at /rpc, plus "/ws/orders" and
// "/ws/attestations" websocket subscriptions. Grounded on the
// teacher's own use of gorilla/rpc's json2 codec on the client side
// (utils/rpc/json.go); here the same codec backs the server.
func NewServer(orders *OrderService, consensus *ConsensusService, subs *SubscriptionHandler) *http.ServeMux {
	server := gorillarpc.NewServer()
	server.RegisterCodec(json2.NewCodec(), "application/json")
	if err := server.RegisterService(orders, "order"); err != nil {
		panic(err)
	}
	if err := server.RegisterService(consensus, "consensus"); err != nil {
		panic(err)
	}

	mux := http.NewServeMux()
	mux.Handle("/rpc", server)
	mux.HandleFunc("/ws/orders", subs.SubscribeOrders)
	mux.HandleFunc("/ws/attestations", subs.SubscribeAttestations)
	return mux
}
