// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpcapi

import (
	"fmt"
	"math/big"
	"net/http"

	"github.com/luxfi/geth/common"

	"github.com/angstrom-protocol/angstrom/types"
	"github.com/angstrom-protocol/angstrom/validation"
)

// OrderService is registered with a gorilla/rpc v2 server under the
// "order" namespace; each exported method with the
// (r *http.Request, args *T, reply *T) signature becomes an
// "order.MethodName" JSON-RPC call.
type OrderService struct {
	Pool      OrderPool
	Validator OrderValidator
	Gas       validation.GasOracle
}

// SendOrderArgs wraps a single order submission.
type SendOrderArgs struct {
	Order OrderEnvelope
}

// SendOrderReply reports whether the order was admitted.
type SendOrderReply struct {
	Hash     common.Hash
	Accepted bool
	Reason   string
}

// SendOrder validates one order and reports the verdict; the order is
// not added to the pool.
func (s *OrderService) SendOrder(r *http.Request, args *SendOrderArgs, reply *SendOrderReply) error {
	order, err := args.Order.Order()
	if err != nil {
		return err
	}

	outcome := s.Validator.Validate(r.Context(), order)
	reply.Hash = outcome.Hash
	switch outcome.Kind {
	case validation.OutcomeValid:
		reply.Accepted = true
	case validation.OutcomeInvalid:
		reply.Accepted = false
		reply.Reason = outcome.Reason.String()
	default:
		reply.Accepted = false
		reply.Reason = "validator is transitioning to a new block"
	}
	return nil
}

// SendOrdersArgs batches several submissions into one round trip.
type SendOrdersArgs struct {
	Orders []OrderEnvelope
}

// SendOrdersReply carries one SendOrderReply per input order, in order.
type SendOrdersReply struct {
	Results []SendOrderReply
}

// SendOrders validates a batch of orders and reports one verdict per
// order; like SendOrder, it does not add them to the pool.
func (s *OrderService) SendOrders(r *http.Request, args *SendOrdersArgs, reply *SendOrdersReply) error {
	reply.Results = make([]SendOrderReply, len(args.Orders))
	for i, env := range args.Orders {
		var single SendOrderReply
		if err := s.SendOrder(r, &SendOrderArgs{Order: env}, &single); err != nil {
			single.Accepted = false
			single.Reason = err.Error()
		}
		reply.Results[i] = single
	}
	return nil
}

// CancelOrderArgs requests a signed cancellation be applied.
type CancelOrderArgs struct {
	Request  types.CancelOrderRequest
	Deadline uint64
}

// CancelOrderReply is always OK: Cancel is fire-and-forget, matching
// validation.Validator.Cancel's own signature.
type CancelOrderReply struct {
	OK bool
}

// CancelOrder applies a signed cancellation request.
func (s *OrderService) CancelOrder(r *http.Request, args *CancelOrderArgs, reply *CancelOrderReply) error {
	s.Validator.Cancel(args.Request, args.Deadline)
	reply.OK = true
	return nil
}

// PendingOrderArgs names the signer whose pending orders are wanted.
type PendingOrderArgs struct {
	Address common.Address
}

// PendingOrderReply lists a signer's currently pending orders.
type PendingOrderReply struct {
	Orders []*types.StoredOrder
}

// PendingOrder returns every order address currently has pending
// across all pools.
func (s *OrderService) PendingOrder(r *http.Request, args *PendingOrderArgs, reply *PendingOrderReply) error {
	reply.Orders = s.Pool.PendingOrdersFor(args.Address)
	return nil
}

// OrderStatusArgs names the order hash to look up.
type OrderStatusArgs struct {
	Hash common.Hash
}

// OrderStatusReply reports the order pool's current status string.
type OrderStatusReply struct {
	Status string
}

// OrderStatus reports an order's current pool status
// (Unknown/Pending/Parked/Filled).
func (s *OrderService) OrderStatus(r *http.Request, args *OrderStatusArgs, reply *OrderStatusReply) error {
	reply.Status = s.Pool.Status(args.Hash).String()
	return nil
}

// OrdersByPoolIDArgs names the pool and book (limit vs. searcher slot).
type OrdersByPoolIDArgs struct {
	PoolID   types.PoolId
	Location types.OrderLocation
}

// OrdersByPoolIDReply lists the matching book's current contents.
type OrdersByPoolIDReply struct {
	Orders []*types.StoredOrder
}

// OrdersByPoolID lists every order currently resting in one pool's
// limit book or searcher slot.
func (s *OrderService) OrdersByPoolID(r *http.Request, args *OrdersByPoolIDArgs, reply *OrdersByPoolIDReply) error {
	reply.Orders = s.Pool.OrdersByPool(args.PoolID, args.Location)
	return nil
}

// ValidNonceArgs names the signer/nonce pair to check.
type ValidNonceArgs struct {
	Signer common.Address
	Nonce  uint64
}

// ValidNonceReply reports whether the nonce is still unused.
type ValidNonceReply struct {
	Valid bool
}

// ValidNonce lets a client preflight a standing order's nonce before
// signing it.
func (s *OrderService) ValidNonce(r *http.Request, args *ValidNonceArgs, reply *ValidNonceReply) error {
	reply.Valid = s.Validator.ValidNonce(args.Signer, args.Nonce)
	return nil
}

// EstimateGasArgs wraps the order whose settlement cost is wanted.
type EstimateGasArgs struct {
	Order OrderEnvelope
}

// EstimateGasReply carries the quoted cost in T0.
type EstimateGasReply struct {
	GasAsset0 *big.Int
}

// EstimateGas quotes an order's expected settlement gas in T0 without
// admitting it into the pool.
func (s *OrderService) EstimateGas(r *http.Request, args *EstimateGasArgs, reply *EstimateGasReply) error {
	order, err := args.Order.Order()
	if err != nil {
		return err
	}
	if s.Gas == nil {
		return fmt.Errorf("rpcapi: no gas oracle configured")
	}
	cost, err := s.Gas.GasCostT0(order, order.TokenIn())
	if err != nil {
		return err
	}
	reply.GasAsset0 = cost
	return nil
}
