// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metricsreport registers and updates the Prometheus counters,
// gauges and histograms that expose order pool, matching, consensus
// and donation activity for scraping, grounded on the same
// registry-wrapping pattern the node's own metrics adapter uses for
// chain metrics.
package metricsreport

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder owns a private Prometheus registry and every metric this
// node reports. Call its Record*/Observe*/Set* methods from the
// packages that produce the corresponding events; nothing here reaches
// back into orderpool, matching, roundconsensus or tribute.
type Recorder struct {
	registry *prometheus.Registry

	ordersReceived   *prometheus.CounterVec
	ordersCancelled  prometheus.Counter
	ordersParked     prometheus.Counter
	ordersPromoted   prometheus.Counter
	orderPoolDepth   *prometheus.GaugeVec

	poolsSolved     prometheus.Counter
	solveFailures   prometheus.Counter
	solveDuration   prometheus.Histogram

	roundHeight     prometheus.Gauge
	roundState      *prometheus.GaugeVec
	preProposals    prometheus.Counter
	emptyAttests    prometheus.Counter
	proposalsSent   prometheus.Counter
	bundlesLanded   prometheus.Counter

	donationsApplied prometheus.Counter
	donationAmountT0 prometheus.Histogram
}

// New builds a Recorder and registers every metric with a fresh
// registry. Each process should own exactly one Recorder.
func New() *Recorder {
	reg := prometheus.NewRegistry()

	r := &Recorder{
		registry: reg,

		ordersReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "angstrom_orders_received_total",
			Help: "Orders accepted into the pool, labeled by order kind.",
		}, []string{"kind"}),
		ordersCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "angstrom_orders_cancelled_total",
			Help: "Orders removed from the pool by explicit cancellation.",
		}),
		ordersParked: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "angstrom_orders_parked_total",
			Help: "Orders moved to the parked set for insufficient approval or balance.",
		}),
		ordersPromoted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "angstrom_orders_promoted_total",
			Help: "Parked orders promoted back onto their pool's book.",
		}),
		orderPoolDepth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "angstrom_order_pool_depth",
			Help: "Current number of resting orders per pool.",
		}, []string{"pool"}),

		poolsSolved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "angstrom_pools_solved_total",
			Help: "Pools for which a clearing solution was produced this round.",
		}),
		solveFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "angstrom_solve_failures_total",
			Help: "Pool solve attempts that returned an error.",
		}),
		solveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "angstrom_solve_duration_seconds",
			Help:    "Wall time spent solving a single pool's clearing price.",
			Buckets: prometheus.DefBuckets,
		}),

		roundHeight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "angstrom_round_height",
			Help: "Block height of the consensus round currently in progress.",
		}),
		roundState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "angstrom_round_state",
			Help: "1 on the round's current state, 0 on every other labeled state.",
		}, []string{"state"}),
		preProposals: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "angstrom_preproposals_received_total",
			Help: "Pre-proposals received from any validator this round.",
		}),
		emptyAttests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "angstrom_empty_attestations_total",
			Help: "Empty-block attestations received or broadcast this round.",
		}),
		proposalsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "angstrom_proposals_broadcast_total",
			Help: "Proposals this node broadcast as leader.",
		}),
		bundlesLanded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "angstrom_bundles_landed_total",
			Help: "Settlement bundles the leader's submitter reported as landed.",
		}),

		donationsApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "angstrom_donations_applied_total",
			Help: "Tick-reward donations folded into a settlement bundle.",
		}),
		donationAmountT0: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "angstrom_donation_amount_t0",
			Help:    "T0-denominated size of each donation allocated to a tick.",
			Buckets: prometheus.ExponentialBuckets(1, 8, 10),
		}),
	}

	reg.MustRegister(
		r.ordersReceived,
		r.ordersCancelled,
		r.ordersParked,
		r.ordersPromoted,
		r.orderPoolDepth,
		r.poolsSolved,
		r.solveFailures,
		r.solveDuration,
		r.roundHeight,
		r.roundState,
		r.preProposals,
		r.emptyAttests,
		r.proposalsSent,
		r.bundlesLanded,
		r.donationsApplied,
		r.donationAmountT0,
	)

	return r
}

// Registry exposes the underlying registry, e.g. for a promhttp handler.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// RecordOrderReceived increments the per-kind accepted-order counter.
func (r *Recorder) RecordOrderReceived(kind string) {
	r.ordersReceived.WithLabelValues(kind).Inc()
}

// RecordOrderCancelled increments the cancelled-order counter.
func (r *Recorder) RecordOrderCancelled() {
	r.ordersCancelled.Inc()
}

// RecordOrderParked increments the parked-order counter.
func (r *Recorder) RecordOrderParked() {
	r.ordersParked.Inc()
}

// RecordOrderPromoted increments the promoted-order counter.
func (r *Recorder) RecordOrderPromoted() {
	r.ordersPromoted.Inc()
}

// SetPoolDepth sets the resting-order count reported for pool.
func (r *Recorder) SetPoolDepth(pool string, depth int) {
	r.orderPoolDepth.WithLabelValues(pool).Set(float64(depth))
}

// RecordPoolSolved increments the solved-pool counter.
func (r *Recorder) RecordPoolSolved() {
	r.poolsSolved.Inc()
}

// RecordSolveFailure increments the solve-failure counter.
func (r *Recorder) RecordSolveFailure() {
	r.solveFailures.Inc()
}

// ObserveSolveDuration records how long a single pool solve took.
func (r *Recorder) ObserveSolveDuration(d time.Duration) {
	r.solveDuration.Observe(d.Seconds())
}

// SetRoundHeight reports the height of the round in progress.
func (r *Recorder) SetRoundHeight(height uint64) {
	r.roundHeight.Set(float64(height))
}

// SetRoundState marks state as the round's current state and zeroes
// every other state this Recorder has previously reported, so the
// gauge vector always has exactly one state at 1.
func (r *Recorder) SetRoundState(state string, allStates []string) {
	for _, s := range allStates {
		if s == state {
			r.roundState.WithLabelValues(s).Set(1)
		} else {
			r.roundState.WithLabelValues(s).Set(0)
		}
	}
}

// RecordPreProposalReceived increments the pre-proposal counter.
func (r *Recorder) RecordPreProposalReceived() {
	r.preProposals.Inc()
}

// RecordEmptyAttestation increments the empty-attestation counter.
func (r *Recorder) RecordEmptyAttestation() {
	r.emptyAttests.Inc()
}

// RecordProposalBroadcast increments the broadcast-proposal counter.
func (r *Recorder) RecordProposalBroadcast() {
	r.proposalsSent.Inc()
}

// RecordBundleLanded increments the landed-bundle counter.
func (r *Recorder) RecordBundleLanded() {
	r.bundlesLanded.Inc()
}

// RecordDonation increments the donation counter and observes its
// T0-denominated amount.
func (r *Recorder) RecordDonation(amountT0 float64) {
	r.donationsApplied.Inc()
	r.donationAmountT0.Observe(amountT0)
}
