package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	NegotiationsOpened = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nego_negotiations_opened_total",
		Help: "Negotiations created by a buyer's first message.",
	})

	Turns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nego_turns_total",
		Help: "Processed buyer turns by policy action.",
	}, []string{"action"})

	ReplaysServed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nego_idempotent_replays_total",
		Help: "Duplicate buyer turns answered from the transcript tail.",
	})

	SynthesisFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nego_synthesis_fallbacks_total",
		Help: "Replies served from the template because generation failed or leaked.",
	})

	Finalized = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nego_finalized_total",
		Help: "Seller finalize calls by decision.",
	}, []string{"decision"})
)
