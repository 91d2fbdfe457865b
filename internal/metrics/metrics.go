package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Item lifecycle metrics
var (
	ItemsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameItemsCreated,
			Help: HelpTextItemsCreated,
		},
	)

	ItemIDsReleased = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameItemIDsReleased,
			Help: HelpTextItemIDsReleased,
		},
	)

	GrantRemainder = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameGrantRemainder,
			Help: HelpTextGrantRemainder,
		},
	)
)

// Trade metrics
var (
	TradeTransactions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTradeTransactions,
			Help: HelpTextTradeTransactions,
		},
		[]string{LabelKind, LabelOutcome},
	)

	KinahFlow = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameKinahFlow,
			Help: HelpTextKinahFlow,
		},
		[]string{LabelDirection},
	)
)

// Session / infra metrics
var (
	PacketsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePacketsDropped,
			Help: HelpTextPacketsDropped,
		},
	)

	PlayersOnline = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNamePlayersOnline,
			Help: HelpTextPlayersOnline,
		},
	)

	StoneCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameStoneCacheLookups,
			Help: HelpTextStoneCacheLookups,
		},
		[]string{LabelResult},
	)
)
