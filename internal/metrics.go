package internal

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "clawdash",
		Subsystem: "client",
		Name:      "requests_total",
		Help:      "Upstream API requests by method, status code and attempt.",
	}, []string{"method", "code", "attempt"})

	refreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "clawdash",
		Subsystem: "client",
		Name:      "token_refreshes_total",
		Help:      "Access token refreshes by outcome.",
	}, []string{"outcome"})

	replaysTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "clawdash",
		Subsystem: "client",
		Name:      "replays_total",
		Help:      "Requests replayed after a successful token refresh.",
	})

	logoutsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "clawdash",
		Subsystem: "client",
		Name:      "logouts_total",
		Help:      "Session teardowns by reason.",
	}, []string{"reason"})
)
