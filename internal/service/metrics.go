package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	roundsStarted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rps_rounds_started_total",
			Help: "Rounds committed and waiting for a move",
		},
	)
	roundsPlayed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rps_rounds_played_total",
			Help: "Rounds played, by outcome for the player",
		},
		[]string{"result"},
	)
	verifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rps_verifications_total",
			Help: "HMAC verification requests, by validity",
		},
		[]string{"valid"},
	)
)

func init() {
	prometheus.MustRegister(roundsStarted)
	prometheus.MustRegister(roundsPlayed)
	prometheus.MustRegister(verifications)
}
