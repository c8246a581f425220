package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	PairingRuns = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "santa_pairing_runs_total", Help: "Total pairing generator invocations"},
	)
	PairingRetries = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "santa_pairing_retries_total", Help: "Total rejected permutations during pairing"},
	)
	PairingFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "santa_pairing_fallbacks_total", Help: "Total constructive rotation fallbacks"},
	)
	LettersPosted = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "santa_letters_posted_total", Help: "Total letter messages posted"},
	)
	BroadcastsDelivered = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "santa_broadcasts_delivered_total", Help: "Total broadcast deliveries"},
	)
)

func Register() {
	prometheus.MustRegister(PairingRuns, PairingRetries, PairingFallbacks, LettersPosted, BroadcastsDelivered)
}
