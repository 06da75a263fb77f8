package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Screening outcomes recorded by ScreeningsTotal.
const (
	outcomeOK       = "ok"
	outcomeInvalid  = "invalid"
	outcomeNotFound = "not_found"
	outcomeError    = "error"
)

var (
	ScreeningsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "income_eligibility_screenings_total",
			Help: "Total number of household screenings by outcome",
		},
		[]string{"outcome"},
	)

	ReferralsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "income_eligibility_referrals_total",
			Help: "Total number of program referrals produced by screenings",
		},
		[]string{"program"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "income_eligibility_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "status"},
	)
)
