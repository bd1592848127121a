package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GenerationsTotal counts produced profiles by mode (llm|fallback).
	GenerationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "profile_generations_total",
		Help: "Destiny profiles generated, labelled by generation mode.",
	}, []string{"mode"})

	// LLMFailuresTotal counts hosted-model calls that fell back locally.
	LLMFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "profile_llm_failures_total",
		Help: "Hosted text-generation calls that failed and fell back.",
	})

	// WebhookEventsTotal counts payment webhook deliveries by outcome.
	WebhookEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_webhook_events_total",
		Help: "Payment webhook deliveries, labelled by outcome.",
	}, []string{"outcome"})

	// CheckoutSessionsTotal counts checkout sessions created upstream.
	CheckoutSessionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payment_checkout_sessions_total",
		Help: "Checkout sessions successfully created.",
	})

	// CertificatesTotal counts rendered certificate downloads.
	CertificatesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "certificates_rendered_total",
		Help: "PDF certificates rendered.",
	})
)
