package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rentalapp_bookings_created_total",
		Help: "Bookings successfully created.",
	})

	DraftSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rentalapp_draft_submissions_total",
		Help: "Booking draft submissions by outcome.",
	}, []string{"outcome"})

	MessagesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rentalapp_chat_messages_sent_total",
		Help: "Chat messages persisted and pushed.",
	})
)
