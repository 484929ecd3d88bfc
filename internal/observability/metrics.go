// Package observability exposes prometheus metrics for the activities service.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"example.com/activities/internal/domain"
)

var (
	signupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "activities",
			Name:      "signups_total",
			Help:      "Total successful signups per activity.",
		},
		[]string{"activity"},
	)

	removalsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "activities",
			Name:      "removals_total",
			Help:      "Total successful roster removals per activity.",
		},
		[]string{"activity"},
	)

	rejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "activities",
			Name:      "rejections_total",
			Help:      "Total rejected roster mutations by reason.",
		},
		[]string{"reason"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "activities",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests.",
		},
		[]string{"method", "status"},
	)
)

// RecordSignup counts a successful signup.
func RecordSignup(activity string) {
	signupsTotal.WithLabelValues(activity).Inc()
}

// RecordRemoval counts a successful roster removal.
func RecordRemoval(activity string) {
	removalsTotal.WithLabelValues(activity).Inc()
}

// RecordRejection counts a rejected mutation by reason.
func RecordRejection(reason string) {
	rejectionsTotal.WithLabelValues(reason).Inc()
}

// ObserveRequest records one served HTTP request.
func ObserveRequest(method, status string, seconds float64) {
	requestDuration.WithLabelValues(method, status).Observe(seconds)
}

var (
	rosterDesc = prometheus.NewDesc(
		"activities_roster_size",
		"Current number of registered participants per activity.",
		[]string{"activity"}, nil,
	)
	capacityDesc = prometheus.NewDesc(
		"activities_capacity",
		"Maximum participants per activity.",
		[]string{"activity"}, nil,
	)
)

// RegistryCollector reports roster sizes and capacities straight from the
// registry on every scrape.
type RegistryCollector struct {
	registry *domain.Registry
}

// NewRegistryCollector builds a collector over the given registry.
func NewRegistryCollector(registry *domain.Registry) *RegistryCollector {
	return &RegistryCollector{registry: registry}
}

// Describe implements prometheus.Collector.
func (c *RegistryCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- rosterDesc
	ch <- capacityDesc
}

// Collect implements prometheus.Collector.
func (c *RegistryCollector) Collect(ch chan<- prometheus.Metric) {
	for name, activity := range c.registry.List() {
		ch <- prometheus.MustNewConstMetric(rosterDesc, prometheus.GaugeValue, float64(len(activity.Participants)), name)
		ch <- prometheus.MustNewConstMetric(capacityDesc, prometheus.GaugeValue, float64(activity.MaxParticipants), name)
	}
}
