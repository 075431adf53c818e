package calendar

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	occurrencesGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cadenza_occurrences_generated_total",
		Help: "Occurrences produced by recurrence rule expansion",
	})
	instancesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cadenza_instances_created_total",
		Help: "Calendar event instances materialized into the store",
	})
	generationCapHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cadenza_generation_cap_hits_total",
		Help: "Expansions stopped at the occurrence safety cap",
	})
	materializeFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cadenza_materialize_failures_total",
		Help: "Instances that failed to persist during materialization",
	})
)
