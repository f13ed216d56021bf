package transform

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ruleApplications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "semschema_rule_applications_total",
		Help: "Rule applications by rule ID.",
	}, []string{"rule"})

	anomalyCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "semschema_anomalies_total",
		Help: "Non-fatal anomalies by kind.",
	}, []string{"kind"})

	transformDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "semschema_transform_duration_seconds",
		Help:    "Wall time of a full pipeline run.",
		Buckets: prometheus.DefBuckets,
	})
)
