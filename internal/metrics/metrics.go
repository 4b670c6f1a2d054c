// Package metrics exposes classification counters for Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/codewithboateng/l10nfilter/internal/filter"
)

var (
	Registry = prometheus.NewRegistry()

	classifications = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "l10nfilter",
		Name:      "classifications_total",
		Help:      "Candidates classified, by product and verdict.",
	}, []string{"product", "verdict"})

	auditRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "l10nfilter",
		Name:      "audit_runs_total",
		Help:      "Completed audit runs, by product and outcome.",
	}, []string{"product", "outcome"})
)

func init() {
	Registry.MustRegister(classifications, auditRuns)
}

func ObserveVerdict(product string, v filter.Verdict) {
	classifications.WithLabelValues(product, v.String()).Inc()
}

func ObserveRun(product string, passed bool) {
	outcome := "failed"
	if passed {
		outcome = "passed"
	}
	auditRuns.WithLabelValues(product, outcome).Inc()
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
