// Package metrics registers Prometheus counters for the enrichment run.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	windowsEnrichedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "moonwatch_windows_enriched_total",
			Help: "Total number of launch windows enriched.",
		},
	)

	ephemerisCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moonwatch_ephemeris_calls_total",
			Help: "Total number of ephemeris provider calls.",
		},
		[]string{"kind"},
	)

	loadFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "moonwatch_load_failures_total",
			Help: "Total number of failed launch window file loads.",
		},
	)
)

func init() {
	prometheus.MustRegister(windowsEnrichedTotal)
	prometheus.MustRegister(ephemerisCallsTotal)
	prometheus.MustRegister(loadFailuresTotal)
}

// IncWindowsEnriched records one completed window enrichment.
func IncWindowsEnriched() {
	windowsEnrichedTotal.Inc()
}

// IncEphemerisCall records one provider call of the given kind
// (position, rise_set, illumination).
func IncEphemerisCall(kind string) {
	ephemerisCallsTotal.WithLabelValues(kind).Inc()
}

// IncLoadFailure records one failed file load.
func IncLoadFailure() {
	loadFailuresTotal.Inc()
}

// Summary gathers the moonwatch counters into a flat name→value map, suitable
// for an end-of-run log line.
func Summary() map[string]float64 {
	out := map[string]float64{}
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return out
	}
	for _, mf := range families {
		switch mf.GetName() {
		case "moonwatch_windows_enriched_total", "moonwatch_load_failures_total":
			for _, m := range mf.GetMetric() {
				out[mf.GetName()] = m.GetCounter().GetValue()
			}
		case "moonwatch_ephemeris_calls_total":
			for _, m := range mf.GetMetric() {
				key := mf.GetName()
				for _, lp := range m.GetLabel() {
					key += "_" + lp.GetValue()
				}
				out[key] = m.GetCounter().GetValue()
			}
		}
	}
	return out
}
