package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics holds the diagnostic counters for one form session.
type Metrics struct {
	registry         *prometheus.Registry
	DirectoryFetches *prometheus.CounterVec
	Submissions      *prometheus.CounterVec
}

// New creates the counters on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		DirectoryFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "userform_directory_fetches_total",
			Help: "Department directory fetches by outcome",
		}, []string{"outcome"}),
		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "userform_submissions_total",
			Help: "Record submissions by outcome (success means the store assigned an identifier)",
		}, []string{"outcome"}),
	}
	reg.MustRegister(m.DirectoryFetches, m.Submissions)
	return m
}

// ObserveFetch counts one directory fetch.
func (m *Metrics) ObserveFetch(err error) {
	m.DirectoryFetches.WithLabelValues(outcome(err)).Inc()
}

// ObserveSubmission counts one submission attempt.
func (m *Metrics) ObserveSubmission(err error) {
	m.Submissions.WithLabelValues(outcome(err)).Inc()
}

// Registry exposes the registry for gathering.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// WriteFile writes every counter to path in the text exposition format.
func (m *Metrics) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

func outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}
