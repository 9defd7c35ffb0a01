package metrics

import (
	"strconv"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

type DAOMetrics struct {
	Deployed            metrics.Counter
	VotersRegistered    metrics.Counter
	VotersDeregistered  metrics.Counter
	ProposalsCreated    metrics.Counter
	ProposalsRemoved    metrics.Counter
	Votes               metrics.Counter
	CallErrors          metrics.Counter
	CallDurationSeconds metrics.Histogram
}

func PromDAOMetrics() *DAOMetrics {
	counter := func(name, help string, labels ...string) metrics.Counter {
		return prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: DAOSubsystem,
			Name:      name,
			Help:      help,
		}, labels)
	}

	return &DAOMetrics{
		Deployed:           counter("deployed_total", "Total number of deployed contracts.", "kind"),
		VotersRegistered:   counter("voters_registered_total", "Total number of voter registrations."),
		VotersDeregistered: counter("voters_deregistered_total", "Total number of voter deregistrations."),
		ProposalsCreated:   counter("proposals_created_total", "Total number of created proposals."),
		ProposalsRemoved:   counter("proposals_removed_total", "Total number of removed proposals."),
		Votes:              counter("votes_total", "Total number of votes."),
		CallErrors: counter(
			"call_errors_total", "Total number of failed contract calls.",
			"method", "code",
		),
		CallDurationSeconds: prometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
			Namespace: Namespace,
			Subsystem: DAOSubsystem,
			Name:      "call_duration_seconds",
			Help:      "Time spent for a contract call, including the storage commit.",
		}, []string{"method"}),
	}
}

func NopDAOMetrics() *DAOMetrics {
	return &DAOMetrics{
		Deployed:            discard.NewCounter(),
		VotersRegistered:    discard.NewCounter(),
		VotersDeregistered:  discard.NewCounter(),
		ProposalsCreated:    discard.NewCounter(),
		ProposalsRemoved:    discard.NewCounter(),
		Votes:               discard.NewCounter(),
		CallErrors:          discard.NewCounter(),
		CallDurationSeconds: discard.NewHistogram(),
	}
}

func (m *DAOMetrics) AddCallError(method string, code uint) {
	m.CallErrors.With("method", method, "code", strconv.FormatUint(uint64(code), 10)).Add(1)
}
