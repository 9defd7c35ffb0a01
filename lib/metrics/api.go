package metrics

import (
	"strconv"
	"time"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

var apiLabels = []string{"endpoint", "method", "status"}

type APIMetrics struct {
	Requests               metrics.Counter
	RequestErrors          metrics.Counter
	RequestDurationSeconds metrics.Histogram
	OpenStreams            metrics.Gauge
	DroppedEvents          metrics.Counter
}

func PromAPIMetrics() *APIMetrics {
	counter := func(name, help string, labels ...string) metrics.Counter {
		return prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: APISubsystem,
			Name:      name,
			Help:      help,
		}, labels)
	}

	return &APIMetrics{
		Requests:      counter("requests_total", "Total number of requests.", apiLabels...),
		RequestErrors: counter("request_errors_total", "Total number of requests answered with error.", apiLabels...),
		RequestDurationSeconds: prometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
			Namespace: Namespace,
			Subsystem: APISubsystem,
			Name:      "request_duration_seconds",
			Help:      "Time spent for a request.",
		}, apiLabels),
		OpenStreams: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: APISubsystem,
			Name:      "open_streams",
			Help:      "Number of connected event streams.",
		}, nil),
		DroppedEvents: counter("dropped_events_total", "Total number of events dropped for slow streams."),
	}
}

func NopAPIMetrics() *APIMetrics {
	return &APIMetrics{
		Requests:               discard.NewCounter(),
		RequestErrors:          discard.NewCounter(),
		RequestDurationSeconds: discard.NewHistogram(),
		OpenStreams:            discard.NewGauge(),
		DroppedEvents:          discard.NewCounter(),
	}
}

// ObserveRequest counts the request; the status over 399 is also counted as
// error.
func (m *APIMetrics) ObserveRequest(endpoint, method string, status int, elapsed time.Duration) {
	labels := []string{"endpoint", endpoint, "method", method, "status", strconv.Itoa(status)}

	m.Requests.With(labels...).Add(1)
	if status >= 400 {
		m.RequestErrors.With(labels...).Add(1)
	}
	m.RequestDurationSeconds.With(labels...).Observe(elapsed.Seconds())
}
