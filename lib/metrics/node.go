package metrics

import (
	"runtime"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"

	"boscoin.io/minidao/lib/version"
)

type NodeMetrics struct {
	Info    metrics.Gauge
	Commits metrics.Counter
}

func PromNodeMetrics() *NodeMetrics {
	return &NodeMetrics{
		Info: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "info",
			Help:      "Build of the node; always 1.",
		}, []string{"version", "git_commit", "go_version"}),
		Commits: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "commits_total",
			Help:      "Total number of committed transactions.",
		}, nil),
	}
}

func NopNodeMetrics() *NodeMetrics {
	return &NodeMetrics{
		Info:    discard.NewGauge(),
		Commits: discard.NewCounter(),
	}
}

func (m *NodeMetrics) SetInfo() {
	m.Info.With(
		"version", version.Version,
		"git_commit", version.GitCommit,
		"go_version", runtime.Version(),
	).Set(1)
}
