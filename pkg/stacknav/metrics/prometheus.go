package metrics

import (
	"net/http"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once             sync.Once
	dispatches       *prom.CounterVec
	dispatchDuration *prom.HistogramVec
	stackDepth       prom.Gauge
}

// NewPrometheusRecorder constructs and registers the metrics on reg. A nil
// reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.dispatches = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "stacknav",
			Name:      "dispatch_total",
			Help:      "Dispatched actions by type and outcome",
		}, []string{"action", "result"})
		pr.dispatchDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "stacknav",
			Name:      "dispatch_duration_seconds",
			Help:      "Time spent reducing an action",
			Buckets:   prom.DefBuckets,
		}, []string{"action"})
		pr.stackDepth = prom.NewGauge(prom.GaugeOpts{
			Namespace: "stacknav",
			Name:      "stack_depth",
			Help:      "Number of entries in the navigation stack",
		})
		reg.MustRegister(pr.dispatches, pr.dispatchDuration, pr.stackDepth)
	})
	return pr
}

func (p *PrometheusRecorder) IncDispatch(action string, result ResultLabel) {
	if p == nil || p.dispatches == nil {
		return
	}
	p.dispatches.WithLabelValues(action, string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveDispatchDuration(action string, d time.Duration) {
	if p == nil || p.dispatchDuration == nil {
		return
	}
	p.dispatchDuration.WithLabelValues(action).Observe(d.Seconds())
}

func (p *PrometheusRecorder) SetStackDepth(n int) {
	if p == nil || p.stackDepth == nil {
		return
	}
	p.stackDepth.Set(float64(n))
}

// HTTPHandler returns an http.Handler that serves the metrics of reg.
func HTTPHandler(reg *prom.Registry) http.Handler {
	if reg == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
