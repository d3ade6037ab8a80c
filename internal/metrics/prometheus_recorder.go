package metrics

import (
	"net/http"
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	scans         *prom.CounterVec
	renderLatency *prom.HistogramVec
	readFailures  prom.Counter
	buildDuration *prom.HistogramVec
	buildOutcome  *prom.CounterVec
	pagesWritten  *prom.CounterVec
	httpLatency   *prom.HistogramVec
}

// NewPrometheusRecorder constructs and registers the metrics on reg.
func NewPrometheusRecorder(reg prom.Registerer) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		scans: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "mirview",
			Name:      "directory_scans_total",
			Help:      "Artifact directory scans by result",
		}, []string{"result"}),
		renderLatency: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "mirview",
			Name:      "render_duration_seconds",
			Help:      "Duration of page renders by template",
			Buckets:   prom.DefBuckets,
		}, []string{"template", "result"}),
		readFailures: prom.NewCounter(prom.CounterOpts{
			Namespace: "mirview",
			Name:      "artifact_read_failures_total",
			Help:      "Artifacts that could not be read and were replaced by a diagnostic",
		}),
		buildDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "mirview",
			Name:      "build_duration_seconds",
			Help:      "Static build duration by target",
			Buckets:   prom.DefBuckets,
		}, []string{"target"}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "mirview",
			Name:      "build_outcomes_total",
			Help:      "Static build outcomes by target",
		}, []string{"target", "result"}),
		pagesWritten: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "mirview",
			Name:      "pages_written_total",
			Help:      "HTML pages written by static builds",
		}, []string{"target"}),
		httpLatency: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "mirview",
			Name:      "http_request_duration_seconds",
			Help:      "Live server request latency",
			Buckets:   prom.DefBuckets,
		}, []string{"route", "code"}),
	}
	reg.MustRegister(pr.scans, pr.renderLatency, pr.readFailures, pr.buildDuration, pr.buildOutcome, pr.pagesWritten, pr.httpLatency)
	return pr
}

// NewRegistry returns a registry preloaded with the Go runtime and process collectors.
func NewRegistry() *prom.Registry {
	reg := prom.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg
}

// HTTPHandler returns an http.Handler that serves Prometheus metrics for the provided registry.
func HTTPHandler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

func (p *PrometheusRecorder) IncScan(result ResultLabel) {
	if p == nil {
		return
	}
	p.scans.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveRender(template string, d time.Duration, result ResultLabel) {
	if p == nil {
		return
	}
	p.renderLatency.WithLabelValues(template, string(result)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncArtifactReadFailure() {
	if p == nil {
		return
	}
	p.readFailures.Inc()
}

func (p *PrometheusRecorder) ObserveBuildDuration(target string, d time.Duration) {
	if p == nil {
		return
	}
	p.buildDuration.WithLabelValues(target).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(target string, result ResultLabel) {
	if p == nil {
		return
	}
	p.buildOutcome.WithLabelValues(target, string(result)).Inc()
}

func (p *PrometheusRecorder) AddPagesWritten(target string, n int) {
	if p == nil {
		return
	}
	p.pagesWritten.WithLabelValues(target).Add(float64(n))
}

func (p *PrometheusRecorder) ObserveHTTPRequest(route string, status int, d time.Duration) {
	if p == nil {
		return
	}
	p.httpLatency.WithLabelValues(route, strconv.Itoa(status)).Observe(d.Seconds())
}
