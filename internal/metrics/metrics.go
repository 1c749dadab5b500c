// Package metrics records probe engine activity as Prometheus metrics.
//
// Each Recorder owns a private registry so independent engines (for example
// the workers of a simulation sweep) never collide on the default registry.
package metrics

import (
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

const (
	namespace = "resonance"
	subsystem = "probe"
)

// Recorder collects engine metrics. A nil Recorder is safe to use; all
// methods are no-ops on nil receiver.
type Recorder struct {
	registry *prometheus.Registry

	probes       *prometheus.CounterVec
	rejections   *prometheus.CounterVec
	reselections prometheus.Counter
	detections   *prometheus.CounterVec
	topAbs       prometheus.Histogram
	duration     prometheus.Histogram
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),

		// probes counts completed probes.
		// Labels: band (obvious, more_trials, masked)
		probes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "runs_total",
			Help:      "Completed probes by expected-correlation band",
		}, []string{"band"}),

		// rejections counts calls refused before any state change.
		// Labels: op (configure, reselect, run)
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "rejected_total",
			Help:      "Engine calls rejected for invalid parameters",
		}, []string{"op"}),

		reselections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "reselections_total",
			Help:      "Times the linked candidate was re-selected",
		}),

		// detections counts whether the top-ranked candidate was the linked one.
		// Labels: outcome (hit, miss)
		detections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "detections_total",
			Help:      "Probes whose top match was (hit) or was not (miss) the linked candidate",
		}, []string{"outcome"}),

		topAbs: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "top_abs_correlation",
			Help:      "Distribution of the top result's absolute correlation",
			Buckets:   []float64{0.1, 0.2, 0.35, 0.5, 0.6, 0.7, 0.8, 0.9, 0.95, 1.0},
		}),

		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "duration_seconds",
			Help:      "Wall time of a single probe",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
	}

	r.registry.MustRegister(r.probes, r.rejections, r.reselections, r.detections, r.topAbs, r.duration)
	return r
}

// ObserveProbe records a completed probe.
func (r *Recorder) ObserveProbe(band string, topAbs float64, hit bool, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.probes.WithLabelValues(band).Inc()
	r.topAbs.Observe(topAbs)
	r.duration.Observe(elapsed.Seconds())

	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	r.detections.WithLabelValues(outcome).Inc()
}

// ObserveRejected records a call refused for invalid parameters.
func (r *Recorder) ObserveRejected(op string) {
	if r == nil {
		return
	}
	r.rejections.WithLabelValues(op).Inc()
}

// ObserveReselect records a re-selection of the linked candidate.
func (r *Recorder) ObserveReselect() {
	if r == nil {
		return
	}
	r.reselections.Inc()
}

// Registry exposes the underlying registry, e.g. for an exporter.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// Sample is one flattened metric value.
type Sample struct {
	Name   string  `json:"name"`
	Labels string  `json:"labels,omitempty"`
	Value  float64 `json:"value"`
}

// Snapshot gathers the registry and flattens counters and histogram
// count/sum into samples sorted by name then labels.
func (r *Recorder) Snapshot() ([]Sample, error) {
	if r == nil {
		return nil, nil
	}
	families, err := r.registry.Gather()
	if err != nil {
		return nil, err
	}

	var out []Sample
	for _, fam := range families {
		for _, m := range fam.GetMetric() {
			labels := formatLabels(m.GetLabel())
			switch fam.GetType() {
			case dto.MetricType_COUNTER:
				out = append(out, Sample{Name: fam.GetName(), Labels: labels, Value: m.GetCounter().GetValue()})
			case dto.MetricType_GAUGE:
				out = append(out, Sample{Name: fam.GetName(), Labels: labels, Value: m.GetGauge().GetValue()})
			case dto.MetricType_HISTOGRAM:
				h := m.GetHistogram()
				out = append(out,
					Sample{Name: fam.GetName() + "_count", Labels: labels, Value: float64(h.GetSampleCount())},
					Sample{Name: fam.GetName() + "_sum", Labels: labels, Value: h.GetSampleSum()},
				)
			}
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Labels < out[j].Labels
	})
	return out, nil
}

func formatLabels(pairs []*dto.LabelPair) string {
	if len(pairs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, p.GetName()+"="+p.GetValue())
	}
	return strings.Join(parts, ",")
}
