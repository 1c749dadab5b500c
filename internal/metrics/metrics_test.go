package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_ObserveProbe(t *testing.T) {
	r := NewRecorder()

	r.ObserveProbe("obvious", 0.92, true, 2*time.Millisecond)
	r.ObserveProbe("obvious", 0.88, false, time.Millisecond)
	r.ObserveProbe("masked", 0.21, false, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.probes.WithLabelValues("obvious")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.probes.WithLabelValues("masked")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.detections.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.detections.WithLabelValues("miss")))
}

func TestRecorder_Snapshot(t *testing.T) {
	r := NewRecorder()
	r.ObserveReselect()
	r.ObserveReselect()
	r.ObserveRejected("run")
	r.ObserveProbe("more_trials", 0.5, true, time.Millisecond)

	samples, err := r.Snapshot()
	require.NoError(t, err)

	byKey := make(map[string]float64, len(samples))
	for _, s := range samples {
		byKey[s.Name+"{"+s.Labels+"}"] = s.Value
	}

	assert.Equal(t, 2.0, byKey["resonance_probe_reselections_total{}"])
	assert.Equal(t, 1.0, byKey["resonance_probe_rejected_total{op=run}"])
	assert.Equal(t, 1.0, byKey["resonance_probe_runs_total{band=more_trials}"])
	assert.Equal(t, 1.0, byKey["resonance_probe_top_abs_correlation_count{}"])
	assert.InDelta(t, 0.5, byKey["resonance_probe_top_abs_correlation_sum{}"], 1e-12)

	for i := 1; i < len(samples); i++ {
		assert.LessOrEqual(t, samples[i-1].Name, samples[i].Name, "samples must be sorted")
	}
}

func TestRecorder_NilSafety(t *testing.T) {
	var r *Recorder
	r.ObserveProbe("obvious", 1, true, 0)
	r.ObserveRejected("run")
	r.ObserveReselect()
	assert.Nil(t, r.Registry())

	samples, err := r.Snapshot()
	assert.NoError(t, err)
	assert.Empty(t, samples)
}

func TestRecorders_AreIndependent(t *testing.T) {
	a, b := NewRecorder(), NewRecorder()
	a.ObserveReselect()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.reselections))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.reselections))
}
