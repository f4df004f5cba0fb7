package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestCronJobMetricsSplitsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCronJobMetrics(reg)
	m.Observe("outbox-retention", 250*time.Millisecond, nil)
	m.Observe("outbox-retention", 10*time.Millisecond, errors.New("db down"))
	m.Observe("", time.Millisecond, nil)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	runs := findMetricFamily(mfs, "cron_job_runs_total")
	if runs == nil {
		t.Fatalf("runs metric missing")
	}
	outcomes := map[string]float64{}
	for _, metric := range runs.GetMetric() {
		if matchesLabel(metric.GetLabel(), "job", "outbox-retention") {
			outcomes[labelValue(metric.GetLabel(), "outcome")] = metric.GetCounter().GetValue()
		}
	}
	if outcomes["success"] != 1 || outcomes["failure"] != 1 {
		t.Fatalf("unexpected outcomes %v", outcomes)
	}

	if got, err := fetchHistogramSum(mfs, "cron_job_duration_seconds", "job", "outbox-retention"); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got < 0.25 {
		t.Fatalf("expected duration sum >= 0.25, got %f", got)
	}

	gauge := findMetricFamily(mfs, "cron_job_last_success_timestamp_seconds")
	if gauge == nil {
		t.Fatalf("last success gauge missing")
	}
	found := false
	for _, metric := range gauge.GetMetric() {
		if matchesLabel(metric.GetLabel(), "job", "unknown") {
			found = metric.GetGauge().GetValue() > 0
		}
	}
	if !found {
		t.Fatalf("expected empty job name to be labelled unknown")
	}
}

func TestNilCronMetricsAreNoop(t *testing.T) {
	var m *CronJobMetrics
	m.Observe("x", time.Second, nil)
	NewCronJobMetrics(nil).Observe("x", time.Second, errors.New("boom"))
}

func labelValue(labels []*dto.LabelPair, name string) string {
	for _, l := range labels {
		if l.GetName() == name {
			return l.GetValue()
		}
	}
	return ""
}
