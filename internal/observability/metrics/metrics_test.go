package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func TestPrometheus_Records(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewPrometheus(reg, "scrim")
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordOperationAttempt(ctx, "ProcessScreenshots", "ResultsService")
	m.RecordOperationSuccess(ctx, "ProcessScreenshots", "ResultsService")
	m.RecordOperationDuration(ctx, "ProcessScreenshots", "ResultsService", 20*time.Millisecond)
	m.RecordRowsWritten(ctx, "automated", 4)
	m.RecordRowsDiscarded(ctx, "no_team", 2)
	m.RecordScreenshotProcessed(ctx, false)

	families, err := reg.Gather()
	require.NoError(t, err)

	require.Equal(t, 1.0, counterValue(t, families, "scrim_operation_attempts_total"))
	require.Equal(t, 4.0, counterValue(t, families, "scrim_result_rows_written_total"))
	require.Equal(t, 2.0, counterValue(t, families, "scrim_result_rows_discarded_total"))
	require.Equal(t, 1.0, counterValue(t, families, "scrim_screenshots_processed_total"))
}

func counterValue(t *testing.T, families []*dto.MetricFamily, name string) float64 {
	t.Helper()
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		total := 0.0
		for _, m := range f.GetMetric() {
			total += m.GetCounter().GetValue()
		}
		return total
	}
	t.Fatalf("metric %s not gathered", name)
	return 0
}

func TestNewPrometheus_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheus(reg, "scrim")
	require.NoError(t, err)

	_, err = NewPrometheus(reg, "scrim")
	require.Error(t, err)
}
