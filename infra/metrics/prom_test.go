package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/kilianp07/skylark/core/metrics"
)

func TestPromSinkRecords(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	require.NoError(t, sink.RecordCommand(coremetrics.CommandEvent{Intent: "assign", Kind: "success", Latency: 20 * time.Millisecond}))
	require.NoError(t, sink.RecordCommand(coremetrics.CommandEvent{Intent: "assign", Kind: "success"}))
	require.NoError(t, sink.RecordCommand(coremetrics.CommandEvent{Intent: "update_status", Kind: "error", ErrorKind: "invalid_status"}))
	require.NoError(t, sink.RecordStatusChange(coremetrics.StatusChangeEvent{Pilot: "Sneha", Status: "Available"}))

	assert.Equal(t, 2.0, testutil.ToFloat64(sink.commands.WithLabelValues("assign", "success", "")))
	assert.Equal(t, 1.0, testutil.ToFloat64(sink.commands.WithLabelValues("update_status", "error", "invalid_status")))
	assert.Equal(t, 1.0, testutil.ToFloat64(sink.status.WithLabelValues("Available")))
	assert.Equal(t, 2, testutil.CollectAndCount(sink.latency))
}

func TestPromSinkReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	s1, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)
	s2, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	require.NoError(t, s1.RecordCommand(coremetrics.CommandEvent{Intent: "unknown", Kind: "success"}))
	require.NoError(t, s2.RecordCommand(coremetrics.CommandEvent{Intent: "unknown", Kind: "success"}))
	assert.Equal(t, 2.0, testutil.ToFloat64(s2.commands.WithLabelValues("unknown", "success", "")))
}
