package metrics_test

import (
	"testing"

	"github.com/jrsteele09/go-storefront-client/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestStatusClass(t *testing.T) {
	require.Equal(t, "error", metrics.StatusClass(0))
	require.Equal(t, "2xx", metrics.StatusClass(201))
	require.Equal(t, "4xx", metrics.StatusClass(401))
	require.Equal(t, "5xx", metrics.StatusClass(503))
}

func TestRegisterCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NotPanics(t, func() { metrics.RegisterCollectors(reg) })
	require.Panics(t, func() { metrics.RegisterCollectors(reg) })
}
