package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustRegisterAndIncrement(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New()
	m.MustRegister(reg)

	m.InsertTotal.Inc()
	m.InsertTotal.Inc()

	var metric dto.Metric
	require.NoError(t, m.InsertTotal.Write(&metric))
	assert.Equal(t, float64(2), metric.GetCounter().GetValue())
}
