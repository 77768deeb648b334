package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestAIFallback(t *testing.T) {
	m := New()

	m.AIFallback("parse", "upstream")
	m.AIFallback("parse", "upstream")
	m.AIFallback("chat", "malformed")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.AIFallbacks.WithLabelValues("parse", "upstream")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.AIFallbacks.WithLabelValues("chat", "malformed")))
}

func TestPurged(t *testing.T) {
	m := New()

	m.Purged(0)
	m.Purged(3)

	assert.Equal(t, float64(3), testutil.ToFloat64(m.TrashPurged))
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.AIFallback("parse", "upstream")
		m.Purged(5)
	})
}
