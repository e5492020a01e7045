package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()

	m.CountChunk("whole")
	m.CountChunk("whole")
	m.CountChunk("split")
	m.CountFallback(errors.New("timeout"))
	m.CountRun(nil)
	m.CountRun(errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ChunksTotal.WithLabelValues("whole")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ChunksTotal.WithLabelValues("split")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EncoderFallbacks))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RunsTotal.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RunsTotal.WithLabelValues("error")))
}

func TestObserveStage(t *testing.T) {
	m := New()
	m.ObserveStage(StageEncode, time.Now().Add(-50*time.Millisecond))
	m.ObserveScore(70)

	assert.Equal(t, 1, testutil.CollectAndCount(m.StageDuration))
	assert.Equal(t, 1, testutil.CollectAndCount(m.AnswerScore))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveStage(StageSegment, time.Now())
		m.CountChunk("whole")
		m.CountFallback(nil)
		m.ObserveScore(10)
		m.CountRun(nil)
	})
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.CountChunk("whole")

	path := filepath.Join(t.TempDir(), "recallkit.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `recallkit_chunks_total{kind="whole"} 1`))
}
