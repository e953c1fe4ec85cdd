package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()

	m.ObserveTurn("answer", 120*time.Millisecond)
	m.ObserveTurn("answer", 80*time.Millisecond)
	m.ObserveTurn("NO_RESULTS", 10*time.Millisecond)
	m.ObserveBackendCall("summary", "ok", time.Millisecond)
	m.ObserveBackendCall("summary", "timeout", time.Second)
	m.CandidateSkipped("unwanted")
	m.ObserveRequest("ok", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.TurnsTotal.WithLabelValues("answer")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TurnsTotal.WithLabelValues("NO_RESULTS")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BackendCallsTotal.WithLabelValues("summary", "timeout")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CandidatesSkipped.WithLabelValues("unwanted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("ok")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.BackendCallsTotal))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.ObserveTurn("answer", time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `wikibot_turns_total{outcome="answer"} 1`)
}

func TestInstancesDoNotShareRegistries(t *testing.T) {
	a := New()
	b := New()
	a.CandidateSkipped("not_found")

	assert.Equal(t, 0.0, testutil.ToFloat64(b.CandidatesSkipped.WithLabelValues("not_found")))
}
