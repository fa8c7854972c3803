package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestMetrics_Record(t *testing.T) {
	m := New()

	m.ObserveStandings(15*time.Millisecond, map[string]int{"result": 2, "penalty": 1})
	m.ResultSaved("bracket")
	m.ResultSaved("bracket")
	m.StandingsPublished(false)
	m.ObserveHTTP("/api/v1/competitions/{competitionID}/standings", http.MethodGet, "200", time.Millisecond)

	body := scrape(t, m)
	for _, line := range []string{
		`scoreboard_standings_computed_total 1`,
		`scoreboard_standings_skipped_references_total{kind="result"} 2`,
		`scoreboard_standings_skipped_references_total{kind="penalty"} 1`,
		`scoreboard_results_saved_total{mode="bracket"} 2`,
		`scoreboard_standings_published_total{outcome="failure"} 1`,
		`scoreboard_http_requests_total{method="GET",route="/api/v1/competitions/{competitionID}/standings",status="200"} 1`,
	} {
		assert.Contains(t, body, line)
	}
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ResultSaved("manual")

	body := scrape(t, m)
	assert.True(t, strings.Contains(body, `scoreboard_results_saved_total{mode="manual"} 1`))
	assert.Contains(t, body, "go_goroutines")
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveStandings(time.Second, map[string]int{"result": 1})
	m.ResultSaved("manual")
	m.StandingsPublished(true)
	m.ObserveHTTP("/", http.MethodGet, "200", time.Second)
	assert.Nil(t, m.Registry())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
