package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/quantpulse/riskscore/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReader struct {
	byInstrument []models.RiskScore
	latest       []models.RiskScore
	gotFrom      time.Time
	gotTo        time.Time
}

func (s *stubReader) ScoresByInstrument(_ context.Context, _ string, from, to time.Time) ([]models.RiskScore, error) {
	s.gotFrom, s.gotTo = from, to
	return s.byInstrument, nil
}

func (s *stubReader) LatestScores(_ context.Context) ([]models.RiskScore, error) {
	return s.latest, nil
}

func TestGetScores(t *testing.T) {
	reader := &stubReader{byInstrument: []models.RiskScore{
		{Instrument: "AAPL", ScoreDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), TotalScore: 0.42},
	}}
	r := SetupRoutes(reader)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/scores?instrument=AAPL&from=2024-02-01&to=2024-03-31", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), reader.gotFrom)
	assert.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), reader.gotTo)

	var scores []models.RiskScore
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &scores))
	require.Len(t, scores, 1)
	assert.Equal(t, "AAPL", scores[0].Instrument)
	assert.Equal(t, 0.42, scores[0].TotalScore)
}

func TestGetScoresRequiresInstrument(t *testing.T) {
	r := SetupRoutes(&stubReader{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/scores", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetScoresRejectsBadDate(t *testing.T) {
	r := SetupRoutes(&stubReader{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/scores?instrument=AAPL&from=03-01-2024", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid from date")
}

func TestGetLatestScores(t *testing.T) {
	reader := &stubReader{latest: []models.RiskScore{
		{Instrument: "AAPL"}, {Instrument: "MSFT"},
	}}
	r := SetupRoutes(reader)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/scores/latest", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var scores []models.RiskScore
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &scores))
	assert.Len(t, scores, 2)
}

func TestHealth(t *testing.T) {
	r := SetupRoutes(&stubReader{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
