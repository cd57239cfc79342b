package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hcalazans/autovoz/internal/analysis"
	"github.com/hcalazans/autovoz/internal/history"
	"github.com/hcalazans/autovoz/internal/models"
)

type fakeRunner struct {
	lastModel string
	lastLimit int
	result    *analysis.RunResult
	err       error
}

func (f *fakeRunner) Run(_ context.Context, model string, limit int) (*analysis.RunResult, error) {
	f.lastModel = model
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeStore struct {
	summaries []models.AnalysisSummary
	err       error
}

func (f *fakeStore) AppendSummary(context.Context, models.AnalysisSummary) error { return nil }

func (f *fakeStore) FetchHistory(context.Context, int) ([]models.AnalysisSummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.summaries, nil
}

type fakeCache struct {
	latest map[string]models.AnalysisSummary
}

func (f *fakeCache) SetLatest(_ context.Context, summary models.AnalysisSummary) {
	if f.latest == nil {
		f.latest = make(map[string]models.AnalysisSummary)
	}
	f.latest[summary.Model] = summary
}

func (f *fakeCache) GetLatest(_ context.Context, model string) (models.AnalysisSummary, bool) {
	summary, ok := f.latest[model]
	return summary, ok
}

func summaryFor(model string, generatedAt time.Time) models.AnalysisSummary {
	return models.AnalysisSummary{
		ID:           "id-" + model,
		Model:        model,
		Synthesis:    "O " + model + " possui boa aceitação.",
		Distribution: "Distribuição: POSITIVO: 50.0%, NEGATIVO: 30.0%, NEUTRO: 20.0%.",
		GeneratedAt:  generatedAt,
	}
}

func newTestServer(t *testing.T, p ServerParams) http.Handler {
	t.Helper()
	return NewServer(p).Routes()
}

func TestHealth(t *testing.T) {
	handler := newTestServer(t, ServerParams{Runner: &fakeRunner{}, Store: &fakeStore{}})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRunAnalysis(t *testing.T) {
	runner := &fakeRunner{result: &analysis.RunResult{
		Summary:      summaryFor("Onix", time.Now().UTC()),
		Distribution: models.Distribution{Positive: 50, Negative: 30, Neutral: 20},
	}}
	handler := newTestServer(t, ServerParams{Runner: runner, Store: &fakeStore{}, CollectLimit: 200})

	body := bytes.NewBufferString(`{"model":"Onix","limit":50}`)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/analyses", body))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Onix", runner.lastModel)
	assert.Equal(t, 50, runner.lastLimit)

	var result analysis.RunResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "Onix", result.Summary.Model)
}

func TestRunAnalysisRejectsMissingModel(t *testing.T) {
	handler := newTestServer(t, ServerParams{Runner: &fakeRunner{}, Store: &fakeStore{}})

	body := bytes.NewBufferString(`{"model":"  "}`)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/analyses", body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRunAnalysisClampsLimit(t *testing.T) {
	runner := &fakeRunner{result: &analysis.RunResult{Summary: summaryFor("HB20", time.Now().UTC())}}
	handler := newTestServer(t, ServerParams{Runner: runner, Store: &fakeStore{}, CollectLimit: 100})

	body := bytes.NewBufferString(`{"model":"HB20","limit":9999}`)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/analyses", body))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 100, runner.lastLimit)
}

func TestRunAnalysisSurfacesRunnerFailure(t *testing.T) {
	runner := &fakeRunner{err: errors.New("store offline")}
	handler := newTestServer(t, ServerParams{Runner: runner, Store: &fakeStore{}})

	body := bytes.NewBufferString(`{"model":"Onix"}`)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/analyses", body))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "store offline")
}

func TestHistoryEndpoint(t *testing.T) {
	now := time.Now().UTC()
	store := &fakeStore{summaries: []models.AnalysisSummary{
		summaryFor("Onix", now),
		summaryFor("HB20", now.Add(-time.Hour)),
	}}
	handler := newTestServer(t, ServerParams{Runner: &fakeRunner{}, Store: store})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/history", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var summaries []models.AnalysisSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summaries))
	assert.Len(t, summaries, 2)
}

func TestLatestEndpoint(t *testing.T) {
	now := time.Now().UTC()
	store := &fakeStore{summaries: []models.AnalysisSummary{summaryFor("Onix", now)}}
	handler := newTestServer(t, ServerParams{Runner: &fakeRunner{}, Store: store})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/models/Onix/latest", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var latest history.LatestAnalysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &latest))
	assert.Equal(t, "Onix", latest.Model)
	assert.InDelta(t, 50.0, latest.Percentages.Positive, 0.01)
}

func TestLatestEndpointNotFound(t *testing.T) {
	store := &fakeStore{summaries: []models.AnalysisSummary{summaryFor("Onix", time.Now().UTC())}}
	handler := newTestServer(t, ServerParams{Runner: &fakeRunner{}, Store: store})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/models/Polo/latest", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Polo")
}

func TestLatestEndpointPrefersCache(t *testing.T) {
	cache := &fakeCache{}
	cache.SetLatest(context.Background(), summaryFor("Onix", time.Now().UTC()))
	store := &fakeStore{err: errors.New("store offline")}
	handler := newTestServer(t, ServerParams{Runner: &fakeRunner{}, Store: store, Cache: cache})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/models/Onix/latest", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var latest history.LatestAnalysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &latest))
	assert.Equal(t, "Onix", latest.Model)
}

func TestCompareEndpoint(t *testing.T) {
	now := time.Now().UTC()
	store := &fakeStore{summaries: []models.AnalysisSummary{
		summaryFor("Onix", now),
		summaryFor("HB20", now.Add(-time.Hour)),
	}}
	handler := newTestServer(t, ServerParams{Runner: &fakeRunner{}, Store: store})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/compare", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp compareResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.A)
	require.NotNil(t, resp.B)
	assert.Equal(t, "Onix", resp.A.Model)
	assert.Equal(t, "HB20", resp.B.Model)
}

func TestCompareEndpointNeedsTwoModels(t *testing.T) {
	store := &fakeStore{summaries: []models.AnalysisSummary{summaryFor("Onix", time.Now().UTC())}}
	handler := newTestServer(t, ServerParams{Runner: &fakeRunner{}, Store: store})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/compare", nil))

	assert.Equal(t, http.StatusConflict, rec.Code)
}
