package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/fretwise"
	"github.com/aretw0/fretwise/pkg/adapters/memory"
	"github.com/aretw0/fretwise/pkg/domain"
	"github.com/aretw0/fretwise/pkg/observability"
	"github.com/aretw0/fretwise/pkg/ports/tests"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, opts ...Option) http.Handler {
	t.Helper()
	eng, err := fretwise.New(memory.NewLibrary(tests.SampleVariations(t)...))
	require.NoError(t, err)
	return NewHandler(eng, opts...)
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", target, nil))
	return w
}

func TestGetSwagger(t *testing.T) {
	doc, err := GetSwagger()
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", doc.Info.Version)
	assert.NotNil(t, doc.Paths.Find("/recommend"))
}

func TestHealthAndInfo(t *testing.T) {
	h := newTestHandler(t)

	w := get(t, h, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = get(t, h, "/info")
	require.Equal(t, http.StatusOK, w.Code)
	var info map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, fretwise.Version, info["version"])
	assert.Equal(t, "1.0.0", info["api_version"])

	w = get(t, h, "/openapi.yaml")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "operationId: recommend")
}

func TestChords(t *testing.T) {
	h := newTestHandler(t)

	w := get(t, h, "/chords")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["A","D","G"]`, w.Body.String())

	w = get(t, h, "/chords/A")
	require.Equal(t, http.StatusOK, w.Code)
	var vs []domain.ChordVariation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &vs))
	require.Len(t, vs, 2)
	assert.Equal(t, tests.SampleVariations(t)[0], vs[0])
	assert.Contains(t, w.Body.String(), `"positions":["x","0","2","2","2","0"]`)

	w = get(t, h, "/chords/H")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecommend(t *testing.T) {
	h := newTestHandler(t)

	w := get(t, h, "/recommend?chords=A,D,G")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var rec struct {
		Chords []string                `json:"chords"`
		Picked []domain.ChordVariation `json:"picked"`
		Ranked []domain.RankedPair     `json:"ranked"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
	assert.Equal(t, []string{"A", "D", "G"}, rec.Chords)
	require.Len(t, rec.Picked, 3)
	assert.Equal(t, "G v1", rec.Picked[2].Name)
	require.Len(t, rec.Ranked, 3)
	assert.Equal(t, "A-D", rec.Ranked[0].Key)
	assert.Equal(t, -3.5, rec.Ranked[0].Transitions[0].Total)
}

func TestTransitions(t *testing.T) {
	h := newTestHandler(t)

	w := get(t, h, "/transitions?chords=D,G")
	require.Equal(t, http.StatusOK, w.Code)

	var set domain.RankedTransitionSet
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &set))
	ts, ok := set.Get(domain.PairKey{First: "D", Second: "G"})
	require.True(t, ok)
	require.Len(t, ts, 4)
	assert.Equal(t, "D v1 G v1", ts[0].Name)
}

func TestRankingErrors(t *testing.T) {
	h := newTestHandler(t)

	assert.Equal(t, http.StatusBadRequest, get(t, h, "/recommend").Code)
	assert.Equal(t, http.StatusNotFound, get(t, h, "/recommend?chords=A,H").Code)

	w := get(t, h, "/transitions?chords=H,A")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"error"`)
}

func TestScoreTransition(t *testing.T) {
	h := newTestHandler(t)
	vs := tests.SampleVariations(t)

	body, err := json.Marshal(ScoreRequest{From: &vs[0], To: &vs[2]})
	require.NoError(t, err)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("POST", "/score", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"fingerMovementScore":-3,"handMovementScore":-0.5,"totalScore":-3.5}`, w.Body.String())

	muted := `{"from":{"name":"X v1","positions":["x"],"fingerings":["-"]},"to":` + string(mustJSON(t, vs[0])) + `}`
	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("POST", "/score", strings.NewReader(muted)))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("POST", "/score", strings.NewReader(`{"from":`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("POST", "/score", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScoreTransition_BodyTooLarge(t *testing.T) {
	h := newTestHandler(t)

	oversized := `{"from":{"name":"` + strings.Repeat("A", MaxRequestBodyBytes) + `"}}`
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("POST", "/score", strings.NewReader(oversized)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "exceeds")
}

func TestMetricsEndpoint(t *testing.T) {
	m := observability.NewMetrics()
	h := newTestHandler(t, WithMetrics(m))

	get(t, h, "/chords/A")
	get(t, h, "/chords/H")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/chords/{root}", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/chords/{root}", "404")))

	w := get(t, h, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "fretwise_http_requests_total")

	assert.Equal(t, http.StatusNotFound, get(t, newTestHandler(t), "/metrics").Code)
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusOf(&domain.NotFoundError{Root: "H"}))
	assert.Equal(t, http.StatusUnprocessableEntity, StatusOf(&domain.ValidationError{Variation: "X v1"}))
	assert.Equal(t, http.StatusNotImplemented, StatusOf(fretwise.ErrNoCatalog))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("boom")))
	assert.Equal(t, 499, StatusOf(context.Canceled))
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}
