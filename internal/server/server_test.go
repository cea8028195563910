package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(burst int) *Server {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(log, 100, burst)
}

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/size", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestSize_OK(t *testing.T) {
	s := newTestServer(10)
	rec := post(t, s.Handler(), `{
		"case": "Pad A",
		"motive": [{"fluid": "gas", "flow": 10, "pressure": 1000}],
		"suction": [{"fluid": "Water", "flow": 5000}]
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp SizeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Pad A", resp.Case)
	assert.InDelta(t, 1784140.377, resp.Result.TotalMassFlow, 1e-2)
	assert.InDelta(t, 0.96076, resp.Result.ThroatDiameter, 1e-4)
	assert.Equal(t, 2*resp.Result.ThroatDiameter, resp.Result.MixingChamberDiameter)
}

func TestSize_NoValidInput(t *testing.T) {
	s := newTestServer(10)
	rec := post(t, s.Handler(), `{"motive": [], "suction": [{"fluid": "Oil", "flow": 0}]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "no valid input provided")
}

func TestSize_BadPayload(t *testing.T) {
	s := newTestServer(10)

	for _, body := range []string{
		`not json`,
		`{"motive": [{"fluid": "gas", "flow": "ten"}]}`,
		`{"streams": []}`,
	} {
		rec := post(t, s.Handler(), body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}

	rec := post(t, s.Handler(), `{"motive": [{"fluid": "steam", "flow": 1}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "steam")
}

func TestHealth(t *testing.T) {
	s := newTestServer(10)
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRateLimit(t *testing.T) {
	s := New(slog.New(slog.NewTextHandler(io.Discard, nil)), 0.001, 2)
	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestSize_WrongMethod(t *testing.T) {
	s := newTestServer(10)
	req := httptest.NewRequest(http.MethodGet, "/api/size", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Contains(t, []int{http.StatusMethodNotAllowed, http.StatusNotFound}, rec.Code)
}

func TestSize_InvalidResult(t *testing.T) {
	s := newTestServer(10)
	rec := post(t, s.Handler(), `{"suction": [{"fluid": "Oil", "flow": 1000, "api": -131.5}]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "valid throat area")
}

func TestWriteJSON_Unencodable(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusOK, map[string]float64{"throat": math.NaN()})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "encode response")
}
