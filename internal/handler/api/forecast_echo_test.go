package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CashCast/internal/services/forecast"
	"CashCast/internal/services/report"
	"CashCast/internal/services/risk"
	"CashCast/internal/usecase"
	"CashCast/pkg/logger"
)

var sampleCSV = "Month,Revenue,Expenses\n" +
	"2024-01-01,5000,3000\n" +
	"2024-02-01,5200,3100\n" +
	"2024-03-01,5400,3200\n"

type noopMetrics struct{}

func (noopMetrics) RecordForecast(string)        {}
func (noopMetrics) RecordRiskMonth(string)       {}
func (noopMetrics) RecordError(string)           {}
func (noopMetrics) RecordLatency(string, float64) {}

func newTestHandler(t *testing.T, rl RateLimitConfig) (*ForecastEchoHandler, *echo.Echo) {
	t.Helper()
	l, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	require.NoError(t, err)

	pipeline := usecase.NewForecastPipeline(usecase.Deps{
		Engine:     forecast.NewEngine(forecast.NewLinearForecaster(0.8)),
		Classifier: risk.NewClassifier("₹"),
		Assembler:  report.NewAssembler(),
		Metrics:    noopMetrics{},
	})

	h := NewForecastEchoHandler(l, pipeline, rl)
	e := echo.New()
	h.RegisterRoutes(e)
	return h, e
}

func multipartBody(t *testing.T, csv string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)
	if csv != "" {
		fw, err := w.CreateFormFile("file", "data.csv")
		require.NoError(t, err)
		_, err = fw.Write([]byte(csv))
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func doPredict(e *echo.Echo, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/predict", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRootEndpoint(t *testing.T) {
	_, e := newTestHandler(t, RateLimitConfig{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "cashcast backend running", resp["message"])
}

func TestPredictSuccess(t *testing.T) {
	_, e := newTestHandler(t, RateLimitConfig{})

	body, ct := multipartBody(t, sampleCSV, map[string]string{"months": "4"})
	rec := doPredict(e, body, ct)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Message   string                   `json:"message"`
		Forecast  []map[string]interface{} `json:"forecast"`
		AISummary *string                  `json:"ai_summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "4-month forecast generated successfully.", resp.Message)
	assert.Len(t, resp.Forecast, 4)
	require.NotNil(t, resp.AISummary)
	assert.Equal(t, "⚠️ Missing OpenAI API key.", *resp.AISummary)
}

func TestPredictDefaultsToThreeMonths(t *testing.T) {
	_, e := newTestHandler(t, RateLimitConfig{})

	body, ct := multipartBody(t, sampleCSV, nil)
	rec := doPredict(e, body, ct)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Forecast []map[string]interface{} `json:"forecast"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Forecast, 3)
}

func TestPredictMissingFile(t *testing.T) {
	_, e := newTestHandler(t, RateLimitConfig{})

	body, ct := multipartBody(t, "", map[string]string{"months": "3"})
	rec := doPredict(e, body, ct)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "no file uploaded", resp["error"])
}

func TestPredictMonthsOutOfRange(t *testing.T) {
	_, e := newTestHandler(t, RateLimitConfig{})

	body, ct := multipartBody(t, sampleCSV, map[string]string{"months": "20"})
	rec := doPredict(e, body, ct)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "Months")
}

func TestPredictInsufficientHistory(t *testing.T) {
	_, e := newTestHandler(t, RateLimitConfig{})

	body, ct := multipartBody(t, "Month,Revenue\n2024-01-01,100\n", nil)
	rec := doPredict(e, body, ct)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "insufficient history")
}

func TestPredictEmptyDataset(t *testing.T) {
	_, e := newTestHandler(t, RateLimitConfig{})

	body, ct := multipartBody(t, "Month,Revenue\n", nil)
	rec := doPredict(e, body, ct)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPredictRateLimited(t *testing.T) {
	_, e := newTestHandler(t, RateLimitConfig{Enabled: true, Capacity: 1, RefillPerSec: 0})

	body, ct := multipartBody(t, sampleCSV, nil)
	rec := doPredict(e, body, ct)
	require.Equal(t, http.StatusOK, rec.Code)

	body, ct = multipartBody(t, sampleCSV, nil)
	rec = doPredict(e, body, ct)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "too many requests", resp["error"])
}
