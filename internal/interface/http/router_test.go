package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/fitcheck/internal/domain/fitness"
	"github.com/yanqian/fitcheck/internal/infra/chart"
	"github.com/yanqian/fitcheck/internal/infra/config"
	"github.com/yanqian/fitcheck/internal/infra/ratelimit"
	"github.com/yanqian/fitcheck/internal/infra/usagerepo"
	apperrors "github.com/yanqian/fitcheck/pkg/errors"
)

const peerPayload = `{
	"mode": "average",
	"age": "67",
	"gender": "male",
	"height": 170,
	"weight": "65",
	"curr": {"grip": 38, "calf": 35, "one_leg": 60, "five_stand": 8.0, "tug": 6.5, "walk": 6.0},
	"prev": {}
}`

func TestRouter_AnalyzePeerAverage(t *testing.T) {
	server := newRouterUnderTest(t, newRealService(), ratelimit.Nop{})

	recorder := performRequest(http.MethodPost, "/api/v1/analyze", peerPayload, server)
	require.Equal(t, http.StatusOK, recorder.Code)

	body := decodeBody(t, recorder.Body.Bytes())
	require.Equal(t, "65-69歳 同年代平均との比較", body["message"])
	require.Equal(t, false, body["missingData"])

	bmi := body["bmiInfo"].(map[string]any)
	require.Equal(t, "22.5", bmi["value"])
	require.Equal(t, string(fitness.BMINormal), bmi["status"])

	datasets := body["datasets"].([]any)
	require.Len(t, datasets, 2)
	scores := datasets[0].(map[string]any)["data"].([]any)
	require.Equal(t, json.Number("97.4"), scores[0])
	require.Equal(t, json.Number("102.5"), scores[3])
	require.Len(t, datasets[0].(map[string]any)["tableData"], 6)
	baseline := datasets[1].(map[string]any)["data"].([]any)
	require.Equal(t, json.Number("100"), baseline[5])

	table := body["tableData"].([]any)
	fiveStand := table[3].(map[string]any)
	require.Equal(t, "five_stand", fiveStand["id"])
	require.Equal(t, "avg", fiveStand["status"])
	require.Equal(t, json.Number("8.2"), fiveStand["avgVal"])
}

func TestRouter_AnalyzeHistory(t *testing.T) {
	server := newRouterUnderTest(t, newRealService(), ratelimit.Nop{})
	payload := `{"mode":"history","age":40,"gender":"female",
		"curr":{"walk":5.1,"grip":50,"calf":"","one_leg":30,"five_stand":7,"tug":6},
		"prev":{"grip":45}}`

	recorder := performRequest(http.MethodPost, "/api/v1/analyze", payload, server)
	require.Equal(t, http.StatusOK, recorder.Code)

	body := decodeBody(t, recorder.Body.Bytes())
	require.Equal(t, "前回測定値との比較", body["message"])
	require.Equal(t, true, body["missingData"])
	require.Nil(t, body["bmiInfo"])

	datasets := body["datasets"].([]any)
	prev := datasets[0].(map[string]any)
	curr := datasets[1].(map[string]any)
	require.Equal(t, "前回", prev["label"])
	require.Equal(t, []any{json.Number("45"), json.Number("0"), json.Number("0"), json.Number("0"), json.Number("0"), json.Number("0")}, prev["data"])
	require.Equal(t, []any{json.Number("50"), json.Number("0"), json.Number("30"), json.Number("7"), json.Number("6"), json.Number("5.1")}, curr["data"])
}

func TestRouter_AnalyzeRejectsOtherMethods(t *testing.T) {
	server := newRouterUnderTest(t, newRealService(), ratelimit.Nop{})

	recorder := performRequest(http.MethodGet, "/api/v1/analyze", "", server)
	require.Equal(t, http.StatusMethodNotAllowed, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "method_not_allowed", errBody["error"]["code"])
}

func TestRouter_AnalyzeInvalidJSON(t *testing.T) {
	server := newRouterUnderTest(t, newRealService(), ratelimit.Nop{})

	for _, payload := range []string{`{"curr": {"grip": 38}`, `not json`, `[1, 2]`} {
		recorder := performRequest(http.MethodPost, "/api/v1/analyze", payload, server)
		require.Equal(t, http.StatusBadRequest, recorder.Code, payload)

		errBody := decodeErrorBody(t, recorder.Body.Bytes())
		require.Equal(t, "invalid_input", errBody["error"]["code"])
		require.NotEmpty(t, errBody["error"]["message"])
	}
}

func TestRouter_AnalyzeWrongTypesDegradeToAbsent(t *testing.T) {
	server := newRouterUnderTest(t, newRealService(), ratelimit.Nop{})
	payload := `{"age":true,"gender":"male","height":{},"weight":[65],
		"curr":{"grip":true,"calf":35,"one_leg":60,"five_stand":8.0,"tug":6.5,"walk":6.0}}`

	recorder := performRequest(http.MethodPost, "/api/v1/analyze", payload, server)
	require.Equal(t, http.StatusOK, recorder.Code)

	body := decodeBody(t, recorder.Body.Bytes())
	require.Equal(t, "85-歳 同年代平均との比較", body["message"])
	require.Nil(t, body["bmiInfo"])
	require.Equal(t, true, body["missingData"])

	grip := body["tableData"].([]any)[0].(map[string]any)
	require.Nil(t, grip["userVal"])
	require.Equal(t, "avg", grip["status"])
	scores := body["datasets"].([]any)[0].(map[string]any)["data"].([]any)
	require.Equal(t, json.Number("0"), scores[0])

	recorder = performRequest(http.MethodPost, "/api/v1/analyze", `{"age":[67]}`, server)
	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestRouter_AnalyzeAcceptsUnitSuffixes(t *testing.T) {
	server := newRouterUnderTest(t, newRealService(), ratelimit.Nop{})
	payload := `{"age":"67歳","gender":"male","height":"170cm","weight":"65kg","curr":{"grip":38}}`

	recorder := performRequest(http.MethodPost, "/api/v1/analyze", payload, server)
	require.Equal(t, http.StatusOK, recorder.Code)

	body := decodeBody(t, recorder.Body.Bytes())
	require.Equal(t, "65-69歳 同年代平均との比較", body["message"])
	bmi := body["bmiInfo"].(map[string]any)
	require.Equal(t, "22.5", bmi["value"])
}

func TestRouter_AnalyzeServiceFailureIsGeneric(t *testing.T) {
	svc := &stubService{
		analyzeFn: func(ctx context.Context, req fitness.Request) (fitness.Report, error) {
			return fitness.Report{}, apperrors.Wrap(apperrors.CodeCanceled, "request canceled", context.Canceled)
		},
	}
	server := newRouterUnderTest(t, svc, ratelimit.Nop{})

	recorder := performRequest(http.MethodPost, "/api/v1/analyze", `{}`, server)
	require.Equal(t, http.StatusInternalServerError, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, apperrors.CodeInternal, errBody["error"]["code"])
	require.Equal(t, genericErrorMessage, errBody["error"]["message"])
}

func TestRouter_AnalyzePanicIsRecovered(t *testing.T) {
	svc := &stubService{
		analyzeFn: func(ctx context.Context, req fitness.Request) (fitness.Report, error) {
			panic("boom")
		},
	}
	server := newRouterUnderTest(t, svc, ratelimit.Nop{})

	recorder := performRequest(http.MethodPost, "/api/v1/analyze", `{}`, server)
	require.Equal(t, http.StatusInternalServerError, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, apperrors.CodeInternal, errBody["error"]["code"])
	require.Equal(t, genericErrorMessage, errBody["error"]["message"])
}

func TestRouter_RateLimited(t *testing.T) {
	server := newRouterUnderTest(t, newRealService(), denyLimiter{})

	recorder := performRequest(http.MethodPost, "/api/v1/analyze", peerPayload, server)
	require.Equal(t, http.StatusTooManyRequests, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "rate_limit_exceeded", errBody["error"]["code"])
}

func TestRouter_RateLimiterFailureAllowsRequest(t *testing.T) {
	server := newRouterUnderTest(t, newRealService(), failingLimiter{})

	recorder := performRequest(http.MethodPost, "/api/v1/analyze", peerPayload, server)
	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestRouter_ReferenceFallsBackForUnknownGender(t *testing.T) {
	server := newRouterUnderTest(t, newRealService(), ratelimit.Nop{})

	recorder := performRequest(http.MethodGet, "/api/v1/references?gender=other&age=30", "", server)
	require.Equal(t, http.StatusOK, recorder.Code)

	var cell fitness.ReferenceCell
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &cell))
	require.Equal(t, fitness.GenderFemale, cell.Gender)
	require.Equal(t, fitness.Bracket85Plus, cell.Bracket)
	require.Equal(t, 15.0, cell.Values[fitness.MetricGrip])
}

func TestRouter_MetricsAndUsage(t *testing.T) {
	server := newRouterUnderTest(t, newRealService(), ratelimit.Nop{})

	recorder := performRequest(http.MethodGet, "/api/v1/metrics", "", server)
	require.Equal(t, http.StatusOK, recorder.Code)
	var metrics struct {
		Metrics []fitness.MetricDefinition `json:"metrics"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &metrics))
	require.Equal(t, fitness.Metrics(), metrics.Metrics)

	performRequest(http.MethodPost, "/api/v1/analyze", peerPayload, server)
	recorder = performRequest(http.MethodGet, "/api/v1/usage", "", server)
	require.Equal(t, http.StatusOK, recorder.Code)
	var usage struct {
		Usage []fitness.UsageCount `json:"usage"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &usage))
	require.Len(t, usage.Usage, 1)
	require.Equal(t, fitness.Bracket65to69, usage.Usage[0].Bracket)
	require.EqualValues(t, 1, usage.Usage[0].Count)
}

func TestRouter_UsageFailure(t *testing.T) {
	svc := &stubService{
		usageFn: func(ctx context.Context) ([]fitness.UsageCount, error) {
			return nil, apperrors.Wrap(apperrors.CodeUsage, "failed to load usage counters", errors.New("db down"))
		},
	}
	server := newRouterUnderTest(t, svc, ratelimit.Nop{})

	recorder := performRequest(http.MethodGet, "/api/v1/usage", "", server)
	require.Equal(t, http.StatusInternalServerError, recorder.Code)
	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, apperrors.CodeUsage, errBody["error"]["code"])
}

func TestRouter_AnalyzeChart(t *testing.T) {
	server := newRouterUnderTest(t, newRealService(), ratelimit.Nop{})

	recorder := performRequest(http.MethodPost, "/api/v1/analyze/chart", peerPayload, server)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Contains(t, recorder.Header().Get("Content-Type"), "text/html")
	require.Contains(t, recorder.Body.String(), "echarts")
}

func TestRouter_RequestIDAndPreflight(t *testing.T) {
	server := newRouterUnderTest(t, newRealService(), ratelimit.Nop{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))

	recorder := performRequest(http.MethodGet, "/healthz", "", server)
	require.NotEmpty(t, recorder.Header().Get(requestIDHeader))

	recorder = performRequest(http.MethodOptions, "/api/v1/analyze", "", server)
	require.Equal(t, http.StatusNoContent, recorder.Code)
	require.Equal(t, "*", recorder.Header().Get("Access-Control-Allow-Origin"))
}

func performRequest(method, path, body string, server *http.Server) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

func newRouterUnderTest(t *testing.T, svc fitness.Service, limiter ratelimit.Limiter) *http.Server {
	t.Helper()
	handler := NewHandler(svc, chart.NewRenderer(chart.Config{}), newTestLogger())
	cfg := &config.Config{
		HTTP: config.HTTPConfig{
			Address:      ":0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
	}
	return NewRouter(cfg, handler, limiter)
}

func newRealService() fitness.Service {
	return fitness.NewService(usagerepo.NewMemoryRepository(), newTestLogger())
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

func decodeBody(t *testing.T, data []byte) map[string]any {
	t.Helper()
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out map[string]any
	require.NoError(t, dec.Decode(&out))
	return out
}

func decodeErrorBody(t *testing.T, data []byte) map[string]map[string]string {
	t.Helper()
	var out map[string]map[string]string
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

type stubService struct {
	analyzeFn func(ctx context.Context, req fitness.Request) (fitness.Report, error)
	usageFn   func(ctx context.Context) ([]fitness.UsageCount, error)
}

func (s *stubService) Analyze(ctx context.Context, req fitness.Request) (fitness.Report, error) {
	if s.analyzeFn != nil {
		return s.analyzeFn(ctx, req)
	}
	return fitness.BuildReport(req), nil
}

func (s *stubService) Reference(gender string, age fitness.Value) fitness.ReferenceCell {
	return fitness.LookupReference(gender, fitness.ResolveBracket(age))
}

func (s *stubService) Usage(ctx context.Context) ([]fitness.UsageCount, error) {
	if s.usageFn != nil {
		return s.usageFn(ctx)
	}
	return nil, nil
}

type denyLimiter struct{}

func (denyLimiter) Allow(context.Context, string) (bool, error) { return false, nil }

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (bool, error) {
	return false, errors.New("valkey unreachable")
}
