package health

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdormont/trainingsmart/internal/auth"
	"github.com/jdormont/trainingsmart/internal/scoring"
	"github.com/jdormont/trainingsmart/internal/telemetry/metrics"
)

var testNow = time.Date(2026, 8, 21, 10, 30, 0, 0, time.UTC)

func newTestHandler(t *testing.T) (*Handler, *MockmetricsRepo) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repoMock := NewMockmetricsRepo(ctrl)
	handler := NewHandler(repoMock, metrics.NewTestManager())
	handler.now = func() time.Time { return testNow }
	return handler, repoMock
}

func ingestRequest(t *testing.T, body any, userID int) *http.Request {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/health/metrics", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	if userID > 0 {
		req = req.WithContext(auth.ContextWithUserID(context.Background(), userID))
	}
	return req
}

func respHistory(n int) []DailyMetric {
	day := testNow.Truncate(24 * time.Hour)
	history := make([]DailyMetric, 0, n)
	for i := 1; i <= n; i++ {
		history = append(history, DailyMetric{
			UserID:       42,
			Date:         day.AddDate(0, 0, -i),
			SleepMinutes: 420,
			RestingHR:    50,
			HRV:          100,
		})
	}
	return history
}

func TestHandleIngest_ComputesRecoveryAndUpserts(t *testing.T) {
	handler, repoMock := newTestHandler(t)

	day := testNow.Truncate(24 * time.Hour)
	repoMock.EXPECT().
		ListRange(gomock.Any(), 42, day.AddDate(0, 0, -scoring.BaselineWindowDays), day).
		Return(respHistory(5), nil)

	var upserted *DailyMetric
	repoMock.EXPECT().
		Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, m *DailyMetric) (*DailyMetric, error) {
			upserted = m
			stored := *m
			stored.ID = 7
			return &stored, nil
		})

	req := ingestRequest(t, IngestRequest{
		SleepMinutes: 225,
		RestingHR:    55,
		HRV:          90,
		Source:       "garmin",
	}, 42)

	rr := httptest.NewRecorder()
	handler.HandleIngest(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	require.NotNil(t, upserted)
	assert.Equal(t, 42, upserted.UserID)
	assert.Equal(t, day, upserted.Date)
	assert.Equal(t, 74, upserted.RecoveryScore)
	assert.Equal(t, "garmin", upserted.Source)

	var resp IngestResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 7, resp.Metric.ID)
	assert.Equal(t, 74, resp.Recovery.Score)
	assert.False(t, resp.Recovery.ColdStart)
}

func TestHandleIngest_ColdStart(t *testing.T) {
	handler, repoMock := newTestHandler(t)

	repoMock.EXPECT().
		ListRange(gomock.Any(), 42, gomock.Any(), gomock.Any()).
		Return(respHistory(2), nil)
	repoMock.EXPECT().
		Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, m *DailyMetric) (*DailyMetric, error) {
			return m, nil
		})

	req := ingestRequest(t, IngestRequest{SleepMinutes: 480, RestingHR: 48, HRV: 110}, 42)
	rr := httptest.NewRecorder()
	handler.HandleIngest(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	var resp IngestResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, scoring.NeutralRecoveryScore, resp.Recovery.Score)
	assert.True(t, resp.Recovery.ColdStart)
}

func TestHandleIngest_ExplicitDate(t *testing.T) {
	handler, repoMock := newTestHandler(t)

	day := time.Date(2026, 7, 2, 0, 0, 0, 0, time.UTC)
	repoMock.EXPECT().
		ListRange(gomock.Any(), 42, day.AddDate(0, 0, -scoring.BaselineWindowDays), day).
		Return(nil, nil)
	repoMock.EXPECT().
		Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, m *DailyMetric) (*DailyMetric, error) {
			assert.Equal(t, day, m.Date)
			return m, nil
		})

	req := ingestRequest(t, IngestRequest{
		SleepMinutes: 400, RestingHR: 52, HRV: 80, Date: "2026-07-02",
	}, 42)
	rr := httptest.NewRecorder()
	handler.HandleIngest(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestHandleIngest_MissingCredentials(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := ingestRequest(t, IngestRequest{SleepMinutes: 400, RestingHR: 52, HRV: 80}, 0)
	rr := httptest.NewRecorder()
	handler.HandleIngest(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "unauthorized")
}

func TestHandleIngest_UserMismatch(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := ingestRequest(t, IngestRequest{
		UserID: "13", SleepMinutes: 400, RestingHR: 52, HRV: 80,
	}, 42)
	rr := httptest.NewRecorder()
	handler.HandleIngest(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestHandleIngest_Validation(t *testing.T) {
	testCases := []struct {
		name    string
		payload IngestRequest
		errMsg  string
	}{
		{
			name:    "negative sleep",
			payload: IngestRequest{SleepMinutes: -1, RestingHR: 50, HRV: 80},
			errMsg:  "sleep_minutes",
		},
		{
			name:    "resting hr too low",
			payload: IngestRequest{SleepMinutes: 400, RestingHR: 20, HRV: 80},
			errMsg:  "resting_hr",
		},
		{
			name:    "resting hr too high",
			payload: IngestRequest{SleepMinutes: 400, RestingHR: 220, HRV: 80},
			errMsg:  "resting_hr",
		},
		{
			name:    "hrv out of range",
			payload: IngestRequest{SleepMinutes: 400, RestingHR: 50, HRV: 400},
			errMsg:  "hrv",
		},
		{
			name:    "bad date",
			payload: IngestRequest{SleepMinutes: 400, RestingHR: 50, HRV: 80, Date: "02.07.2026"},
			errMsg:  "date",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler, _ := newTestHandler(t)
			req := ingestRequest(t, tc.payload, 42)
			rr := httptest.NewRecorder()
			handler.HandleIngest(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.errMsg)
		})
	}
}

func TestHandleIngest_ZeroRestingHRIsAbsent(t *testing.T) {
	handler, repoMock := newTestHandler(t)

	repoMock.EXPECT().
		ListRange(gomock.Any(), 42, gomock.Any(), gomock.Any()).
		Return(nil, nil)
	repoMock.EXPECT().
		Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, m *DailyMetric) (*DailyMetric, error) {
			return m, nil
		})

	req := ingestRequest(t, IngestRequest{SleepMinutes: 400, RestingHR: 0, HRV: 80}, 42)
	rr := httptest.NewRecorder()
	handler.HandleIngest(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestHandleIngest_StorageFailure(t *testing.T) {
	handler, repoMock := newTestHandler(t)

	repoMock.EXPECT().
		ListRange(gomock.Any(), 42, gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection refused"))

	req := ingestRequest(t, IngestRequest{SleepMinutes: 400, RestingHR: 52, HRV: 80}, 42)
	rr := httptest.NewRecorder()
	handler.HandleIngest(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "storage failure")
}

func TestHandleList(t *testing.T) {
	handler, repoMock := newTestHandler(t)

	repoMock.EXPECT().
		ListRange(gomock.Any(), 42, gomock.Any(), gomock.Any()).
		Return(respHistory(4), nil)
	repoMock.EXPECT().
		Count(gomock.Any(), 42).
		Return(12, nil)

	req := httptest.NewRequest("GET", "/health/metrics", nil)
	req = req.WithContext(auth.ContextWithUserID(context.Background(), 42))
	rr := httptest.NewRecorder()
	handler.HandleList(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp MetricsListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 12, resp.Total)
	assert.Len(t, resp.Metrics, 4)
}

func TestHandleList_WindowCoversExactlyRequestedDays(t *testing.T) {
	handler, repoMock := newTestHandler(t)

	today := testNow.Truncate(24 * time.Hour)
	// ?days=7 means today plus the 6 days before it
	repoMock.EXPECT().
		ListRange(gomock.Any(), 42, today.AddDate(0, 0, -6), today.AddDate(0, 0, 1)).
		Return(nil, nil)
	repoMock.EXPECT().
		Count(gomock.Any(), 42).
		Return(0, nil)

	req := httptest.NewRequest("GET", "/health/metrics?days=7", nil)
	req = req.WithContext(auth.ContextWithUserID(context.Background(), 42))
	rr := httptest.NewRecorder()
	handler.HandleList(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestHandleGetDay(t *testing.T) {
	handler, repoMock := newTestHandler(t)

	day := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	repoMock.EXPECT().
		Get(gomock.Any(), 42, day).
		Return(&DailyMetric{
			ID: 7, UserID: 42, Date: day, SleepMinutes: 420,
			RestingHR: 50, HRV: 100, RecoveryScore: 85, Source: "garmin",
		}, nil)

	req := httptest.NewRequest("GET", "/health/metrics/2026-08-20", nil)
	req = req.WithContext(auth.ContextWithUserID(context.Background(), 42))
	req = mux.SetURLVars(req, map[string]string{"date": "2026-08-20"})
	rr := httptest.NewRecorder()
	handler.HandleGetDay(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var metric DailyMetric
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &metric))
	assert.Equal(t, 85, metric.RecoveryScore)
	assert.Equal(t, "garmin", metric.Source)
}

func TestHandleGetDay_NotFound(t *testing.T) {
	handler, repoMock := newTestHandler(t)

	repoMock.EXPECT().
		Get(gomock.Any(), 42, gomock.Any()).
		Return(nil, ErrMetricNotFound)

	req := httptest.NewRequest("GET", "/health/metrics/2026-08-20", nil)
	req = req.WithContext(auth.ContextWithUserID(context.Background(), 42))
	req = mux.SetURLVars(req, map[string]string{"date": "2026-08-20"})
	rr := httptest.NewRecorder()
	handler.HandleGetDay(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandleGetDay_BadDate(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest("GET", "/health/metrics/20.08.2026", nil)
	req = req.WithContext(auth.ContextWithUserID(context.Background(), 42))
	req = mux.SetURLVars(req, map[string]string{"date": "20.08.2026"})
	rr := httptest.NewRecorder()
	handler.HandleGetDay(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "date")
}

func TestHandleList_BadDaysParam(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest("GET", "/health/metrics?days=nope", nil)
	req = req.WithContext(auth.ContextWithUserID(context.Background(), 42))
	rr := httptest.NewRecorder()
	handler.HandleList(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
