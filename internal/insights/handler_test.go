package insights

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdormont/trainingsmart/internal/auth"
	"github.com/jdormont/trainingsmart/internal/telemetry/metrics"
)

func newCachedTestHandler(m *metricsRepoFake, a *activitiesRepoFake) *Handler {
	handler := NewHandler(newTestAnalyzer(m, a), nil, metrics.NewTestManager(), time.Minute)
	handler.now = func() time.Time { return testNow }
	return handler
}

func insightRequest(path string, userID int) *http.Request {
	req := httptest.NewRequest("GET", path, nil)
	if userID > 0 {
		req = req.WithContext(auth.ContextWithUserID(context.Background(), userID))
	}
	return req
}

func TestHandleRecovery(t *testing.T) {
	handler := newCachedTestHandler(&metricsRepoFake{metrics: steadyMetrics(10)}, &activitiesRepoFake{})

	rr := httptest.NewRecorder()
	handler.HandleRecovery(rr, insightRequest("/insights/recovery", 42))

	require.Equal(t, http.StatusOK, rr.Code)
	var insight RecoveryInsight
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &insight))
	// 420 of 450 target minutes slept, HRV and RHR right on baseline
	assert.Equal(t, 99, insight.Recovery.Score)
	assert.Equal(t, float64(0), testutil.ToFloat64(handler.metricsManager.CounterScoreCacheHits))
}

func TestHandleRecovery_SecondCallServedFromCache(t *testing.T) {
	metricsRepo := &metricsRepoFake{metrics: steadyMetrics(10)}
	handler := newCachedTestHandler(metricsRepo, &activitiesRepoFake{})

	first := httptest.NewRecorder()
	handler.HandleRecovery(first, insightRequest("/insights/recovery", 42))
	require.Equal(t, http.StatusOK, first.Code)

	// repo errors now, but the cached response still serves
	metricsRepo.err = errors.New("connection refused")

	second := httptest.NewRecorder()
	handler.HandleRecovery(second, insightRequest("/insights/recovery", 42))
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, float64(1), testutil.ToFloat64(handler.metricsManager.CounterScoreCacheHits))
}

func TestHandleRecovery_MissingCredentials(t *testing.T) {
	handler := newCachedTestHandler(&metricsRepoFake{}, &activitiesRepoFake{})

	rr := httptest.NewRecorder()
	handler.HandleRecovery(rr, insightRequest("/insights/recovery", 0))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestHandlePerformance(t *testing.T) {
	handler := newCachedTestHandler(&metricsRepoFake{}, &activitiesRepoFake{activities: testRides(20)})

	rr := httptest.NewRecorder()
	handler.HandlePerformance(rr, insightRequest("/insights/performance", 42))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "endurance")
	assert.Equal(t, float64(1), testutil.ToFloat64(
		handler.metricsManager.CounterScoresComputed.WithLabelValues(kindPerformance),
	))
}

func TestHandleHealthBalance_StorageFailure(t *testing.T) {
	handler := newCachedTestHandler(
		&metricsRepoFake{},
		&activitiesRepoFake{err: errors.New("connection refused")},
	)

	rr := httptest.NewRecorder()
	handler.HandleHealthBalance(rr, insightRequest("/insights/health", 42))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "storage failure")
}

func TestHandleCached_CacheIsPerUser(t *testing.T) {
	handler := newCachedTestHandler(&metricsRepoFake{metrics: steadyMetrics(10)}, &activitiesRepoFake{})

	first := httptest.NewRecorder()
	handler.HandleRecovery(first, insightRequest("/insights/recovery", 42))
	require.Equal(t, http.StatusOK, first.Code)

	other := httptest.NewRecorder()
	handler.HandleRecovery(other, insightRequest("/insights/recovery", 13))
	require.Equal(t, http.StatusOK, other.Code)

	// no cross-user cache hits
	assert.Equal(t, float64(0), testutil.ToFloat64(handler.metricsManager.CounterScoreCacheHits))
}
