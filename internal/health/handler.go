package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/jdormont/trainingsmart/internal/auth"
	"github.com/jdormont/trainingsmart/internal/scoring"
	"github.com/jdormont/trainingsmart/internal/telemetry/metrics"
	"github.com/jdormont/trainingsmart/internal/telemetry/tracing"
	"github.com/jdormont/trainingsmart/pkg"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=handler.go -destination=handler_mocks_test.go -package=health

type metricsRepo interface {
	Upsert(ctx context.Context, metric *DailyMetric) (*DailyMetric, error)
	Get(ctx context.Context, userID int, date time.Time) (*DailyMetric, error)
	ListRange(ctx context.Context, userID int, from, to time.Time) ([]DailyMetric, error)
	Count(ctx context.Context, userID int) (int, error)
}

// IngestRequest is the wire payload of POST /health/metrics. Field names
// follow the wearable sync agents' snake_case convention.
type IngestRequest struct {
	UserID          string   `json:"user_id,omitempty"`
	SleepMinutes    int      `json:"sleep_minutes"`
	RestingHR       int      `json:"resting_hr"`
	HRV             float64  `json:"hrv"`
	RespiratoryRate *float64 `json:"respiratory_rate,omitempty"`
	Source          string   `json:"source,omitempty"`
	Date            string   `json:"date,omitempty"`
}

type IngestResponse struct {
	Metric   *DailyMetric           `json:"metric"`
	Recovery scoring.RecoveryResult `json:"recovery"`
}

type MetricsListResponse struct {
	Metrics []DailyMetric `json:"metrics"`
	Total   int           `json:"total"`
}

type Handler struct {
	repo           metricsRepo
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewHandler(repo metricsRepo, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:           repo,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

// HandleIngest stores one day of biometrics and computes the recovery
// score from the trailing 30 days of history strictly before that day.
func (handler *Handler) HandleIngest(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.healthmetrics.ingest")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid payload", "content type must be application/json")
		return
	}

	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("ingest daily metric, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid payload", "malformed json")
		return
	}

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, http.StatusUnauthorized, "unauthorized", "missing credentials")
		return
	}
	if req.UserID != "" {
		reqUserID, err := strconv.Atoi(req.UserID)
		if err != nil {
			pkg.WriteJSONError(w, http.StatusBadRequest, "invalid payload", "user_id must be numeric")
			return
		}
		if reqUserID != userID {
			pkg.WriteJSONError(w, http.StatusForbidden, "forbidden", "user_id does not match credentials")
			return
		}
	}

	if errMsg := validateIngestRequest(req); errMsg != "" {
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid payload", errMsg)
		return
	}

	date := handler.now().UTC().Truncate(24 * time.Hour)
	if req.Date != "" {
		parsed, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			pkg.WriteJSONError(w, http.StatusBadRequest, "invalid payload", "date must match YYYY-MM-DD")
			return
		}
		date = parsed
	}

	// trailing window, strictly before the day being scored
	history, err := handler.repo.ListRange(ctx, userID, date.AddDate(0, 0, -scoring.BaselineWindowDays), date)
	if err != nil {
		log.Errorf("ingest daily metric, fetch history for user %d: %s", userID, err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "storage failure", err.Error())
		return
	}

	metric := &DailyMetric{
		UserID:          userID,
		Date:            date,
		SleepMinutes:    req.SleepMinutes,
		RestingHR:       req.RestingHR,
		HRV:             req.HRV,
		RespiratoryRate: req.RespiratoryRate,
		Source:          req.Source,
		CreatedAt:       handler.now(),
	}

	recovery := scoring.RecoveryDetails(metric.ToCurrent(), ToSamples(history))
	metric.RecoveryScore = recovery.Score

	storedMetric, err := handler.repo.Upsert(ctx, metric)
	if err != nil {
		log.Errorf("ingest daily metric for user %d: %s", userID, err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "storage failure", err.Error())
		return
	}

	handler.metricsManager.CounterMetricsIngested.Inc()
	handler.metricsManager.CounterScoresComputed.WithLabelValues("recovery").Inc()
	log.Debugf("daily metric stored: user %d, date %s, recovery %d",
		storedMetric.UserID, storedMetric.Date.Format(dateLayout), storedMetric.RecoveryScore)

	respJson, err := json.Marshal(IngestResponse{
		Metric:   storedMetric,
		Recovery: recovery,
	})
	if err != nil {
		log.Errorf("failed to marshal ingest response: %s", err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "internal server error", "")
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusCreated)
}

// HandleList returns stored metrics for the authenticated user, newest
// first, for an optional ?days=N trailing range (default 30).
func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.healthmetrics.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, http.StatusUnauthorized, "unauthorized", "missing credentials")
		return
	}

	days := scoring.BaselineWindowDays
	if daysParam := r.URL.Query().Get("days"); daysParam != "" {
		parsed, err := strconv.Atoi(daysParam)
		if err != nil || parsed <= 0 {
			pkg.WriteJSONError(w, http.StatusBadRequest, "invalid payload", "days must be a positive integer")
			return
		}
		days = parsed
	}

	// the window covers today and the days-1 before it
	to := handler.now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, 1)
	from := to.AddDate(0, 0, -days)
	foundMetrics, err := handler.repo.ListRange(ctx, userID, from, to)
	if err != nil {
		log.Errorf("list daily metrics for user %d: %s", userID, err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "storage failure", err.Error())
		return
	}

	total, err := handler.repo.Count(ctx, userID)
	if err != nil {
		log.Errorf("count daily metrics for user %d: %s", userID, err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "storage failure", err.Error())
		return
	}

	respJson, err := json.Marshal(MetricsListResponse{
		Metrics: foundMetrics,
		Total:   total,
	})
	if err != nil {
		log.Errorf("failed to marshal metrics list: %s", err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "internal server error", "")
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

// HandleGetDay returns the stored metric for one calendar date,
// GET /health/metrics/{date}.
func (handler *Handler) HandleGetDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.healthmetrics.getDay")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, http.StatusUnauthorized, "unauthorized", "missing credentials")
		return
	}

	date, err := time.Parse(dateLayout, mux.Vars(r)["date"])
	if err != nil {
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid payload", "date must match YYYY-MM-DD")
		return
	}

	metric, err := handler.repo.Get(ctx, userID, date)
	if err != nil {
		if errors.Is(err, ErrMetricNotFound) {
			pkg.WriteJSONError(w, http.StatusNotFound, "not found", "no metric stored for that date")
			return
		}
		log.Errorf("get daily metric for user %d, date %s: %s", userID, date.Format(dateLayout), err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "storage failure", err.Error())
		return
	}

	respJson, err := json.Marshal(metric)
	if err != nil {
		log.Errorf("failed to marshal daily metric: %s", err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "internal server error", "")
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func validateIngestRequest(req IngestRequest) string {
	if req.SleepMinutes < 0 {
		return "sleep_minutes must be >= 0"
	}
	if req.RestingHR != 0 && (req.RestingHR < 30 || req.RestingHR > 200) {
		return "resting_hr must be 0 or in [30,200]"
	}
	if req.HRV < 0 || req.HRV > 300 {
		return "hrv must be in [0,300]"
	}
	if req.RespiratoryRate != nil && (*req.RespiratoryRate < 0 || *req.RespiratoryRate > 100) {
		return "respiratory_rate must be in [0,100]"
	}
	return ""
}
