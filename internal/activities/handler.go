package activities

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jdormont/trainingsmart/internal/auth"
	"github.com/jdormont/trainingsmart/internal/scoring"
	"github.com/jdormont/trainingsmart/internal/telemetry/metrics"
	"github.com/jdormont/trainingsmart/internal/telemetry/tracing"
	"github.com/jdormont/trainingsmart/pkg"
)

const maxSyncBatchSize = 500

type activitiesRepo interface {
	UpsertBatch(ctx context.Context, userID int, batch []Activity) (int, error)
	ListRange(ctx context.Context, userID int, from, to time.Time) ([]Activity, error)
	Count(ctx context.Context, userID int) (int, error)
}

type SyncRequest struct {
	Activities []Activity `json:"activities"`
}

type SyncResponse struct {
	Synced int `json:"synced"`
	Total  int `json:"total"`
}

type ListResponse struct {
	Activities []Activity `json:"activities"`
	Total      int        `json:"total"`
}

type Handler struct {
	repo           activitiesRepo
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewHandler(repo activitiesRepo, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:           repo,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

// HandleSync stores a batch of activities pushed by a sync agent.
func (handler *Handler) HandleSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activities.sync")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid payload", "content type must be application/json")
		return
	}

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, http.StatusUnauthorized, "unauthorized", "missing credentials")
		return
	}

	var req SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("sync activities, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid payload", "malformed json")
		return
	}

	if len(req.Activities) == 0 {
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid payload", "activities empty")
		return
	}
	if len(req.Activities) > maxSyncBatchSize {
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid payload", "batch too large")
		return
	}
	for i := range req.Activities {
		if errMsg := validateActivity(&req.Activities[i]); errMsg != "" {
			pkg.WriteJSONError(w, http.StatusBadRequest, "invalid payload", errMsg)
			return
		}
		req.Activities[i].UserID = userID
		req.Activities[i].CreatedAt = handler.now()
	}

	synced, err := handler.repo.UpsertBatch(ctx, userID, req.Activities)
	if err != nil {
		log.Errorf("sync activities for user %d: %s", userID, err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "storage failure", err.Error())
		return
	}

	total, err := handler.repo.Count(ctx, userID)
	if err != nil {
		log.Errorf("count activities for user %d: %s", userID, err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "storage failure", err.Error())
		return
	}

	handler.metricsManager.CounterActivitiesSynced.Add(float64(synced))
	log.Debugf("activities synced: user %d, batch %d, total %d", userID, synced, total)

	respJson, err := json.Marshal(SyncResponse{Synced: synced, Total: total})
	if err != nil {
		log.Errorf("failed to marshal sync response: %s", err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "internal server error", "")
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusCreated)
}

// HandleList returns the authenticated user's activities for an optional
// ?days=N trailing range (default the scoring window).
func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activities.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, http.StatusUnauthorized, "unauthorized", "missing credentials")
		return
	}

	days := scoring.ScoringWindowDays
	if daysParam := r.URL.Query().Get("days"); daysParam != "" {
		parsed, err := strconv.Atoi(daysParam)
		if err != nil || parsed <= 0 {
			pkg.WriteJSONError(w, http.StatusBadRequest, "invalid payload", "days must be a positive integer")
			return
		}
		days = parsed
	}

	to := handler.now()
	from := to.AddDate(0, 0, -days)
	found, err := handler.repo.ListRange(ctx, userID, from, to)
	if err != nil {
		log.Errorf("list activities for user %d: %s", userID, err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "storage failure", err.Error())
		return
	}

	respJson, err := json.Marshal(ListResponse{Activities: found, Total: len(found)})
	if err != nil {
		log.Errorf("failed to marshal activities list: %s", err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "internal server error", "")
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func validateActivity(a *Activity) string {
	if a.ProviderID == "" {
		return "activity provider id empty"
	}
	if a.StartDate.IsZero() {
		return "activity start date missing"
	}
	if a.DistanceMeters < 0 {
		return "activity distance negative"
	}
	if a.MovingTimeSeconds < 0 {
		return "activity moving time negative"
	}
	return ""
}
