package insights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/coocood/freecache"
	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"

	"github.com/jdormont/trainingsmart/internal/auth"
	"github.com/jdormont/trainingsmart/internal/telemetry/metrics"
	"github.com/jdormont/trainingsmart/internal/telemetry/tracing"
	"github.com/jdormont/trainingsmart/pkg"
)

const (
	// hotCacheExpireSeconds keeps repeated dashboard renders off redis.
	hotCacheExpireSeconds = 60
	hotCacheSizeBytes     = 10 * 1024 * 1024

	kindRecovery      = "recovery"
	kindPerformance   = "performance"
	kindHealthBalance = "health"
)

type Handler struct {
	analyzer       *Analyzer
	redisClient    *redis.Client
	hotCache       *freecache.Cache
	metricsManager *metrics.Manager
	cacheTTL       time.Duration
	now            func() time.Time
}

func NewHandler(
	analyzer *Analyzer,
	redisClient *redis.Client,
	metricsManager *metrics.Manager,
	cacheTTL time.Duration,
) *Handler {
	return &Handler{
		analyzer:       analyzer,
		redisClient:    redisClient,
		hotCache:       freecache.NewCache(hotCacheSizeBytes),
		metricsManager: metricsManager,
		cacheTTL:       cacheTTL,
		now:            time.Now,
	}
}

func (handler *Handler) HandleRecovery(w http.ResponseWriter, r *http.Request) {
	handler.handleCached(w, r, kindRecovery, func(ctx context.Context, userID int) (any, error) {
		return handler.analyzer.Recovery(ctx, userID)
	})
}

func (handler *Handler) HandlePerformance(w http.ResponseWriter, r *http.Request) {
	handler.handleCached(w, r, kindPerformance, func(ctx context.Context, userID int) (any, error) {
		return handler.analyzer.Performance(ctx, userID)
	})
}

func (handler *Handler) HandleHealthBalance(w http.ResponseWriter, r *http.Request) {
	handler.handleCached(w, r, kindHealthBalance, func(ctx context.Context, userID int) (any, error) {
		return handler.analyzer.HealthBalance(ctx, userID)
	})
}

// handleCached serves one insight kind with a two-level cache: an
// in-process hot cache in front of redis. Scores change only when new
// data lands, so a short TTL is enough.
func (handler *Handler) handleCached(
	w http.ResponseWriter,
	r *http.Request,
	kind string,
	compute func(ctx context.Context, userID int) (any, error),
) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.insights."+kind)
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, http.StatusUnauthorized, "unauthorized", "missing credentials")
		return
	}

	cacheKey := fmt.Sprintf("insights::%s::%d::%s", kind, userID, handler.now().UTC().Format("2006-01-02"))

	if cached, err := handler.hotCache.Get([]byte(cacheKey)); err == nil {
		handler.metricsManager.CounterScoreCacheHits.Inc()
		pkg.WriteResponseBytes(w, pkg.ContentType.JSON, cached, http.StatusOK)
		return
	}

	if handler.redisClient != nil {
		cmd := handler.redisClient.Get(ctx, cacheKey)
		if err := cmd.Err(); err == nil {
			cached := []byte(cmd.Val())
			handler.metricsManager.CounterScoreCacheHits.Inc()
			handler.setHotCache(cacheKey, cached)
			pkg.WriteResponseBytes(w, pkg.ContentType.JSON, cached, http.StatusOK)
			return
		} else if !errors.Is(err, redis.Nil) {
			log.Errorf("insights %s, redis cache get for user %d: %s", kind, userID, err)
		}
	}

	result, err := compute(ctx, userID)
	if err != nil {
		log.Errorf("insights %s for user %d: %s", kind, userID, err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "storage failure", err.Error())
		return
	}

	respJson, err := json.Marshal(result)
	if err != nil {
		log.Errorf("failed to marshal %s insight: %s", kind, err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "internal server error", "")
		return
	}

	handler.metricsManager.CounterScoresComputed.WithLabelValues(kind).Inc()
	handler.setHotCache(cacheKey, respJson)
	if handler.redisClient != nil {
		if err := handler.redisClient.Set(ctx, cacheKey, respJson, handler.cacheTTL).Err(); err != nil {
			log.Errorf("insights %s, redis cache set for user %d: %s", kind, userID, err)
		}
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) setHotCache(key string, value []byte) {
	if err := handler.hotCache.Set([]byte(key), value, hotCacheExpireSeconds); err != nil {
		log.Errorf("failed to write insights hot cache: %s", err)
	}
}
