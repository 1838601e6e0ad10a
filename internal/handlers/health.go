package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/zml18x/SMS-Backend-sub000/internal/database"
)

var errNotConfigured = errors.New("not configured")

func (h *Handlers) pingDatabase(ctx context.Context) error {
	if h.app.DB == nil {
		return errNotConfigured
	}
	return h.app.DB.Ping(ctx)
}

func (h *Handlers) pingRedis(ctx context.Context) error {
	if h.app.Redis == nil {
		return errNotConfigured
	}
	return h.app.Redis.Ping(ctx).Err()
}

// Health handles health check requests with enhanced diagnostics
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]interface{}
// @Router       /health [get]
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	requestID := getRequestID(r.Context())
	healthCtx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "connected"
	var dbLatency time.Duration
	dbStart := time.Now()
	if err := h.pingDatabase(healthCtx); err != nil {
		dbStatus = "disconnected"
		h.app.Logger.Error().
			Str("request_id", requestID).
			Err(err).
			Msg("Database health check failed")
	} else {
		dbLatency = time.Since(dbStart)
	}

	redisStatus := "connected"
	var redisLatency time.Duration
	redisStart := time.Now()
	if err := h.pingRedis(healthCtx); err != nil {
		redisStatus = "disconnected"
		h.app.Logger.Error().
			Str("request_id", requestID).
			Err(err).
			Msg("Redis health check failed")
	} else {
		redisLatency = time.Since(redisStart)
	}

	health := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"uptime":      time.Since(startTime).String(),
		"version":     Version,
		"environment": h.app.Config.App_Env,
		"request_id":  requestID,
		"services": map[string]interface{}{
			"database": map[string]interface{}{
				"status":  dbStatus,
				"latency": dbLatency.String(),
			},
			"redis": map[string]interface{}{
				"status":  redisStatus,
				"latency": redisLatency.String(),
			},
		},
	}

	if dbStatus == "disconnected" || redisStatus == "disconnected" {
		health["status"] = "degraded"
		writeResponse(w, h.app, http.StatusServiceUnavailable, false, health, "Service is degraded")
		return
	}

	writeSuccess(w, h.app, health, "Service is healthy")
}

// HealthDetailed provides detailed health information including database stats
// @Summary      Detailed health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]interface{}
// @Router       /health/detailed [get]
func (h *Handlers) HealthDetailed(w http.ResponseWriter, r *http.Request) {
	requestID := getRequestID(r.Context())
	healthCtx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	health := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"uptime":      time.Since(startTime).String(),
		"version":     Version,
		"environment": h.app.Config.App_Env,
		"request_id":  requestID,
	}

	dbHealth := make(map[string]interface{})
	dbStart := time.Now()
	if h.app.DB == nil {
		dbHealth["status"] = "unhealthy"
		dbHealth["error"] = errNotConfigured.Error()
		health["status"] = "degraded"
	} else if err := database.HealthCheck(healthCtx, h.app.DB); err != nil {
		dbHealth["status"] = "unhealthy"
		dbHealth["error"] = err.Error()
		health["status"] = "degraded"
	} else {
		dbHealth["status"] = "healthy"
		dbHealth["latency"] = time.Since(dbStart).String()
		dbHealth["stats"] = database.GetConnectionStats(h.app.DB)
	}
	health["database"] = dbHealth

	redisHealth := make(map[string]interface{})
	redisStart := time.Now()
	if err := h.pingRedis(healthCtx); err != nil {
		redisHealth["status"] = "unhealthy"
		redisHealth["error"] = err.Error()
		health["status"] = "degraded"
	} else {
		redisHealth["status"] = "healthy"
		redisHealth["latency"] = time.Since(redisStart).String()
	}
	health["redis"] = redisHealth

	statusCode := http.StatusOK
	if health["status"] == "degraded" {
		statusCode = http.StatusServiceUnavailable
	}

	writeResponse(w, h.app, statusCode, health["status"] == "healthy", health, "Detailed health check complete")
}

// GetDatabaseStats retrieves DB connection info
// @Summary      Database Statistics
// @Description  Get internal database connection pool stats
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/v1/admin/db-stats [get]
func (h *Handlers) GetDatabaseStats(w http.ResponseWriter, r *http.Request) {
	if h.app.DB == nil {
		writeError(w, h.app, http.StatusServiceUnavailable, "Database is not configured")
		return
	}
	writeSuccess(w, h.app, database.GetConnectionStats(h.app.DB), "Database statistics retrieved")
}
