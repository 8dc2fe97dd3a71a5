package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rawblock/wheel-engine/internal/db"
	"github.com/rawblock/wheel-engine/internal/runner"
	"github.com/rawblock/wheel-engine/internal/wheel"
	"github.com/rawblock/wheel-engine/pkg/models"
)

type APIHandler struct {
	dbStore   *db.PostgresStore
	wsHub     *Hub
	jobRunner *runner.Runner
	limits    wheel.Limits
}

func SetupRouter(dbStore *db.PostgresStore, wsHub *Hub, jobRunner *runner.Runner, limits wheel.Limits) *gin.Engine {
	r := gin.Default()

	// Enable CORS — configurable via ALLOWED_ORIGINS env var
	// Production: ALLOWED_ORIGINS=https://wheels.example.com
	// Development: ALLOWED_ORIGINS=http://localhost:3000 (or leave empty for *)
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if allowedOrigins == "" || allowedOrigins == "*" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			for _, allowed := range strings.Split(allowedOrigins, ",") {
				if strings.TrimSpace(allowed) == origin {
					c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
					break
				}
			}
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	handler := &APIHandler{dbStore: dbStore, wsHub: wsHub, jobRunner: jobRunner, limits: limits}

	// Generation is CPU-bound and a worst-case request at the resource
	// ceilings runs for seconds, so the generate lanes are limited harder
	// than a typical read endpoint: one request per 5s sustained, with a
	// small burst for interactive retries.
	generateLimiter := NewRateLimiter(12, 5)

	api := r.Group("/api/v1")
	{
		api.POST("/wheel", generateLimiter.Middleware(), handler.handleGenerateWheel)
		api.POST("/wheel/jobs", generateLimiter.Middleware(), handler.handleStartJob)
		api.GET("/wheel/jobs/:id", handler.handleJobProgress)
		api.GET("/presets", handler.handlePresets)
		api.GET("/wheels", handler.handleRecentWheels)
		api.GET("/health", handler.handleHealth)
		api.GET("/stream", wsHub.Subscribe)
	}

	return r
}

// handleGenerateWheel runs a generation synchronously and returns the full
// ticket list. Suited to small requests; large ones should use the job lane.
func (h *APIHandler) handleGenerateWheel(c *gin.Context) {
	var req models.WheelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body. Expected: {pool, shape, config}"})
		return
	}

	result, err := wheel.Generate(req.Pool, req.Shape, req.Config, h.limits, nil)
	if err != nil {
		respondWheelError(c, err)
		return
	}

	// Persist a summary if the history store is connected. Failure to
	// record never fails the request.
	if h.dbStore != nil {
		if err := h.dbStore.SaveWheelRecord(context.Background(), req, result); err != nil {
			log.Printf("Failed to save wheel record to DB: %v", err)
		}
	}

	c.JSON(http.StatusOK, result)
}

// handleStartJob launches a generation in the background.
// POST /api/v1/wheel/jobs {pool, shape, config} → 202 + job ID
func (h *APIHandler) handleStartJob(c *gin.Context) {
	var req models.WheelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body. Expected: {pool, shape, config}"})
		return
	}

	jobID, ok := h.jobRunner.Start(context.Background(), req)
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "All generation workers are busy, retry shortly"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"jobId":  jobID,
		"status": runner.StatusRunning,
	})
}

// handleJobProgress returns the state of a background generation job.
func (h *APIHandler) handleJobProgress(c *gin.Context) {
	progress, ok := h.jobRunner.Progress(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown job ID"})
		return
	}
	c.JSON(http.StatusOK, progress)
}

// handlePresets lists the wheel types and named guarantee levels the engine
// understands, for client-side pickers.
func (h *APIHandler) handlePresets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"wheelTypes":      []string{models.WheelTypeFull, models.WheelTypeAbbreviated, models.WheelTypeBalanced},
		"guaranteeLevels": wheel.Presets(),
		"customLevel":     models.GuaranteeLevelCustom,
	})
}

// handleRecentWheels returns the generation history, newest first.
func (h *APIHandler) handleRecentWheels(c *gin.Context) {
	if h.dbStore == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database not connected"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	records, totalCount, err := h.dbStore.GetRecentWheels(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wheel history", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       records,
		"totalCount": totalCount,
		"page":       page,
		"limit":      limit,
	})
}

// handleHealth returns engine status and capabilities for service discovery.
func (h *APIHandler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "operational",
		"engine": "Wheel Engine v1.0",
		"capabilities": gin.H{
			"full_wheel":        true,
			"abbreviated_wheel": true,
			"balanced_wheel":    true,
			"coverage_verify":   true,
			"async_jobs":        true,
		},
		"activeJobs":  h.jobRunner.ActiveCount(),
		"dbConnected": h.dbStore != nil,
	})
}

// BroadcastWheelAlert sends a job completion alert via the WebSocket hub.
// This is wired as the alertFunc callback for the job runner.
func BroadcastWheelAlert(wsHub *Hub) func(runner.WheelAlert) {
	return func(alert runner.WheelAlert) {
		payload := gin.H{
			"type":  "wheel_job_" + alert.Status,
			"alert": alert,
		}
		alertBytes, _ := json.Marshal(payload)
		wsHub.Broadcast(alertBytes)
	}
}

// respondWheelError maps the engine's error taxonomy onto HTTP statuses:
// requests that can never succeed are 400s, requests that only exceed the
// configured ceilings are 422s carrying the offending estimate.
func respondWheelError(c *gin.Context, err error) {
	switch {
	case wheel.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case wheel.IsResourceLimit(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Wheel generation failed", "details": err.Error()})
	}
}
